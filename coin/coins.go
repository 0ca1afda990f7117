package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/custody/errors"
)

// Coins is a set of coins. Most operations require the normalized form, see
// NormalizeCoins.
type Coins []*Coin

// CombineCoins returns the normalized set of all given coins.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// Clone returns a copy that can be safely modified.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns the set increased by c. Currencies that sum up to zero are
// removed. The receiver must not be used afterwards.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	has, i := cs.findCoin(c.ID())
	if has != nil {
		sum, err := has.Add(c)
		if err != nil {
			return nil, err
		}
		if sum.IsZero() {
			return append(cs[:i], cs[i+1:]...), nil
		}
		cs[i] = &sum
		return cs, nil
	}
	res := append(cs, nil)
	copy(res[i+1:], res[i:])
	res[i] = &c
	return res, nil
}

// Subtract returns the set decreased by c. Amounts may become negative.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine returns a new set holding the sum of both sets.
func (cs Coins) Combine(o Coins) (Coins, error) {
	var err error
	res := cs.Clone()
	for _, c := range o {
		if res, err = res.Add(*c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Contains returns true if the set holds at least c.
func (cs Coins) Contains(c Coin) bool {
	has, _ := cs.findCoin(c.ID())
	return has != nil && has.IsGTE(c)
}

// findCoin returns the coin of the given currency and its position, or nil
// and the position where it should be inserted.
func (cs Coins) findCoin(ticker string) (*Coin, int) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	if i < len(cs) && cs[i].Ticker == ticker {
		return cs[i], i
	}
	return nil, i
}

// IsEmpty returns true if the set holds nothing.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsPositive returns true if there is at least one coin and all are
// positive.
func (cs Coins) IsPositive() bool {
	return !cs.IsEmpty() && cs.IsNonNegative()
}

// IsNonNegative returns true if no coin is negative. An empty set is
// non-negative.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets hold the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of currencies in the set.
func (cs Coins) Count() int {
	return len(cs)
}

// String lists all coins separated by a semicolon.
func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, "; ")
}

// Validate requires every coin to be valid and non-zero, sorted by ticker
// without duplicates.
func (cs Coins) Validate() error {
	var err error
	last := ""
	for _, c := range cs {
		if c == nil {
			err = errors.Append(err, errors.Wrap(errors.ErrEmpty, "nil coin"))
			continue
		}
		err = errors.Append(err, errors.Wrap(c.Validate(), "coin"))
		if c.IsZero() {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "zero coins"))
		}
		if c.Ticker <= last && last != "" {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "not sorted"))
		}
		last = c.Ticker
	}
	return err
}

// NormalizeCoins merges coins of the same currency, drops zero amounts and
// sorts by ticker. A normalized set is returned unchanged.
func NormalizeCoins(cs Coins) (Coins, error) {
	if isNormalized(cs) {
		if len(cs) == 0 {
			return nil, nil
		}
		return cs, nil
	}

	sums := make(map[string]Coin)
	for _, c := range cs {
		if c == nil {
			continue
		}
		sum, err := sums[c.Ticker].Add(*c)
		if err != nil {
			return nil, errors.Wrap(err, "cannot sum coins")
		}
		sums[c.Ticker] = sum
	}
	var res Coins
	for _, c := range sums {
		if c.IsZero() {
			continue
		}
		cpy := c
		res = append(res, &cpy)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Ticker < res[j].Ticker })
	return res, nil
}

func isNormalized(cs Coins) bool {
	var prev *Coin
	for _, c := range cs {
		if IsEmpty(c) {
			return false
		}
		if prev != nil && prev.Ticker >= c.Ticker {
			return false
		}
		prev = c
	}
	return true
}
