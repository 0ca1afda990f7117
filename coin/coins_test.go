package coin

import (
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestCoinsAddSubtract(t *testing.T) {
	var cs Coins
	var err error

	cs, err = cs.Add(NewCoin(5, 0, "IOV"))
	assert.Nil(t, err)
	cs, err = cs.Add(NewCoin(1, 0, "ETH"))
	assert.Nil(t, err)
	cs, err = cs.Add(NewCoin(0, 0, "BTC"))
	assert.Nil(t, err)
	assert.Nil(t, cs.Validate())
	assert.Equal(t, 2, cs.Count())
	assert.Equal(t, "ETH", cs[0].Ticker)

	assert.Equal(t, true, cs.Contains(NewCoin(4, 999999999, "IOV")))
	assert.Equal(t, false, cs.Contains(NewCoin(5, 1, "IOV")))
	assert.Equal(t, false, cs.Contains(NewCoin(1, 0, "BTC")))

	cs, err = cs.Subtract(NewCoin(1, 0, "ETH"))
	assert.Nil(t, err)
	assert.Equal(t, 1, cs.Count())
	assert.Equal(t, true, cs.IsPositive())

	cs, err = cs.Subtract(NewCoin(6, 0, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, false, cs.IsNonNegative())
}

func TestCoinsCombine(t *testing.T) {
	a, err := CombineCoins(NewCoin(1, 0, "IOV"), NewCoin(2, 0, "ETH"))
	assert.Nil(t, err)
	b, err := CombineCoins(NewCoin(3, 0, "IOV"), NewCoin(4, 0, "BTC"))
	assert.Nil(t, err)

	sum, err := a.Combine(b)
	assert.Nil(t, err)
	want, err := CombineCoins(NewCoin(4, 0, "IOV"), NewCoin(2, 0, "ETH"), NewCoin(4, 0, "BTC"))
	assert.Nil(t, err)
	assert.Equal(t, true, want.Equals(sum))

	// Inputs are not modified.
	assert.Equal(t, NewCoin(1, 0, "IOV"), *a[1])

	if _, err := CombineCoins(NewCoin(1, 0, "bad")); !errors.ErrCurrency.Is(err) {
		t.Fatalf("want currency error, got %+v", err)
	}
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"empty":      {nil, nil},
		"sorted":     {Coins{NewCoinp(1, 0, "ETH"), NewCoinp(1, 0, "IOV")}, nil},
		"not sorted": {Coins{NewCoinp(1, 0, "IOV"), NewCoinp(1, 0, "ETH")}, errors.ErrState},
		"duplicate":  {Coins{NewCoinp(1, 0, "IOV"), NewCoinp(1, 0, "IOV")}, errors.ErrState},
		"zero":       {Coins{NewCoinp(0, 0, "IOV")}, errors.ErrState},
		"nil coin":   {Coins{nil}, errors.ErrEmpty},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := tc.coins.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestNormalizeCoins(t *testing.T) {
	cases := map[string]struct {
		coins Coins
		want  Coins
	}{
		"nil":         {nil, nil},
		"only zeros":  {Coins{NewCoinp(0, 0, "IOV")}, nil},
		"normalized":  {Coins{NewCoinp(1, 0, "ETH"), NewCoinp(2, 0, "IOV")}, Coins{NewCoinp(1, 0, "ETH"), NewCoinp(2, 0, "IOV")}},
		"reversed":    {Coins{NewCoinp(2, 0, "IOV"), NewCoinp(1, 0, "ETH")}, Coins{NewCoinp(1, 0, "ETH"), NewCoinp(2, 0, "IOV")}},
		"merge":       {Coins{NewCoinp(2, 0, "IOV"), NewCoinp(1, 0, "ETH"), NewCoinp(3, 0, "IOV")}, Coins{NewCoinp(1, 0, "ETH"), NewCoinp(5, 0, "IOV")}},
		"cancel out":  {Coins{NewCoinp(2, 0, "IOV"), NewCoinp(-2, 0, "IOV")}, nil},
		"skip nil":    {Coins{nil, NewCoinp(1, 0, "IOV")}, Coins{NewCoinp(1, 0, "IOV")}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := NormalizeCoins(tc.coins)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
