package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where the wallets are stored.
const BucketName = "cash"

var _ orm.CloneableData = (*Set)(nil)

// Validate requires normalized coins.
func (s *Set) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return s.Coins.Validate()
}

// Copy makes a new set with the same coins.
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Metadata: s.Metadata.Copy(),
		Coins:    s.Coins.Clone(),
	}
}

// Add increases the set by c.
func (s *Set) Add(c coin.Coin) error {
	cs, err := s.Coins.Clone().Add(c)
	if err != nil {
		return err
	}
	s.Coins = cs
	return nil
}

// Subtract decreases the set by c. It fails with ErrInsufficientAmount if
// the set does not contain enough.
func (s *Set) Subtract(c coin.Coin) error {
	if !s.Coins.Contains(c) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "want %s", c)
	}
	return s.Add(c.Negative())
}

// NewWallet returns an empty wallet object for the address.
func NewWallet(key custody.Address) orm.Object {
	return orm.NewSimpleObj(key, &Set{Metadata: &custody.Metadata{Schema: 1}})
}

// WalletWith returns a wallet object holding the given coins.
func WalletWith(key custody.Address, coins ...*coin.Coin) (orm.Object, error) {
	obj := NewWallet(key)
	set := AsSet(obj)
	for _, c := range coins {
		if err := set.Add(*c); err != nil {
			return nil, err
		}
	}
	return obj, obj.Validate()
}

// AsSet returns the content of a wallet object. Nil stays nil.
func AsSet(obj orm.Object) *Set {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Set)
}

// AsCoins returns the coins of a wallet object. Nil means no coins.
func AsCoins(obj orm.Object) coin.Coins {
	if set := AsSet(obj); set != nil {
		return set.Coins
	}
	return nil
}

// Bucket stores wallets by address.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns the wallet bucket.
func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewWallet(nil))}
}

// GetOrCreate loads a wallet, or returns a new empty one that is not saved.
func (b Bucket) GetOrCreate(db custody.KVStore, key custody.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err == nil && obj == nil {
		obj = NewWallet(key)
	}
	return obj, err
}
