package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// Controller is the interface other extensions use to move funds.
type Controller interface {
	Balance(db custody.KVStore, addr custody.Address) (coin.Coins, error)
	MoveCoins(db custody.KVStore, src, dest custody.Address, amount coin.Coin) error
	TransferIn(db custody.KVStore, src, holding custody.Address, amount coin.Coin) error
	Sweep(db custody.KVStore, holding, dest custody.Address) (coin.Coins, error)
}

// BaseController operates on the wallet bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default wallet bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by addr. An unknown address holds nothing.
func (c BaseController) Balance(db custody.KVStore, addr custody.Address) (coin.Coins, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	return AsCoins(obj), nil
}

// MoveCoins moves the given amount from src to dest. It fails if src does
// not exist or does not hold enough.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot get sender")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if err := AsSet(sender).Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}

	// Loaded after the sender is saved, so that a transfer to self
	// sees the subtracted balance.
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get recipient")
	}
	if err := AsSet(recipient).Add(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// TransferIn deposits amount from src into a holding wallet.
func (c BaseController) TransferIn(db custody.KVStore, src, holding custody.Address, amount coin.Coin) error {
	if err := holding.Validate(); err != nil {
		return errors.Wrap(err, "holding")
	}
	return c.MoveCoins(db, src, holding, amount)
}

// Sweep moves every coin of the holding wallet to dest and deletes the
// holding wallet. It returns what was moved, which is nothing for an empty
// or unknown holding.
func (c BaseController) Sweep(db custody.KVStore, holding, dest custody.Address) (coin.Coins, error) {
	if err := dest.Validate(); err != nil {
		return nil, errors.Wrap(err, "destination")
	}
	if dest.Equals(holding) {
		return nil, errors.Wrap(errors.ErrInput, "cannot sweep a holding into itself")
	}
	obj, err := c.bucket.Get(db, holding)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get holding")
	}
	swept := AsCoins(obj).Clone()
	if obj != nil {
		if err := c.bucket.Delete(db, holding); err != nil {
			return nil, errors.Wrap(err, "cannot release holding")
		}
	}
	if len(swept) == 0 {
		return swept, nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get recipient")
	}
	set := AsSet(recipient)
	for _, amount := range swept {
		if err := set.Add(*amount); err != nil {
			return nil, err
		}
	}
	if err := c.bucket.Save(db, recipient); err != nil {
		return nil, errors.Wrap(err, "cannot save recipient")
	}
	return swept, nil
}

// IssueCoins adds the amount to the destination wallet, creating it when
// needed. Used by genesis and tests only.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, amount coin.Coin) error {
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get wallet")
	}
	if err := AsSet(recipient).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}
