package deadswitch

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/x/cash"
)

const optKey = "deadswitch"

// GenesisSwitch is an active switch declared in the genesis file. Amount is
// issued straight into its holding.
type GenesisSwitch struct {
	Owner        custody.Address  `json:"owner"`
	Beneficiary  custody.Address  `json:"beneficiary"`
	Deadline     custody.UnixTime `json:"deadline"`
	LastActivity custody.UnixTime `json:"last_activity"`
	Seed         []byte           `json:"seed"`
	Period       int64            `json:"period"`
	Memo         string           `json:"memo"`
	Amount       coin.Coins       `json:"amount"`
}

// Initializer loads the configuration from "conf.deadswitch" and the
// switches from "deadswitch".
type Initializer struct{}

var _ custody.Initializer = Initializer{}

func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	if err := gconf.InitConfig(db, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var switches []GenesisSwitch
	if err := opts.ReadOptions(optKey, &switches); err != nil {
		return err
	}
	bucket := NewSwitchBucket()
	wallets := cash.NewController(cash.NewBucket())
	for i, gs := range switches {
		obj, err := NewSwitch(gs.Owner, gs.Beneficiary, gs.Seed, gs.Deadline, gs.LastActivity, gs.Period, gs.Memo)
		if err != nil {
			return errors.Wrapf(err, "switch %d", i)
		}
		switch exists, err := bucket.Has(db, obj.Key()); {
		case err != nil:
			return errors.Wrapf(err, "switch %d", i)
		case exists:
			return errors.Wrapf(errors.ErrDuplicate, "switch %d", i)
		}
		if err := bucket.Save(db, obj); err != nil {
			return errors.Wrapf(err, "switch %d", i)
		}
		holding := AsSwitch(obj).Holding
		for _, amount := range gs.Amount {
			if err := wallets.IssueCoins(db, holding, *amount); err != nil {
				return errors.Wrapf(err, "switch %d funds", i)
			}
		}
	}
	return nil
}
