package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/deadswitch"
	abci "github.com/tendermint/tendermint/abci/types"
)

const defaultTicker = "IOV"

// GenInitOptions produces the app_state of a development chain with one rich
// account that also owns the deadswitch configuration.
//
// Arguments are an optional ticker and an optional address. When no address
// is given a new key is generated and printed, and its address is used.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := defaultTicker
	if len(args) > 0 {
		ticker = args[0]
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "ticker %q", ticker)
	}

	var addr custody.Address
	if len(args) > 1 {
		a, err := custody.ParseAddress(args[1])
		if err != nil {
			return nil, errors.Wrap(err, "address")
		}
		addr = a
	} else {
		// dev mode only: the key is printed so that it can be imported
		key, a := server.GenerateCoinKey()
		raw, err := key.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "marshal key")
		}
		fmt.Printf("Generated key for %s: %X\n", a, raw)
		addr = a
	}

	type dict map[string]interface{}
	return json.Marshal(dict{
		"cash": []cash.GenesisAccount{{
			Address: addr,
			Coins:   coin.Coins{coin.NewCoinp(123456789, 0, ticker)},
		}},
		"conf": dict{
			"deadswitch": deadswitch.Configuration{
				Metadata:      &custody.Metadata{Schema: 1},
				Owner:         addr,
				DepositPolicy: deadswitch.DepositPolicyAnyone,
			},
		},
		"deadswitch": []deadswitch.GenesisSwitch{},
	})
}

// GenerateApp is used to create the application for the start command.
func GenerateApp(options *server.Options) (abci.Application, error) {
	dbPath := options.DBPath
	if dbPath == "" && options.Home != "" {
		dbPath = filepath.Join(options.Home, "custody.db")
	}

	stack, err := Stack(options.Registry)
	if err != nil {
		return nil, err
	}
	application, err := Application(Name, stack, TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(options.Logger)
	return application, nil
}
