package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	flagForce   = "f"
)

// GenOptions can parse command line arguments to generate the default
// app_state for the genesis file. This is application specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisFile returns the path of the tendermint genesis file within home.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd writes the app_state of the genesis file created by `tendermint
// init`. An existing app_state is only replaced when the -f flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)
	force := flags.Bool(flagForce, false, "overwrite an existing app_state")
	if err := flags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := GenesisFile(home)
	if _, err := os.Stat(genFile); err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %s, run `tendermint init` first", genFile)
	}

	options, err := gen(flags.Args())
	if err != nil {
		return errors.Wrap(err, "app state")
	}
	if err := addGenesisOptions(genFile, options, *force); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

// GenerateCoinKey returns a new key able to sign transactions and its
// address. The caller is responsible for storing the key.
func GenerateCoinKey() (*crypto.PrivateKey, custody.Address) {
	key := crypto.GenPrivKeyEd25519()
	return key, key.PublicKey().Address()
}

// genesisDoc involves some tendermint specific structures we do not want to
// parse, so it is kept raw and only app_state is replaced.
type genesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var doc genesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis: %s", err)
	}
	if prev, ok := doc[appStateKey]; ok && !force && !isEmptyState(prev) {
		return errors.Wrap(errors.ErrState, "app_state already set, use -f to overwrite")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func isEmptyState(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "{}", `""`:
		return true
	}
	return false
}
