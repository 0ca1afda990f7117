/*
Package app wires the extensions of the custody node into an ABCI
application: the decorator chain, the message router, the queries and the
genesis initializers.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/deadswitch"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Name is returned from the abci Info call.
const Name = "custody"

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// CashControl returns a controller for cash functions.
func CashControl() cash.Controller {
	return cash.NewController(cash.NewBucket())
}

// Chain returns a chain of decorators to handle authentication, logging,
// metrics and recovery.
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment the nonce even if the
		// message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all supported messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	control := CashControl()
	cash.RegisterRoutes(r, authFn, control)
	sigs.RegisterRoutes(r, authFn)
	deadswitch.RegisterRoutes(r, authFn, control)
	return r
}

// QueryRouter returns a query router allowing access to "/wallets",
// "/auth", "/switches" and "/".
func QueryRouter() custody.QueryRouter {
	r := custody.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		deadswitch.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() custody.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		deadswitch.Initializer{},
	)
}

// Stack wires up the router with the decorator chain. Metrics are
// registered with reg. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) (custody.Handler, error) {
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn)), nil
}

// Application constructs the ABCI application with the given handler. An
// empty dbPath keeps the state in memory.
func Application(name string, h custody.Handler, decoder custody.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, errors.Wrap(err, "store")
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, decoder, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists the data to the
// named path.
func CommitKVStore(dbPath string) (custody.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name %q", dbPath)
	}

	// Some external calls accidentally add a ".db", which is removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	kv, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return kv, nil
}
