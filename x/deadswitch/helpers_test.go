package deadswitch

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
)

// t0 is the block time most tests start at.
const t0 = custody.UnixTime(1600000000)

// testEnv runs messages through the router the way the application does,
// each delivery on its own cache wrap that is written only on success.
type testEnv struct {
	t       testing.TB
	db      custody.CacheableKVStore
	auth    *custodytest.CtxAuth
	router  *app.Router
	control cash.BaseController
	bucket  SwitchBucket
}

func newTestEnv(t testing.TB) *testEnv {
	t.Helper()
	auth := &custodytest.CtxAuth{Key: "deadswitch"}
	control := cash.NewController(cash.NewBucket())
	rt := app.NewRouter()
	RegisterRoutes(rt, auth, control)
	cash.RegisterRoutes(rt, auth, control)
	return &testEnv{
		t:       t,
		db:      store.MemStore(),
		auth:    auth,
		router:  rt,
		control: control,
		bucket:  NewSwitchBucket(),
	}
}

func (e *testEnv) ctx(now custody.UnixTime, signers ...custody.Condition) context.Context {
	ctx := custody.WithBlockTime(context.Background(), now.Time())
	return e.auth.SetConditions(ctx, signers...)
}

// check runs the message in check mode. Nothing is ever written.
func (e *testEnv) check(now custody.UnixTime, msg custody.Msg, signers ...custody.Condition) error {
	cache := e.db.CacheWrap()
	defer cache.Discard()
	_, err := e.router.Check(e.ctx(now, signers...), cache, &custodytest.Tx{Msg: msg})
	return err
}

func (e *testEnv) deliver(now custody.UnixTime, msg custody.Msg, signers ...custody.Condition) (*custody.DeliverResult, error) {
	cache := e.db.CacheWrap()
	res, err := e.router.Deliver(e.ctx(now, signers...), cache, &custodytest.Tx{Msg: msg})
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		e.t.Fatalf("cannot write cache: %s", err)
	}
	return res, nil
}

// mustDeliver fails the test unless the message is delivered.
func (e *testEnv) mustDeliver(now custody.UnixTime, msg custody.Msg, signers ...custody.Condition) *custody.DeliverResult {
	e.t.Helper()
	res, err := e.deliver(now, msg, signers...)
	if err != nil {
		e.t.Fatalf("cannot deliver %T: %+v", msg, err)
	}
	return res
}

func (e *testEnv) fund(addr custody.Address, amounts ...coin.Coin) {
	e.t.Helper()
	for _, a := range amounts {
		if err := e.control.IssueCoins(e.db, addr, a); err != nil {
			e.t.Fatalf("cannot issue %s: %s", a, err)
		}
	}
}

func (e *testEnv) balance(addr custody.Address) coin.Coins {
	e.t.Helper()
	coins, err := e.control.Balance(e.db, addr)
	if err != nil {
		e.t.Fatalf("cannot get balance: %s", err)
	}
	return coins
}

func (e *testEnv) load(id []byte) *Switch {
	e.t.Helper()
	_, sw, err := e.bucket.GetSwitch(e.db, id)
	if err != nil {
		e.t.Fatalf("cannot load switch: %+v", err)
	}
	return sw
}

func (e *testEnv) configure(conf Configuration) {
	e.t.Helper()
	if conf.Metadata == nil {
		conf.Metadata = &custody.Metadata{Schema: 1}
	}
	if err := gconf.Save(e.db, packageName, &conf); err != nil {
		e.t.Fatalf("cannot save configuration: %+v", err)
	}
}

// createSwitch opens a switch owned by the signer and returns its ID.
func (e *testEnv) createSwitch(now custody.UnixTime, owner custody.Condition, beneficiary custody.Address, deadline custody.UnixTime, seed string) []byte {
	e.t.Helper()
	res := e.mustDeliver(now, &CreateMsg{
		Metadata:    &custody.Metadata{Schema: 1},
		Beneficiary: beneficiary,
		Deadline:    deadline,
		Seed:        []byte(seed),
	}, owner)
	return res.Data
}

func iov(whole int64) coin.Coin {
	return coin.NewCoin(whole, 0, "IOV")
}

func coins(t testing.TB, cs ...coin.Coin) coin.Coins {
	t.Helper()
	res, err := coin.CombineCoins(cs...)
	if err != nil {
		t.Fatalf("cannot combine coins: %s", err)
	}
	return res
}

func meta() *custody.Metadata {
	return &custody.Metadata{Schema: 1}
}
