package app

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
)

// pathDecoder turns the raw bytes into a transaction routed by that path.
func pathDecoder(raw []byte) (custody.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty tx")
	}
	return &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: string(raw)}}, nil
}

// timeHandler stores the block time it was called with.
type timeHandler struct{}

func (timeHandler) Check(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := custody.BlockNow(ctx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: 1}, nil
}

func (timeHandler) Deliver(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	now, err := custody.BlockNow(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Set([]byte("now"), []byte(now.String())); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: []byte("ok")}, nil
}

func newTestApp(t testing.TB) (BaseApp, *recordingInit) {
	t.Helper()

	qr := custody.NewQueryRouter()
	orm.RegisterQuery(qr)

	sa, err := NewStoreApp("custody-test", iavl.MemCommitStore(), qr, context.Background())
	assert.Nil(t, err)
	init := &recordingInit{}
	sa.WithInit(init)

	r := NewRouter()
	r.Handle(&custodytest.Msg{RoutePath: "test/time"}, timeHandler{})
	r.Handle(&custodytest.Msg{RoutePath: "test/fail"}, &custodytest.WriteHandler{
		Key:   []byte("failed"),
		Value: []byte("yes"),
		Err:   errors.ErrState,
	})
	return NewBaseApp(sa, pathDecoder, r, false), init
}

func TestBaseAppLifecycle(t *testing.T) {
	app, init := newTestApp(t)

	app.InitChain(abci.RequestInitChain{
		ChainId:       "custody-chain",
		AppStateBytes: []byte(`{"cash": []}`),
	})
	assert.Equal(t, true, init.called)
	assert.Equal(t, "custody-chain", app.GetChainID())

	blockTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: blockTime}})

	chk := app.CheckTx([]byte("test/time"))
	assert.Equal(t, uint32(0), chk.Code)
	assert.Equal(t, int64(1), chk.GasWanted)

	res := app.DeliverTx([]byte("test/time"))
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, []byte("ok"), res.Data)

	failed := app.DeliverTx([]byte("test/fail"))
	assert.Equal(t, errors.ErrState.ABCICode(), failed.Code)

	unknown := app.DeliverTx([]byte("test/unknown"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), unknown.Code)

	undecodable := app.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), undecodable.Code)

	app.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := app.Commit()
	if len(commit.Data) == 0 {
		t.Fatal("empty app hash")
	}

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	db := NewABCIStore(app)
	val, err := db.Get([]byte("now"))
	assert.Nil(t, err)
	assert.Equal(t, custody.AsUnixTime(blockTime).String(), string(val))

	// Without a savepoint decorator the write of a failed transaction stays.
	has, err := db.Has([]byte("failed"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)

	it, err := db.Iterator(nil, nil)
	assert.Nil(t, err)
	all, err := orm.ConsumeIterator(it)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(all)) // chain id, now, failed

	q := app.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), q.Code)
}

func TestInitChainTwicePanics(t *testing.T) {
	app, _ := newTestApp(t)
	req := abci.RequestInitChain{ChainId: "custody-chain", AppStateBytes: []byte(`{}`)}
	app.InitChain(req)
	assert.Panics(t, func() { app.InitChain(req) })
}

func TestCheckWithoutBlockTime(t *testing.T) {
	app, _ := newTestApp(t)
	res := app.CheckTx([]byte("test/time"))
	assert.Equal(t, errors.ErrHuman.ABCICode(), res.Code)
}
