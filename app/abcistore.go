package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes the abci Query interface of an application as a
// ReadOnlyKVStore. It reads through the raw "/" query path, so a bucket can
// be used on top of it to reuse key, index and parse logic.
type ABCIStore struct {
	app abci.Application
}

var _ custody.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading the committed state of app.
func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get queries for exactly one value.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	res := a.app.Query(abci.RequestQuery{Path: "/", Data: key})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal result set")
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d results for a key", len(value.Results))
	}
}

// Has returns true if the given key is in the store.
func (a *ABCIStore) Has(key []byte) (bool, error) {
	val, err := a.Get(key)
	return val != nil, err
}

// Iterator only supports listing the whole store.
func (a *ABCIStore) Iterator(start, end []byte) (custody.Iterator, error) {
	models, err := a.all(start, end)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator only supports listing the whole store.
func (a *ABCIStore) ReverseIterator(start, end []byte) (custody.Iterator, error) {
	models, err := a.all(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) all(start, end []byte) ([]custody.Model, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrInput, "only full range iteration is supported")
	}
	res := a.app.Query(abci.RequestQuery{Path: "/?" + custody.PrefixQueryMod})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	var k, v ResultSet
	if err := k.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
