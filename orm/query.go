package orm

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// RegisterQuery exposes the raw key-value store under "/".
func RegisterQuery(qr custody.QueryRouter) {
	qr.Register("/", rawQuerier{})
}

// rawQuerier reads any key of the store, or all keys under a prefix.
type rawQuerier struct{}

func (rawQuerier) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		val, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if val == nil {
			return nil, nil
		}
		return []custody.Model{custody.Pair(data, val)}, nil
	case custody.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// ConsumeIterator reads all remaining entries and closes the iterator.
func ConsumeIterator(it custody.Iterator) ([]custody.Model, error) {
	defer it.Close()

	var res []custody.Model
	for it.Valid() {
		res = append(res, custody.Model{Key: it.Key(), Value: it.Value()})
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// queryPrefix returns all entries stored under keys starting with prefix.
func queryPrefix(db custody.ReadOnlyKVStore, prefix []byte) ([]custody.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(it)
}

// prefixRange turns a prefix into a (start, end) range. The end is nil if
// the prefix is made of 0xFF bytes only.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	start := append([]byte(nil), prefix...)
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}
