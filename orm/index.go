package orm

import (
	"bytes"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for an object. A nil key means
// the object is not indexed.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates all secondary index keys for an object.
type MultiKeyIndexer func(Object) ([][]byte, error)

// Index is a secondary index kept in sync with a bucket.
//
// Entries are stored under
//    _i.<name>:<index value>
// and hold either a single primary key (unique index) or a MultiRef.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ custody.QueryHandler = Index{}

// NewIndex constructs an index. refKey turns a primary key into the full
// database key of the referenced object.
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return NewMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique, refKey)
}

// NewMultiKeyIndex constructs an index where each object can be stored
// under many index values.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     []byte(indexPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		if err != nil || key == nil {
			return nil, err
		}
		return [][]byte{key}, nil
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

func (i Index) indexKey(value []byte) []byte {
	out := make([]byte, len(i.id)+len(value))
	copy(out, i.id)
	copy(out[len(i.id):], value)
	return out
}

// Update moves the references of an object within the index.
//
// prev == nil means insert, save == nil means delete. When both are set
// they must have the same primary key.
func (i Index) Update(db custody.KVStore, prev, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		return i.insertAll(db, keys, save.Key())
	case save == nil:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		return i.removeAll(db, keys, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

func (i Index) move(db custody.KVStore, prev, save Object) error {
	pk := save.Key()
	if !bytes.Equal(prev.Key(), pk) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}
	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}
	if err := i.removeAll(db, subtract(oldKeys, newKeys), pk); err != nil {
		return err
	}
	return i.insertAll(db, subtract(newKeys, oldKeys), pk)
}

func (i Index) insertAll(db custody.KVStore, keys [][]byte, pk []byte) error {
	for _, key := range keys {
		if err := i.insert(db, key, pk); err != nil {
			return err
		}
	}
	return nil
}

func (i Index) removeAll(db custody.KVStore, keys [][]byte, pk []byte) error {
	for _, key := range keys {
		if err := i.remove(db, key, pk); err != nil {
			return err
		}
	}
	return nil
}

func (i Index) insert(db custody.KVStore, key, pk []byte) error {
	dbkey := i.indexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s: %X", i.name, key)
		}
		return db.Set(dbkey, pk)
	}

	var refs MultiRef
	if cur != nil {
		if err := refs.Unmarshal(cur); err != nil {
			return errors.Wrap(err, "index refs")
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, raw)
}

func (i Index) remove(db custody.KVStore, key, pk []byte) error {
	dbkey := i.indexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s: %X", i.name, key)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrState, "index %s: %X refers to another object", i.name, key)
		}
		return db.Delete(dbkey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return errors.Wrap(err, "index refs")
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbkey)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, raw)
}

// GetAt returns the primary keys of all objects indexed under value.
func (i Index) GetAt(db custody.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.indexKey(value))
	if err != nil || raw == nil {
		return nil, err
	}
	return i.parseRefs(raw)
}

// GetLike returns the primary keys of all objects sharing any index value
// with pattern.
func (i Index) GetLike(db custody.ReadOnlyKVStore, pattern Object) ([][]byte, error) {
	values, err := i.index(pattern)
	if err != nil {
		return nil, err
	}
	var res [][]byte
	for _, v := range values {
		refs, err := i.GetAt(db, v)
		if err != nil {
			return nil, err
		}
		res = append(res, refs...)
	}
	return deduplicate(res), nil
}

// getPrefix returns all references stored under index values starting with
// prefix.
func (i Index) getPrefix(db custody.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	models, err := queryPrefix(db, i.indexKey(prefix))
	if err != nil {
		return nil, err
	}
	var res [][]byte
	for _, m := range models {
		refs, err := i.parseRefs(m.Value)
		if err != nil {
			return nil, err
		}
		res = append(res, refs...)
	}
	return res, nil
}

func (i Index) parseRefs(raw []byte) ([][]byte, error) {
	if i.unique {
		return [][]byte{raw}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "index refs")
	}
	return refs.Refs, nil
}

// Query returns the referenced objects. The key modifier looks up an exact
// index value, the prefix modifier all values starting with data.
func (i Index) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	var (
		refs [][]byte
		err  error
	)
	switch mod {
	case custody.KeyQueryMod:
		refs, err = i.GetAt(db, data)
	case custody.PrefixQueryMod:
		refs, err = i.getPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier %q", mod)
	}
	if err != nil {
		return nil, err
	}
	return i.loadRefs(db, refs)
}

func (i Index) loadRefs(db custody.ReadOnlyKVStore, refs [][]byte) ([]custody.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]custody.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = custody.Model{Key: key, Value: value}
	}
	return res, nil
}

func deduplicate(s [][]byte) [][]byte {
	var res [][]byte
	for _, v := range s {
		if !contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}

// subtract returns all elements of a not present in b.
func subtract(a, b [][]byte) [][]byte {
	var res [][]byte
	for _, v := range a {
		if !contains(b, v) {
			res = append(res, v)
		}
	}
	return res
}

func contains(set [][]byte, v []byte) bool {
	for _, x := range set {
		if bytes.Equal(x, v) {
			return true
		}
	}
	return false
}
