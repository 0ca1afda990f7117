package orm

import (
	"github.com/iov-one/custody"
)

// Object is what is stored in a bucket. The key is joined with the bucket
// prefix to build the database key. The value is the serialized model.
type Object interface {
	Keyed
	Cloneable
	// Validate returns an error if the object must not be persisted.
	Validate() error
	Value() custody.Persistent
}

// Reader allows to read objects from the database.
type Reader interface {
	Get(db custody.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable creates a new, empty object of the same type that can be loaded
// into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a model that can be wrapped by SimpleObj.
type CloneableData interface {
	custody.Persistent
	Validate() error
	Copy() CloneableData
}
