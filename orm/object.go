package orm

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// SimpleObj combines a key with a model value. Most buckets store their
// models wrapped in it.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj combines a key and value into an object.
func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{
		key:   key,
		value: value,
	}
}

// Value returns the wrapped model.
func (o SimpleObj) Value() custody.Persistent {
	return o.value
}

// Key returns the primary key of the object.
func (o SimpleObj) Key() []byte {
	return o.key
}

// Validate requires both a key and a value, and delegates to the value.
func (o SimpleObj) Validate() error {
	if len(o.key) == 0 {
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	}
	if o.value == nil {
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// SetKey updates the primary key.
func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Clone returns an object holding an empty value of the same type and a
// copy of the key.
func (o *SimpleObj) Clone() Object {
	empty := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(CloneableData)
	res := &SimpleObj{value: empty}
	if len(o.key) > 0 {
		res.key = append([]byte(nil), o.key...)
	}
	return res
}
