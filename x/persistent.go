package x

import (
	"github.com/iov-one/custody"
)

// MustMarshal serializes obj or panics. Use only where a failure is a
// programming error, for example in tests and genesis fixtures.
func MustMarshal(obj custody.Marshaller) []byte {
	raw, err := obj.Marshal()
	if err != nil {
		panic(err)
	}
	return raw
}

// MustUnmarshal loads raw into obj or panics.
func MustUnmarshal(obj custody.Persistent, raw []byte) {
	if err := obj.Unmarshal(raw); err != nil {
		panic(err)
	}
}
