package custodytest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

var sequence uint64

// NewCondition returns a condition that is unique within the test run.
func NewCondition() custody.Condition {
	var data [8]byte
	binary.BigEndian.PutUint64(data[:], atomic.AddUint64(&sequence, 1))
	return custody.NewCondition("test", "sequence", data[:])
}

// NewKey returns a new ed25519 private key together with the condition that
// its signatures satisfy.
func NewKey() (*crypto.PrivateKey, custody.Condition) {
	key := crypto.GenPrivKeyEd25519()
	return key, key.PublicKey().Condition()
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) custody.Address {
	t.Helper()

	addr, err := custody.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
