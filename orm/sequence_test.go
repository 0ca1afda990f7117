package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("switch", SeqID)
	b := NewSequence("wallet", SeqID)

	val, raw, err := a.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), val)
	assert.Nil(t, raw)

	first, err := a.NextVal(db)
	assert.Nil(t, err)
	second, err := a.NextVal(db)
	assert.Nil(t, err)
	if bytes.Compare(first, second) >= 0 {
		t.Fatalf("sequence must grow: %X, %X", first, second)
	}
	assert.Nil(t, ValidateSequence(second))

	n, err := b.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), n)

	val, _, err = a.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), val)
	assert.Equal(t, int64(2), DecodeSequence(EncodeSequence(2)))
}
