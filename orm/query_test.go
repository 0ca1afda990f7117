package orm

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix     []byte
		start, end []byte
	}{
		"nil":          {nil, nil, nil},
		"simple":       {[]byte("abc"), []byte("abc"), []byte("abd")},
		"carry":        {[]byte{1, 0xFF}, []byte{1, 0xFF}, []byte{2}},
		"all 0xFF":     {[]byte{0xFF, 0xFF}, []byte{0xFF, 0xFF}, nil},
		"zero in tail": {[]byte{7, 0}, []byte{7, 0}, []byte{7, 1}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestRawQuery(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, db.Set([]byte("sw:1"), []byte("one")))
	assert.Nil(t, db.Set([]byte("sw:2"), []byte("two")))
	assert.Nil(t, db.Set([]byte("wallet:1"), []byte("w")))

	qr := custody.NewQueryRouter()
	RegisterQuery(qr)
	q := qr.Handler("/")

	res, err := q.Query(db, custody.KeyQueryMod, []byte("sw:2"))
	assert.Nil(t, err)
	assert.Equal(t, []custody.Model{custody.Pair([]byte("sw:2"), []byte("two"))}, res)

	res, err = q.Query(db, custody.KeyQueryMod, []byte("sw:3"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = q.Query(db, custody.PrefixQueryMod, []byte("sw:"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	if _, err := q.Query(db, "range", nil); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}
