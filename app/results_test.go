package app

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestJoinResults(t *testing.T) {
	models := []custody.Model{
		custody.Pair([]byte("a"), []byte("1")),
		custody.Pair([]byte("b"), []byte("2")),
	}
	joined, err := JoinResults(ResultsFromKeys(models), ResultsFromValues(models))
	assert.Nil(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(ResultsFromKeys(models), ResultsFromValues(models[:1]))
	assert.IsErr(t, errors.ErrState, err)
}

func TestUnmarshalOneResult(t *testing.T) {
	var meta custody.Metadata

	empty, err := (&ResultSet{}).Marshal()
	assert.Nil(t, err)
	assert.IsErr(t, errors.ErrNotFound, UnmarshalOneResult(empty, &meta))

	raw, err := (&custody.Metadata{Schema: 3}).Marshal()
	assert.Nil(t, err)
	one, err := (&ResultSet{Results: [][]byte{raw}}).Marshal()
	assert.Nil(t, err)
	assert.Nil(t, UnmarshalOneResult(one, &meta))
	assert.Equal(t, uint32(3), meta.Schema)

	two, err := (&ResultSet{Results: [][]byte{raw, raw}}).Marshal()
	assert.Nil(t, err)
	assert.IsErr(t, errors.ErrState, UnmarshalOneResult(two, &meta))
}

func TestResultSetMatchesProto(t *testing.T) {
	assert.ProtoLayout(t, "codec.proto", "ResultSet", &ResultSet{})
}
