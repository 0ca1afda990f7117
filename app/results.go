package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ResultSet is the query response container. Keys and values of a query are
// returned as two result sets of the same length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetCodec)(m))
}

func (m *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*resultSetCodec)(m))
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString((*resultSetCodec)(m)) }
func (*ResultSet) ProtoMessage()    {}

type resultSetCodec ResultSet

func (m *resultSetCodec) Reset()         { *m = resultSetCodec{} }
func (m *resultSetCodec) String() string { return proto.CompactTextString(m) }
func (*resultSetCodec) ProtoMessage()    {}

// ResultsFromKeys returns a ResultSet of all keys given a set of models.
func ResultsFromKeys(models []custody.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values given a set of models.
func ResultsFromValues(models []custody.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues and makes them
// a consistent whole again.
func JoinResults(keys, values *ResultSet) ([]custody.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys for %d values", len(kref), len(vref))
	}
	models := make([]custody.Model, len(kref))
	for i := range models {
		models[i] = custody.Pair(kref[i], vref[i])
	}
	return models, nil
}

// UnmarshalOneResult parses a result set and, if it is not empty,
// unmarshals the first result into o. ErrNotFound is returned for an empty
// set.
func UnmarshalOneResult(raw []byte, o custody.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(raw); err != nil {
		return errors.Wrap(err, "result set")
	}
	switch len(res.Results) {
	case 0:
		return errors.Wrap(errors.ErrNotFound, "no result")
	case 1:
		return o.Unmarshal(res.Results[0])
	default:
		return errors.Wrapf(errors.ErrState, "%d results", len(res.Results))
	}
}
