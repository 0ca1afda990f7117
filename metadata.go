package custody

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// Metadata is the header every persisted model carries. Schema is the
// version of the model layout and is required to be at least 1.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// Validate returns an error if the header is missing or has no schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object.
func (m *Metadata) Copy() *Metadata {
	cpy := *m
	return &cpy
}

func (m *Metadata) Marshal() ([]byte, error) {
	return proto.Marshal((*metadataCodec)(m))
}

func (m *Metadata) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*metadataCodec)(m))
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString((*metadataCodec)(m)) }
func (*Metadata) ProtoMessage()    {}

// metadataCodec shares the layout of Metadata but not its methods, so that
// the protobuf reflection codec does not call back into Marshal.
type metadataCodec Metadata

func (m *metadataCodec) Reset()         { *m = metadataCodec{} }
func (m *metadataCodec) String() string { return proto.CompactTextString(m) }
func (*metadataCodec) ProtoMessage()    {}
