package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

// The layout of the models below is declared in codec.proto. Tags must
// keep its field numbers.

// UserData is the state kept for every public key that ever signed a
// transaction.
type UserData struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Pubkey   *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	// Sequence must match the sequence of the next signature.
	Sequence int64 `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// StdSignature is a signature of a transaction together with the data
// needed to verify it.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
}

// BumpSequenceMsg increments the sequence of the signer. Used to invalidate
// transactions that were signed but never submitted.
type BumpSequenceMsg struct {
	Metadata  *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Increment uint32            `protobuf:"varint,2,opt,name=increment,proto3" json:"increment,omitempty"`
}

func (m *UserData) Marshal() ([]byte, error)   { return proto.Marshal((*userDataCodec)(m)) }
func (m *UserData) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*userDataCodec)(m)) }
func (m *UserData) Reset()                     { *m = UserData{} }
func (m *UserData) String() string             { return proto.CompactTextString((*userDataCodec)(m)) }
func (*UserData) ProtoMessage()                {}

func (m *StdSignature) Marshal() ([]byte, error)   { return proto.Marshal((*stdSignatureCodec)(m)) }
func (m *StdSignature) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*stdSignatureCodec)(m)) }
func (m *StdSignature) Reset()                     { *m = StdSignature{} }
func (m *StdSignature) String() string             { return proto.CompactTextString((*stdSignatureCodec)(m)) }
func (*StdSignature) ProtoMessage()                {}

func (m *BumpSequenceMsg) Marshal() ([]byte, error)   { return proto.Marshal((*bumpSequenceMsgCodec)(m)) }
func (m *BumpSequenceMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*bumpSequenceMsgCodec)(m)) }
func (m *BumpSequenceMsg) Reset()                     { *m = BumpSequenceMsg{} }
func (m *BumpSequenceMsg) String() string             { return proto.CompactTextString((*bumpSequenceMsgCodec)(m)) }
func (*BumpSequenceMsg) ProtoMessage()                {}

// Codec types share the layout of the models without their Marshal
// methods, so that the reflection codec does not recurse.
type (
	userDataCodec        UserData
	stdSignatureCodec    StdSignature
	bumpSequenceMsgCodec BumpSequenceMsg
)

func (m *userDataCodec) Reset()                { *m = userDataCodec{} }
func (m *userDataCodec) String() string        { return proto.CompactTextString(m) }
func (*userDataCodec) ProtoMessage()           {}
func (m *stdSignatureCodec) Reset()            { *m = stdSignatureCodec{} }
func (m *stdSignatureCodec) String() string    { return proto.CompactTextString(m) }
func (*stdSignatureCodec) ProtoMessage()       {}
func (m *bumpSequenceMsgCodec) Reset()         { *m = bumpSequenceMsgCodec{} }
func (m *bumpSequenceMsgCodec) String() string { return proto.CompactTextString(m) }
func (*bumpSequenceMsgCodec) ProtoMessage()    {}
