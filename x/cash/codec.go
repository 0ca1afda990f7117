package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
)

// The layout of the models below is declared in codec.proto. Tags must
// keep its field numbers.

// Set is the content of a wallet.
type Set struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Coins    coin.Coins        `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins,omitempty"`
}

// SendMsg moves funds from the source to the destination wallet.
type SendMsg struct {
	Metadata    *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Source      custody.Address   `protobuf:"bytes,2,opt,name=source,proto3" json:"source,omitempty"`
	Destination custody.Address   `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin        `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// Memo is free text, max 128 characters.
	Memo string `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
	// Ref is a binary reference, max 64 bytes.
	Ref []byte `protobuf:"bytes,6,opt,name=ref,proto3" json:"ref,omitempty"`
}

func (m *Set) Marshal() ([]byte, error)   { return proto.Marshal((*setCodec)(m)) }
func (m *Set) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*setCodec)(m)) }
func (m *Set) Reset()                     { *m = Set{} }
func (m *Set) String() string             { return proto.CompactTextString((*setCodec)(m)) }
func (*Set) ProtoMessage()                {}

func (m *SendMsg) Marshal() ([]byte, error)   { return proto.Marshal((*sendMsgCodec)(m)) }
func (m *SendMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*sendMsgCodec)(m)) }
func (m *SendMsg) Reset()                     { *m = SendMsg{} }
func (m *SendMsg) String() string             { return proto.CompactTextString((*sendMsgCodec)(m)) }
func (*SendMsg) ProtoMessage()                {}

type (
	setCodec     Set
	sendMsgCodec SendMsg
)

func (m *setCodec) Reset()             { *m = setCodec{} }
func (m *setCodec) String() string     { return proto.CompactTextString(m) }
func (*setCodec) ProtoMessage()        {}
func (m *sendMsgCodec) Reset()         { *m = sendMsgCodec{} }
func (m *sendMsgCodec) String() string { return proto.CompactTextString(m) }
func (*sendMsgCodec) ProtoMessage()    {}
