package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/deadswitch"
	"github.com/iov-one/custody/x/sigs"
)

// The layout of the models below is declared in codec.proto. Tags must
// keep its field numbers.

// Tx is the transaction accepted by this application. Exactly one message of
// the Sum must be set.
type Tx struct {
	Sum        *TxSum               `protobuf:"bytes,1,opt,name=sum,proto3" json:"sum,omitempty"`
	Signatures []*sigs.StdSignature `protobuf:"bytes,2,rep,name=signatures,proto3" json:"signatures,omitempty"`
}

// TxSum lists every message this application routes.
type TxSum struct {
	SendMsg                *cash.SendMsg                      `protobuf:"bytes,1,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	BumpSequenceMsg        *sigs.BumpSequenceMsg              `protobuf:"bytes,2,opt,name=bump_sequence_msg,json=bumpSequenceMsg,proto3" json:"bump_sequence_msg,omitempty"`
	CreateMsg              *deadswitch.CreateMsg              `protobuf:"bytes,3,opt,name=create_msg,json=createMsg,proto3" json:"create_msg,omitempty"`
	DepositMsg             *deadswitch.DepositMsg             `protobuf:"bytes,4,opt,name=deposit_msg,json=depositMsg,proto3" json:"deposit_msg,omitempty"`
	CheckInMsg             *deadswitch.CheckInMsg             `protobuf:"bytes,5,opt,name=check_in_msg,json=checkInMsg,proto3" json:"check_in_msg,omitempty"`
	HeartbeatMsg           *deadswitch.HeartbeatMsg           `protobuf:"bytes,6,opt,name=heartbeat_msg,json=heartbeatMsg,proto3" json:"heartbeat_msg,omitempty"`
	ClaimMsg               *deadswitch.ClaimMsg               `protobuf:"bytes,7,opt,name=claim_msg,json=claimMsg,proto3" json:"claim_msg,omitempty"`
	CancelMsg              *deadswitch.CancelMsg              `protobuf:"bytes,8,opt,name=cancel_msg,json=cancelMsg,proto3" json:"cancel_msg,omitempty"`
	UpdateConfigurationMsg *deadswitch.UpdateConfigurationMsg `protobuf:"bytes,9,opt,name=update_configuration_msg,json=updateConfigurationMsg,proto3" json:"update_configuration_msg,omitempty"`
}

func (m *Tx) Marshal() ([]byte, error)   { return proto.Marshal((*txCodec)(m)) }
func (m *Tx) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*txCodec)(m)) }
func (m *Tx) Reset()                     { *m = Tx{} }
func (m *Tx) String() string             { return proto.CompactTextString((*txCodec)(m)) }
func (*Tx) ProtoMessage()                {}

func (m *TxSum) Marshal() ([]byte, error)   { return proto.Marshal((*txSumCodec)(m)) }
func (m *TxSum) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*txSumCodec)(m)) }
func (m *TxSum) Reset()                     { *m = TxSum{} }
func (m *TxSum) String() string             { return proto.CompactTextString((*txSumCodec)(m)) }
func (*TxSum) ProtoMessage()                {}

type (
	txCodec    Tx
	txSumCodec TxSum
)

func (m *txCodec) Reset()            { *m = txCodec{} }
func (m *txCodec) String() string    { return proto.CompactTextString(m) }
func (*txCodec) ProtoMessage()       {}
func (m *txSumCodec) Reset()         { *m = txSumCodec{} }
func (m *txSumCodec) String() string { return proto.CompactTextString(m) }
func (*txSumCodec) ProtoMessage()    {}
