package deadswitch

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
)

// The layout of the models below is declared in codec.proto. Tags must
// keep its field numbers.

// State is the lifecycle stage of a switch.
type State int32

const (
	StateInvalid   State = 0
	StateActive    State = 1
	StateClaimed   State = 2
	StateCancelled State = 3
)

var stateNames = map[State]string{
	StateInvalid:   "invalid",
	StateActive:    "active",
	StateClaimed:   "claimed",
	StateCancelled: "cancelled",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// DepositPolicy tells who may fund a switch.
type DepositPolicy int32

const (
	DepositPolicyInvalid   DepositPolicy = 0
	DepositPolicyAnyone    DepositPolicy = 1
	DepositPolicyOwnerOnly DepositPolicy = 2
)

// Switch is the persisted state of a single custody switch. It is stored
// under its derived address.
type Switch struct {
	Metadata    *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner       custody.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Beneficiary custody.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
	Deadline    custody.UnixTime  `protobuf:"varint,4,opt,name=deadline,proto3" json:"deadline,omitempty"`
	// LastActivity is the creation time or the time of the latest check in.
	LastActivity custody.UnixTime `protobuf:"varint,5,opt,name=last_activity,json=lastActivity,proto3" json:"last_activity,omitempty"`
	State        State            `protobuf:"varint,6,opt,name=state,proto3" json:"state,omitempty"`
	Seed         []byte           `protobuf:"bytes,7,opt,name=seed,proto3" json:"seed,omitempty"`
	Bump         uint32           `protobuf:"varint,8,opt,name=bump,proto3" json:"bump,omitempty"`
	// Period in seconds a heartbeat moves the deadline by. Zero disables
	// heartbeats.
	Period  int64           `protobuf:"varint,9,opt,name=period,proto3" json:"period,omitempty"`
	Holding custody.Address `protobuf:"bytes,10,opt,name=holding,proto3" json:"holding,omitempty"`
	Memo    string          `protobuf:"bytes,11,opt,name=memo,proto3" json:"memo,omitempty"`
}

// Configuration is the on-chain configuration of this extension.
type Configuration struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner is allowed to update the configuration.
	Owner         custody.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	DepositPolicy DepositPolicy   `protobuf:"varint,3,opt,name=deposit_policy,json=depositPolicy,proto3" json:"deposit_policy,omitempty"`
	// MaxHorizon in seconds limits how far in the future a deadline can
	// be set. Zero or less means no limit.
	MaxHorizon int64 `protobuf:"varint,4,opt,name=max_horizon,json=maxHorizon,proto3" json:"max_horizon,omitempty"`
}

// CreateMsg creates a new active switch. Owner defaults to the main signer.
type CreateMsg struct {
	Metadata    *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner       custody.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Beneficiary custody.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
	Deadline    custody.UnixTime  `protobuf:"varint,4,opt,name=deadline,proto3" json:"deadline,omitempty"`
	Seed        []byte            `protobuf:"bytes,5,opt,name=seed,proto3" json:"seed,omitempty"`
	Period      int64             `protobuf:"varint,6,opt,name=period,proto3" json:"period,omitempty"`
	Memo        string            `protobuf:"bytes,7,opt,name=memo,proto3" json:"memo,omitempty"`
	// Amount is moved from the owner into the holding when not empty.
	Amount coin.Coins `protobuf:"bytes,8,rep,name=amount,proto3" json:"amount,omitempty"`
}

// DepositMsg adds funds to the holding of a switch. Source defaults to the
// main signer.
type DepositMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	SwitchID []byte            `protobuf:"bytes,2,opt,name=switch_id,json=switchId,proto3" json:"switch_id,omitempty"`
	Source   custody.Address   `protobuf:"bytes,3,opt,name=source,proto3" json:"source,omitempty"`
	Amount   *coin.Coin        `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

// CheckInMsg moves the deadline of a switch to NewDeadline.
type CheckInMsg struct {
	Metadata    *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	SwitchID    []byte            `protobuf:"bytes,2,opt,name=switch_id,json=switchId,proto3" json:"switch_id,omitempty"`
	NewDeadline custody.UnixTime  `protobuf:"varint,3,opt,name=new_deadline,json=newDeadline,proto3" json:"new_deadline,omitempty"`
}

// HeartbeatMsg moves the deadline of a switch one period from now.
type HeartbeatMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	SwitchID []byte            `protobuf:"bytes,2,opt,name=switch_id,json=switchId,proto3" json:"switch_id,omitempty"`
}

// ClaimMsg releases the funds of an expired switch to its beneficiary.
type ClaimMsg struct {
	Metadata    *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	SwitchID    []byte            `protobuf:"bytes,2,opt,name=switch_id,json=switchId,proto3" json:"switch_id,omitempty"`
	Beneficiary custody.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
}

// CancelMsg returns the funds of an active switch to its owner.
type CancelMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	SwitchID []byte            `protobuf:"bytes,2,opt,name=switch_id,json=switchId,proto3" json:"switch_id,omitempty"`
}

// UpdateConfigurationMsg patches the configuration. Zero fields of Patch
// are ignored.
type UpdateConfigurationMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration    `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

// Release is returned as the result data of a claim or cancel.
type Release struct {
	Recipient custody.Address `protobuf:"bytes,1,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Coins     coin.Coins      `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Switch) Marshal() ([]byte, error)   { return proto.Marshal((*switchCodec)(m)) }
func (m *Switch) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*switchCodec)(m)) }
func (m *Switch) Reset()                     { *m = Switch{} }
func (m *Switch) String() string             { return proto.CompactTextString((*switchCodec)(m)) }
func (*Switch) ProtoMessage()                {}

func (m *Configuration) Marshal() ([]byte, error)   { return proto.Marshal((*configurationCodec)(m)) }
func (m *Configuration) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*configurationCodec)(m)) }
func (m *Configuration) Reset()                     { *m = Configuration{} }
func (m *Configuration) String() string             { return proto.CompactTextString((*configurationCodec)(m)) }
func (*Configuration) ProtoMessage()                {}

func (m *CreateMsg) Marshal() ([]byte, error)   { return proto.Marshal((*createMsgCodec)(m)) }
func (m *CreateMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*createMsgCodec)(m)) }
func (m *CreateMsg) Reset()                     { *m = CreateMsg{} }
func (m *CreateMsg) String() string             { return proto.CompactTextString((*createMsgCodec)(m)) }
func (*CreateMsg) ProtoMessage()                {}

func (m *DepositMsg) Marshal() ([]byte, error)   { return proto.Marshal((*depositMsgCodec)(m)) }
func (m *DepositMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*depositMsgCodec)(m)) }
func (m *DepositMsg) Reset()                     { *m = DepositMsg{} }
func (m *DepositMsg) String() string             { return proto.CompactTextString((*depositMsgCodec)(m)) }
func (*DepositMsg) ProtoMessage()                {}

func (m *CheckInMsg) Marshal() ([]byte, error)   { return proto.Marshal((*checkInMsgCodec)(m)) }
func (m *CheckInMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*checkInMsgCodec)(m)) }
func (m *CheckInMsg) Reset()                     { *m = CheckInMsg{} }
func (m *CheckInMsg) String() string             { return proto.CompactTextString((*checkInMsgCodec)(m)) }
func (*CheckInMsg) ProtoMessage()                {}

func (m *HeartbeatMsg) Marshal() ([]byte, error)   { return proto.Marshal((*heartbeatMsgCodec)(m)) }
func (m *HeartbeatMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*heartbeatMsgCodec)(m)) }
func (m *HeartbeatMsg) Reset()                     { *m = HeartbeatMsg{} }
func (m *HeartbeatMsg) String() string             { return proto.CompactTextString((*heartbeatMsgCodec)(m)) }
func (*HeartbeatMsg) ProtoMessage()                {}

func (m *ClaimMsg) Marshal() ([]byte, error)   { return proto.Marshal((*claimMsgCodec)(m)) }
func (m *ClaimMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*claimMsgCodec)(m)) }
func (m *ClaimMsg) Reset()                     { *m = ClaimMsg{} }
func (m *ClaimMsg) String() string             { return proto.CompactTextString((*claimMsgCodec)(m)) }
func (*ClaimMsg) ProtoMessage()                {}

func (m *CancelMsg) Marshal() ([]byte, error)   { return proto.Marshal((*cancelMsgCodec)(m)) }
func (m *CancelMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*cancelMsgCodec)(m)) }
func (m *CancelMsg) Reset()                     { *m = CancelMsg{} }
func (m *CancelMsg) String() string             { return proto.CompactTextString((*cancelMsgCodec)(m)) }
func (*CancelMsg) ProtoMessage()                {}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateConfigurationMsgCodec)(m))
}
func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*updateConfigurationMsgCodec)(m))
}
func (m *UpdateConfigurationMsg) Reset() { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string {
	return proto.CompactTextString((*updateConfigurationMsgCodec)(m))
}
func (*UpdateConfigurationMsg) ProtoMessage() {}

func (m *Release) Marshal() ([]byte, error)   { return proto.Marshal((*releaseCodec)(m)) }
func (m *Release) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*releaseCodec)(m)) }
func (m *Release) Reset()                     { *m = Release{} }
func (m *Release) String() string             { return proto.CompactTextString((*releaseCodec)(m)) }
func (*Release) ProtoMessage()                {}

type (
	switchCodec                 Switch
	configurationCodec          Configuration
	createMsgCodec              CreateMsg
	depositMsgCodec             DepositMsg
	checkInMsgCodec             CheckInMsg
	heartbeatMsgCodec           HeartbeatMsg
	claimMsgCodec               ClaimMsg
	cancelMsgCodec              CancelMsg
	updateConfigurationMsgCodec UpdateConfigurationMsg
	releaseCodec                Release
)

func (m *switchCodec) Reset()                             { *m = switchCodec{} }
func (m *switchCodec) String() string                     { return proto.CompactTextString(m) }
func (*switchCodec) ProtoMessage()                        {}
func (m *configurationCodec) Reset()                      { *m = configurationCodec{} }
func (m *configurationCodec) String() string              { return proto.CompactTextString(m) }
func (*configurationCodec) ProtoMessage()                 {}
func (m *createMsgCodec) Reset()                          { *m = createMsgCodec{} }
func (m *createMsgCodec) String() string                  { return proto.CompactTextString(m) }
func (*createMsgCodec) ProtoMessage()                     {}
func (m *depositMsgCodec) Reset()                         { *m = depositMsgCodec{} }
func (m *depositMsgCodec) String() string                 { return proto.CompactTextString(m) }
func (*depositMsgCodec) ProtoMessage()                    {}
func (m *checkInMsgCodec) Reset()                         { *m = checkInMsgCodec{} }
func (m *checkInMsgCodec) String() string                 { return proto.CompactTextString(m) }
func (*checkInMsgCodec) ProtoMessage()                    {}
func (m *heartbeatMsgCodec) Reset()                       { *m = heartbeatMsgCodec{} }
func (m *heartbeatMsgCodec) String() string               { return proto.CompactTextString(m) }
func (*heartbeatMsgCodec) ProtoMessage()                  {}
func (m *claimMsgCodec) Reset()                           { *m = claimMsgCodec{} }
func (m *claimMsgCodec) String() string                   { return proto.CompactTextString(m) }
func (*claimMsgCodec) ProtoMessage()                      {}
func (m *cancelMsgCodec) Reset()                          { *m = cancelMsgCodec{} }
func (m *cancelMsgCodec) String() string                  { return proto.CompactTextString(m) }
func (*cancelMsgCodec) ProtoMessage()                     {}
func (m *updateConfigurationMsgCodec) Reset()             { *m = updateConfigurationMsgCodec{} }
func (m *updateConfigurationMsgCodec) String() string     { return proto.CompactTextString(m) }
func (*updateConfigurationMsgCodec) ProtoMessage()        {}
func (m *releaseCodec) Reset()                            { *m = releaseCodec{} }
func (m *releaseCodec) String() string                    { return proto.CompactTextString(m) }
func (*releaseCodec) ProtoMessage()                       {}
