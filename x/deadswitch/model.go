package deadswitch

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// BucketName is where switches are stored.
	BucketName = "swtch"

	// derivationExt namespaces every address this extension derives.
	derivationExt = "dmswitch"

	maxMemoSize = 128
	maxBump     = 255
)

var _ orm.CloneableData = (*Switch)(nil)

// Validate checks the switch record without looking at the block time.
func (s *Switch) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", s.Owner.Validate())
	errs = errors.AppendField(errs, "Beneficiary", s.Beneficiary.Validate())
	errs = errors.AppendField(errs, "Holding", s.Holding.Validate())
	if len(s.Holding) != 0 && s.Beneficiary.Equals(s.Holding) {
		errs = errors.Append(errs, errors.Field("Beneficiary", errors.ErrInput, "cannot be the switch holding"))
	}
	if s.Deadline == 0 {
		errs = errors.Append(errs, errors.Field("Deadline", errors.ErrEmpty, "required"))
	} else {
		errs = errors.AppendField(errs, "Deadline", s.Deadline.Validate())
	}
	errs = errors.AppendField(errs, "LastActivity", s.LastActivity.Validate())
	if _, ok := stateNames[s.State]; !ok || s.State == StateInvalid {
		errs = errors.Append(errs, errors.Field("State", errors.ErrState, "invalid state %d", s.State))
	}
	if len(s.Seed) > custody.MaxSeedLength {
		errs = errors.Append(errs, errors.Field("Seed", errors.ErrInput, "cannot be longer than %d", custody.MaxSeedLength))
	}
	if s.Bump > maxBump {
		errs = errors.Append(errs, errors.Field("Bump", errors.ErrInput, "must fit in a byte"))
	}
	if s.Period < 0 {
		errs = errors.Append(errs, errors.Field("Period", errors.ErrInput, "cannot be negative"))
	}
	if len(s.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "cannot be longer than %d", maxMemoSize))
	}
	return errs
}

// Copy returns a deep copy of the switch.
func (s *Switch) Copy() orm.CloneableData {
	return &Switch{
		Metadata:     s.Metadata.Copy(),
		Owner:        s.Owner.Clone(),
		Beneficiary:  s.Beneficiary.Clone(),
		Deadline:     s.Deadline,
		LastActivity: s.LastActivity,
		State:        s.State,
		Seed:         append([]byte(nil), s.Seed...),
		Bump:         s.Bump,
		Period:       s.Period,
		Holding:      s.Holding.Clone(),
		Memo:         s.Memo,
	}
}

// IsActive returns true if the switch still accepts transitions.
func (s *Switch) IsActive() bool {
	return s.State == StateActive
}

// SwitchAddress derives the address a switch of owner and seed is stored
// under, together with the bump that must be kept to verify it.
func SwitchAddress(owner custody.Address, seed []byte) (custody.Address, uint8, error) {
	return custody.DeriveAddress(derivationExt, "switch", owner, seed)
}

// HoldingCondition is the condition owning the funds of a switch. No key can
// sign for it, only this extension moves its funds.
func HoldingCondition(switchID custody.Address) custody.Condition {
	return custody.NewCondition(derivationExt, "holding", switchID)
}

// VerifyAddress checks that id and the holding of s are the addresses
// derived from the owner and seed of s.
func (s *Switch) VerifyAddress(id []byte) error {
	if err := custody.VerifyDerivedAddress(derivationExt, "switch", s.Owner, s.Seed, uint8(s.Bump), id); err != nil {
		return err
	}
	if want := HoldingCondition(id).Address(); !want.Equals(s.Holding) {
		return errors.Wrapf(errors.ErrDerivation, "holding: want %s, got %s", want, s.Holding)
	}
	return nil
}

// NewSwitch returns an active switch object stored under its derived
// address.
func NewSwitch(
	owner, beneficiary custody.Address,
	seed []byte,
	deadline, now custody.UnixTime,
	period int64,
	memo string,
) (orm.Object, error) {
	id, bump, err := SwitchAddress(owner, seed)
	if err != nil {
		return nil, errors.Wrap(err, "derive switch address")
	}
	holding := HoldingCondition(id).Address()
	if beneficiary.Equals(holding) {
		return nil, errors.Field("Beneficiary", errors.ErrInput, "cannot be the switch holding %s", holding)
	}
	sw := &Switch{
		Metadata:     &custody.Metadata{Schema: 1},
		Owner:        owner,
		Beneficiary:  beneficiary,
		Deadline:     deadline,
		LastActivity: now,
		State:        StateActive,
		Seed:         seed,
		Bump:         uint32(bump),
		Period:       period,
		Holding:      holding,
		Memo:         memo,
	}
	return orm.NewSimpleObj(id, sw), nil
}

// AsSwitch extracts a *Switch value or nil from the object. Must be called
// on a SwitchBucket result, will panic on a bad type.
func AsSwitch(obj orm.Object) *Switch {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Switch)
}

// SwitchBucket stores switches by their derived address.
type SwitchBucket struct {
	orm.Bucket
}

// NewSwitchBucket returns a bucket indexed by owner and beneficiary.
func NewSwitchBucket() SwitchBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Switch))).
		WithIndex("owner", idxOwner, false).
		WithIndex("beneficiary", idxBeneficiary, false)
	return SwitchBucket{Bucket: b}
}

// GetSwitch loads a switch and verifies that it is stored under its derived
// address. It fails with ErrNotFound if there is none.
func (b SwitchBucket) GetSwitch(db custody.ReadOnlyKVStore, id []byte) (orm.Object, *Switch, error) {
	obj, err := b.Get(db, id)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load switch")
	}
	sw := AsSwitch(obj)
	if sw == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "switch %X", id)
	}
	if err := sw.VerifyAddress(id); err != nil {
		return nil, nil, err
	}
	return obj, sw, nil
}

// ByOwner returns all switches of the owner.
func (b SwitchBucket) ByOwner(db custody.ReadOnlyKVStore, owner custody.Address) ([]orm.Object, error) {
	return b.GetIndexed(db, "owner", owner)
}

// ByBeneficiary returns all switches naming the address as beneficiary.
func (b SwitchBucket) ByBeneficiary(db custody.ReadOnlyKVStore, beneficiary custody.Address) ([]orm.Object, error) {
	return b.GetIndexed(db, "beneficiary", beneficiary)
}

func toSwitch(obj orm.Object) (*Switch, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	sw, ok := obj.Value().(*Switch)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "can only take index of Switch, got %T", obj.Value())
	}
	return sw, nil
}

func idxOwner(obj orm.Object) ([]byte, error) {
	sw, err := toSwitch(obj)
	if err != nil {
		return nil, err
	}
	return sw.Owner, nil
}

func idxBeneficiary(obj orm.Object) ([]byte, error) {
	sw, err := toSwitch(obj)
	if err != nil {
		return nil, err
	}
	return sw.Beneficiary, nil
}
