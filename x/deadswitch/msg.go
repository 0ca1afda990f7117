package deadswitch

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

const (
	pathCreateMsg              = "deadswitch/create"
	pathDepositMsg             = "deadswitch/deposit"
	pathCheckInMsg             = "deadswitch/check_in"
	pathHeartbeatMsg           = "deadswitch/heartbeat"
	pathClaimMsg               = "deadswitch/claim"
	pathCancelMsg              = "deadswitch/cancel"
	pathUpdateConfigurationMsg = "deadswitch/update_configuration"
)

var (
	_ custody.Msg = (*CreateMsg)(nil)
	_ custody.Msg = (*DepositMsg)(nil)
	_ custody.Msg = (*CheckInMsg)(nil)
	_ custody.Msg = (*HeartbeatMsg)(nil)
	_ custody.Msg = (*ClaimMsg)(nil)
	_ custody.Msg = (*CancelMsg)(nil)
	_ custody.Msg = (*UpdateConfigurationMsg)(nil)
)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate does not compare the deadline with the block time, the handler
// does.
func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Owner != nil {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	errs = errors.AppendField(errs, "Beneficiary", m.Beneficiary.Validate())
	if m.Deadline == 0 {
		errs = errors.Append(errs, errors.Field("Deadline", ErrInvalidDeadline, "required"))
	} else if err := m.Deadline.Validate(); err != nil {
		errs = errors.Append(errs, errors.Field("Deadline", ErrInvalidDeadline, "%s", err))
	}
	if len(m.Seed) > custody.MaxSeedLength {
		errs = errors.Append(errs, errors.Field("Seed", errors.ErrInput, "cannot be longer than %d", custody.MaxSeedLength))
	}
	if m.Period < 0 {
		errs = errors.Append(errs, errors.Field("Period", errors.ErrInput, "cannot be negative"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "cannot be longer than %d", maxMemoSize))
	}
	if len(m.Amount) != 0 {
		if err := m.Amount.Validate(); err != nil {
			errs = errors.AppendField(errs, "Amount", err)
		} else if !m.Amount.IsPositive() {
			errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
		}
	}
	return errs
}

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "SwitchID", validateSwitchID(m.SwitchID))
	if m.Source != nil {
		errs = errors.AppendField(errs, "Source", m.Source.Validate())
	}
	errs = errors.AppendField(errs, "Amount", validateAmount(m.Amount))
	return errs
}

func (CheckInMsg) Path() string {
	return pathCheckInMsg
}

func (m *CheckInMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "SwitchID", validateSwitchID(m.SwitchID))
	if m.NewDeadline == 0 {
		errs = errors.Append(errs, errors.Field("NewDeadline", ErrInvalidDeadline, "required"))
	} else if err := m.NewDeadline.Validate(); err != nil {
		errs = errors.Append(errs, errors.Field("NewDeadline", ErrInvalidDeadline, "%s", err))
	}
	return errs
}

func (HeartbeatMsg) Path() string {
	return pathHeartbeatMsg
}

func (m *HeartbeatMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "SwitchID", validateSwitchID(m.SwitchID))
	return errs
}

func (ClaimMsg) Path() string {
	return pathClaimMsg
}

func (m *ClaimMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "SwitchID", validateSwitchID(m.SwitchID))
	errs = errors.AppendField(errs, "Beneficiary", m.Beneficiary.Validate())
	return errs
}

func (CancelMsg) Path() string {
	return pathCancelMsg
}

func (m *CancelMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "SwitchID", validateSwitchID(m.SwitchID))
	return errs
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate only checks the message header. The patch is validated after
// it was applied to the stored configuration.
func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		errs = errors.Append(errs, errors.Field("Patch", errors.ErrEmpty, "required"))
	}
	return errs
}

func validateSwitchID(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "switch id")
	}
	return custody.Address(id).Validate()
}

func validateAmount(amount *coin.Coin) error {
	if coin.IsEmpty(amount) {
		return errors.Wrap(errors.ErrAmount, "required")
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	return nil
}
