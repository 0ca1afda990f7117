package deadswitch

import (
	"context"
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// Action is a switch transition that requires authorization.
type Action int

const (
	ActionDeposit Action = iota + 1
	ActionCheckIn
	ActionHeartbeat
	ActionClaim
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDeposit:
		return "deposit"
	case ActionCheckIn:
		return "check in"
	case ActionHeartbeat:
		return "heartbeat"
	case ActionClaim:
		return "claim"
	case ActionCancel:
		return "cancel"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Authorize returns ErrUnauthorized unless the action on sw is allowed.
//
// Check in, heartbeat and cancel require the owner signature. A claim needs
// no signature but actor must be the recorded beneficiary. A deposit
// requires actor, the source of the funds, to have signed and, under the
// owner only policy, to be the owner.
//
// The switch state is not checked here, so that a caller without
// permission is refused whatever the state is.
func Authorize(
	ctx context.Context,
	auth x.Authenticator,
	action Action,
	sw *Switch,
	conf *Configuration,
	actor custody.Address,
) error {
	switch action {
	case ActionCheckIn, ActionHeartbeat, ActionCancel:
		if !auth.HasAddress(ctx, sw.Owner) {
			return errors.Wrapf(errors.ErrUnauthorized, "%s requires the owner signature", action)
		}
	case ActionClaim:
		if !actor.Equals(sw.Beneficiary) {
			return errors.Wrapf(errors.ErrUnauthorized, "%s is not the beneficiary", actor)
		}
	case ActionDeposit:
		if !auth.HasAddress(ctx, actor) {
			return errors.Wrapf(errors.ErrUnauthorized, "source %s did not sign", actor)
		}
		if conf != nil && conf.DepositPolicy == DepositPolicyOwnerOnly && !actor.Equals(sw.Owner) {
			return errors.Wrap(errors.ErrUnauthorized, "only the owner can deposit")
		}
	default:
		return errors.Wrapf(errors.ErrHuman, "unknown action %d", int(action))
	}
	return nil
}
