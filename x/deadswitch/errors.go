package deadswitch

import "github.com/iov-one/custody/errors"

// Codes 1300-1399 are reserved for this extension.
var (
	// ErrSwitchInactive is returned for any transition on a switch that
	// was already claimed or cancelled.
	ErrSwitchInactive = errors.Register(1300, "switch inactive")

	// ErrDeadlineNotReached is returned when a claim is made before the
	// deadline.
	ErrDeadlineNotReached = errors.Register(1301, "deadline not reached")

	// ErrDeadlineReached is returned when the owner checks in at or after
	// the deadline.
	ErrDeadlineReached = errors.Register(1302, "deadline reached")

	// ErrInvalidDeadline is returned when a new deadline is not in the
	// future or is beyond the configured horizon.
	ErrInvalidDeadline = errors.Register(1303, "invalid deadline")
)
