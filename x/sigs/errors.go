package sigs

import (
	"github.com/iov-one/custody/errors"
)

// x/sigs reserves 120 ~ 129.

// ErrInvalidSequence is returned when a signature sequence does not match
// the state of the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
