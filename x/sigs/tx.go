package sigs

import (
	"github.com/iov-one/custody/errors"
)

// SignedTx is a transaction carrying signatures that the Decorator
// verifies.
type SignedTx interface {
	// GetSignBytes returns the canonical bytes that were signed, the
	// transaction without signatures.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns all signatures of the transaction.
	GetSignatures() []*StdSignature
}

// Validate ensures the signature has all fields needed to verify it.
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
