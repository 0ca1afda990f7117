package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/deadswitch"
	"github.com/iov-one/custody/x/sigs"
)

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps a single message into a transaction without signatures.
func NewTx(msg custody.Msg) (*Tx, error) {
	sum := new(TxSum)
	if err := sum.set(msg); err != nil {
		return nil, err
	}
	return &Tx{Sum: sum}, nil
}

func (s *TxSum) set(msg custody.Msg) error {
	switch m := msg.(type) {
	case *cash.SendMsg:
		s.SendMsg = m
	case *sigs.BumpSequenceMsg:
		s.BumpSequenceMsg = m
	case *deadswitch.CreateMsg:
		s.CreateMsg = m
	case *deadswitch.DepositMsg:
		s.DepositMsg = m
	case *deadswitch.CheckInMsg:
		s.CheckInMsg = m
	case *deadswitch.HeartbeatMsg:
		s.HeartbeatMsg = m
	case *deadswitch.ClaimMsg:
		s.ClaimMsg = m
	case *deadswitch.CancelMsg:
		s.CancelMsg = m
	case *deadswitch.UpdateConfigurationMsg:
		s.UpdateConfigurationMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "message %T not supported", msg)
	}
	return nil
}

// GetMsg returns the single message set in the transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	return custody.ExtractMsgFromSum(tx.Sum)
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are not part of them.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes should only come
	// from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil
	bz, err := tx.Marshal()
	tx.Signatures = signatures
	return bz, err
}
