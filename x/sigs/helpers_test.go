package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
)

// signedTx is a minimal SignedTx. The payload is what gets signed.
type signedTx struct {
	custodytest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func newSignedTx(payload []byte) *signedTx {
	return &signedTx{
		Tx: custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "test/payload", Serialized: payload}},
	}
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// unsignedTx does not implement SignedTx.
type unsignedTx struct {
	custodytest.Tx
}

var _ custody.Tx = (*unsignedTx)(nil)
