package sigs

import (
	"testing"

	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("payload"), "custody-test", 1)
	assert.Nil(t, err)
	b, err := BuildSignBytes([]byte("payload"), "custody-test", 2)
	assert.Nil(t, err)
	c, err := BuildSignBytes([]byte("payload"), "custody-other", 1)
	assert.Nil(t, err)
	if string(a) == string(b) || string(a) == string(c) {
		t.Fatal("sequence and chain must change the sign bytes")
	}
	assert.Equal(t, 64, len(a))

	if _, err := BuildSignBytes(nil, "custody-test", -1); !ErrInvalidSequence.Is(err) {
		t.Fatalf("want invalid sequence, got %+v", err)
	}
	if _, err := BuildSignBytes(nil, "no", 0); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestVerifySignatures(t *testing.T) {
	Convey("Given a store and two signers", t, func() {
		db := store.MemStore()
		chainID := "custody-test"
		alice := crypto.GenPrivKeyEd25519()
		bob := crypto.GenPrivKeyEd25519()

		tx := newSignedTx([]byte("check in"))

		Convey("An unsigned transaction has no signers", func() {
			signers, err := VerifyTxSignatures(db, tx, chainID)
			So(err, ShouldBeNil)
			So(signers, ShouldBeEmpty)
		})

		Convey("Valid signatures return the signers in order", func() {
			sig, err := SignTx(alice, tx, chainID, 0)
			So(err, ShouldBeNil)
			sig2, err := SignTx(bob, tx, chainID, 0)
			So(err, ShouldBeNil)
			tx.Signatures = []*StdSignature{sig, sig2}

			signers, err := VerifyTxSignatures(db, tx, chainID)
			So(err, ShouldBeNil)
			So(signers, ShouldHaveLength, 2)
			So(signers[0].Equals(alice.PublicKey().Condition()), ShouldBeTrue)
			So(signers[1].Equals(bob.PublicKey().Condition()), ShouldBeTrue)

			nonce, err := NextNonce(db, alice.PublicKey().Address())
			So(err, ShouldBeNil)
			So(nonce, ShouldEqual, 1)

			Convey("Replaying the same signature fails", func() {
				_, err := VerifyTxSignatures(db, tx, chainID)
				So(ErrInvalidSequence.Is(err), ShouldBeTrue)
			})
		})

		Convey("A signature for another chain is rejected", func() {
			sig, err := SignTx(alice, tx, "custody-other", 0)
			So(err, ShouldBeNil)
			tx.Signatures = []*StdSignature{sig}
			_, err = VerifyTxSignatures(db, tx, chainID)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("A signature with a future sequence is rejected", func() {
			sig, err := SignTx(alice, tx, chainID, 3)
			So(err, ShouldBeNil)
			tx.Signatures = []*StdSignature{sig}
			_, err = VerifyTxSignatures(db, tx, chainID)
			So(ErrInvalidSequence.Is(err), ShouldBeTrue)
		})

		Convey("A signature without a public key is rejected", func() {
			sig, err := SignTx(alice, tx, chainID, 0)
			So(err, ShouldBeNil)
			sig.Pubkey = nil
			tx.Signatures = []*StdSignature{sig}
			_, err = VerifyTxSignatures(db, tx, chainID)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})
	})
}

func TestUserDataSequence(t *testing.T) {
	u := AsUser(NewUser(crypto.GenPrivKeyEd25519().PublicKey()))
	assert.Nil(t, u.Validate())
	assert.Nil(t, u.CheckAndIncrementSequence(0))
	if err := u.CheckAndIncrementSequence(0); !ErrInvalidSequence.Is(err) {
		t.Fatalf("want invalid sequence, got %+v", err)
	}
	u.Sequence = maxSequence
	if err := u.CheckAndIncrementSequence(maxSequence); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow, got %+v", err)
	}

	raw, err := u.Marshal()
	assert.Nil(t, err)
	var loaded UserData
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, u.Sequence, loaded.Sequence)
	assert.Equal(t, u.Pubkey.Ed25519, loaded.Pubkey.Ed25519)
}
