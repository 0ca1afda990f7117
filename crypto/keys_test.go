package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()
	assert.Nil(t, public.Validate())

	msg, other := []byte("check in"), []byte("claim")
	sig, err := private.Sign(msg)
	assert.Nil(t, err)

	if !public.Verify(msg, sig) {
		t.Fatal("signature does not verify")
	}
	if public.Verify(other, sig) {
		t.Fatal("signature verifies a different message")
	}
	if GenPrivKeyEd25519().PublicKey().Verify(msg, sig) {
		t.Fatal("signature verifies with a different key")
	}
	if public.Verify(msg, nil) {
		t.Fatal("nil signature verifies")
	}

	raw, err := sig.Marshal()
	assert.Nil(t, err)
	var loaded Signature
	assert.Nil(t, loaded.Unmarshal(raw))
	if !public.Verify(msg, &loaded) {
		t.Fatal("serialized signature does not verify")
	}
}

func TestKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed).PublicKey()
	b := PrivKeyEd25519FromSeed(seed).PublicKey()
	assert.Equal(t, a.Ed25519, b.Ed25519)
	assert.Equal(t, a.Address(), b.Address())

	c := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{8}, 32)).PublicKey()
	if a.Address().Equals(c.Address()) {
		t.Fatal("different seeds produce the same address")
	}

	raw, err := a.Marshal()
	assert.Nil(t, err)
	var loaded PublicKey
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, a.Condition(), loaded.Condition())
}

func TestInvalidKeys(t *testing.T) {
	if err := (&PublicKey{Ed25519: []byte("short")}).Validate(); err == nil {
		t.Fatal("short public key accepted")
	}
	if _, err := (&PrivateKey{Ed25519: []byte("short")}).Sign([]byte("x")); err == nil {
		t.Fatal("short private key signed")
	}
}

func TestKeysMatchProto(t *testing.T) {
	assert.ProtoLayout(t, "codec.proto", "PublicKey", &PublicKey{})
	assert.ProtoLayout(t, "codec.proto", "PrivateKey", &PrivateKey{})
	assert.ProtoLayout(t, "codec.proto", "Signature", &Signature{})
}
