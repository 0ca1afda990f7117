package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is the condition extension of signature based permissions.
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Signer is the functionality used from a private key. It does not require
// access to the key material, so hardware keys can implement it too.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

var _ Signer = (*PrivateKey)(nil)

// Verify returns true if sig was created for message by this key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition is the permission granted to the holder of this key.
func (p *PublicKey) Condition() custody.Condition {
	return custody.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the key holder.
func (p *PublicKey) Address() custody.Address {
	return p.Condition().Address()
}

// Validate checks the key length.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key")
	}
	return nil
}

// Sign returns the signature of message.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	return &Signature{Ed25519: ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)}, nil
}

// PublicKey returns the matching public key.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a new random private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed deterministically derives a private key from a 32
// byte seed. Meant for external randomness sources and for tests.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

func (p *PublicKey) Marshal() ([]byte, error)    { return proto.Marshal((*publicKeyCodec)(p)) }
func (p *PublicKey) Unmarshal(raw []byte) error  { return proto.Unmarshal(raw, (*publicKeyCodec)(p)) }
func (p *PublicKey) Reset()                      { *p = PublicKey{} }
func (p *PublicKey) String() string              { return proto.CompactTextString((*publicKeyCodec)(p)) }
func (*PublicKey) ProtoMessage()                 {}
func (p *PrivateKey) Marshal() ([]byte, error)   { return proto.Marshal((*privateKeyCodec)(p)) }
func (p *PrivateKey) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*privateKeyCodec)(p)) }
func (p *PrivateKey) Reset()                     { *p = PrivateKey{} }
func (p *PrivateKey) String() string             { return "PrivateKey{...}" }
func (*PrivateKey) ProtoMessage()                {}
func (s *Signature) Marshal() ([]byte, error)    { return proto.Marshal((*signatureCodec)(s)) }
func (s *Signature) Unmarshal(raw []byte) error  { return proto.Unmarshal(raw, (*signatureCodec)(s)) }
func (s *Signature) Reset()                      { *s = Signature{} }
func (s *Signature) String() string              { return proto.CompactTextString((*signatureCodec)(s)) }
func (*Signature) ProtoMessage()                 {}

type (
	publicKeyCodec  PublicKey
	privateKeyCodec PrivateKey
	signatureCodec  Signature
)

func (p *publicKeyCodec) Reset()          { *p = publicKeyCodec{} }
func (p *publicKeyCodec) String() string  { return proto.CompactTextString(p) }
func (*publicKeyCodec) ProtoMessage()     {}
func (p *privateKeyCodec) Reset()         { *p = privateKeyCodec{} }
func (p *privateKeyCodec) String() string { return "privateKey{...}" }
func (*privateKeyCodec) ProtoMessage()    {}
func (s *signatureCodec) Reset()          { *s = signatureCodec{} }
func (s *signatureCodec) String() string  { return proto.CompactTextString(s) }
func (*signatureCodec) ProtoMessage()     {}
