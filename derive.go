package custody

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/custody/errors"
)

// MaxSeedLength is the longest seed accepted for address derivation.
const MaxSeedLength = 32

// DeriveAddress computes the program controlled address for the given owner
// and seed, namespaced by the extension and type.
//
// Candidates are probed with a bump byte starting at 255 and going down. A
// candidate is accepted when the sha256 digest of its condition is not a
// valid ed25519 point, so that no private key can ever sign for it. The
// result depends only on the inputs.
func DeriveAddress(ext, typ string, owner Address, seed []byte) (Address, uint8, error) {
	if err := validateSeeds(owner, seed); err != nil {
		return nil, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		digest := derivationDigest(ext, typ, owner, seed, uint8(bump))
		if isOnCurve(digest[:]) {
			continue
		}
		return Address(digest[:AddressLength]), uint8(bump), nil
	}
	return nil, 0, errors.Wrap(errors.ErrInput, "no off-curve address for seeds")
}

// VerifyDerivedAddress recomputes the address using the stored bump and
// compares it with want. No search is performed.
func VerifyDerivedAddress(ext, typ string, owner Address, seed []byte, bump uint8, want Address) error {
	if err := validateSeeds(owner, seed); err != nil {
		return err
	}
	digest := derivationDigest(ext, typ, owner, seed, bump)
	if isOnCurve(digest[:]) {
		return errors.Wrapf(errors.ErrDerivation, "bump %d produces an on-curve address", bump)
	}
	if got := Address(digest[:AddressLength]); !got.Equals(want) {
		return errors.Wrapf(errors.ErrDerivation, "want %s, derived %s", want, got)
	}
	return nil
}

func validateSeeds(owner Address, seed []byte) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(seed) > MaxSeedLength {
		return errors.Wrapf(errors.ErrInput, "seed longer than %d bytes", MaxSeedLength)
	}
	return nil
}

func derivationDigest(ext, typ string, owner Address, seed []byte, bump uint8) [sha256.Size]byte {
	data := make([]byte, 0, len(owner)+len(seed)+1)
	data = append(data, owner...)
	data = append(data, seed...)
	data = append(data, bump)
	return sha256.Sum256(NewCondition(ext, typ, data))
}

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
