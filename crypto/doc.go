// Package crypto holds the ed25519 keys and signatures used to authorize
// transactions. A public key maps to a condition, and so to an address,
// that the sigs extension grants to every signer.
package crypto
