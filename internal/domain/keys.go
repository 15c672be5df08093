package domain

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// PublicKey is a 32-byte Ed25519 public key. Its canonical text form is
// base58; the text form is what appears in storage paths and inside
// encrypted sender fields.
type PublicKey [32]byte

func (p PublicKey) Slice() []byte { return p[:] }

// String returns the canonical base58 encoding.
func (p PublicKey) String() string { return base58.Encode(p[:]) }

// ParsePublicKey decodes the canonical base58 text form. It returns
// ErrInvalidKey for anything that is not exactly a 32-byte key.
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != len(pk) {
		return pk, ErrInvalidKey
	}
	copy(pk[:], raw)
	return pk, nil
}

// Keypair is a long-term Ed25519 signing keypair. It is immutable once
// created and owned by the calling session; everything else courier
// computes (DH keys, shared secrets, paths) is derived from it on demand.
type Keypair struct {
	seed [32]byte
	pub  PublicKey
}

// KeypairFromSeed builds a Keypair from a 32-byte Ed25519 seed.
func KeypairFromSeed(seed [32]byte) Keypair {
	priv := ed25519.NewKeyFromSeed(seed[:])
	var kp Keypair
	kp.seed = seed
	copy(kp.pub[:], priv.Public().(ed25519.PublicKey))
	return kp
}

// Seed returns the 32-byte secret seed.
func (k Keypair) Seed() [32]byte { return k.seed }

// PublicKey returns the signing public key.
func (k Keypair) PublicKey() PublicKey { return k.pub }

// Sign signs msg with the keypair's secret key.
func (k Keypair) Sign(msg []byte) []byte {
	return ed25519.Sign(ed25519.NewKeyFromSeed(k.seed[:]), msg)
}

// VerifySignature verifies sig over msg with pub.
func VerifySignature(pub PublicKey, msg, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}
