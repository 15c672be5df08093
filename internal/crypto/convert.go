package crypto

import (
	"crypto/sha512"

	"filippo.io/edwards25519"

	"courier/internal/domain"
)

// SecretToX25519 converts an Ed25519 seed to an X25519 secret scalar:
// SHA-512 of the seed, low 32 bytes, clamped per RFC 7748. Deterministic
// and total; the same signing key always yields the same DH secret.
func SecretToX25519(seed [32]byte) [32]byte {
	h := sha512.Sum512(seed[:])
	var out [32]byte
	copy(out[:], h[:32])
	clamp(&out)
	return out
}

// PublicToX25519 converts an Ed25519 public key to the corresponding
// X25519 public value by decompressing the Edwards point and mapping it
// birationally to its Montgomery u-coordinate. Returns ErrInvalidPoint
// when the bytes do not decompress to a valid curve point.
func PublicToX25519(pub domain.PublicKey) ([32]byte, error) {
	var out [32]byte
	p, err := new(edwards25519.Point).SetBytes(pub.Slice())
	if err != nil {
		return out, domain.ErrInvalidPoint
	}
	copy(out[:], p.BytesMontgomery())
	return out, nil
}

func clamp(k *[32]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
