package crypto

import (
	"crypto/rand"
	"errors"
	"testing"

	"courier/internal/domain"
)

// randomKeypair creates a Keypair from a fresh random seed.
func randomKeypair(t *testing.T) domain.Keypair {
	t.Helper()
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return domain.KeypairFromSeed(seed)
}

func TestSecretToX25519_Deterministic(t *testing.T) {
	kp := randomKeypair(t)
	a := SecretToX25519(kp.Seed())
	b := SecretToX25519(kp.Seed())
	if a != b {
		t.Fatal("same seed produced different DH secrets")
	}
}

func TestSecretToX25519_Clamped(t *testing.T) {
	kp := randomKeypair(t)
	s := SecretToX25519(kp.Seed())
	if s[0]&7 != 0 {
		t.Fatalf("low bits not cleared: %08b", s[0])
	}
	if s[31]&128 != 0 {
		t.Fatalf("high bit not cleared: %08b", s[31])
	}
	if s[31]&64 == 0 {
		t.Fatalf("bit 254 not set: %08b", s[31])
	}
}

func TestPublicToX25519_ValidKey(t *testing.T) {
	kp := randomKeypair(t)
	if _, err := PublicToX25519(kp.PublicKey()); err != nil {
		t.Fatalf("PublicToX25519 on a real signing key: %v", err)
	}
}

func TestPublicToX25519_InvalidPoint(t *testing.T) {
	// y = 1 with the x sign bit set encodes x = 0 with a negative sign,
	// which RFC 8032 point decoding rejects.
	var bad domain.PublicKey
	bad[0] = 1
	bad[31] = 0x80
	_, err := PublicToX25519(bad)
	if !errors.Is(err, domain.ErrInvalidPoint) {
		t.Fatalf("want ErrInvalidPoint, got %v", err)
	}
}
