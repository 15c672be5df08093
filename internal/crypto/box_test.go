package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"courier/internal/domain"
)

func randomKey(t *testing.T) [32]byte {
	t.Helper()
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return key
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := randomKey(t)
	plaintext := []byte("the quick brown fox")

	blob, err := Seal(key, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	got, err := Open(key, blob)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestOpen_WrongKey(t *testing.T) {
	blob, err := Seal(randomKey(t), []byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := Open(randomKey(t), blob); !errors.Is(err, domain.ErrDecryptFailure) {
		t.Fatalf("want ErrDecryptFailure, got %v", err)
	}
}

func TestOpen_Tampered(t *testing.T) {
	key := randomKey(t)
	blob, err := Seal(key, []byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	for i := range blob {
		mutated := append([]byte(nil), blob...)
		mutated[i] ^= 0x01
		if _, err := Open(key, mutated); !errors.Is(err, domain.ErrDecryptFailure) {
			t.Fatalf("bit flip at byte %d: want ErrDecryptFailure, got %v", i, err)
		}
	}
}

func TestOpen_TooShort(t *testing.T) {
	key := randomKey(t)
	for _, n := range []int{0, 1, 23, 24, 39} {
		if _, err := Open(key, make([]byte, n)); !errors.Is(err, domain.ErrDecryptFailure) {
			t.Fatalf("len %d: want ErrDecryptFailure, got %v", n, err)
		}
	}
}
