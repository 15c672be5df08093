package store

import (
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"courier/internal/domain"
)

func testKeypair(t *testing.T) domain.Keypair {
	t.Helper()
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return domain.KeypairFromSeed(seed)
}

func TestKeystore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ks := NewKeystore(dir)
	kp := testKeypair(t)

	if ks.Exists() {
		t.Fatal("Exists before Save")
	}
	if err := ks.Save("correct horse battery staple", kp); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !ks.Exists() {
		t.Fatal("Exists after Save")
	}

	got, err := ks.Load("correct horse battery staple")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.PublicKey() != kp.PublicKey() {
		t.Fatal("loaded keypair differs")
	}
}

func TestKeystore_WrongPassphrase(t *testing.T) {
	ks := NewKeystore(t.TempDir())
	if err := ks.Save("right", testKeypair(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := ks.Load("wrong"); !errors.Is(err, ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestKeystore_TamperedBlob(t *testing.T) {
	dir := t.TempDir()
	ks := NewKeystore(dir)
	if err := ks.Save("pass", testKeypair(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(dir, keystoreFile)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// Corrupt one ciphertext byte inside the JSON blob.
	for i := len(b) - 2; i > 0; i-- {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] ^= 0x20
			break
		}
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ks.Load("pass"); err == nil {
		t.Fatal("tampered blob loaded without error")
	}
}
