package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/chacha20poly1305"

	"courier/internal/domain"
)

// Seal encrypts plaintext with XChaCha20-Poly1305 under key. The random
// 24-byte nonce is prepended to the ciphertext, so the output is
// self-contained: nonce ∥ ciphertext ∥ tag.
func Seal(key [32]byte, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX, chacha20poly1305.NonceSizeX+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal. Short input, a bad tag, or any
// other malformation fails with ErrDecryptFailure; adversarial input is
// an error value, never a panic.
func Open(key [32]byte, blob []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, err
	}
	if len(blob) < chacha20poly1305.NonceSizeX+aead.Overhead() {
		return nil, domain.ErrDecryptFailure
	}
	nonce, ct := blob[:chacha20poly1305.NonceSizeX], blob[chacha20poly1305.NonceSizeX:]
	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, domain.ErrDecryptFailure
	}
	return pt, nil
}
