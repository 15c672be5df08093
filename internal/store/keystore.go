// Package store persists the local signing keypair encrypted at rest.
package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"courier/internal/domain"
)

const (
	keystoreFile = "identity.enc"

	// Current version of the encrypted blob format on disk.
	keystoreFormatVersion = 1
)

// ErrWrongPassphrase covers both an incorrect passphrase and a modified
// or corrupted blob; the two are indistinguishable by construction.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted identity")

// blob is the on-disk JSON structure holding the ciphertext and KDF
// parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Keystore stores the identity seed on disk, sealed under a passphrase.
type Keystore struct {
	dir string
	mu  sync.Mutex
}

// NewKeystore returns a Keystore rooted at dir.
func NewKeystore(dir string) *Keystore { return &Keystore{dir: dir} }

// Save seals the keypair's seed under passphrase and writes it to disk.
func (s *Keystore) Save(passphrase string, kp domain.Keypair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := kp.Seed()
	N, r, p := scryptParamsDefault()
	ct, err := encrypt(passphrase, seed[:], N, r, p)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, keystoreFile), ct, 0o600)
}

// Load reads and unseals the keypair.
func (s *Keystore) Load(passphrase string) (domain.Keypair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(filepath.Join(s.dir, keystoreFile))
	if err != nil {
		return domain.Keypair{}, err
	}
	raw, err := decrypt(passphrase, b)
	if err != nil {
		return domain.Keypair{}, err
	}
	if len(raw) != 32 {
		return domain.Keypair{}, ErrWrongPassphrase
	}
	var seed [32]byte
	copy(seed[:], raw)
	return domain.KeypairFromSeed(seed), nil
}

// Exists reports whether an identity has been saved under this store.
func (s *Keystore) Exists() bool {
	_, err := os.Stat(filepath.Join(s.dir, keystoreFile))
	return err == nil
}

// encrypt derives a key from passphrase and seals raw into a JSON blob.
func encrypt(passphrase string, raw []byte, N, r, p int) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [12]byte // zero nonce; salt-bound key guarantees uniqueness
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.Marshal(blob{
		V:      keystoreFormatVersion,
		Salt:   salt[:],
		N:      N,
		R:      r,
		P:      p,
		Cipher: ct,
	})
}

// decrypt opens the JSON blob using a key derived from passphrase.
func decrypt(passphrase string, b []byte) ([]byte, error) {
	var bl blob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, err
	}
	if bl.V > keystoreFormatVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", bl.V)
	}

	key, err := scrypt.Key([]byte(passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [12]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
