// Package identity creates, recovers, and loads the local signing
// keypair. Keys are derived from BIP39 recovery phrases: the phrase plus
// an optional passphrase produce a seed whose first 32 bytes become the
// Ed25519 seed, so the same phrase, passphrase, and language always
// rebuild the same identity.
package identity

import (
	"errors"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"

	"courier/internal/domain"
	"courier/internal/store"
)

// mnemonicEntropyBits yields 12-word phrases.
const mnemonicEntropyBits = 128

// ErrUnknownLanguage is returned for a language name with no wordlist.
var ErrUnknownLanguage = errors.New("unknown recovery phrase language")

// The bip39 library keeps the active wordlist in package state; guard it
// so concurrent recoveries in different languages cannot interleave.
var wordlistMu sync.Mutex

var wordlistByName = map[string][]string{
	"":                    wordlists.English,
	"english":             wordlists.English,
	"spanish":             wordlists.Spanish,
	"french":              wordlists.French,
	"italian":             wordlists.Italian,
	"japanese":            wordlists.Japanese,
	"korean":              wordlists.Korean,
	"czech":               wordlists.Czech,
	"chinese-simplified":  wordlists.ChineseSimplified,
	"chinese-traditional": wordlists.ChineseTraditional,
}

// Service manages the local identity through a backing keystore.
type Service struct {
	keystore *store.Keystore
}

// New returns an identity service backed by ks.
func New(ks *store.Keystore) *Service { return &Service{keystore: ks} }

// Generate creates a fresh 12-word English recovery phrase, derives the
// keypair, persists it sealed under passphrase, and returns both.
func (s *Service) Generate(passphrase string) (domain.Keypair, string, error) {
	wordlistMu.Lock()
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		wordlistMu.Unlock()
		return domain.Keypair{}, "", err
	}
	bip39.SetWordList(wordlists.English)
	mnemonic, err := bip39.NewMnemonic(entropy)
	wordlistMu.Unlock()
	if err != nil {
		return domain.Keypair{}, "", err
	}

	kp, err := s.FromRecoveryPhrase(mnemonic, passphrase, "english")
	if err != nil {
		return domain.Keypair{}, "", err
	}
	return kp, mnemonic, nil
}

// FromRecoveryPhrase rebuilds the keypair from a mnemonic and persists
// it. The phrase must validate against the selected language's wordlist;
// wrong word count, unknown words, and case changes all fail with
// ErrInvalidMnemonic.
func (s *Service) FromRecoveryPhrase(phrase, passphrase, language string) (domain.Keypair, error) {
	kp, err := KeypairFromMnemonic(phrase, passphrase, language)
	if err != nil {
		return domain.Keypair{}, err
	}
	if err := s.keystore.Save(passphrase, kp); err != nil {
		return domain.Keypair{}, err
	}
	return kp, nil
}

// Load unseals the persisted keypair.
func (s *Service) Load(passphrase string) (domain.Keypair, error) {
	return s.keystore.Load(passphrase)
}

// KeypairFromMnemonic derives a keypair from a recovery phrase without
// touching any keystore.
func KeypairFromMnemonic(phrase, passphrase, language string) (domain.Keypair, error) {
	wl, ok := wordlistByName[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return domain.Keypair{}, ErrUnknownLanguage
	}
	phrase = strings.TrimSpace(phrase)

	wordlistMu.Lock()
	defer wordlistMu.Unlock()
	bip39.SetWordList(wl)
	if !bip39.IsMnemonicValid(phrase) {
		return domain.Keypair{}, domain.ErrInvalidMnemonic
	}
	seedBytes := bip39.NewSeed(phrase, passphrase)

	var seed [32]byte
	copy(seed[:], seedBytes[:32])
	return domain.KeypairFromSeed(seed), nil
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
