package envelope

import (
	"encoding/binary"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"courier/internal/crypto"
	"courier/internal/domain"
)

// signatureSize is the length of an Ed25519 signature.
const signatureSize = 64

// Envelope is the stored representation of one message. Immutable once
// created; the storage object name (a random id) is chosen separately
// and is not part of the envelope.
type Envelope struct {
	Timestamp        uint64 `json:"timestamp"`
	EncryptedSender  []byte `json:"encrypted_sender"`
	EncryptedContent []byte `json:"encrypted_content"`
	Signature        []byte `json:"signature_bytes"`
}

// New constructs an envelope from sender to recipient carrying content.
// The signature covers BLAKE3(content ∥ sender public key ∥ big-endian
// timestamp); content and the sender's public key string are then sealed
// independently under the pair's channel key.
func New(sender domain.Keypair, recipient domain.PublicKey, content string) (Envelope, error) {
	ts := uint64(time.Now().UTC().Unix())

	sig := sender.Sign(digest([]byte(content), sender.PublicKey(), ts))

	key, err := crypto.SharedSecret(sender, recipient)
	if err != nil {
		return Envelope{}, err
	}
	encContent, err := crypto.Seal(key, []byte(content))
	if err != nil {
		return Envelope{}, err
	}
	encSender, err := crypto.Seal(key, []byte(sender.PublicKey().String()))
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		Timestamp:        ts,
		EncryptedSender:  encSender,
		EncryptedContent: encContent,
		Signature:        sig,
	}, nil
}

// DecryptContent recovers the plaintext. Role-symmetric: receiver may be
// the original sender or the recipient, with the other participant's
// public key supplied either way.
func (e Envelope) DecryptContent(receiver domain.Keypair, other domain.PublicKey) (string, error) {
	return e.open(receiver, other, e.EncryptedContent)
}

// DecryptSender recovers the sender's public key string.
func (e Envelope) DecryptSender(receiver domain.Keypair, other domain.PublicKey) (string, error) {
	return e.open(receiver, other, e.EncryptedSender)
}

func (e Envelope) open(receiver domain.Keypair, other domain.PublicKey, blob []byte) (string, error) {
	key, err := crypto.SharedSecret(receiver, other)
	if err != nil {
		return "", err
	}
	pt, err := crypto.Open(key, blob)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(pt) {
		return "", domain.ErrNotUTF8
	}
	return string(pt), nil
}

// Verify checks the signature against the decrypted content and sender.
// A malformed sender string fails with ErrInvalidKey, which callers
// treat as "not verified". A signature mismatch is a normal outcome and
// returns false without an error.
func (e Envelope) Verify(decryptedContent, decryptedSender string) (bool, error) {
	senderPK, err := domain.ParsePublicKey(decryptedSender)
	if err != nil {
		return false, err
	}
	if len(e.Signature) != signatureSize {
		return false, nil
	}
	d := digest([]byte(decryptedContent), senderPK, e.Timestamp)
	return domain.VerifySignature(senderPK, d, e.Signature), nil
}

// NewID returns a random 128-bit id in canonical hyphenated form, used
// as the storage object name.
func NewID() string { return uuid.NewString() }

func digest(content []byte, sender domain.PublicKey, ts uint64) []byte {
	var tsBytes [8]byte
	binary.BigEndian.PutUint64(tsBytes[:], ts)

	h := blake3.New()
	h.Write(content)
	h.Write(sender.Slice())
	h.Write(tsBytes[:])
	return h.Sum(nil)
}
