package crypto

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/curve25519"

	"courier/internal/domain"
)

// privateMessagesRoot is the namespace segment under which conversation
// objects are stored, relative to an owner's public key.
const privateMessagesRoot = "/pub/private_messages/"

// SharedSecret derives the 32-byte symmetric channel key for the pair
// (own, peer): X25519 between own's converted secret and peer's converted
// public key. The construction commutes, so both parties derive the same
// key without coordination. Recomputed per call; nothing is cached.
func SharedSecret(own domain.Keypair, peer domain.PublicKey) ([32]byte, error) {
	var key [32]byte
	secret := SecretToX25519(own.Seed())
	pub, err := PublicToX25519(peer)
	if err != nil {
		return key, err
	}
	shared, err := curve25519.X25519(secret[:], pub[:])
	if err != nil {
		// curve25519 rejects low-order peer points (all-zero output).
		return key, domain.ErrInvalidPoint
	}
	copy(key[:], shared)
	return key, nil
}

// ConversationPath derives the storage path suffix both participants use
// for their half of a conversation: BLAKE3 of the hex-encoded shared
// secret, hex-encoded, between the private-messages namespace segment and
// a trailing separator. Symmetric in the two parties; collisions are
// limited by the hash output space.
func ConversationPath(own domain.Keypair, peer domain.PublicKey) (string, error) {
	key, err := SharedSecret(own, peer)
	if err != nil {
		return "", err
	}
	digest := blake3.Sum256([]byte(hex.EncodeToString(key[:])))
	return privateMessagesRoot + hex.EncodeToString(digest[:]) + "/", nil
}
