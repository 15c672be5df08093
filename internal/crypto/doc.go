// Package crypto implements the primitive operations the messaging
// protocol is built from: converting Ed25519 signing keys into X25519
// Diffie-Hellman keys, deriving the symmetric channel key two parties
// share, deriving the storage path both parties compute independently,
// and the XChaCha20-Poly1305 sealed box used for message fields.
package crypto
