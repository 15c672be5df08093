// Package envelope implements the self-authenticating message format
// stored on the object store. Signing covers the plaintext bound to the
// sender identity and timestamp, then content and identity are
// independently encrypted under the pair's channel key: anyone holding
// the shared secret can decrypt, but producing an envelope that verifies
// requires the claimed sender's signing secret.
//
// There is no anti-replay protection beyond the signed timestamp: either
// legitimate party can re-store an old valid envelope under a new object
// id, and consumers must not assume otherwise.
package envelope
