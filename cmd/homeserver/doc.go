// Package main runs the development homeserver: an HTTP object store
// addressed by owner public key, used by courier during development and
// tests.
//
// HTTP API
//
//	POST /session
//	    Exchange a signed challenge for a bearer token. The body carries
//	    the owner public key, a Unix timestamp, and an Ed25519 signature
//	    over "courier-session:{public_key}:{timestamp}".
//
//	GET /{owner}/{path}
//	    Return the object body. A trailing slash lists paths under the
//	    prefix instead, one per line.
//
//	PUT /{owner}/{path}
//	    Store an object. Requires a session token for {owner}.
//
//	DELETE /{owner}/{path}
//	    Remove an object. Requires a session token for {owner}. Deletes
//	    are rate limited per owner; over-limit requests get 429.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - With no --data directory, state is held in memory and lost on exit.
//   - Anyone can read any object; only the owner can write or delete.
//   - The default listen address is :8080.
//
// The homeserver never sees plaintext or private keys; message objects
// are ciphertext published under conversation paths both parties can
// derive but outsiders cannot.
package main
