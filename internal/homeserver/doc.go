// Package homeserver contains both sides of the object-store boundary:
// the HTTP client courier uses against a homeserver, and a development
// homeserver good enough for local use and integration tests.
//
// The store model is a public-key-addressed key-value space. Reads under
// /pub/ are public; writes and deletes require a session established by
// signing a challenge with the owner's key. Deletes are rate limited per
// owner and answered with 429 when the budget is exhausted.
package homeserver
