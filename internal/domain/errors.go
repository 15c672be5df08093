package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidPoint is returned when 32 bytes do not decompress to a
	// valid Edwards curve point. Callers treat it as an authentication
	// failure on the peer key, never as a crash.
	ErrInvalidPoint = errors.New("public key is not a valid curve point")

	// ErrDecryptFailure is returned on an authentication-tag mismatch or
	// malformed ciphertext.
	ErrDecryptFailure = errors.New("decryption failed")

	// ErrNotUTF8 is returned when decrypted bytes are not valid text.
	ErrNotUTF8 = errors.New("decrypted bytes are not valid UTF-8")

	// ErrInvalidKey is returned when a public key string cannot be parsed.
	ErrInvalidKey = errors.New("malformed public key")

	// ErrInvalidMnemonic is returned for recovery phrases that fail
	// wordlist or checksum validation.
	ErrInvalidMnemonic = errors.New("invalid recovery phrase")

	// ErrNoSession is returned when a write or delete is attempted before
	// session establishment with the homeserver.
	ErrNoSession = errors.New("no homeserver session; sign in first")
)

// StoreError reports a non-success status from the object store.
type StoreError struct {
	Op     string // "put", "get", "list", "delete"
	Path   string
	Status int
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: status %d", e.Op, e.Path, e.Status)
}

// IsRateLimited reports whether err is a store error with status 429,
// which the backend uses to mean "retry after backoff".
func IsRateLimited(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Status == http.StatusTooManyRequests
}

// IsNotFound reports whether err is a store error with status 404.
func IsNotFound(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// BatchError reports the first failing item of a multi-item operation.
// Work completed before the failure is not rolled back.
type BatchError struct {
	ID  string
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.ID, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
