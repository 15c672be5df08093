// Package domain holds the core types, capability interfaces, and error
// kinds shared across courier. It has no network or storage code of its
// own; implementations live in internal/homeserver, internal/store, and
// internal/services.
package domain
