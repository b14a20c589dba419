package store

import "errors"

// Sentinel errors returned by storage methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrBlobNotFound is returned when the encrypted directory blob file
	// does not exist at the configured path. The directory service treats
	// this as a degraded empty directory, not a crash.
	ErrBlobNotFound = errors.New("directory blob file not found")

	// ErrBlobMalformed is returned when the blob file exists but cannot be
	// parsed as an encrypted payload object.
	ErrBlobMalformed = errors.New("directory blob file is malformed")

	// ErrRegistryPersist is returned when the access-registry file cannot
	// be written. The in-memory set is already updated when this error is
	// returned: durability is degraded, current-session correctness is not.
	ErrRegistryPersist = errors.New("failed to persist access registry")
)
