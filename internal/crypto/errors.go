package crypto

import (
	"errors"
	"fmt"
)

// ErrInvalidKeyLength is returned by [NewCipherService] and [ResolveKey]
// when the supplied key material is not exactly 32 bytes (256 bits) once
// decoded. Key problems are configuration problems: callers are expected to
// treat this error as fatal at startup, not as a recoverable runtime state.
var ErrInvalidKeyLength = errors.New("encryption key must be exactly 32 bytes")

// ErrDecryptFailed is the root of the decryption error family. Every error
// returned by [CipherService.Decrypt] matches it via [errors.Is], so callers
// can fail closed on the whole family without distinguishing causes.
var ErrDecryptFailed = errors.New("payload decryption failed")

// ErrMalformedPayload is returned when a payload is structurally defective
// before any cryptography runs: broken Base64, wrong nonce length, or a
// truncated authentication tag. Wraps [ErrDecryptFailed].
var ErrMalformedPayload = fmt.Errorf("%w: malformed payload", ErrDecryptFailed)

// ErrAuthenticationFailed is returned when the GCM authentication tag does
// not validate — the payload was encrypted with a different key or has been
// tampered with. Wraps [ErrDecryptFailed]. No partial plaintext is ever
// returned alongside it.
var ErrAuthenticationFailed = fmt.Errorf("%w: authentication tag mismatch", ErrDecryptFailed)
