package cryptox

import "errors"

var (
	// ErrInvalidSalt is returned when a salt is not exactly SaltSize bytes.
	// It is fatal to the operation and not retryable.
	ErrInvalidSalt = errors.New("invalid salt")

	// ErrUnknownPurpose is returned for a Purpose value outside the defined set.
	ErrUnknownPurpose = errors.New("unknown key derivation purpose")

	// ErrInvalidKeySize is returned when a key is not KeySize bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrAuthenticationFailed is returned by Open when the envelope does not
	// authenticate under the given key: wrong key, tampered or corrupted data.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
