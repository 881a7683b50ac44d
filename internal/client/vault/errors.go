package vault

import "errors"

var (
	// ErrVaultLocked is returned by Seal and OpenEnvelope when no key is held.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrIncorrectMasterPassword means the master password did not match the
	// stored verifier (or did not open an existing entry during enrollment).
	ErrIncorrectMasterPassword = errors.New("incorrect master password")

	// ErrNotLoggedIn is returned by operations that need an authenticated
	// session.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrVerifierMissing is returned by Unlock for accounts that never stored
	// a verification hash. Callers enroll one with Enroll.
	ErrVerifierMissing = errors.New("no master password verifier on record")

	// ErrVerifierAlreadySet is returned by Enroll when a verification hash
	// is already on record.
	ErrVerifierAlreadySet = errors.New("master password verifier already on record")

	// ErrSessionDestroyed is returned by Login, Unlock and Enroll after
	// Destroy.
	ErrSessionDestroyed = errors.New("session destroyed")

	// ErrInvalidVerifier is returned when a verifier of the wrong length is
	// handed to Login.
	ErrInvalidVerifier = errors.New("invalid verifier")

	// ErrSessionExpired is returned after the storage collaborator rejected
	// the access token and the local session was cleared.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrMalformedEntry means a ciphertext authenticated but its plaintext is
	// not a valid entry for the requested label.
	ErrMalformedEntry = errors.New("malformed entry")
)
