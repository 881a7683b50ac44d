// Package cryptox holds the client-side cryptographic engine of the vault:
// password based key derivation and authenticated encryption of entries.
//
// Nothing in this package logs, persists or transmits its inputs or outputs.
package cryptox

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the per-account salt issued at signup.
	SaltSize = 32

	// KeySize is the length of every derived value (AES-256 key, verifier).
	KeySize = 32

	// DefaultIterations is the PBKDF2-HMAC-SHA256 work factor.
	DefaultIterations = 150_000
)

// Purpose selects which independent value is derived from a master password.
type Purpose int

const (
	// PurposeEncryption derives the symmetric key used to seal entries.
	PurposeEncryption Purpose = iota + 1
	// PurposeVerification derives the hash persisted to check the master
	// password at unlock time.
	PurposeVerification
)

// purpose tags are appended to the salt before derivation, so the two
// outputs come from distinct PBKDF2 inputs.
var purposeTags = map[Purpose]string{
	PurposeEncryption:   "zkvault/encryption/v1",
	PurposeVerification: "zkvault/verification/v1",
}

func (p Purpose) String() string {
	switch p {
	case PurposeEncryption:
		return "encryption"
	case PurposeVerification:
		return "verification"
	default:
		return fmt.Sprintf("purpose(%d)", int(p))
	}
}

// KDFParams carries the PBKDF2 work factor.
type KDFParams struct {
	Iterations int
}

// DefaultKDFParams returns the parameters every account is derived with.
func DefaultKDFParams() KDFParams {
	return KDFParams{Iterations: DefaultIterations}
}

// Derive is KDFParams.Derive with DefaultKDFParams.
func Derive(password, salt []byte, purpose Purpose) ([]byte, error) {
	return DefaultKDFParams().Derive(password, salt, purpose)
}

// Derive turns (password, salt) into a KeySize-byte value for the given
// purpose. It is a pure function: the same inputs always yield the same output.
//
// Only a malformed salt or an unknown purpose fails; password content is never
// checked here.
func (p KDFParams) Derive(password, salt []byte, purpose Purpose) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSalt, len(salt), SaltSize)
	}
	tag, ok := purposeTags[purpose]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPurpose, purpose)
	}

	iterations := p.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	input := make([]byte, 0, len(salt)+len(tag))
	input = append(input, salt...)
	input = append(input, tag...)

	return pbkdf2.Key(password, input, iterations, KeySize, sha256.New), nil
}
