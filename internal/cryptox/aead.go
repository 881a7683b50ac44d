package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// NonceSize is the AES-GCM nonce length (96 bits).
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length (128 bits).
	TagSize = 16
)

// randReader is a test seam for nonce generation.
var randReader io.Reader = rand.Reader

// Envelope is the sealed form of one plaintext: ciphertext, the nonce it was
// sealed with and the authentication tag. An Envelope is never mutated; a new
// seal always produces a new Envelope with a fresh nonce.
type Envelope struct {
	Ciphertext []byte
	Nonce      []byte
	Tag        []byte
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// Seal encrypts plaintext with AES-256-GCM under key. A fresh random nonce is
// drawn for every call. aad is authenticated but not encrypted and may be nil.
func Seal(plaintext, key, aad []byte) (*Envelope, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - TagSize

	return &Envelope{
		Ciphertext: sealed[:split:split],
		Nonce:      nonce,
		Tag:        sealed[split:],
	}, nil
}

// Open verifies and decrypts env under key with the same aad used by Seal.
// Any mismatch yields ErrAuthenticationFailed and no plaintext.
func Open(env *Envelope, key, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, fmt.Errorf("%w: nil envelope", ErrAuthenticationFailed)
	}
	if len(env.Nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes", ErrAuthenticationFailed, len(env.Nonce))
	}
	if len(env.Tag) != TagSize {
		return nil, fmt.Errorf("%w: tag is %d bytes", ErrAuthenticationFailed, len(env.Tag))
	}

	sealed := make([]byte, 0, len(env.Ciphertext)+TagSize)
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)

	plaintext, err := gcm.Open(nil, env.Nonce, sealed, aad)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
