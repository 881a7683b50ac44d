package models

import (
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/zkvault/internal/cryptox"
)

// Envelope is the storage encoding of a sealed entry: lower-case hex of the
// ciphertext, nonce and authentication tag.
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	AuthTag    string `json:"authTag"`
}

// EnvelopeFromSealed hex-encodes a sealed envelope.
func EnvelopeFromSealed(e *cryptox.Envelope) *Envelope {
	return &Envelope{
		Ciphertext: hex.EncodeToString(e.Ciphertext),
		Nonce:      hex.EncodeToString(e.Nonce),
		AuthTag:    hex.EncodeToString(e.Tag),
	}
}

// Decode turns the hex fields back into raw bytes. It does not check
// lengths; cryptox.Open does.
func (e *Envelope) Decode() (*cryptox.Envelope, error) {
	ct, err := hex.DecodeString(e.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("ciphertext: %w", err)
	}
	nonce, err := hex.DecodeString(e.Nonce)
	if err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	tag, err := hex.DecodeString(e.AuthTag)
	if err != nil {
		return nil, fmt.Errorf("auth tag: %w", err)
	}
	return &cryptox.Envelope{Ciphertext: ct, Nonce: nonce, Tag: tag}, nil
}
