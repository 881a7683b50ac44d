package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
)

const entryAADPrefix = "zkvault/entry/v1:"

// EntryAAD binds an envelope to its label: an envelope stored under one
// label does not open under another.
func EntryAAD(label string) []byte {
	return []byte(entryAADPrefix + label)
}

// Codec converts entries to sealed envelopes and back.
type Codec struct {
	cipher Cipher
}

func NewCodec(c Cipher) *Codec {
	return &Codec{cipher: c}
}

// Seal validates e, serializes it and seals it under the label AAD.
func (c *Codec) Seal(e *models.Entry) (*models.Envelope, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal entry: %w", err)
	}
	defer common.WipeByteArray(plaintext)

	sealed, err := c.cipher.Seal(plaintext, EntryAAD(e.Label))
	if err != nil {
		return nil, err
	}
	return models.EnvelopeFromSealed(sealed), nil
}

// Open decrypts env stored under label. A corrupt envelope is an
// authentication failure; a plaintext that is not an entry for label is
// ErrMalformedEntry.
func (c *Codec) Open(label string, env *models.Envelope) (*models.Entry, error) {
	if env == nil {
		return nil, fmt.Errorf("%w: missing envelope", cryptox.ErrAuthenticationFailed)
	}
	sealed, err := env.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptox.ErrAuthenticationFailed, err)
	}

	plaintext, err := c.cipher.OpenEnvelope(sealed, EntryAAD(label))
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(plaintext)

	var e models.Entry
	dec := json.NewDecoder(bytes.NewReader(plaintext))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedEntry)
	}
	if e.Label != label {
		return nil, fmt.Errorf("%w: label mismatch", ErrMalformedEntry)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	return &e, nil
}
