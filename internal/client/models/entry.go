// Package models defines the client-side vault types: decrypted entries,
// their sealed wire form and the persisted session record.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxLabelLength is the longest label the vault accepts, in characters.
const MaxLabelLength = 256

var (
	ErrIncorrectMetadata = errors.New("metadata item must be name=value")
	ErrEmptyLabel        = errors.New("label must not be empty")
	ErrLabelTooLong      = fmt.Errorf("label must be at most %d characters", MaxLabelLength)
	ErrEmptySecret       = errors.New("secret must not be empty")
)

// Metadata is a free-form name/value pair attached to an entry.
type Metadata struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MetadataFromString parses "name=value" items as typed on the command line.
func MetadataFromString(s []string) ([]Metadata, error) {
	data := make([]Metadata, 0, len(s))
	for _, item := range s {
		name, value, ok := strings.Cut(item, "=")
		if !ok || strings.Contains(value, "=") || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrIncorrectMetadata, item)
		}
		data = append(data, Metadata{Name: name, Value: value})
	}
	return data, nil
}

// Entry is one decrypted vault item. Everything except the timestamps is
// sealed into the envelope; the timestamps come from the storage record.
type Entry struct {
	Label    string     `json:"label"`
	Username string     `json:"username,omitempty"`
	Secret   string     `json:"secret"`
	URL      string     `json:"url,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	Metadata []Metadata `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ValidateLabel checks the label rules shared by every entry operation.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return ErrEmptyLabel
	}
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return ErrLabelTooLong
	}
	return nil
}

// Validate reports whether e can be sealed.
func (e *Entry) Validate() error {
	if err := ValidateLabel(e.Label); err != nil {
		return err
	}
	if e.Secret == "" {
		return ErrEmptySecret
	}
	return nil
}

// StoredEntry is what the storage collaborator keeps for a label.
// Envelope is nil in listings.
type StoredEntry struct {
	ID        string
	Label     string
	Envelope  *Envelope
	CreatedAt time.Time
	UpdatedAt time.Time
}
