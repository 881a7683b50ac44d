package models

import "time"

// Entry is one sealed vault entry. The server never sees its plaintext;
// Ciphertext, Nonce and AuthTag are hex strings produced by the client.
type Entry struct {
	ID         string
	UserID     string
	Label      string
	Ciphertext string
	Nonce      string
	AuthTag    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
