// Package models holds the server-side persistence types.
package models

import "time"

// User is an account. PasswordHash is a bcrypt hash of the account password;
// Salt and Verifier belong to the client's master password and are opaque here.
type User struct {
	ID           string
	Email        string
	UserName     string
	PasswordHash []byte
	Salt         []byte
	Verifier     []byte
	CreatedAt    time.Time
}
