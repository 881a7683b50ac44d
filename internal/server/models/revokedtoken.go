package models

import "time"

// RevokedToken marks an access token (by its jti) as logged out.
type RevokedToken struct {
	TokenID   string
	UserID    string
	ExpiresAt time.Time
	RevokedAt time.Time
}
