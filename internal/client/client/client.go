package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/client/models"
)

// AuthResult is returned by Signup and Signin. Verifier is empty for an
// account that has not enrolled a master password yet.
type AuthResult struct {
	AccessToken string
	Salt        []byte
	Verifier    []byte
}

// ExportInfo points at a server-side export document.
type ExportInfo struct {
	URL       string
	Key       string
	Count     int
	ExpiresAt time.Time
}

type Client interface {
	Close() error
	// SetAccessToken sets the bearer token sent with every call.
	SetAccessToken(token string)

	Signup(ctx context.Context, email, username, password string) (*AuthResult, error)
	Signin(ctx context.Context, email, password string) (*AuthResult, error)
	SetVerifier(ctx context.Context, verifier []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error

	CreateEntry(ctx context.Context, label string, env *models.Envelope) (*models.StoredEntry, error)
	ListEntries(ctx context.Context) ([]*models.StoredEntry, error)
	GetEntry(ctx context.Context, label string) (*models.StoredEntry, error)
	UpdateEntry(ctx context.Context, label string, env *models.Envelope) (*models.StoredEntry, error)
	DeleteEntry(ctx context.Context, label string) error
	Export(ctx context.Context) (*ExportInfo, error)
}
