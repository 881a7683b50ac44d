package rpc

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupResponse struct {
	AccessToken string `json:"access_token"`
	Salt        []byte `json:"salt"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninResponse carries the verifier when the account has one on record.
type SigninResponse struct {
	AccessToken string `json:"access_token"`
	Salt        []byte `json:"salt"`
	Verifier    []byte `json:"verifier,omitempty"`
}

type SetVerifierRequest struct {
	Verifier []byte `json:"verifier"`
}

type SetVerifierResponse struct{}

type LogoutRequest struct{}

type LogoutResponse struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

func (r *PingResponse) GetStatus() string {
	if r == nil {
		return ""
	}
	return r.Status
}

// Envelope is a sealed entry, hex encoded.
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	AuthTag    string `json:"authTag"`
}

// Entry is a stored entry. Envelope is omitted in listings.
type Entry struct {
	ID        string                 `json:"id"`
	Label     string                 `json:"label"`
	Envelope  *Envelope              `json:"envelope,omitempty"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type CreateEntryRequest struct {
	Label    string    `json:"label"`
	Envelope *Envelope `json:"envelope"`
}

type CreateEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type ListEntriesRequest struct{}

type ListEntriesResponse struct {
	Entries []*Entry `json:"entries"`
}

type GetEntryRequest struct {
	Label string `json:"label"`
}

type GetEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type UpdateEntryRequest struct {
	Label    string    `json:"label"`
	Envelope *Envelope `json:"envelope"`
}

type UpdateEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type DeleteEntryRequest struct {
	Label string `json:"label"`
}

type DeleteEntryResponse struct{}

type ExportRequest struct{}

// ExportResponse points at a ciphertext-only export document.
type ExportResponse struct {
	URL       string                 `json:"url"`
	Key       string                 `json:"key"`
	Count     int32                  `json:"count"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at,omitempty"`
}

// ExportVersion is the current ExportDocument format.
const ExportVersion = 1

// ExportDocument is the object uploaded by Export and downloaded by the
// client. It holds the user's salt and sealed envelopes only; nothing in it
// can be read without the master password.
type ExportDocument struct {
	Version    int              `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Salt       []byte           `json:"salt"`
	Entries    []*ExportedEntry `json:"entries"`
}

type ExportedEntry struct {
	Label     string    `json:"label"`
	Envelope  *Envelope `json:"envelope"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
