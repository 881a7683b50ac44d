package services

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/zkvault/internal/client/vault"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-memory stand-in for the vault server.
type fakeClient struct {
	mu sync.Mutex

	salt     []byte
	verifier []byte
	entries  map[string]*models.StoredEntry
	token    string

	signupErr   error
	signinErr   error
	verifierErr error
	logoutErr   error
	entryErr    error
	exportInfo  *client.ExportInfo

	logouts int
	closed  bool
}

func newFakeClient() *fakeClient {
	s := make([]byte, cryptox.SaltSize)
	s[0] = 42
	return &fakeClient{salt: s, entries: map[string]*models.StoredEntry{}}
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) SetAccessToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeClient) Signup(context.Context, string, string, string) (*client.AuthResult, error) {
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	f.SetAccessToken("tok-signup")
	return &client.AuthResult{AccessToken: "tok-signup", Salt: f.salt}, nil
}

func (f *fakeClient) Signin(context.Context, string, string) (*client.AuthResult, error) {
	if f.signinErr != nil {
		return nil, f.signinErr
	}
	f.SetAccessToken("tok-signin")
	return &client.AuthResult{AccessToken: "tok-signin", Salt: f.salt, Verifier: f.verifier}, nil
}

func (f *fakeClient) SetVerifier(_ context.Context, v []byte) error {
	if f.verifierErr != nil {
		return f.verifierErr
	}
	if f.verifier != nil {
		return client.ErrVerifierAlreadySet
	}
	f.verifier = append([]byte(nil), v...)
	return nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.logouts++
	return f.logoutErr
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) CreateEntry(_ context.Context, label string, env *models.Envelope) (*models.StoredEntry, error) {
	if f.entryErr != nil {
		return nil, f.entryErr
	}
	if _, ok := f.entries[label]; ok {
		return nil, client.ErrAlreadyExists
	}
	now := time.Now()
	e := &models.StoredEntry{ID: "id-" + label, Label: label, Envelope: env, CreatedAt: now, UpdatedAt: now}
	f.entries[label] = e
	return &models.StoredEntry{ID: e.ID, Label: label, CreatedAt: now, UpdatedAt: now}, nil
}

func (f *fakeClient) ListEntries(context.Context) ([]*models.StoredEntry, error) {
	if f.entryErr != nil {
		return nil, f.entryErr
	}
	out := make([]*models.StoredEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, &models.StoredEntry{ID: e.ID, Label: e.Label, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (f *fakeClient) GetEntry(_ context.Context, label string) (*models.StoredEntry, error) {
	if f.entryErr != nil {
		return nil, f.entryErr
	}
	e, ok := f.entries[label]
	if !ok {
		return nil, client.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeClient) UpdateEntry(_ context.Context, label string, env *models.Envelope) (*models.StoredEntry, error) {
	if f.entryErr != nil {
		return nil, f.entryErr
	}
	e, ok := f.entries[label]
	if !ok {
		return nil, client.ErrNotFound
	}
	e.Envelope = env
	e.UpdatedAt = e.UpdatedAt.Add(time.Second)
	return &models.StoredEntry{ID: e.ID, Label: label, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}, nil
}

func (f *fakeClient) DeleteEntry(_ context.Context, label string) error {
	if f.entryErr != nil {
		return f.entryErr
	}
	if _, ok := f.entries[label]; !ok {
		return client.ErrNotFound
	}
	delete(f.entries, label)
	return nil
}

func (f *fakeClient) Export(context.Context) (*client.ExportInfo, error) {
	if f.entryErr != nil {
		return nil, f.entryErr
	}
	return f.exportInfo, nil
}

var fastKDF = vault.WithKDF(cryptox.KDFParams{Iterations: 1000})

// newSession opens a session persisted in a fresh SQLite database.
func newSession(t *testing.T) (*vault.Session, *metadata.SessionStore) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := metadata.NewSessionStore(db)
	s, err := vault.Open(context.Background(), store, fastKDF)
	require.NoError(t, err)
	return s, store
}
