package services

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/dbx"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/entries"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  int
	err     error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	cp := *u
	cp.ID = "user-" + strconv.Itoa(f.nextID)
	cp.CreatedAt = time.Now()
	f.byEmail[u.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) SetVerifier(_ context.Context, id string, verifier []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			if u.Verifier != nil {
				return common.ErrVerifierAlreadySet
			}
			u.Verifier = append([]byte(nil), verifier...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeEntriesRepo struct {
	mu    sync.Mutex
	items map[string]*models.Entry // userID + "/" + label
	err   error
}

func newFakeEntriesRepo() *fakeEntriesRepo {
	return &fakeEntriesRepo{items: map[string]*models.Entry{}}
}

func entryKey(userID, label string) string { return userID + "/" + label }

func (f *fakeEntriesRepo) Create(_ context.Context, e *models.Entry) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	k := entryKey(e.UserID, e.Label)
	if _, ok := f.items[k]; ok {
		return nil, common.ErrorAlreadyExists
	}
	cp := *e
	cp.ID = "entry-" + e.Label
	cp.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cp.UpdatedAt = cp.CreatedAt
	f.items[k] = &cp
	out := cp
	return &out, nil
}

func (f *fakeEntriesRepo) List(_ context.Context, userID string) ([]*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Entry
	for _, e := range f.items {
		if e.UserID == userID {
			out = append(out, &models.Entry{ID: e.ID, UserID: e.UserID, Label: e.Label, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt})
		}
	}
	return out, nil
}

func (f *fakeEntriesRepo) ListWithEnvelopes(_ context.Context, userID string) ([]*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Entry
	for _, e := range f.items {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeEntriesRepo) Get(_ context.Context, userID, label string) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.items[entryKey(userID, label)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntriesRepo) Update(_ context.Context, e *models.Entry) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	cur, ok := f.items[entryKey(e.UserID, e.Label)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cur.Ciphertext, cur.Nonce, cur.AuthTag = e.Ciphertext, e.Nonce, e.AuthTag
	cur.UpdatedAt = cur.UpdatedAt.Add(time.Hour)
	cp := *cur
	return &cp, nil
}

func (f *fakeEntriesRepo) Delete(_ context.Context, userID, label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	k := entryKey(userID, label)
	if _, ok := f.items[k]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, k)
	return nil
}

type fakeRevokedRepo struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newFakeRevokedRepo() *fakeRevokedRepo {
	return &fakeRevokedRepo{revoked: map[string]time.Time{}}
}

func (f *fakeRevokedRepo) Revoke(_ context.Context, tokenID, _ string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.revoked[tokenID] = expiresAt
	return nil
}

func (f *fakeRevokedRepo) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[tokenID]
	return ok, nil
}

func (f *fakeRevokedRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for k, exp := range f.revoked {
		if exp.Before(now) {
			delete(f.revoked, k)
			n++
		}
	}
	return n, nil
}

type fakeRepoManager struct {
	users   *fakeUsersRepo
	entries *fakeEntriesRepo
	revoked *fakeRevokedRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:   newFakeUsersRepo(),
		entries: newFakeEntriesRepo(),
		revoked: newFakeRevokedRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository            { return m.users }
func (m *fakeRepoManager) Entries(dbx.DBTX) entries.Repository        { return m.entries }
func (m *fakeRepoManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository {
	return m.revoked
}
