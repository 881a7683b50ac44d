package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/client/config"
	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/client/services"
	"github.com/dmitrijs2005/zkvault/internal/client/vault"
	"github.com/dmitrijs2005/zkvault/internal/logging"
)

const testMaster = "correct horse battery staple"

type fakeAuth struct {
	state       vault.State
	hasVerifier bool

	signupEmail, signupUser string
	signupMaster            string
	signupErr               error
	loginEmail              string
	loginErr                error
	unlockCalls             int
	logoutCalls             int
	pingErr                 error
	closed                  bool
}

func (f *fakeAuth) Signup(_ context.Context, email, username string, _, master []byte) error {
	if f.signupErr != nil {
		return f.signupErr
	}
	f.signupEmail, f.signupUser, f.signupMaster = email, username, string(master)
	f.state = vault.StateUnlocked
	f.hasVerifier = true
	return nil
}

func (f *fakeAuth) Login(_ context.Context, email string, _ []byte) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loginEmail = email
	f.state = vault.StateLocked
	return nil
}

func (f *fakeAuth) Unlock(_ context.Context, pw []byte) error {
	f.unlockCalls++
	if f.state == vault.StateLoggedOut {
		return vault.ErrNotLoggedIn
	}
	if string(pw) != testMaster {
		return vault.ErrIncorrectMasterPassword
	}
	f.state = vault.StateUnlocked
	return nil
}

func (f *fakeAuth) Lock() {
	if f.state == vault.StateUnlocked {
		f.state = vault.StateLocked
	}
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	f.state = vault.StateLoggedOut
	return nil
}

func (f *fakeAuth) Status() services.Status {
	return services.Status{State: f.state, LoggedIn: f.state != vault.StateLoggedOut, HasVerifier: f.hasVerifier}
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }
func (f *fakeAuth) Close() error               { f.closed = true; return nil }

type fakeEntries struct {
	entries   map[string]*models.Entry
	err       error
	exportDir string
	deleted   []string
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{entries: map[string]*models.Entry{}}
}

func (f *fakeEntries) Add(_ context.Context, e *models.Entry) (*models.StoredEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if _, ok := f.entries[e.Label]; ok {
		return nil, client.ErrAlreadyExists
	}
	cp := *e
	cp.CreatedAt = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	cp.UpdatedAt = cp.CreatedAt
	f.entries[e.Label] = &cp
	return &models.StoredEntry{Label: e.Label, CreatedAt: cp.CreatedAt, UpdatedAt: cp.UpdatedAt}, nil
}

func (f *fakeEntries) Get(_ context.Context, label string) (*models.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.entries[label]
	if !ok {
		return nil, client.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntries) List(context.Context) ([]*models.StoredEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.StoredEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, &models.StoredEntry{Label: e.Label, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (f *fakeEntries) Update(_ context.Context, e *models.Entry) (*models.StoredEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.entries[e.Label]; !ok {
		return nil, client.ErrNotFound
	}
	cp := *e
	f.entries[e.Label] = &cp
	return &models.StoredEntry{Label: e.Label}, nil
}

func (f *fakeEntries) Delete(_ context.Context, label string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.entries[label]; !ok {
		return client.ErrNotFound
	}
	delete(f.entries, label)
	f.deleted = append(f.deleted, label)
	return nil
}

func (f *fakeEntries) Export(_ context.Context, dir string) (*services.ExportResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.exportDir = dir
	return &services.ExportResult{Path: dir + "/zkvault-export.json", Count: len(f.entries)}, nil
}

type fakeSession struct{ destroyed int }

func (f *fakeSession) Destroy() { f.destroyed++ }

// newTestApp builds an App over fakes with input as stdin.
func newTestApp(t *testing.T, input ...string) (*App, *fakeAuth, *fakeEntries, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ClipboardClearDelay = 0

	out := &bytes.Buffer{}
	fa := &fakeAuth{}
	fe := newFakeEntries()
	return &App{
		config:       cfg,
		authService:  fa,
		entryService: fe,
		session:      &fakeSession{},
		logger:       logging.Nop(),
		reader:       bufio.NewReader(strings.NewReader(strings.Join(input, "\n"))),
		out:          out,
	}, fa, fe, out
}

// stubPasswords answers successive password prompts with pws.
func stubPasswords(t *testing.T, pws ...string) *[]string {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })

	var prompts []string
	getPassword = func(_ io.Writer, prompt string) ([]byte, error) {
		prompts = append(prompts, prompt)
		if len(pws) == 0 {
			return nil, errors.New("no more passwords")
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
	return &prompts
}
