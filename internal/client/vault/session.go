// Package vault holds the client-side session state machine and the entry
// codec. The derived encryption key lives only inside Session and is zeroed
// on lock, logout and process exit.
package vault

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"github.com/dmitrijs2005/zkvault/internal/logging"
)

// State is the session lifecycle state.
type State int

const (
	StateLoggedOut State = iota
	StateLocked
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged out"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SessionStore persists the token, salt and verifier between runs.
// Load returns an empty record when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (models.SessionData, error)
	Save(ctx context.Context, data models.SessionData) error
	Clear(ctx context.Context) error
}

// Cipher seals and opens envelopes with a key it does not expose.
type Cipher interface {
	Seal(plaintext, aad []byte) (*cryptox.Envelope, error)
	OpenEnvelope(env *cryptox.Envelope, aad []byte) ([]byte, error)
}

// Session is the vault session. It is safe for concurrent use: Seal and
// OpenEnvelope may run in parallel, state transitions are exclusive.
type Session struct {
	mu sync.RWMutex

	store SessionStore
	kdf   cryptox.KDFParams
	log   logging.Logger

	state    State
	token    string
	salt     []byte
	verifier []byte
	key      []byte

	destroyed bool
}

type Option func(*Session)

// WithKDF overrides the key derivation work factor.
func WithKDF(p cryptox.KDFParams) Option {
	return func(s *Session) { s.kdf = p }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New returns a logged out session backed by store.
func New(store SessionStore, opts ...Option) *Session {
	s := &Session{
		store: store,
		kdf:   cryptox.DefaultKDFParams(),
		log:   logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open restores a session from store. A stored token puts it in
// StateLocked; the key is never restored.
func Open(ctx context.Context, store SessionStore, opts ...Option) (*Session, error) {
	s := New(store, opts...)

	data, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data.LoggedIn() {
		s.token = data.Token
		s.salt = data.Salt
		s.verifier = data.Verifier
		s.state = StateLocked
	}

	s.log.Debug(ctx, "session restored", "state", s.state.String())
	return s, nil
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the access token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasVerifier reports whether a verification hash is on record.
func (s *Session) HasVerifier() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.verifier) > 0
}

// Verifier returns a copy of the verification hash.
func (s *Session) Verifier() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.verifier...)
}

// Login records the result of authentication and persists it. Any key from
// a previous login is zeroed. verifier may be empty for accounts that never
// stored one.
func (s *Session) Login(ctx context.Context, token string, salt, verifier []byte) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", ErrNotLoggedIn)
	}
	if len(salt) != cryptox.SaltSize {
		return fmt.Errorf("%w: got %d bytes", cryptox.ErrInvalidSalt, len(salt))
	}
	if len(verifier) != 0 && len(verifier) != cryptox.KeySize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidVerifier, len(verifier))
	}

	data := models.SessionData{
		Token:    token,
		Salt:     append([]byte(nil), salt...),
		Verifier: append([]byte(nil), verifier...),
	}
	if len(verifier) == 0 {
		data.Verifier = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ErrSessionDestroyed
	}
	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.wipeKey()
	s.token = data.Token
	s.salt = data.Salt
	s.verifier = data.Verifier
	s.state = StateLocked

	s.log.Info(ctx, "logged in", "has_verifier", len(s.verifier) > 0)
	return nil
}

// Unlock checks password against the stored verifier and, on a match,
// derives and caches the encryption key. On mismatch the state is unchanged.
func (s *Session) Unlock(ctx context.Context, password []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ErrSessionDestroyed
	}
	if s.state == StateLoggedOut {
		return ErrNotLoggedIn
	}
	if len(s.verifier) == 0 {
		return ErrVerifierMissing
	}

	candidate, err := s.kdf.Derive(password, s.salt, cryptox.PurposeVerification)
	if err != nil {
		return fmt.Errorf("derive verifier: %w", err)
	}
	match := subtle.ConstantTimeCompare(candidate, s.verifier) == 1
	common.WipeByteArray(candidate)
	if !match {
		s.log.Warn(ctx, "master password rejected")
		return ErrIncorrectMasterPassword
	}

	key, err := s.kdf.Derive(password, s.salt, cryptox.PurposeEncryption)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}

	s.wipeKey()
	s.key = key
	s.state = StateUnlocked

	s.log.Info(ctx, "vault unlocked")
	return nil
}

// Enroll derives a verifier for password and stores it, then unlocks. It
// only serves accounts with no verifier on record; otherwise it returns
// ErrVerifierAlreadySet and callers use Unlock. probe, when not nil, must
// open an existing envelope with the candidate key: an authentication
// failure there means the password is wrong and nothing is stored.
func (s *Session) Enroll(ctx context.Context, password []byte, probe func(Cipher) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ErrSessionDestroyed
	}
	if s.state == StateLoggedOut {
		return ErrNotLoggedIn
	}
	if len(s.verifier) != 0 {
		return ErrVerifierAlreadySet
	}

	key, err := s.kdf.Derive(password, s.salt, cryptox.PurposeEncryption)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}

	if probe != nil {
		if err := probe(keyCipher{key: key}); err != nil {
			common.WipeByteArray(key)
			if errors.Is(err, cryptox.ErrAuthenticationFailed) {
				s.log.Warn(ctx, "master password rejected by probe entry")
				return ErrIncorrectMasterPassword
			}
			return fmt.Errorf("probe: %w", err)
		}
	}

	verifier, err := s.kdf.Derive(password, s.salt, cryptox.PurposeVerification)
	if err != nil {
		common.WipeByteArray(key)
		return fmt.Errorf("derive verifier: %w", err)
	}

	data := models.SessionData{Token: s.token, Salt: s.salt, Verifier: verifier}
	if err := s.store.Save(ctx, data); err != nil {
		common.WipeByteArray(key)
		return fmt.Errorf("save session: %w", err)
	}

	s.wipeKey()
	s.verifier = verifier
	s.key = key
	s.state = StateUnlocked

	s.log.Info(ctx, "master password verifier enrolled")
	return nil
}

// Seal encrypts plaintext with the session key.
func (s *Session) Seal(plaintext, aad []byte) (*cryptox.Envelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateUnlocked {
		return nil, ErrVaultLocked
	}
	return cryptox.Seal(plaintext, s.key, aad)
}

// OpenEnvelope decrypts env with the session key.
func (s *Session) OpenEnvelope(env *cryptox.Envelope, aad []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateUnlocked {
		return nil, ErrVaultLocked
	}
	return cryptox.Open(env, s.key, aad)
}

// Lock zeroes the key. The token stays, so Unlock works again.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeKey()
	if s.state == StateUnlocked {
		s.state = StateLocked
	}
}

// Logout zeroes the key, forgets the token, salt and verifier and clears the
// store. The in-memory session is logged out even if clearing the store fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeKey()
	s.token = ""
	s.salt = nil
	s.verifier = nil
	s.state = StateLoggedOut

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// Destroy zeroes the key on process exit. Afterwards Login, Unlock and
// Enroll fail with ErrSessionDestroyed. It is safe to call more than once.
// The persisted session is kept.
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.destroyed = true
	s.wipeKey()
	if s.state == StateUnlocked {
		s.state = StateLocked
	}
}

// wipeKey must be called with mu held for writing.
func (s *Session) wipeKey() {
	common.WipeByteArray(s.key)
	s.key = nil
}

// keyCipher wraps a candidate key during enrollment.
type keyCipher struct {
	key []byte
}

func (k keyCipher) Seal(plaintext, aad []byte) (*cryptox.Envelope, error) {
	return cryptox.Seal(plaintext, k.key, aad)
}

func (k keyCipher) OpenEnvelope(env *cryptox.Envelope, aad []byte) ([]byte, error) {
	return cryptox.Open(env, k.key, aad)
}
