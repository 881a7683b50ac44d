// Package services contains application services for the vault client.
// This file defines the authentication service: account signup and login,
// master password enrollment and unlock, lock and logout.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/client/vault"
	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/nbutton23/zxcvbn-go"
)

// passwordStrength is a seam over zxcvbn scoring (0 weakest, 4 strongest).
var passwordStrength = func(password string, userInputs []string) int {
	return zxcvbn.PasswordStrength(password, userInputs).Score
}

// Status is a snapshot of the local session.
type Status struct {
	State       vault.State
	LoggedIn    bool
	HasVerifier bool
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup: create the account, log in and enroll the master password.
//   - Login: authenticate the account; the vault stays locked.
//   - Unlock: check the master password and derive the encryption key.
//   - Lock: forget the key, keep the login.
//   - Logout: revoke the token on the server and clear the local session.
//
// Account and master passwords are separate secrets. Only the master password
// protects entries and it never leaves the process.
type AuthService interface {
	Signup(ctx context.Context, email, username string, accountPassword, masterPassword []byte) error
	Login(ctx context.Context, email string, accountPassword []byte) error
	Unlock(ctx context.Context, masterPassword []byte) error
	Lock()
	Logout(ctx context.Context) error
	Status() Status
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client   client.Client
	session  *vault.Session
	minScore int
	logger   logging.Logger
}

// NewAuthService binds the API client to the session. A restored session's
// token is handed to the client.
func NewAuthService(c client.Client, s *vault.Session, minPasswordScore int, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	if tok := s.Token(); tok != "" {
		c.SetAccessToken(tok)
	}
	return &authService{client: c, session: s, minScore: minPasswordScore, logger: logger}
}

// checkStrength rejects master passwords scoring below the configured
// minimum. Email and username are treated as known words.
func (a *authService) checkStrength(password []byte, hints ...string) error {
	if len(password) == 0 {
		return ErrEmptyPassword
	}
	score := passwordStrength(string(password), hints)
	if score < a.minScore {
		return fmt.Errorf("%w: score %d, need %d", ErrWeakMasterPassword, score, a.minScore)
	}
	return nil
}

// Signup registers the account, logs in, enrolls the master password and
// uploads its verifier.
func (a *authService) Signup(ctx context.Context, email, username string, accountPassword, masterPassword []byte) error {
	if len(accountPassword) == 0 {
		return ErrEmptyPassword
	}
	if err := a.checkStrength(masterPassword, email, username); err != nil {
		return err
	}

	res, err := a.client.Signup(ctx, email, username, string(accountPassword))
	if err != nil {
		return fmt.Errorf("signup error: %w", err)
	}

	if err := a.session.Login(ctx, res.AccessToken, res.Salt, nil); err != nil {
		return fmt.Errorf("session error: %w", err)
	}
	if err := a.session.Enroll(ctx, masterPassword, nil); err != nil {
		return fmt.Errorf("enroll error: %w", err)
	}
	if err := a.client.SetVerifier(ctx, a.session.Verifier()); err != nil {
		return a.handle(ctx, fmt.Errorf("upload verifier error: %w", err))
	}

	a.logger.Info(ctx, "account created")
	return nil
}

// Login authenticates the account and persists the session. The vault is
// left locked.
func (a *authService) Login(ctx context.Context, email string, accountPassword []byte) error {
	if len(accountPassword) == 0 {
		return ErrEmptyPassword
	}
	res, err := a.client.Signin(ctx, email, string(accountPassword))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.session.Login(ctx, res.AccessToken, res.Salt, res.Verifier); err != nil {
		return fmt.Errorf("session error: %w", err)
	}
	return nil
}

// Unlock opens the vault. Accounts without a verifier on record enroll one
// first: when entries exist, the candidate key must open one of them.
func (a *authService) Unlock(ctx context.Context, masterPassword []byte) error {
	if a.session.State() == vault.StateLoggedOut {
		return vault.ErrNotLoggedIn
	}
	if len(masterPassword) == 0 {
		return ErrEmptyPassword
	}
	if a.session.HasVerifier() {
		return a.session.Unlock(ctx, masterPassword)
	}

	a.logger.Info(ctx, "no verifier on record, enrolling")

	probe, err := a.probeFor(ctx)
	if err != nil {
		return err
	}
	if err := a.session.Enroll(ctx, masterPassword, probe); err != nil {
		return err
	}
	if err := a.client.SetVerifier(ctx, a.session.Verifier()); err != nil {
		a.session.Lock()
		return a.handle(ctx, fmt.Errorf("upload verifier error: %w", err))
	}
	return nil
}

// probeFor returns a check that opens the first stored entry, or nil when
// the vault is empty.
func (a *authService) probeFor(ctx context.Context) (func(vault.Cipher) error, error) {
	items, err := a.client.ListEntries(ctx)
	if err != nil {
		return nil, a.handle(ctx, err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	stored, err := a.client.GetEntry(ctx, items[0].Label)
	if err != nil {
		return nil, a.handle(ctx, err)
	}

	return func(c vault.Cipher) error {
		_, err := vault.NewCodec(c).Open(stored.Label, stored.Envelope)
		return err
	}, nil
}

func (a *authService) Lock() {
	a.session.Lock()
}

// Logout revokes the token on the server when possible and always clears
// the local session.
func (a *authService) Logout(ctx context.Context) error {
	if a.session.State() != vault.StateLoggedOut {
		if err := a.client.Logout(ctx); err != nil {
			a.logger.Warn(ctx, "server logout failed", "error", err)
		}
	}
	a.client.SetAccessToken("")
	return a.session.Logout(ctx)
}

func (a *authService) Status() Status {
	st := a.session.State()
	return Status{
		State:       st,
		LoggedIn:    st != vault.StateLoggedOut,
		HasVerifier: a.session.HasVerifier(),
	}
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}

// handle turns a rejected token into a local logout.
func (a *authService) handle(ctx context.Context, err error) error {
	return expireOnUnauthorized(ctx, a.session, a.client, err)
}

func expireOnUnauthorized(ctx context.Context, s *vault.Session, c client.Client, err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	c.SetAccessToken("")
	if lerr := s.Logout(ctx); lerr != nil {
		return errors.Join(vault.ErrSessionExpired, lerr)
	}
	return vault.ErrSessionExpired
}
