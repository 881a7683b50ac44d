// Package services contains server-side business logic. This file implements
// UserService: account registration, sign-in with bcrypt-hashed account
// passwords, master password verifier storage and access token revocation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/server/auth"
	"github.com/dmitrijs2005/zkvault/internal/server/config"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	MinUsernameLength = 2
)

var (
	generatePasswordHash = bcrypt.GenerateFromPassword
	generateToken        = auth.GenerateToken
	generateSalt         = func() []byte { return common.GenerateRandByteArray(cryptox.SaltSize) }
)

// dummyHash is compared against when the email is unknown so that sign-in
// costs the same whether or not the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("zkvault-dummy-password"), bcrypt.MinCost)

// AuthResult is returned by Signup and Signin. Verifier is nil until the
// client has enrolled its master password.
type AuthResult struct {
	UserID      string
	AccessToken string
	Salt        []byte
	Verifier    []byte
}

// UserService provides account operations.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
	logger                      logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cost,
		logger:                      logger,
	}
}

func validateSignup(email, username, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(strings.TrimSpace(username)) < MinUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters", common.ErrorValidation, MinUsernameLength)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}
	return nil
}

// Signup registers a new account and signs it in. A taken email yields
// common.ErrorAlreadyExists.
func (s *UserService) Signup(ctx context.Context, email, username, password string) (*AuthResult, error) {
	if err := validateSignup(email, username, password); err != nil {
		return nil, err
	}

	hash, err := generatePasswordHash([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		UserName:     strings.TrimSpace(username),
		PasswordHash: hash,
		Salt:         generateSalt(),
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return s.issue(u)
}

// Signin checks the account password. Unknown emails and wrong passwords
// both yield common.ErrInvalidCredentials.
func (s *UserService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *UserService) issue(u *models.User) (*AuthResult, error) {
	token, err := generateToken(u.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{
		UserID:      u.ID,
		AccessToken: token,
		Salt:        u.Salt,
		Verifier:    u.Verifier,
	}, nil
}

// SetVerifier stores the master password verifier of userID. It can be set
// once; later calls yield common.ErrVerifierAlreadySet.
func (s *UserService) SetVerifier(ctx context.Context, userID string, verifier []byte) error {
	if len(verifier) != cryptox.KeySize {
		return fmt.Errorf("%w: verifier must be %d bytes", common.ErrorValidation, cryptox.KeySize)
	}
	if err := s.repomanager.Users(s.db).SetVerifier(ctx, userID, verifier); err != nil {
		if errors.Is(err, common.ErrVerifierAlreadySet) || errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error setting verifier: %w", err)
	}
	s.logger.Info(ctx, "verifier enrolled", "user_id", userID)
	return nil
}

// Logout revokes the access token identified by tokenID until expiresAt.
func (s *UserService) Logout(ctx context.Context, userID, tokenID string, expiresAt time.Time) error {
	if err := s.repomanager.RevokedTokens(s.db).Revoke(ctx, tokenID, userID, expiresAt); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was logged out.
func (s *UserService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.repomanager.RevokedTokens(s.db).IsRevoked(ctx, tokenID)
}

// PurgeRevoked removes revocation records of tokens that expired before now.
func (s *UserService) PurgeRevoked(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repomanager.RevokedTokens(s.db).DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("error purging revoked tokens: %w", err)
	}
	return n, nil
}
