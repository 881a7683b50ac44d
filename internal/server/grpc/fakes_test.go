package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeUser struct {
	signupResp *services.AuthResult
	signupErr  error

	signinResp *services.AuthResult
	signinErr  error

	verifierErr error
	gotVerifier []byte
	gotUserID   string

	logoutErr    error
	loggedOutJTI string

	revoked    map[string]bool
	revokedErr error
}

func (f *fakeUser) Signup(context.Context, string, string, string) (*services.AuthResult, error) {
	return f.signupResp, f.signupErr
}
func (f *fakeUser) Signin(context.Context, string, string) (*services.AuthResult, error) {
	return f.signinResp, f.signinErr
}
func (f *fakeUser) SetVerifier(_ context.Context, userID string, v []byte) error {
	f.gotUserID, f.gotVerifier = userID, v
	return f.verifierErr
}
func (f *fakeUser) Logout(_ context.Context, userID, tokenID string, _ time.Time) error {
	f.gotUserID, f.loggedOutJTI = userID, tokenID
	return f.logoutErr
}
func (f *fakeUser) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return f.revoked[tokenID], f.revokedErr
}

type fakeEntry struct {
	entry   *models.Entry
	list    []*models.Entry
	export  *services.ExportResult
	err     error
	gotUser string
	gotArgs []string
}

func (f *fakeEntry) Create(_ context.Context, userID, label, ct, nonce, tag string) (*models.Entry, error) {
	f.gotUser, f.gotArgs = userID, []string{label, ct, nonce, tag}
	return f.entry, f.err
}
func (f *fakeEntry) List(_ context.Context, userID string) ([]*models.Entry, error) {
	f.gotUser = userID
	return f.list, f.err
}
func (f *fakeEntry) Get(_ context.Context, userID, label string) (*models.Entry, error) {
	f.gotUser, f.gotArgs = userID, []string{label}
	return f.entry, f.err
}
func (f *fakeEntry) Update(_ context.Context, userID, label, ct, nonce, tag string) (*models.Entry, error) {
	f.gotUser, f.gotArgs = userID, []string{label, ct, nonce, tag}
	return f.entry, f.err
}
func (f *fakeEntry) Delete(_ context.Context, userID, label string) error {
	f.gotUser, f.gotArgs = userID, []string{label}
	return f.err
}
func (f *fakeEntry) Export(_ context.Context, userID string) (*services.ExportResult, error) {
	f.gotUser = userID
	return f.export, f.err
}

func newServer(u *fakeUser, e *fakeEntry) *GRPCServer {
	if u == nil {
		u = &fakeUser{}
	}
	if e == nil {
		e = &fakeEntry{}
	}
	return NewGRPCServer("127.0.0.1:0", nopLogger{}, u, e, "secret")
}
