package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/client/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongMaster = "correct-horse-battery-staple-42"

func TestAuth_SignupEnrollsAndUnlocks(t *testing.T) {
	fc := newFakeClient()
	sess, store := newSession(t)
	a := NewAuthService(fc, sess, 3, nil)
	ctx := context.Background()

	require.NoError(t, a.Signup(ctx, "a@b.c", "alice", []byte("account-pw"), []byte(strongMaster)))

	assert.Equal(t, vault.StateUnlocked, a.Status().State)
	assert.True(t, a.Status().HasVerifier)
	assert.Len(t, fc.verifier, 32)
	assert.Equal(t, sess.Verifier(), fc.verifier)

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-signup", data.Token)
	assert.Equal(t, fc.verifier, data.Verifier)
}

func TestAuth_SignupRejectsWeakMasterPassword(t *testing.T) {
	fc := newFakeClient()
	sess, _ := newSession(t)
	a := NewAuthService(fc, sess, 3, nil)

	err := a.Signup(context.Background(), "a@b.c", "alice", []byte("account-pw"), []byte("password"))
	require.ErrorIs(t, err, ErrWeakMasterPassword)
	assert.Equal(t, vault.StateLoggedOut, a.Status().State)

	err = a.Signup(context.Background(), "a@b.c", "alice", []byte("account-pw"), nil)
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestAuth_SignupScoreSeam(t *testing.T) {
	orig := passwordStrength
	t.Cleanup(func() { passwordStrength = orig })

	var gotHints []string
	passwordStrength = func(_ string, hints []string) int {
		gotHints = hints
		return 1
	}

	sess, _ := newSession(t)
	a := NewAuthService(newFakeClient(), sess, 2, nil)
	err := a.Signup(context.Background(), "a@b.c", "alice", []byte("x"), []byte("whatever"))
	require.ErrorIs(t, err, ErrWeakMasterPassword)
	assert.Equal(t, []string{"a@b.c", "alice"}, gotHints)

	a = NewAuthService(newFakeClient(), sess, 0, nil)
	require.NoError(t, a.Signup(context.Background(), "a@b.c", "alice", []byte("x"), []byte("whatever")))
}

func TestAuth_LoginThenUnlock(t *testing.T) {
	fc := newFakeClient()

	// enroll on one device
	sess1, _ := newSession(t)
	require.NoError(t, NewAuthService(fc, sess1, 0, nil).Signup(context.Background(), "a@b.c", "al", []byte("pw"), []byte(strongMaster)))

	// log in on another
	sess2, _ := newSession(t)
	a := NewAuthService(fc, sess2, 0, nil)
	ctx := context.Background()

	require.NoError(t, a.Login(ctx, "a@b.c", []byte("pw")))
	assert.Equal(t, vault.StateLocked, a.Status().State)
	assert.Equal(t, "tok-signin", fc.token)

	require.ErrorIs(t, a.Unlock(ctx, []byte("wrong")), vault.ErrIncorrectMasterPassword)
	assert.Equal(t, vault.StateLocked, a.Status().State)

	require.NoError(t, a.Unlock(ctx, []byte(strongMaster)))
	assert.Equal(t, vault.StateUnlocked, a.Status().State)

	a.Lock()
	assert.Equal(t, vault.StateLocked, a.Status().State)
}

func TestAuth_LoginErrors(t *testing.T) {
	fc := newFakeClient()
	sess, _ := newSession(t)
	a := NewAuthService(fc, sess, 0, nil)

	require.ErrorIs(t, a.Login(context.Background(), "a@b.c", nil), ErrEmptyPassword)

	fc.signinErr = client.ErrInvalidCredentials
	require.ErrorIs(t, a.Login(context.Background(), "a@b.c", []byte("pw")), client.ErrInvalidCredentials)
	assert.Equal(t, vault.StateLoggedOut, a.Status().State)
}

func TestAuth_UnlockRequiresLogin(t *testing.T) {
	sess, _ := newSession(t)
	a := NewAuthService(newFakeClient(), sess, 0, nil)
	require.ErrorIs(t, a.Unlock(context.Background(), []byte(strongMaster)), vault.ErrNotLoggedIn)
}

func TestAuth_LegacyEnrollment(t *testing.T) {
	ctx := context.Background()

	t.Run("empty vault", func(t *testing.T) {
		fc := newFakeClient()
		sess, _ := newSession(t)
		a := NewAuthService(fc, sess, 0, nil)

		require.NoError(t, a.Login(ctx, "a@b.c", []byte("pw")))
		assert.False(t, a.Status().HasVerifier)

		require.NoError(t, a.Unlock(ctx, []byte(strongMaster)))
		assert.Equal(t, vault.StateUnlocked, a.Status().State)
		assert.Len(t, fc.verifier, 32)
	})

	t.Run("probe against existing entry", func(t *testing.T) {
		fc := newFakeClient()

		// entries sealed by an old client that never uploaded a verifier
		seed, _ := newSession(t)
		require.NoError(t, seed.Login(ctx, "tok", fc.salt, nil))
		require.NoError(t, seed.Enroll(ctx, []byte(strongMaster), nil))
		env, err := vault.NewCodec(seed).Seal(&models.Entry{Label: "github", Secret: "s3cret"})
		require.NoError(t, err)
		_, err = fc.CreateEntry(ctx, "github", env)
		require.NoError(t, err)

		sess, _ := newSession(t)
		a := NewAuthService(fc, sess, 0, nil)
		require.NoError(t, a.Login(ctx, "a@b.c", []byte("pw")))

		require.ErrorIs(t, a.Unlock(ctx, []byte("not-the-master")), vault.ErrIncorrectMasterPassword)
		assert.Nil(t, fc.verifier, "nothing uploaded on a wrong password")
		assert.False(t, a.Status().HasVerifier)

		require.NoError(t, a.Unlock(ctx, []byte(strongMaster)))
		assert.Len(t, fc.verifier, 32)

		e, err := NewEntryService(fc, sess, nil).Get(ctx, "github")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", e.Secret)
	})

	t.Run("upload rejected", func(t *testing.T) {
		fc := newFakeClient()
		sess, _ := newSession(t)
		a := NewAuthService(fc, sess, 0, nil)
		require.NoError(t, a.Login(ctx, "a@b.c", []byte("pw")))

		fc.verifierErr = errors.New("boom")
		require.Error(t, a.Unlock(ctx, []byte(strongMaster)))
		assert.Equal(t, vault.StateLocked, a.Status().State)
	})
}

func TestAuth_LogoutIsBestEffort(t *testing.T) {
	fc := newFakeClient()
	sess, store := newSession(t)
	a := NewAuthService(fc, sess, 0, nil)
	ctx := context.Background()

	require.NoError(t, a.Login(ctx, "a@b.c", []byte("pw")))

	fc.logoutErr = client.ErrUnavailable
	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, 1, fc.logouts)
	assert.Empty(t, fc.token)
	assert.False(t, a.Status().LoggedIn)

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, data.LoggedIn())

	// already logged out: no server call
	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, 1, fc.logouts)
}

func TestAuth_RestoredSessionSetsToken(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	sess, store := newSession(t)
	require.NoError(t, sess.Login(ctx, "persisted", fc.salt, nil))

	restored, err := vault.Open(ctx, store, fastKDF)
	require.NoError(t, err)

	NewAuthService(fc, restored, 0, nil)
	assert.Equal(t, "persisted", fc.token)
}

func TestAuth_ExpiredTokenDuringEnroll(t *testing.T) {
	fc := newFakeClient()
	sess, _ := newSession(t)
	a := NewAuthService(fc, sess, 0, nil)
	ctx := context.Background()
	require.NoError(t, a.Login(ctx, "a@b.c", []byte("pw")))

	fc.entryErr = client.ErrUnauthorized
	require.ErrorIs(t, a.Unlock(ctx, []byte(strongMaster)), vault.ErrSessionExpired)
	assert.Equal(t, vault.StateLoggedOut, a.Status().State)
}

func TestAuth_PingAndClose(t *testing.T) {
	fc := newFakeClient()
	sess, _ := newSession(t)
	a := NewAuthService(fc, sess, 0, nil)
	require.NoError(t, a.Ping(context.Background()))
	require.NoError(t, a.Close())
	assert.True(t, fc.closed)
}
