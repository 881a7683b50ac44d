package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/rpc"
	"github.com/dmitrijs2005/zkvault/internal/server/auth"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newServer(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, &fakeUser{}, &fakeEntry{}, "secret")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error for invalid address")
	}
}

func dialBufconn(t *testing.T, s *GRPCServer) rpc.VaultServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-done
	})
	return rpc.NewVaultServiceClient(conn)
}

func TestServer_EndToEnd(t *testing.T) {
	tok, err := auth.GenerateToken("u1", []byte("secret"), time.Hour)
	require.NoError(t, err)

	u := &fakeUser{signinResp: &services.AuthResult{UserID: "u1", AccessToken: tok, Salt: []byte("salt")}}
	e := &fakeEntry{
		entry: &models.Entry{ID: "e1", Label: "github", Ciphertext: "aa", Nonce: "bb", AuthTag: "cc",
			CreatedAt: time.Unix(100, 0), UpdatedAt: time.Unix(200, 0)},
	}
	client := dialBufconn(t, newServer(u, e))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ping, err := client.Ping(ctx, &rpc.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", ping.GetStatus())

	in, err := client.Signin(ctx, &rpc.SigninRequest{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, []byte("salt"), in.Salt)

	_, err = client.GetEntry(ctx, &rpc.GetEntryRequest{Label: "github"})
	requireCode(t, err, codes.Unauthenticated)

	authCtx := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+in.AccessToken)
	got, err := client.GetEntry(authCtx, &rpc.GetEntryRequest{Label: "github"})
	require.NoError(t, err)
	assert.Equal(t, "u1", e.gotUser)
	assert.Equal(t, &rpc.Envelope{Ciphertext: "aa", Nonce: "bb", AuthTag: "cc"}, got.Entry.Envelope)
	assert.Equal(t, int64(200), got.Entry.UpdatedAt.AsTime().Unix())

	_, err = client.Logout(authCtx, &rpc.LogoutRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, u.loggedOutJTI)
}
