package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// DefaultTimeout bounds every call that has no deadline of its own.
const DefaultTimeout = 15 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.VaultServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the current bearer token, if any, and a
// default deadline.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewVaultClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewVaultServiceClient(conn)
	return nil
}

func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Signup(ctx context.Context, email, username, password string) (*AuthResult, error) {
	resp, err := s.client.Signup(ctx, &rpc.SignupRequest{Email: email, Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.SetAccessToken(resp.AccessToken)
	return &AuthResult{AccessToken: resp.AccessToken, Salt: resp.Salt}, nil
}

func (s *GRPCClient) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	resp, err := s.client.Signin(ctx, &rpc.SigninRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.SetAccessToken(resp.AccessToken)
	return &AuthResult{AccessToken: resp.AccessToken, Salt: resp.Salt, Verifier: resp.Verifier}, nil
}

func (s *GRPCClient) SetVerifier(ctx context.Context, verifier []byte) error {
	if _, err := s.client.SetVerifier(ctx, &rpc.SetVerifierRequest{Verifier: verifier}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Logout(ctx context.Context) error {
	if _, err := s.client.Logout(ctx, &rpc.LogoutRequest{}); err != nil {
		return s.mapError(err)
	}
	s.SetAccessToken("")
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetStatus() != "OK" {
		return ErrUnavailable
	}
	return nil
}

func toRPCEnvelope(env *models.Envelope) *rpc.Envelope {
	if env == nil {
		return nil
	}
	return &rpc.Envelope{Ciphertext: env.Ciphertext, Nonce: env.Nonce, AuthTag: env.AuthTag}
}

func asTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}

func fromRPCEntry(e *rpc.Entry) *models.StoredEntry {
	if e == nil {
		return nil
	}
	out := &models.StoredEntry{
		ID:        e.ID,
		Label:     e.Label,
		CreatedAt: asTime(e.CreatedAt),
		UpdatedAt: asTime(e.UpdatedAt),
	}
	if e.Envelope != nil {
		out.Envelope = &models.Envelope{Ciphertext: e.Envelope.Ciphertext, Nonce: e.Envelope.Nonce, AuthTag: e.Envelope.AuthTag}
	}
	return out
}

func (s *GRPCClient) CreateEntry(ctx context.Context, label string, env *models.Envelope) (*models.StoredEntry, error) {
	resp, err := s.client.CreateEntry(ctx, &rpc.CreateEntryRequest{Label: label, Envelope: toRPCEnvelope(env)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromRPCEntry(resp.Entry), nil
}

func (s *GRPCClient) ListEntries(ctx context.Context) ([]*models.StoredEntry, error) {
	resp, err := s.client.ListEntries(ctx, &rpc.ListEntriesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	out := make([]*models.StoredEntry, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		out = append(out, fromRPCEntry(e))
	}
	return out, nil
}

func (s *GRPCClient) GetEntry(ctx context.Context, label string) (*models.StoredEntry, error) {
	resp, err := s.client.GetEntry(ctx, &rpc.GetEntryRequest{Label: label})
	if err != nil {
		return nil, s.mapError(err)
	}
	e := fromRPCEntry(resp.Entry)
	if e == nil || e.Envelope == nil {
		return nil, fmt.Errorf("rpc error: entry %q returned without envelope", label)
	}
	return e, nil
}

func (s *GRPCClient) UpdateEntry(ctx context.Context, label string, env *models.Envelope) (*models.StoredEntry, error) {
	resp, err := s.client.UpdateEntry(ctx, &rpc.UpdateEntryRequest{Label: label, Envelope: toRPCEnvelope(env)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromRPCEntry(resp.Entry), nil
}

func (s *GRPCClient) DeleteEntry(ctx context.Context, label string) error {
	if _, err := s.client.DeleteEntry(ctx, &rpc.DeleteEntryRequest{Label: label}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Export(ctx context.Context) (*ExportInfo, error) {
	resp, err := s.client.Export(ctx, &rpc.ExportRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &ExportInfo{
		URL:       resp.URL,
		Key:       resp.Key,
		Count:     int(resp.Count),
		ExpiresAt: asTime(resp.ExpiresAt),
	}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == "invalid credentials" {
			return ErrInvalidCredentials
		}
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.NotFound:
		return ErrNotFound
	case codes.FailedPrecondition:
		return ErrVerifierAlreadySet
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
