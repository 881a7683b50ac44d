// Package grpc exposes the vault services over gRPC using the JSON codec
// from internal/rpc.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/rpc"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Signup(ctx context.Context, email, username, password string) (*services.AuthResult, error)
	Signin(ctx context.Context, email, password string) (*services.AuthResult, error)
	SetVerifier(ctx context.Context, userID string, verifier []byte) error
	Logout(ctx context.Context, userID, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type entrySvc interface {
	Create(ctx context.Context, userID, label, ciphertext, nonce, authTag string) (*models.Entry, error)
	List(ctx context.Context, userID string) ([]*models.Entry, error)
	Get(ctx context.Context, userID, label string) (*models.Entry, error)
	Update(ctx context.Context, userID, label, ciphertext, nonce, authTag string) (*models.Entry, error)
	Delete(ctx context.Context, userID, label string) error
	Export(ctx context.Context, userID string) (*services.ExportResult, error)
}

type GRPCServer struct {
	rpc.UnimplementedVaultServiceServer
	address   string
	users     userSvc
	entries   entrySvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, es entrySvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		entries:   es,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds the grpc.Server with interceptors and the vault service
// registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	rpc.RegisterVaultServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
