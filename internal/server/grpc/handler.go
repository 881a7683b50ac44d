package grpc

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/rpc"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func (s *GRPCServer) Signup(ctx context.Context, req *rpc.SignupRequest) (*rpc.SignupResponse, error) {
	res, err := s.users.Signup(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Registered", "user_id", res.UserID)
	return &rpc.SignupResponse{AccessToken: res.AccessToken, Salt: res.Salt}, nil
}

func (s *GRPCServer) Signin(ctx context.Context, req *rpc.SigninRequest) (*rpc.SigninResponse, error) {
	res, err := s.users.Signin(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.SigninResponse{AccessToken: res.AccessToken, Salt: res.Salt, Verifier: res.Verifier}, nil
}

func (s *GRPCServer) SetVerifier(ctx context.Context, req *rpc.SetVerifierRequest) (*rpc.SetVerifierResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetVerifier(ctx, userID, req.Verifier); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.SetVerifierResponse{}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *rpc.LogoutRequest) (*rpc.LogoutResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.Logout(ctx, claims.UserID, claims.ID, claims.ExpiresAt.Time); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.LogoutResponse{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

func envelopeFields(env *rpc.Envelope) (string, string, string, error) {
	if env == nil {
		return "", "", "", status.Error(codes.InvalidArgument, "envelope is required")
	}
	return env.Ciphertext, env.Nonce, env.AuthTag, nil
}

func toRPCEntry(e *models.Entry, withEnvelope bool) *rpc.Entry {
	out := &rpc.Entry{
		ID:        e.ID,
		Label:     e.Label,
		CreatedAt: timestamppb.New(e.CreatedAt),
		UpdatedAt: timestamppb.New(e.UpdatedAt),
	}
	if withEnvelope {
		out.Envelope = &rpc.Envelope{Ciphertext: e.Ciphertext, Nonce: e.Nonce, AuthTag: e.AuthTag}
	}
	return out
}

func (s *GRPCServer) CreateEntry(ctx context.Context, req *rpc.CreateEntryRequest) (*rpc.CreateEntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	ct, nonce, tag, err := envelopeFields(req.Envelope)
	if err != nil {
		return nil, err
	}
	e, err := s.entries.Create(ctx, userID, req.Label, ct, nonce, tag)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.CreateEntryResponse{Entry: toRPCEntry(e, false)}, nil
}

func (s *GRPCServer) ListEntries(ctx context.Context, _ *rpc.ListEntriesRequest) (*rpc.ListEntriesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.entries.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	resp := &rpc.ListEntriesResponse{Entries: make([]*rpc.Entry, 0, len(items))}
	for _, e := range items {
		resp.Entries = append(resp.Entries, toRPCEntry(e, false))
	}
	return resp, nil
}

func (s *GRPCServer) GetEntry(ctx context.Context, req *rpc.GetEntryRequest) (*rpc.GetEntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.entries.Get(ctx, userID, req.Label)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.GetEntryResponse{Entry: toRPCEntry(e, true)}, nil
}

func (s *GRPCServer) UpdateEntry(ctx context.Context, req *rpc.UpdateEntryRequest) (*rpc.UpdateEntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	ct, nonce, tag, err := envelopeFields(req.Envelope)
	if err != nil {
		return nil, err
	}
	e, err := s.entries.Update(ctx, userID, req.Label, ct, nonce, tag)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.UpdateEntryResponse{Entry: toRPCEntry(e, false)}, nil
}

func (s *GRPCServer) DeleteEntry(ctx context.Context, req *rpc.DeleteEntryRequest) (*rpc.DeleteEntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Delete(ctx, userID, req.Label); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.DeleteEntryResponse{}, nil
}

func (s *GRPCServer) Export(ctx context.Context, _ *rpc.ExportRequest) (*rpc.ExportResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.entries.Export(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.ExportResponse{
		URL:       res.URL,
		Key:       res.Key,
		Count:     int32(res.Count),
		ExpiresAt: timestamppb.New(res.ExpiresAt),
	}, nil
}
