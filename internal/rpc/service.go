package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "zkvault.VaultService"

const (
	VaultService_Signup_FullMethodName      = "/zkvault.VaultService/Signup"
	VaultService_Signin_FullMethodName      = "/zkvault.VaultService/Signin"
	VaultService_SetVerifier_FullMethodName = "/zkvault.VaultService/SetVerifier"
	VaultService_Logout_FullMethodName      = "/zkvault.VaultService/Logout"
	VaultService_Ping_FullMethodName        = "/zkvault.VaultService/Ping"
	VaultService_CreateEntry_FullMethodName = "/zkvault.VaultService/CreateEntry"
	VaultService_ListEntries_FullMethodName = "/zkvault.VaultService/ListEntries"
	VaultService_GetEntry_FullMethodName    = "/zkvault.VaultService/GetEntry"
	VaultService_UpdateEntry_FullMethodName = "/zkvault.VaultService/UpdateEntry"
	VaultService_DeleteEntry_FullMethodName = "/zkvault.VaultService/DeleteEntry"
	VaultService_Export_FullMethodName      = "/zkvault.VaultService/Export"
)

// VaultServiceClient is the client API for VaultService.
type VaultServiceClient interface {
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error)
	Signin(ctx context.Context, in *SigninRequest, opts ...grpc.CallOption) (*SigninResponse, error)
	SetVerifier(ctx context.Context, in *SetVerifierRequest, opts ...grpc.CallOption) (*SetVerifierResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	CreateEntry(ctx context.Context, in *CreateEntryRequest, opts ...grpc.CallOption) (*CreateEntryResponse, error)
	ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error)
	GetEntry(ctx context.Context, in *GetEntryRequest, opts ...grpc.CallOption) (*GetEntryResponse, error)
	UpdateEntry(ctx context.Context, in *UpdateEntryRequest, opts ...grpc.CallOption) (*UpdateEntryResponse, error)
	DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error)
	Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error)
}

type vaultServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewVaultServiceClient wraps cc. Every call is sent with the JSON codec.
func NewVaultServiceClient(cc grpc.ClientConnInterface) VaultServiceClient {
	return &vaultServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, VaultService_Signup_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Signin(ctx context.Context, in *SigninRequest, opts ...grpc.CallOption) (*SigninResponse, error) {
	return invoke[SigninResponse](ctx, c.cc, VaultService_Signin_FullMethodName, in, opts)
}

func (c *vaultServiceClient) SetVerifier(ctx context.Context, in *SetVerifierRequest, opts ...grpc.CallOption) (*SetVerifierResponse, error) {
	return invoke[SetVerifierResponse](ctx, c.cc, VaultService_SetVerifier_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, VaultService_Logout_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, VaultService_Ping_FullMethodName, in, opts)
}

func (c *vaultServiceClient) CreateEntry(ctx context.Context, in *CreateEntryRequest, opts ...grpc.CallOption) (*CreateEntryResponse, error) {
	return invoke[CreateEntryResponse](ctx, c.cc, VaultService_CreateEntry_FullMethodName, in, opts)
}

func (c *vaultServiceClient) ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c.cc, VaultService_ListEntries_FullMethodName, in, opts)
}

func (c *vaultServiceClient) GetEntry(ctx context.Context, in *GetEntryRequest, opts ...grpc.CallOption) (*GetEntryResponse, error) {
	return invoke[GetEntryResponse](ctx, c.cc, VaultService_GetEntry_FullMethodName, in, opts)
}

func (c *vaultServiceClient) UpdateEntry(ctx context.Context, in *UpdateEntryRequest, opts ...grpc.CallOption) (*UpdateEntryResponse, error) {
	return invoke[UpdateEntryResponse](ctx, c.cc, VaultService_UpdateEntry_FullMethodName, in, opts)
}

func (c *vaultServiceClient) DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error) {
	return invoke[DeleteEntryResponse](ctx, c.cc, VaultService_DeleteEntry_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportResponse](ctx, c.cc, VaultService_Export_FullMethodName, in, opts)
}

// VaultServiceServer is the server API for VaultService. Implementations
// embed UnimplementedVaultServiceServer.
type VaultServiceServer interface {
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Signin(context.Context, *SigninRequest) (*SigninResponse, error)
	SetVerifier(context.Context, *SetVerifierRequest) (*SetVerifierResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	CreateEntry(context.Context, *CreateEntryRequest) (*CreateEntryResponse, error)
	ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error)
	GetEntry(context.Context, *GetEntryRequest) (*GetEntryResponse, error)
	UpdateEntry(context.Context, *UpdateEntryRequest) (*UpdateEntryResponse, error)
	DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error)
	Export(context.Context, *ExportRequest) (*ExportResponse, error)
	mustEmbedUnimplementedVaultServiceServer()
}

type UnimplementedVaultServiceServer struct{}

func (UnimplementedVaultServiceServer) Signup(context.Context, *SignupRequest) (*SignupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}
func (UnimplementedVaultServiceServer) Signin(context.Context, *SigninRequest) (*SigninResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signin not implemented")
}
func (UnimplementedVaultServiceServer) SetVerifier(context.Context, *SetVerifierRequest) (*SetVerifierResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetVerifier not implemented")
}
func (UnimplementedVaultServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedVaultServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedVaultServiceServer) CreateEntry(context.Context, *CreateEntryRequest) (*CreateEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateEntry not implemented")
}
func (UnimplementedVaultServiceServer) ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEntries not implemented")
}
func (UnimplementedVaultServiceServer) GetEntry(context.Context, *GetEntryRequest) (*GetEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEntry not implemented")
}
func (UnimplementedVaultServiceServer) UpdateEntry(context.Context, *UpdateEntryRequest) (*UpdateEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateEntry not implemented")
}
func (UnimplementedVaultServiceServer) DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteEntry not implemented")
}
func (UnimplementedVaultServiceServer) Export(context.Context, *ExportRequest) (*ExportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Export not implemented")
}
func (UnimplementedVaultServiceServer) mustEmbedUnimplementedVaultServiceServer() {}

func RegisterVaultServiceServer(s grpc.ServiceRegistrar, srv VaultServiceServer) {
	s.RegisterService(&VaultService_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](fullMethod string, call func(VaultServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VaultServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(VaultServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// VaultService_ServiceDesc is the grpc.ServiceDesc for VaultService.
var VaultService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Signup", Handler: unaryHandler(VaultService_Signup_FullMethodName, VaultServiceServer.Signup)},
		{MethodName: "Signin", Handler: unaryHandler(VaultService_Signin_FullMethodName, VaultServiceServer.Signin)},
		{MethodName: "SetVerifier", Handler: unaryHandler(VaultService_SetVerifier_FullMethodName, VaultServiceServer.SetVerifier)},
		{MethodName: "Logout", Handler: unaryHandler(VaultService_Logout_FullMethodName, VaultServiceServer.Logout)},
		{MethodName: "Ping", Handler: unaryHandler(VaultService_Ping_FullMethodName, VaultServiceServer.Ping)},
		{MethodName: "CreateEntry", Handler: unaryHandler(VaultService_CreateEntry_FullMethodName, VaultServiceServer.CreateEntry)},
		{MethodName: "ListEntries", Handler: unaryHandler(VaultService_ListEntries_FullMethodName, VaultServiceServer.ListEntries)},
		{MethodName: "GetEntry", Handler: unaryHandler(VaultService_GetEntry_FullMethodName, VaultServiceServer.GetEntry)},
		{MethodName: "UpdateEntry", Handler: unaryHandler(VaultService_UpdateEntry_FullMethodName, VaultServiceServer.UpdateEntry)},
		{MethodName: "DeleteEntry", Handler: unaryHandler(VaultService_DeleteEntry_FullMethodName, VaultServiceServer.DeleteEntry)},
		{MethodName: "Export", Handler: unaryHandler(VaultService_Export_FullMethodName, VaultServiceServer.Export)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/rpc/service.go",
}
