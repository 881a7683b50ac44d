// Package client talks to the vault server.
//
// Client is the transport-agnostic contract used by the client services;
// GRPCClient implements it over gRPC with the JSON codec from internal/rpc.
// It attaches the bearer token to every call and maps status codes to the
// sentinel errors in errors.go, so callers match with errors.Is.
//
// The package also opens the local SQLite database (InitDatabase) and
// applies its embedded goose migrations.
package client
