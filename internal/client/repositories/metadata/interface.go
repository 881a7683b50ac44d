// Package metadata keeps small named records in the metadata table of the
// client's SQLite database. The vault session (token, salt, verifier) lives
// here.
package metadata

import (
	"context"
)

// Repository stores opaque values under string keys. Get and List leave
// missing keys out of the result.
type Repository interface {
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)
	Put(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
