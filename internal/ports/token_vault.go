package ports

import "context"

// TokenVault persists session material between runs, the way a browser keeps
// the bearer token in local storage.
type TokenVault interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
