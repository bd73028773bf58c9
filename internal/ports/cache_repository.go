package ports

import (
	"context"
	"encoding/json"
	"time"
)

// CacheSnapshot is the persisted copy of one resource store.
type CacheSnapshot struct {
	Key      string
	Version  int
	Selected string
	// Stale lists the entries whose last write the server rejected.
	Stale    []string
	Entries  json.RawMessage
	SavedAt  time.Time
}

type CacheRepository interface {
	Load(ctx context.Context, key string) (CacheSnapshot, bool, error)
	Save(ctx context.Context, snapshot CacheSnapshot) error
	Clear(ctx context.Context, key string) error
	ClearAll(ctx context.Context) error
}
