package ports

import (
	"context"
	"io"

	"github.com/bnema/camp-cli/internal/domain"
)

// ResourceBridge is the REST surface of one resource type. A nil result with a nil
// error means the server answered with an empty body.
type ResourceBridge[T domain.Entity] interface {
	List(ctx context.Context, scope domain.Scope) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, draft T) (*T, error)
	Update(ctx context.Context, id string, entity T) (*T, error)
	Delete(ctx context.Context, id string) error
}

type AuthBridge interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (string, error)
}

type InventoryMover interface {
	MoveItem(ctx context.Context, fromID, equipmentID, toID string, quantity int) error
}

type CampaignRoster interface {
	AddCharacter(ctx context.Context, campaignID, characterID string) error
	RemoveCharacter(ctx context.Context, campaignID, characterID string) error
}

type AdminBridge interface {
	CacheInfo(ctx context.Context) (domain.CacheInfo, error)
	ClearCache(ctx context.Context) error
	Backup(ctx context.Context, collection string, w io.Writer) (int64, error)
	Restore(ctx context.Context, collection, filename string, r io.Reader) error
}
