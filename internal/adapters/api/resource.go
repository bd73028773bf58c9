package api

import (
	"context"
	"net/http"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
)

// Resource speaks the conventional REST verbs for one collection path.
type Resource[T domain.Entity] struct {
	client *Client
	path   string
}

var _ ports.ResourceBridge[domain.Character] = (*Resource[domain.Character])(nil)

func NewResource[T domain.Entity](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

func (r *Resource[T]) List(ctx context.Context, scope domain.Scope) ([]T, error) {
	endpoint := r.path
	if !scope.IsZero() {
		endpoint = joinPath(r.path, scope.Field, scope.ID)
	}

	items, err := Do[[]T](ctx, r.client, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []T{}, nil
	}
	return *items, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	return Do[T](ctx, r.client, http.MethodGet, joinPath(r.path, id), nil)
}

func (r *Resource[T]) Create(ctx context.Context, draft T) (*T, error) {
	return Do[T](ctx, r.client, http.MethodPost, r.path, draft)
}

func (r *Resource[T]) Update(ctx context.Context, id string, entity T) (*T, error) {
	return Do[T](ctx, r.client, http.MethodPut, joinPath(r.path, id), entity)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.Send(ctx, http.MethodDelete, joinPath(r.path, id), nil)
}

// Bridges groups the bridge of every resource the client knows.
type Bridges struct {
	Characters  *Resource[domain.Character]
	Inventories *Inventories
	Notes       *Resource[domain.Note]
	Spells      *Resource[domain.Spell]
	Equipment   *Resource[domain.Equipment]
	Monsters    *Resource[domain.Monster]
	Users       *Resource[domain.User]
	Campaigns   *Campaigns
	Auth        *Auth
	Admin       *Admin
}

func NewBridges(client *Client) Bridges {
	return Bridges{
		Characters:  NewResource[domain.Character](client, "character"),
		Inventories: &Inventories{Resource: NewResource[domain.Inventory](client, "inventory")},
		Notes:       NewResource[domain.Note](client, "note"),
		Spells:      NewResource[domain.Spell](client, "spell"),
		Equipment:   NewResource[domain.Equipment](client, "equipment"),
		Monsters:    NewResource[domain.Monster](client, "monster"),
		Users:       NewResource[domain.User](client, "user"),
		Campaigns:   &Campaigns{Resource: NewResource[domain.Campaign](client, "campaign")},
		Auth:        &Auth{client: client},
		Admin:       &Admin{client: client},
	}
}
