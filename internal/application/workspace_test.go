package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspaceBridges struct {
	characters  *fakeBridge[domain.Character]
	inventories *fakeBridge[domain.Inventory]
	notes       *fakeBridge[domain.Note]
	spells      *fakeBridge[domain.Spell]
	equipment   *fakeBridge[domain.Equipment]
	monsters    *fakeBridge[domain.Monster]
	users       *fakeBridge[domain.User]
	campaigns   *fakeBridge[domain.Campaign]
}

func newTestWorkspace(t *testing.T, opts StoreOptions) (*Workspace, workspaceBridges) {
	t.Helper()

	b := workspaceBridges{
		characters:  &fakeBridge[domain.Character]{},
		inventories: &fakeBridge[domain.Inventory]{},
		notes:       &fakeBridge[domain.Note]{},
		spells:      &fakeBridge[domain.Spell]{},
		equipment:   &fakeBridge[domain.Equipment]{},
		monsters:    &fakeBridge[domain.Monster]{},
		users:       &fakeBridge[domain.User]{},
		campaigns:   &fakeBridge[domain.Campaign]{},
	}

	ws := NewWorkspace(WorkspaceBridges{
		Characters:  b.characters,
		Inventories: b.inventories,
		Notes:       b.notes,
		Spells:      b.spells,
		Equipment:   b.equipment,
		Monsters:    b.monsters,
		Users:       b.users,
		Campaigns:   b.campaigns,
	}, opts)
	return ws, b
}

func TestWorkspaceRefreshAllSkipsAdminStoresForPlayers(t *testing.T) {
	ws, b := newTestWorkspace(t, StoreOptions{})

	b.characters.list = func(domain.Scope) ([]domain.Character, error) {
		return []domain.Character{{ID: "c-1", Name: "Aria"}}, nil
	}
	b.notes.list = func(domain.Scope) ([]domain.Note, error) {
		return []domain.Note{{ID: "n-1", Title: "Session 1"}}, nil
	}
	var adminCalls atomic.Int32
	b.users.list = func(domain.Scope) ([]domain.User, error) {
		adminCalls.Add(1)
		return []domain.User{{ID: "u-1", Username: "dm"}}, nil
	}

	require.NoError(t, ws.RefreshAll(context.Background(), false))
	assert.Equal(t, 1, ws.Characters.Len())
	assert.Equal(t, 1, ws.Notes.Len())
	assert.Zero(t, ws.Users.Len())
	assert.Zero(t, adminCalls.Load())

	require.NoError(t, ws.RefreshAll(context.Background(), true))
	assert.Equal(t, 1, ws.Users.Len())
}

func TestWorkspaceRefreshAllReportsFailedStore(t *testing.T) {
	ws, b := newTestWorkspace(t, StoreOptions{})
	b.spells.list = func(domain.Scope) ([]domain.Spell, error) { return nil, errors.New("timeout") }

	err := ws.RefreshAll(context.Background(), false)
	require.ErrorContains(t, err, "refresh spell")
}

func TestWorkspaceRefreshAllFailureDoesNotAbortSlowerStores(t *testing.T) {
	ws, b := newTestWorkspace(t, StoreOptions{})
	b.spells.list = func(domain.Scope) ([]domain.Spell, error) { return nil, errors.New("spells unavailable") }
	b.characters.listCtx = func(ctx context.Context, _ domain.Scope) ([]domain.Character, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
			return []domain.Character{{ID: "c-1", Name: "Aria"}}, nil
		}
	}
	b.notes.list = func(domain.Scope) ([]domain.Note, error) { return nil, errors.New("notes unavailable") }

	err := ws.RefreshAll(context.Background(), false)
	require.ErrorContains(t, err, "refresh spell")
	require.ErrorContains(t, err, "refresh note")
	assert.NotErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ws.Characters.Len())
}

func TestWorkspaceEvictAndHydrate(t *testing.T) {
	cache := newCache(t)
	ws, b := newTestWorkspace(t, StoreOptions{Cache: cache})
	b.characters.list = func(domain.Scope) ([]domain.Character, error) {
		return []domain.Character{{ID: "c-1", Name: "Aria"}}, nil
	}
	b.campaigns.list = func(domain.Scope) ([]domain.Campaign, error) {
		return []domain.Campaign{{ID: "camp-1", Name: "Lost Mine"}}, nil
	}
	require.NoError(t, ws.RefreshAll(context.Background(), false))

	restored, _ := newTestWorkspace(t, StoreOptions{Cache: cache})
	require.NoError(t, restored.Hydrate(context.Background()))
	assert.Equal(t, 1, restored.Characters.Len())
	assert.Equal(t, 1, restored.Campaigns.Len())

	require.NoError(t, ws.Evict(context.Background()))
	assert.Zero(t, ws.Characters.Len())

	empty, _ := newTestWorkspace(t, StoreOptions{Cache: cache})
	require.NoError(t, empty.Hydrate(context.Background()))
	assert.Zero(t, empty.Characters.Len())
	assert.Zero(t, empty.Campaigns.Len())
}
