package application

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/camp-cli/internal/adapters/notify"
	tomlrepo "github.com/bnema/camp-cli/internal/adapters/repo/toml"
	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
	"github.com/bnema/camp-cli/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeBridge answers like the API would unless a hook overrides a verb.
type fakeBridge[T domain.Entity] struct {
	mu      sync.Mutex
	list    func(domain.Scope) ([]T, error)
	// listCtx wins over list when set; it sees the caller's context.
	listCtx func(context.Context, domain.Scope) ([]T, error)
	get     func(string) (*T, error)
	create  func(T) (*T, error)
	update  func(string, T) (*T, error)
	delete  func(string) error
	updates []T
	deletes []string
}

func (b *fakeBridge[T]) List(ctx context.Context, scope domain.Scope) ([]T, error) {
	if b.listCtx != nil {
		return b.listCtx(ctx, scope)
	}
	if b.list == nil {
		return nil, nil
	}
	return b.list(scope)
}

func (b *fakeBridge[T]) Get(_ context.Context, id string) (*T, error) {
	if b.get == nil {
		return nil, domain.ErrNotFound
	}
	return b.get(id)
}

func (b *fakeBridge[T]) Create(_ context.Context, draft T) (*T, error) {
	if b.create == nil {
		return &draft, nil
	}
	return b.create(draft)
}

func (b *fakeBridge[T]) Update(_ context.Context, id string, entity T) (*T, error) {
	b.mu.Lock()
	b.updates = append(b.updates, entity)
	hook := b.update
	b.mu.Unlock()

	if hook == nil {
		return &entity, nil
	}
	return hook(id, entity)
}

func (b *fakeBridge[T]) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	b.deletes = append(b.deletes, id)
	b.mu.Unlock()

	if b.delete == nil {
		return nil
	}
	return b.delete(id)
}

func (b *fakeBridge[T]) sentUpdates() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]T(nil), b.updates...)
}

func seedCharacters(t *testing.T, store *Store[domain.Character], bridge *fakeBridge[domain.Character], characters ...domain.Character) {
	t.Helper()

	bridge.list = func(domain.Scope) ([]domain.Character, error) { return characters, nil }
	_, err := store.LoadAll(context.Background(), domain.Scope{})
	require.NoError(t, err)
	bridge.list = nil
}

func newCharacterStore(t *testing.T, opts StoreOptions) (*Store[domain.Character], *fakeBridge[domain.Character], *notify.Recorder) {
	t.Helper()

	bridge := &fakeBridge[domain.Character]{}
	recorder := &notify.Recorder{}
	opts.Notifier = recorder
	return NewStore[domain.Character](domain.ResourceCharacter, bridge, opts), bridge, recorder
}

func TestStoreLoadAllReplacesContents(t *testing.T) {
	store, bridge, _ := newCharacterStore(t, StoreOptions{})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria"}, domain.Character{ID: "c-2", Name: "Bram"})
	require.True(t, store.Select(context.Background(), "c-2"))

	bridge.list = func(domain.Scope) ([]domain.Character, error) {
		return []domain.Character{{ID: "c-1", Name: "Aria"}}, nil
	}
	items, err := store.LoadAll(context.Background(), domain.Scope{})
	require.NoError(t, err)

	assert.Len(t, items, 1)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, EntryLoaded, store.State("c-1"))
	assert.Equal(t, EntryUnloaded, store.State("c-2"))
	assert.Empty(t, store.SelectedID(), "selection of a vanished entry is dropped")
}

func TestStoreLoadAllFailureKeepsPreviousContents(t *testing.T) {
	store, bridge, recorder := newCharacterStore(t, StoreOptions{})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria"})

	bridge.list = func(domain.Scope) ([]domain.Character, error) { return nil, errors.New("boom") }
	_, err := store.LoadAll(context.Background(), domain.CharacterScope("c-1"))
	require.Error(t, err)

	assert.Equal(t, []domain.Character{{ID: "c-1", Name: "Aria"}}, store.Items())
	assert.Equal(t, []domain.NotificationLevel{domain.NotifyError}, recorder.Levels())
}

func TestStoreLoadAllPassesScope(t *testing.T) {
	bridge := &fakeBridge[domain.Inventory]{}
	store := NewStore[domain.Inventory](domain.ResourceInventory, bridge, StoreOptions{})

	var got domain.Scope
	bridge.list = func(scope domain.Scope) ([]domain.Inventory, error) {
		got = scope
		return []domain.Inventory{{ID: "inv-1", CharacterID: "c-1", Name: "Backpack"}}, nil
	}

	_, err := store.LoadAll(context.Background(), domain.CharacterScope("c-1"))
	require.NoError(t, err)
	assert.Equal(t, domain.CharacterScope("c-1"), got)
}

func TestStoreSelect(t *testing.T) {
	store, bridge, _ := newCharacterStore(t, StoreOptions{})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria"}, domain.Character{ID: "c-2", Name: "Bram"})

	assert.True(t, store.Select(context.Background(), "c-1"))
	assert.True(t, store.Select(context.Background(), "c-1"))
	selected, ok := store.Selected()
	require.True(t, ok)
	assert.Equal(t, "Aria", selected.Name)

	assert.False(t, store.Select(context.Background(), "missing"))
	assert.Empty(t, store.SelectedID())
	_, ok = store.Selected()
	assert.False(t, ok)
}

func TestStoreUpdateIsVisibleBeforeServerResponds(t *testing.T) {
	store, bridge, recorder := newCharacterStore(t, StoreOptions{})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria", Level: 1})

	sent := make(chan struct{})
	release := make(chan struct{})
	bridge.update = func(id string, c domain.Character) (*domain.Character, error) {
		close(sent)
		<-release
		c.Name = strings.ToUpper(c.Name)
		return &c, nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := store.Update(context.Background(), "c-1", func(c *domain.Character) error {
			c.Level = 2
			return nil
		})
		done <- err
	}()

	<-sent
	pending, ok := store.Get("c-1")
	require.True(t, ok)
	assert.Equal(t, 2, pending.Level)
	assert.Equal(t, "Aria", pending.Name)
	assert.Equal(t, EntryOptimistic, store.State("c-1"))

	close(release)
	require.NoError(t, <-done)

	reconciled, ok := store.Get("c-1")
	require.True(t, ok)
	assert.Equal(t, domain.Character{ID: "c-1", Name: "ARIA", Level: 2}, reconciled)
	assert.Equal(t, EntryReconciled, store.State("c-1"))
	assert.Equal(t, []domain.NotificationLevel{domain.NotifySuccess}, recorder.Levels())
}

func TestStoreUpdateEmptyResponseKeepsLocalValue(t *testing.T) {
	store, bridge, _ := newCharacterStore(t, StoreOptions{})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria"})
	bridge.update = func(string, domain.Character) (*domain.Character, error) { return nil, nil }

	got, err := store.Update(context.Background(), "c-1", func(c *domain.Character) error {
		c.Name = "Aria the Bold"
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "Aria the Bold", got.Name)
	stored, _ := store.Get("c-1")
	assert.Equal(t, "Aria the Bold", stored.Name)
	assert.Equal(t, EntryReconciled, store.State("c-1"))
}

func TestStoreUpdateFailureKeepsOptimisticValueByDefault(t *testing.T) {
	store, bridge, recorder := newCharacterStore(t, StoreOptions{})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria", Level: 1})
	bridge.update = func(string, domain.Character) (*domain.Character, error) { return nil, errors.New("server down") }

	_, err := store.Update(context.Background(), "c-1", func(c *domain.Character) error {
		c.Level = 5
		return nil
	})
	require.Error(t, err)

	stored, _ := store.Get("c-1")
	assert.Equal(t, 5, stored.Level)
	assert.Equal(t, EntryStale, store.State("c-1"))
	require.Len(t, recorder.All(), 1)
	assert.Equal(t, "could not update character", recorder.All()[0].Title)
}

func TestStoreUpdateFailureRollsBackWhenConfigured(t *testing.T) {
	store, bridge, _ := newCharacterStore(t, StoreOptions{Policy: FailurePolicyFor(true)})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria", Level: 1})
	bridge.update = func(string, domain.Character) (*domain.Character, error) { return nil, errors.New("server down") }

	_, err := store.Update(context.Background(), "c-1", func(c *domain.Character) error {
		c.Level = 5
		return nil
	})
	require.Error(t, err)

	stored, _ := store.Get("c-1")
	assert.Equal(t, 1, stored.Level)
	assert.Equal(t, EntryLoaded, store.State("c-1"))
}

func TestStoreRollbackLeavesNewerWriteAlone(t *testing.T) {
	store, bridge, _ := newCharacterStore(t, StoreOptions{Policy: RollbackOnFailure{}})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria", Level: 1})

	firstSent := make(chan struct{})
	releaseFirst := make(chan struct{})
	bridge.update = func(_ string, c domain.Character) (*domain.Character, error) {
		if c.Level == 2 {
			close(firstSent)
			<-releaseFirst
			return nil, errors.New("rejected")
		}
		return &c, nil
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := store.Update(context.Background(), "c-1", func(c *domain.Character) error {
			c.Level = 2
			return nil
		})
		firstDone <- err
	}()
	<-firstSent

	_, err := store.Update(context.Background(), "c-1", func(c *domain.Character) error {
		c.Level = 3
		return nil
	})
	require.NoError(t, err)

	close(releaseFirst)
	require.Error(t, <-firstDone)

	stored, _ := store.Get("c-1")
	assert.Equal(t, 3, stored.Level)
	assert.Equal(t, EntryReconciled, store.State("c-1"))
}

func TestStoreUpdateValidatesBeforeSending(t *testing.T) {
	store, bridge, recorder := newCharacterStore(t, StoreOptions{})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria"})

	_, err := store.Update(context.Background(), "c-1", func(c *domain.Character) error {
		c.Name = ""
		return nil
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, bridge.sentUpdates())

	stored, _ := store.Get("c-1")
	assert.Equal(t, "Aria", stored.Name)
	assert.Equal(t, EntryLoaded, store.State("c-1"))
	assert.Equal(t, []domain.NotificationLevel{domain.NotifyError}, recorder.Levels())
}

func TestStoreUpdateUnknownEntry(t *testing.T) {
	store, _, _ := newCharacterStore(t, StoreOptions{})

	_, err := store.Update(context.Background(), "missing", func(*domain.Character) error { return nil })
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreUpdatePatchDoesNotAliasPreviousValue(t *testing.T) {
	bridge := &fakeBridge[domain.Inventory]{}
	store := NewStore[domain.Inventory](domain.ResourceInventory, bridge, StoreOptions{})
	original := domain.Inventory{
		ID:   "inv-1",
		Name: "Backpack",
		Items: []domain.InventoryItem{
			{EquipmentID: "torch", Name: "Torch", Quantity: 3},
		},
	}
	bridge.list = func(domain.Scope) ([]domain.Inventory, error) { return []domain.Inventory{original}, nil }
	_, err := store.LoadAll(context.Background(), domain.Scope{})
	require.NoError(t, err)
	before, _ := store.Get("inv-1")

	_, err = store.Update(context.Background(), "inv-1", func(inv *domain.Inventory) error {
		return inv.AdjustItem("torch", 2)
	})
	require.NoError(t, err)

	assert.Equal(t, 3, before.Items[0].Quantity)
	after, _ := store.Get("inv-1")
	assert.Equal(t, 5, after.Items[0].Quantity)
}

func TestStoreCreateIsPessimistic(t *testing.T) {
	store, bridge, recorder := newCharacterStore(t, StoreOptions{})

	sent := make(chan struct{})
	release := make(chan struct{})
	bridge.create = func(draft domain.Character) (*domain.Character, error) {
		close(sent)
		<-release
		draft.ID = "c-9"
		return &draft, nil
	}

	done := make(chan domain.Character, 1)
	go func() {
		created, err := store.Create(context.Background(), domain.Character{Name: "Corin"})
		assert.NoError(t, err)
		done <- created
	}()

	<-sent
	assert.Zero(t, store.Len())
	close(release)

	created := <-done
	assert.Equal(t, "c-9", created.ID)
	stored, ok := store.Get("c-9")
	require.True(t, ok)
	assert.Equal(t, "Corin", stored.Name)
	assert.Equal(t, []domain.NotificationLevel{domain.NotifySuccess}, recorder.Levels())
}

func TestStoreCreateFailures(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		store, bridge, _ := newCharacterStore(t, StoreOptions{})
		called := false
		bridge.create = func(d domain.Character) (*domain.Character, error) {
			called = true
			return &d, nil
		}

		_, err := store.Create(context.Background(), domain.Character{})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.False(t, called)
	})

	t.Run("empty response", func(t *testing.T) {
		store, bridge, _ := newCharacterStore(t, StoreOptions{})
		bridge.create = func(domain.Character) (*domain.Character, error) { return nil, nil }

		_, err := store.Create(context.Background(), domain.Character{Name: "Corin"})
		require.ErrorIs(t, err, ErrEmptyResponse)
		assert.Zero(t, store.Len())
	})

	t.Run("server error", func(t *testing.T) {
		store, bridge, recorder := newCharacterStore(t, StoreOptions{})
		bridge.create = func(domain.Character) (*domain.Character, error) { return nil, errors.New("conflict") }

		_, err := store.Create(context.Background(), domain.Character{Name: "Corin"})
		require.Error(t, err)
		assert.Zero(t, store.Len())
		assert.Equal(t, []domain.NotificationLevel{domain.NotifyError}, recorder.Levels())
	})
}

func TestStoreRemoveIsPessimistic(t *testing.T) {
	store, bridge, _ := newCharacterStore(t, StoreOptions{})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria"}, domain.Character{ID: "c-2", Name: "Bram"})
	store.Select(context.Background(), "c-1")

	bridge.delete = func(string) error { return errors.New("forbidden") }
	require.Error(t, store.Remove(context.Background(), "c-1"))
	_, ok := store.Get("c-1")
	assert.True(t, ok, "failed delete keeps the entry")
	assert.Equal(t, "c-1", store.SelectedID())

	bridge.delete = nil
	require.NoError(t, store.Remove(context.Background(), "c-1"))
	_, ok = store.Get("c-1")
	assert.False(t, ok)
	assert.Empty(t, store.SelectedID())
	assert.Equal(t, 1, store.Len())
}

func TestStoreRemoveUnknownEntryDoesNotCallServer(t *testing.T) {
	store, bridge, _ := newCharacterStore(t, StoreOptions{})

	require.ErrorIs(t, store.Remove(context.Background(), "missing"), domain.ErrNotFound)
	assert.Empty(t, bridge.deletes)
}

func TestStoreRefresh(t *testing.T) {
	store, bridge, _ := newCharacterStore(t, StoreOptions{})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria"})

	bridge.get = func(id string) (*domain.Character, error) {
		return &domain.Character{ID: id, Name: "Aria", Level: 4}, nil
	}
	got, err := store.Refresh(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Level)

	bridge.get = func(string) (*domain.Character, error) { return nil, nil }
	_, err = store.Refresh(context.Background(), "c-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func newCache(t *testing.T) *tomlrepo.CacheRepository {
	t.Helper()

	cfg := viper.New()
	cfg.Set("cache.path", filepath.Join(t.TempDir(), "cache.toml"))
	repo, err := tomlrepo.NewCacheRepository(cfg)
	require.NoError(t, err)
	return repo
}

func TestStoreHydrateRestoresSnapshot(t *testing.T) {
	cache := newCache(t)
	clock := ports.ClockFunc(func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) })

	first, bridge, _ := newCharacterStore(t, StoreOptions{Cache: cache, CacheVersion: 2, Clock: clock})
	seedCharacters(t, first, bridge, domain.Character{ID: "c-1", Name: "Aria"}, domain.Character{ID: "c-2", Name: "Bram"})
	first.Select(context.Background(), "c-2")

	second, _, _ := newCharacterStore(t, StoreOptions{Cache: cache, CacheVersion: 2})
	require.NoError(t, second.Hydrate(context.Background()))
	assert.Equal(t, first.Items(), second.Items())
	assert.Equal(t, "c-2", second.SelectedID())

	stale, _, _ := newCharacterStore(t, StoreOptions{Cache: cache, CacheVersion: 3})
	require.NoError(t, stale.Hydrate(context.Background()))
	assert.Zero(t, stale.Len(), "snapshots from another version are ignored")
}

func TestStoreStaleStateSurvivesHydrate(t *testing.T) {
	cache := newCache(t)

	first, bridge, _ := newCharacterStore(t, StoreOptions{Cache: cache})
	seedCharacters(t, first, bridge, domain.Character{ID: "c-1", Name: "Aria", Level: 1}, domain.Character{ID: "c-2", Name: "Bram"})
	bridge.update = func(string, domain.Character) (*domain.Character, error) { return nil, errors.New("server down") }
	_, err := first.Update(context.Background(), "c-1", func(c *domain.Character) error {
		c.Level = 5
		return nil
	})
	require.Error(t, err)

	second, _, _ := newCharacterStore(t, StoreOptions{Cache: cache})
	require.NoError(t, second.Hydrate(context.Background()))
	stored, _ := second.Get("c-1")
	assert.Equal(t, 5, stored.Level)
	assert.Equal(t, EntryStale, second.State("c-1"))
	assert.Equal(t, EntryLoaded, second.State("c-2"))

	bridge.list = func(domain.Scope) ([]domain.Character, error) {
		return []domain.Character{{ID: "c-1", Name: "Aria", Level: 1}}, nil
	}
	_, err = first.LoadAll(context.Background(), domain.Scope{})
	require.NoError(t, err)

	third, _, _ := newCharacterStore(t, StoreOptions{Cache: cache})
	require.NoError(t, third.Hydrate(context.Background()))
	assert.Equal(t, EntryLoaded, third.State("c-1"), "a reload clears the stale mark")
}

func TestStoreEvictClearsSnapshot(t *testing.T) {
	cache := newCache(t)

	store, bridge, _ := newCharacterStore(t, StoreOptions{Cache: cache})
	seedCharacters(t, store, bridge, domain.Character{ID: "c-1", Name: "Aria"})
	require.NoError(t, store.Evict(context.Background()))
	assert.Zero(t, store.Len())

	_, found, err := cache.Load(context.Background(), string(domain.ResourceCharacter))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreCacheWriteFailureDoesNotFailLoad(t *testing.T) {
	cache := mocks.NewMockCacheRepository(t)
	clock := mocks.NewMockClock(t)
	savedAt := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	store, bridge, recorder := newCharacterStore(t, StoreOptions{Cache: cache, Clock: clock})

	clock.EXPECT().Now().Return(savedAt)
	cache.EXPECT().Save(mock.Anything, mock.MatchedBy(func(s ports.CacheSnapshot) bool {
		return s.Key == "character" && s.Version == 1 && s.SavedAt.Equal(savedAt) && len(s.Entries) > 0
	})).Return(errors.New("disk full"))

	bridge.list = func(domain.Scope) ([]domain.Character, error) {
		return []domain.Character{{ID: "c-1", Name: "Aria"}}, nil
	}
	items, err := store.LoadAll(context.Background(), domain.Scope{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Empty(t, recorder.Levels())
}

func TestStoreHydrateReportsCacheReadFailure(t *testing.T) {
	cache := mocks.NewMockCacheRepository(t)
	store, _, _ := newCharacterStore(t, StoreOptions{Cache: cache})

	cache.EXPECT().Load(mock.Anything, "character").Return(ports.CacheSnapshot{}, false, errors.New("permission denied"))

	err := store.Hydrate(context.Background())
	require.ErrorContains(t, err, "load character cache")
	assert.Zero(t, store.Len())
}

func TestStoreHydrateIgnoresOtherSchemaVersion(t *testing.T) {
	cache := mocks.NewMockCacheRepository(t)
	store, _, _ := newCharacterStore(t, StoreOptions{Cache: cache, CacheVersion: 2})

	cache.EXPECT().Load(mock.Anything, "character").
		Return(ports.CacheSnapshot{Key: "character", Version: 1, Entries: []byte(`[{"id":"c-1"}]`)}, true, nil)

	require.NoError(t, store.Hydrate(context.Background()))
	assert.Zero(t, store.Len())
}
