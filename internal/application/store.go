package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
	"github.com/golang/glog"
)

// ErrEmptyResponse is returned by Create when the server accepted the entity but sent nothing back.
var ErrEmptyResponse = errors.New("server returned an empty response")

// StoreOptions configures a Store; zero values pick the defaults.
type StoreOptions struct {
	Notifier     ports.Notifier
	Cache        ports.CacheRepository
	CacheKey     string
	CacheVersion int
	Policy       FailurePolicy
	Clock        ports.Clock
}

// Store is the client-side copy of one server collection. Reads are served from
// memory; writes go through the bridge. Updates are optimistic, creates and
// deletes wait for the server.
type Store[T domain.Entity] struct {
	resource domain.Resource
	bridge   ports.ResourceBridge[T]
	notifier ports.Notifier
	cache    ports.CacheRepository
	cacheKey string
	cacheVer int
	policy   FailurePolicy
	clock    ports.Clock

	mu       sync.RWMutex
	items    []T
	states   map[string]EntryState
	versions map[string]uint64
	selected string
}

type validator interface {
	Validate() error
}

func NewStore[T domain.Entity](resource domain.Resource, bridge ports.ResourceBridge[T], opts StoreOptions) *Store[T] {
	if opts.Notifier == nil {
		opts.Notifier = ports.NopNotifier{}
	}
	if opts.Policy == nil {
		opts.Policy = KeepOptimistic{}
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.CacheKey == "" {
		opts.CacheKey = string(resource)
	}
	if opts.CacheVersion <= 0 {
		opts.CacheVersion = 1
	}

	return &Store[T]{
		resource: resource,
		bridge:   bridge,
		notifier: opts.Notifier,
		cache:    opts.Cache,
		cacheKey: opts.CacheKey,
		cacheVer: opts.CacheVersion,
		policy:   opts.Policy,
		clock:    opts.Clock,
		states:   map[string]EntryState{},
		versions: map[string]uint64{},
	}
}

func (s *Store[T]) Resource() domain.Resource {
	return s.resource
}

func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return s.items[idx], true
}

func (s *Store[T]) State(id string) EntryState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if state, ok := s.states[id]; ok {
		return state
	}
	return EntryUnloaded
}

func (s *Store[T]) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selected
}

func (s *Store[T]) Selected() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(s.selected)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return s.items[idx], true
}

// Select moves the focus pointer. An id that is not in the collection clears it.
func (s *Store[T]) Select(ctx context.Context, id string) bool {
	s.mu.Lock()
	next := ""
	if s.indexLocked(id) >= 0 {
		next = id
	}
	changed := next != s.selected
	s.selected = next
	var snapshot ports.CacheSnapshot
	if changed {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if changed {
		s.persist(ctx, snapshot)
	}
	return next != ""
}

// LoadAll replaces the collection with what the server returns for scope. On
// failure the previous contents stay.
func (s *Store[T]) LoadAll(ctx context.Context, scope domain.Scope) ([]T, error) {
	items, err := s.bridge.List(ctx, scope)
	if err != nil {
		s.notifyFailure("load", err)
		return nil, fmt.Errorf("load %s (%s): %w", s.resource, scope, err)
	}

	s.mu.Lock()
	s.replaceLocked(items)
	loaded := slices.Clone(s.items)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	glog.V(1).Infof("loaded %d %s entries (%s)", len(loaded), s.resource, scope)

	return loaded, nil
}

// Refresh reloads a single entry from the server.
func (s *Store[T]) Refresh(ctx context.Context, id string) (T, error) {
	var zero T

	fetched, err := s.bridge.Get(ctx, id)
	if err == nil && fetched == nil {
		err = fmt.Errorf("%w: %s %s", domain.ErrNotFound, s.resource, id)
	}
	if err != nil {
		s.notifyFailure("refresh", err)
		return zero, fmt.Errorf("refresh %s %s: %w", s.resource, id, err)
	}

	s.mu.Lock()
	s.upsertLocked(*fetched, EntryLoaded)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return *fetched, nil
}

// Create waits for the server and appends its canonical entity.
func (s *Store[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T

	if err := validate(draft); err != nil {
		s.notifyFailure("create", err)
		return zero, err
	}

	created, err := s.bridge.Create(ctx, draft)
	if err == nil && created == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		s.notifyFailure("create", err)
		return zero, fmt.Errorf("create %s: %w", s.resource, err)
	}

	s.mu.Lock()
	s.upsertLocked(*created, EntryLoaded)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notifySuccess("created", (*created).EntityID())

	return *created, nil
}

// Update applies patch to the local entry right away, then sends the merged
// entity. A successful response replaces the entry as-is. What happens on
// failure is up to the store's FailurePolicy.
func (s *Store[T]) Update(ctx context.Context, id string, patch func(*T) error) (T, error) {
	var zero T

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		err := fmt.Errorf("%w: %s %s", domain.ErrNotFound, s.resource, id)
		s.notifyFailure("update", err)
		return zero, err
	}

	previous := s.items[idx]
	previousState := s.states[id]
	next := cloneEntity(previous)
	if err := patch(&next); err != nil {
		s.mu.Unlock()
		s.notifyFailure("update", err)
		return zero, fmt.Errorf("update %s %s: %w", s.resource, id, err)
	}
	if err := validate(next); err != nil {
		s.mu.Unlock()
		s.notifyFailure("update", err)
		return zero, err
	}

	s.items[idx] = next
	s.versions[id]++
	version := s.versions[id]
	s.states[id] = EntryOptimistic
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	saved, err := s.bridge.Update(ctx, id, next)
	if err != nil {
		s.resolveFailure(ctx, id, version, previous, previousState)
		s.notifyFailure("update", err)
		return zero, fmt.Errorf("update %s %s: %w", s.resource, id, err)
	}

	result := next
	if saved != nil {
		result = *saved
	}

	// Responses are applied in arrival order; a slow response can overwrite a newer write.
	s.mu.Lock()
	if idx := s.indexLocked(id); idx >= 0 {
		s.items[idx] = result
		s.states[id] = EntryReconciled
	}
	snapshot = s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notifySuccess("updated", id)

	return result, nil
}

// Remove deletes on the server first; the local entry stays if that fails.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	s.mu.RLock()
	present := s.indexLocked(id) >= 0
	s.mu.RUnlock()
	if !present {
		err := fmt.Errorf("%w: %s %s", domain.ErrNotFound, s.resource, id)
		s.notifyFailure("delete", err)
		return err
	}

	if err := s.bridge.Delete(ctx, id); err != nil {
		s.notifyFailure("delete", err)
		return fmt.Errorf("delete %s %s: %w", s.resource, id, err)
	}

	s.mu.Lock()
	if idx := s.indexLocked(id); idx >= 0 {
		s.items = slices.Delete(s.items, idx, idx+1)
	}
	delete(s.states, id)
	delete(s.versions, id)
	if s.selected == id {
		s.selected = ""
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notifySuccess("deleted", id)

	return nil
}

// Evict drops every entry and the persisted snapshot.
func (s *Store[T]) Evict(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	s.states = map[string]EntryState{}
	s.versions = map[string]uint64{}
	s.selected = ""
	s.mu.Unlock()

	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx, s.cacheKey); err != nil {
		return fmt.Errorf("clear %s cache: %w", s.resource, err)
	}
	return nil
}

// Hydrate restores the last persisted snapshot, including which entries are
// stale. Snapshots written with another schema version are ignored.
func (s *Store[T]) Hydrate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	snapshot, found, err := s.cache.Load(ctx, s.cacheKey)
	if err != nil {
		return fmt.Errorf("load %s cache: %w", s.resource, err)
	}
	if !found {
		return nil
	}
	if snapshot.Version != s.cacheVer {
		glog.Infof("discarding %s cache: version %d, want %d", s.resource, snapshot.Version, s.cacheVer)
		return nil
	}

	var items []T
	if len(snapshot.Entries) > 0 {
		if err := json.Unmarshal(snapshot.Entries, &items); err != nil {
			return fmt.Errorf("decode %s cache: %w", s.resource, err)
		}
	}

	s.mu.Lock()
	s.replaceLocked(items)
	for _, id := range snapshot.Stale {
		if s.indexLocked(id) >= 0 {
			s.states[id] = EntryStale
		}
	}
	if s.indexLocked(snapshot.Selected) >= 0 {
		s.selected = snapshot.Selected
	}
	s.mu.Unlock()

	return nil
}

func (s *Store[T]) resolveFailure(ctx context.Context, id string, version uint64, previous T, previousState EntryState) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	resolution := s.policy.Resolve(FailedWrite{
		Superseded: s.versions[id] != version,
		Removed:    idx < 0,
	})
	if idx >= 0 {
		if resolution.Restore {
			s.items[idx] = previous
			s.versions[id]++
			if previousState == "" {
				previousState = EntryLoaded
			}
			resolution.State = previousState
		}
		if resolution.State != "" {
			s.states[id] = resolution.State
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

func (s *Store[T]) replaceLocked(items []T) {
	s.items = make([]T, 0, len(items))
	s.states = make(map[string]EntryState, len(items))
	for _, item := range items {
		s.upsertLocked(item, EntryLoaded)
	}
	if s.indexLocked(s.selected) < 0 {
		s.selected = ""
	}
}

func (s *Store[T]) upsertLocked(item T, state EntryState) {
	id := item.EntityID()
	if idx := s.indexLocked(id); idx >= 0 {
		s.items[idx] = item
	} else {
		s.items = append(s.items, item)
	}
	s.states[id] = state
	s.versions[id]++
}

func (s *Store[T]) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.items, func(item T) bool {
		return item.EntityID() == id
	})
}

func (s *Store[T]) snapshotLocked() ports.CacheSnapshot {
	snapshot := ports.CacheSnapshot{
		Key:      s.cacheKey,
		Version:  s.cacheVer,
		Selected: s.selected,
		SavedAt:  s.clock.Now(),
	}
	for _, item := range s.items {
		if id := item.EntityID(); s.states[id] == EntryStale {
			snapshot.Stale = append(snapshot.Stale, id)
		}
	}
	if s.cache == nil {
		return snapshot
	}

	entries, err := json.Marshal(s.items)
	if err != nil {
		glog.Warningf("encode %s snapshot: %v", s.resource, err)
		return snapshot
	}
	snapshot.Entries = entries
	return snapshot
}

func (s *Store[T]) persist(ctx context.Context, snapshot ports.CacheSnapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(ctx, snapshot); err != nil {
		glog.Warningf("persist %s cache: %v", s.resource, err)
	}
}

func (s *Store[T]) notifySuccess(verb, id string) {
	s.notifier.Notify(domain.Notification{
		Level:   domain.NotifySuccess,
		Title:   fmt.Sprintf("%s %s", s.resource.Label(), verb),
		Message: id,
	})
}

func (s *Store[T]) notifyFailure(action string, err error) {
	glog.Errorf("%s %s: %v", action, s.resource, err)
	s.notifier.Notify(domain.Notification{
		Level:   domain.NotifyError,
		Title:   fmt.Sprintf("could not %s %s", action, s.resource.Label()),
		Message: err.Error(),
	})
}

func validate(entity any) error {
	v, ok := entity.(validator)
	if !ok {
		return nil
	}
	return v.Validate()
}

// cloneEntity deep-copies through the wire encoding so patches never write into
// slices or maps shared with the previous value.
func cloneEntity[T any](v T) T {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
