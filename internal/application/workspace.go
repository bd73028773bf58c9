package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
	"golang.org/x/sync/errgroup"
)

// snapshotVersions is bumped per store whenever an entity's persisted shape changes.
var snapshotVersions = map[domain.Resource]int{
	domain.ResourceCharacter: 1,
	domain.ResourceInventory: 1,
	domain.ResourceNote:      1,
	domain.ResourceSpell:     1,
	domain.ResourceEquipment: 1,
	domain.ResourceMonster:   1,
	domain.ResourceUser:      1,
	domain.ResourceCampaign:  1,
}

type WorkspaceBridges struct {
	Characters  ports.ResourceBridge[domain.Character]
	Inventories ports.ResourceBridge[domain.Inventory]
	Notes       ports.ResourceBridge[domain.Note]
	Spells      ports.ResourceBridge[domain.Spell]
	Equipment   ports.ResourceBridge[domain.Equipment]
	Monsters    ports.ResourceBridge[domain.Monster]
	Users       ports.ResourceBridge[domain.User]
	Campaigns   ports.ResourceBridge[domain.Campaign]
}

// Workspace owns one store per resource type.
type Workspace struct {
	Characters  *Store[domain.Character]
	Inventories *Store[domain.Inventory]
	Notes       *Store[domain.Note]
	Spells      *Store[domain.Spell]
	Equipment   *Store[domain.Equipment]
	Monsters    *Store[domain.Monster]
	Users       *Store[domain.User]
	Campaigns   *Store[domain.Campaign]
}

type cachedStore interface {
	Resource() domain.Resource
	Hydrate(ctx context.Context) error
	Evict(ctx context.Context) error
}

func NewWorkspace(bridges WorkspaceBridges, opts StoreOptions) *Workspace {
	optionsFor := func(resource domain.Resource) StoreOptions {
		o := opts
		o.CacheKey = string(resource)
		o.CacheVersion = snapshotVersions[resource]
		return o
	}

	return &Workspace{
		Characters:  NewStore(domain.ResourceCharacter, bridges.Characters, optionsFor(domain.ResourceCharacter)),
		Inventories: NewStore(domain.ResourceInventory, bridges.Inventories, optionsFor(domain.ResourceInventory)),
		Notes:       NewStore(domain.ResourceNote, bridges.Notes, optionsFor(domain.ResourceNote)),
		Spells:      NewStore(domain.ResourceSpell, bridges.Spells, optionsFor(domain.ResourceSpell)),
		Equipment:   NewStore(domain.ResourceEquipment, bridges.Equipment, optionsFor(domain.ResourceEquipment)),
		Monsters:    NewStore(domain.ResourceMonster, bridges.Monsters, optionsFor(domain.ResourceMonster)),
		Users:       NewStore(domain.ResourceUser, bridges.Users, optionsFor(domain.ResourceUser)),
		Campaigns:   NewStore(domain.ResourceCampaign, bridges.Campaigns, optionsFor(domain.ResourceCampaign)),
	}
}

func (w *Workspace) stores() []cachedStore {
	return []cachedStore{
		w.Characters,
		w.Inventories,
		w.Notes,
		w.Spells,
		w.Equipment,
		w.Monsters,
		w.Users,
		w.Campaigns,
	}
}

// Hydrate restores every store from its persisted snapshot.
func (w *Workspace) Hydrate(ctx context.Context) error {
	var errs []error
	for _, store := range w.stores() {
		if err := store.Hydrate(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Evict clears every store and its snapshot. It runs on logout and on expiry.
func (w *Workspace) Evict(ctx context.Context) error {
	var errs []error
	for _, store := range w.stores() {
		if err := store.Evict(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RefreshAll reloads the player stores concurrently, plus the back-office stores
// when includeAdmin is set. Each store succeeds or fails on its own: a failed
// load neither cancels its siblings nor drops their results, and stores that
// fail keep their previous contents.
func (w *Workspace) RefreshAll(ctx context.Context, includeAdmin bool) error {
	type loader struct {
		resource domain.Resource
		load     func(context.Context) error
	}

	loaders := []loader{
		{domain.ResourceCharacter, loadInto(w.Characters)},
		{domain.ResourceInventory, loadInto(w.Inventories)},
		{domain.ResourceNote, loadInto(w.Notes)},
		{domain.ResourceSpell, loadInto(w.Spells)},
		{domain.ResourceCampaign, loadInto(w.Campaigns)},
	}
	if includeAdmin {
		loaders = append(loaders,
			loader{domain.ResourceEquipment, loadInto(w.Equipment)},
			loader{domain.ResourceMonster, loadInto(w.Monsters)},
			loader{domain.ResourceUser, loadInto(w.Users)},
		)
	}

	var g errgroup.Group
	errs := make([]error, len(loaders))
	for i, l := range loaders {
		g.Go(func() error {
			if err := l.load(ctx); err != nil {
				errs[i] = fmt.Errorf("refresh %s: %w", l.resource, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func loadInto[T domain.Entity](store *Store[T]) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := store.LoadAll(ctx, domain.Scope{})
		return err
	}
}
