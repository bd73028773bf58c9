package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/camp-cli/internal/adapters/notify"
	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
	"github.com/bnema/camp-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type inventoryFixture struct {
	service     *InventoryService
	inventories *Store[domain.Inventory]
	characters  *Store[domain.Character]
	invBridge   *fakeBridge[domain.Inventory]
	charBridge  *fakeBridge[domain.Character]
	recorder    *notify.Recorder
}

func newInventoryFixture(t *testing.T, opts InventoryOptions, mover *mocks.MockInventoryMover, inventories ...domain.Inventory) inventoryFixture {
	t.Helper()

	recorder := &notify.Recorder{}
	invBridge := &fakeBridge[domain.Inventory]{}
	charBridge := &fakeBridge[domain.Character]{}
	invStore := NewStore[domain.Inventory](domain.ResourceInventory, invBridge, StoreOptions{Notifier: recorder})
	charStore := NewStore[domain.Character](domain.ResourceCharacter, charBridge, StoreOptions{Notifier: recorder})

	invBridge.list = func(domain.Scope) ([]domain.Inventory, error) { return inventories, nil }
	_, err := invStore.LoadAll(context.Background(), domain.Scope{})
	require.NoError(t, err)
	invBridge.list = nil

	charBridge.list = func(domain.Scope) ([]domain.Character, error) {
		return []domain.Character{{ID: "c-1", Name: "Aria", Currency: domain.Currency{Gold: 1}}}, nil
	}
	_, err = charStore.LoadAll(context.Background(), domain.Scope{})
	require.NoError(t, err)
	charBridge.list = nil

	var moverPort ports.InventoryMover
	if mover != nil {
		moverPort = mover
	}
	service := NewInventoryService(invStore, charStore, moverPort, recorder, opts)

	return inventoryFixture{
		service:     service,
		inventories: invStore,
		characters:  charStore,
		invBridge:   invBridge,
		charBridge:  charBridge,
		recorder:    recorder,
	}
}

func backpack(quantity int) domain.Inventory {
	return domain.Inventory{
		ID:   "inv-a",
		Name: "Backpack",
		Items: []domain.InventoryItem{
			{EquipmentID: "rope", Name: "Rope", Quantity: quantity, Weight: 10, Equipped: true},
		},
		Currency: domain.Currency{Gold: 30, Silver: 5},
	}
}

func chest() domain.Inventory {
	return domain.Inventory{ID: "inv-b", Name: "Chest"}
}

func itemQuantity(t *testing.T, store *Store[domain.Inventory], inventoryID, equipmentID string) (int, bool) {
	t.Helper()

	inv, ok := store.Get(inventoryID)
	require.True(t, ok)
	item, _, found := inv.FindItem(equipmentID)
	return item.Quantity, found
}

func TestInventoryDecrementClampsAtZero(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(2))

	inv, err := f.service.DecrementItemQuantity(context.Background(), "inv-a", "rope", 5)
	require.NoError(t, err)

	require.Len(t, inv.Items, 1, "items at zero stay listed")
	assert.Equal(t, 0, inv.Items[0].Quantity)
}

func TestInventoryIncrementAndEquip(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(2))

	_, err := f.service.IncrementItemQuantity(context.Background(), "inv-a", "rope", 3)
	require.NoError(t, err)
	qty, _ := itemQuantity(t, f.inventories, "inv-a", "rope")
	assert.Equal(t, 5, qty)

	inv, err := f.service.SetItemEquipped(context.Background(), "inv-a", "rope", false)
	require.NoError(t, err)
	assert.False(t, inv.Items[0].Equipped)
}

func TestInventoryMutationsRejectBadInput(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(2))

	_, err := f.service.IncrementItemQuantity(context.Background(), "inv-a", "rope", 0)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.service.DecrementItemQuantity(context.Background(), "inv-a", "lantern", 1)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = f.service.SetItemEquipped(context.Background(), "inv-a", "lantern", true)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = f.service.AddItem(context.Background(), "inv-a", domain.InventoryItem{Name: "No id"}, 1)
	require.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, f.invBridge.sentUpdates())
}

func TestInventoryAddAndRemoveItem(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(2))

	inv, err := f.service.AddItem(context.Background(), "inv-a", domain.InventoryItem{EquipmentID: "torch", Name: "Torch"}, 4)
	require.NoError(t, err)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, domain.InventoryItem{EquipmentID: "torch", Name: "Torch", Quantity: 4}, inv.Items[1])

	inv, err = f.service.RemoveItem(context.Background(), "inv-a", "rope")
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "torch", inv.Items[0].EquipmentID)
}

func TestInventoryMoveItemCreatesDestinationEntry(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(5), chest())

	result, err := f.service.MoveItem(context.Background(), MoveRequest{
		FromInventoryID: "inv-a",
		ToInventoryID:   "inv-b",
		EquipmentID:     "rope",
		Quantity:        2,
	})
	require.NoError(t, err)
	assert.Equal(t, MoveResult{Outcome: TransferCompleted, Moved: 2}, result)

	qty, _ := itemQuantity(t, f.inventories, "inv-a", "rope")
	assert.Equal(t, 3, qty)

	dest, _ := f.inventories.Get("inv-b")
	require.Len(t, dest.Items, 1)
	assert.Equal(t, domain.InventoryItem{EquipmentID: "rope", Name: "Rope", Quantity: 2, Weight: 10}, dest.Items[0])

	sent := f.invBridge.sentUpdates()
	require.Len(t, sent, 2)
	assert.Equal(t, "inv-a", sent[0].ID, "source is debited first")
	assert.Equal(t, "inv-b", sent[1].ID)
}

func TestInventoryMoveItemMovesAtMostWhatSourceHolds(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(1), chest())

	result, err := f.service.MoveItem(context.Background(), MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Moved)

	qty, _ := itemQuantity(t, f.inventories, "inv-a", "rope")
	assert.Equal(t, 0, qty)
	qty, _ = itemQuantity(t, f.inventories, "inv-b", "rope")
	assert.Equal(t, 1, qty)
}

func TestInventoryMoveItemRejectsBeforeSending(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(0), chest())

	tests := []struct {
		name string
		req  MoveRequest
		want error
	}{
		{name: "same inventory", req: MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-a", EquipmentID: "rope", Quantity: 1}, want: domain.ErrValidation},
		{name: "unknown source", req: MoveRequest{FromInventoryID: "inv-x", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 1}, want: domain.ErrNotFound},
		{name: "unknown destination", req: MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-x", EquipmentID: "rope", Quantity: 1}, want: domain.ErrNotFound},
		{name: "unknown item", req: MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "lamp", Quantity: 1}, want: domain.ErrItemNotFound},
		{name: "empty stack", req: MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 1}, want: domain.ErrValidation},
		{name: "zero quantity", req: MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope"}, want: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.MoveItem(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.invBridge.sentUpdates())
}

func TestInventoryMoveItemSourceFailureSendsNothingToDestination(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(5), chest())
	f.invBridge.update = func(id string, inv domain.Inventory) (*domain.Inventory, error) {
		return nil, errors.New("source rejected")
	}

	result, err := f.service.MoveItem(context.Background(), MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 2})
	require.Error(t, err)
	assert.Equal(t, TransferDebitFailed, result.Outcome)
	assert.True(t, result.Outcome.Consistent(), "the server never applied the debit")
	assert.False(t, result.InSync, "the rejected debit stays visible locally")
	qty, _ := itemQuantity(t, f.inventories, "inv-a", "rope")
	assert.Equal(t, 3, qty)
	assert.Equal(t, EntryStale, f.inventories.State("inv-a"))

	require.Len(t, f.invBridge.sentUpdates(), 1)
	dest, _ := f.inventories.Get("inv-b")
	assert.Empty(t, dest.Items)
}

func TestInventoryMoveItemDestinationFailureLeavesSourceDebited(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(5), chest())
	f.invBridge.update = func(id string, inv domain.Inventory) (*domain.Inventory, error) {
		if id == "inv-b" {
			return nil, errors.New("destination rejected")
		}
		return &inv, nil
	}

	result, err := f.service.MoveItem(context.Background(), MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 2})
	require.Error(t, err)
	assert.Equal(t, TransferCreditFailed, result.Outcome)
	assert.False(t, result.Outcome.Consistent())
	assert.False(t, result.InSync)
	assert.Zero(t, result.Moved)

	// The server debited the source but never credited the destination; the
	// client still shows the optimistic credit, marked stale.
	qty, _ := itemQuantity(t, f.inventories, "inv-a", "rope")
	assert.Equal(t, 3, qty)
	assert.Equal(t, EntryReconciled, f.inventories.State("inv-a"))
	qty, found := itemQuantity(t, f.inventories, "inv-b", "rope")
	assert.True(t, found)
	assert.Equal(t, 2, qty)
	assert.Equal(t, EntryStale, f.inventories.State("inv-b"))

	last := f.recorder.All()[len(f.recorder.All())-1]
	assert.Equal(t, "move rope left resources out of sync", last.Title)
}

func TestInventoryMoveItemDestinationFailureWithRollbackPolicy(t *testing.T) {
	recorder := &notify.Recorder{}
	bridge := &fakeBridge[domain.Inventory]{}
	store := NewStore[domain.Inventory](domain.ResourceInventory, bridge, StoreOptions{Notifier: recorder, Policy: RollbackOnFailure{}})
	bridge.list = func(domain.Scope) ([]domain.Inventory, error) { return []domain.Inventory{backpack(5), chest()}, nil }
	_, err := store.LoadAll(context.Background(), domain.Scope{})
	require.NoError(t, err)
	bridge.update = func(id string, inv domain.Inventory) (*domain.Inventory, error) {
		if id == "inv-b" {
			return nil, errors.New("destination rejected")
		}
		return &inv, nil
	}
	service := NewInventoryService(store, nil, nil, recorder, InventoryOptions{})

	result, err := service.MoveItem(context.Background(), MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 2})
	require.Error(t, err)
	assert.Equal(t, TransferCreditFailed, result.Outcome)

	qty, _ := itemQuantity(t, store, "inv-a", "rope")
	assert.Equal(t, 3, qty, "the debit already succeeded and is not undone")
	dest, _ := store.Get("inv-b")
	assert.Empty(t, dest.Items, "the rejected credit is rolled back locally")
}

func TestInventoryMoveItemCompensates(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{CompensateOnFailure: true}, nil, backpack(5), chest())
	f.invBridge.update = func(id string, inv domain.Inventory) (*domain.Inventory, error) {
		if id == "inv-b" {
			return nil, errors.New("destination rejected")
		}
		return &inv, nil
	}

	result, err := f.service.MoveItem(context.Background(), MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 2})
	require.Error(t, err)
	assert.Equal(t, TransferCompensated, result.Outcome)
	assert.True(t, result.Outcome.Consistent())
	assert.False(t, result.InSync, "the rejected credit stays visible in the destination")

	qty, _ := itemQuantity(t, f.inventories, "inv-a", "rope")
	assert.Equal(t, 5, qty)
	qty, found := itemQuantity(t, f.inventories, "inv-b", "rope")
	assert.True(t, found)
	assert.Equal(t, 2, qty)
	assert.Equal(t, EntryStale, f.inventories.State("inv-b"))
	require.Len(t, f.invBridge.sentUpdates(), 3)
}

func TestInventoryMoveItemCompensationFailure(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{CompensateOnFailure: true}, nil, backpack(5), chest())
	calls := 0
	f.invBridge.update = func(id string, inv domain.Inventory) (*domain.Inventory, error) {
		calls++
		if calls == 1 {
			return &inv, nil
		}
		return nil, errors.New("api unavailable")
	}

	result, err := f.service.MoveItem(context.Background(), MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 2})
	require.Error(t, err)
	assert.Equal(t, TransferCompensationFailed, result.Outcome)
	assert.ErrorContains(t, err, "refund")
}

func TestInventoryMoveItemOnServer(t *testing.T) {
	mover := mocks.NewMockInventoryMover(t)
	f := newInventoryFixture(t, InventoryOptions{}, mover, backpack(5), chest())

	mover.EXPECT().MoveItem(mock.Anything, "inv-a", "rope", "inv-b", 2).Return(nil)
	f.invBridge.get = func(id string) (*domain.Inventory, error) {
		if id == "inv-a" {
			inv := backpack(3)
			return &inv, nil
		}
		inv := chest()
		inv.Items = []domain.InventoryItem{{EquipmentID: "rope", Name: "Rope", Quantity: 2}}
		return &inv, nil
	}

	err := f.service.MoveItemOnServer(context.Background(), MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 2})
	require.NoError(t, err)

	qty, _ := itemQuantity(t, f.inventories, "inv-a", "rope")
	assert.Equal(t, 3, qty)
	qty, _ = itemQuantity(t, f.inventories, "inv-b", "rope")
	assert.Equal(t, 2, qty)
	assert.Empty(t, f.invBridge.sentUpdates())
}

func TestInventoryMoveItemOnServerFailure(t *testing.T) {
	mover := mocks.NewMockInventoryMover(t)
	f := newInventoryFixture(t, InventoryOptions{}, mover, backpack(5), chest())

	mover.EXPECT().MoveItem(mock.Anything, "inv-a", "rope", "inv-b", 2).Return(errors.New("conflict"))

	err := f.service.MoveItemOnServer(context.Background(), MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 2})
	require.Error(t, err)

	qty, _ := itemQuantity(t, f.inventories, "inv-a", "rope")
	assert.Equal(t, 5, qty)
	assert.Equal(t, []domain.NotificationLevel{domain.NotifyError}, f.recorder.Levels())
}

func TestInventoryClaimCurrency(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(1))

	result, err := f.service.ClaimCurrency(context.Background(), "inv-a", "c-1", domain.Currency{Gold: 40, Platinum: 2})
	require.NoError(t, err)
	assert.Equal(t, ClaimResult{Outcome: TransferCompleted, Claimed: domain.Currency{Gold: 30}, InSync: true}, result)

	inv, _ := f.inventories.Get("inv-a")
	assert.Equal(t, domain.Currency{Silver: 5}, inv.Currency)
	character, _ := f.characters.Get("c-1")
	assert.Equal(t, domain.Currency{Gold: 31}, character.Currency)
}

func TestInventoryClaimCurrencyCharacterFailure(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(1))
	f.charBridge.update = func(string, domain.Character) (*domain.Character, error) {
		return nil, errors.New("character locked")
	}

	result, err := f.service.ClaimCurrency(context.Background(), "inv-a", "c-1", domain.Currency{Silver: 5})
	require.Error(t, err)
	assert.Equal(t, TransferCreditFailed, result.Outcome)
	assert.False(t, result.InSync)

	inv, _ := f.inventories.Get("inv-a")
	assert.Equal(t, domain.Currency{Gold: 30}, inv.Currency, "the inventory debit stands")
	assert.Equal(t, EntryStale, f.characters.State("c-1"))
}

func TestInventoryClaimCurrencyRejectsBadAmounts(t *testing.T) {
	f := newInventoryFixture(t, InventoryOptions{}, nil, backpack(1))

	_, err := f.service.ClaimCurrency(context.Background(), "inv-a", "c-1", domain.Currency{})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.service.ClaimCurrency(context.Background(), "inv-a", "c-1", domain.Currency{Gold: -1})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.service.ClaimCurrency(context.Background(), "inv-a", "c-1", domain.Currency{Copper: 3})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.service.ClaimCurrency(context.Background(), "inv-a", "c-404", domain.Currency{Gold: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, f.invBridge.sentUpdates())
}

func TestInventoryTransferInSyncUnderRollbackPolicy(t *testing.T) {
	tests := []struct {
		name       string
		compensate bool
		rejectID   string
		want       TransferOutcome
	}{
		{name: "debit rejected", rejectID: "inv-a", want: TransferDebitFailed},
		{name: "credit rejected then refunded", compensate: true, rejectID: "inv-b", want: TransferCompensated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := &fakeBridge[domain.Inventory]{}
			store := NewStore[domain.Inventory](domain.ResourceInventory, bridge, StoreOptions{Policy: RollbackOnFailure{}})
			bridge.list = func(domain.Scope) ([]domain.Inventory, error) { return []domain.Inventory{backpack(5), chest()}, nil }
			_, err := store.LoadAll(context.Background(), domain.Scope{})
			require.NoError(t, err)
			bridge.update = func(id string, inv domain.Inventory) (*domain.Inventory, error) {
				if id == tt.rejectID {
					return nil, errors.New("rejected")
				}
				return &inv, nil
			}
			service := NewInventoryService(store, nil, nil, nil, InventoryOptions{CompensateOnFailure: tt.compensate})

			result, err := service.MoveItem(context.Background(), MoveRequest{FromInventoryID: "inv-a", ToInventoryID: "inv-b", EquipmentID: "rope", Quantity: 2})
			require.Error(t, err)
			assert.Equal(t, tt.want, result.Outcome)
			assert.True(t, result.InSync)

			qty, _ := itemQuantity(t, store, "inv-a", "rope")
			assert.Equal(t, 5, qty)
			dest, _ := store.Get("inv-b")
			assert.Empty(t, dest.Items)
		})
	}
}
