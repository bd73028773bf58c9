package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
)

// TransferOutcome is where a two-step transfer between resources ended up.
// Each step is its own request; there is no server-side transaction.
type TransferOutcome string

const (
	TransferCompleted          TransferOutcome = "completed"
	TransferDebitFailed        TransferOutcome = "debit_failed"
	TransferCreditFailed       TransferOutcome = "credit_failed"
	TransferCompensated        TransferOutcome = "compensated"
	TransferCompensationFailed TransferOutcome = "compensation_failed"
)

// Consistent reports whether the server ended with the transfer either fully
// applied or not applied at all. It says nothing about the local cache; see the
// InSync field of the results for that.
func (o TransferOutcome) Consistent() bool {
	switch o {
	case TransferCompleted, TransferDebitFailed, TransferCompensated:
		return true
	default:
		return false
	}
}

type InventoryOptions struct {
	// CompensateOnFailure refunds the debited side when the credit step fails.
	CompensateOnFailure bool
}

type InventoryService struct {
	inventories *Store[domain.Inventory]
	characters  *Store[domain.Character]
	mover       ports.InventoryMover
	notifier    ports.Notifier
	opts        InventoryOptions
}

func NewInventoryService(inventories *Store[domain.Inventory], characters *Store[domain.Character], mover ports.InventoryMover, notifier ports.Notifier, opts InventoryOptions) *InventoryService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	return &InventoryService{
		inventories: inventories,
		characters:  characters,
		mover:       mover,
		notifier:    notifier,
		opts:        opts,
	}
}

func (s *InventoryService) IncrementItemQuantity(ctx context.Context, inventoryID, equipmentID string, amount int) (domain.Inventory, error) {
	if err := positive(amount); err != nil {
		return domain.Inventory{}, err
	}
	return s.inventories.Update(ctx, inventoryID, func(inv *domain.Inventory) error {
		return inv.AdjustItem(equipmentID, amount)
	})
}

// DecrementItemQuantity never takes an item below zero.
func (s *InventoryService) DecrementItemQuantity(ctx context.Context, inventoryID, equipmentID string, amount int) (domain.Inventory, error) {
	if err := positive(amount); err != nil {
		return domain.Inventory{}, err
	}
	return s.inventories.Update(ctx, inventoryID, func(inv *domain.Inventory) error {
		return inv.AdjustItem(equipmentID, -amount)
	})
}

func (s *InventoryService) SetItemEquipped(ctx context.Context, inventoryID, equipmentID string, equipped bool) (domain.Inventory, error) {
	return s.inventories.Update(ctx, inventoryID, func(inv *domain.Inventory) error {
		_, idx, ok := inv.FindItem(equipmentID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, equipmentID)
		}
		inv.Items[idx].Equipped = equipped
		return nil
	})
}

func (s *InventoryService) AddItem(ctx context.Context, inventoryID string, item domain.InventoryItem, quantity int) (domain.Inventory, error) {
	if err := positive(quantity); err != nil {
		return domain.Inventory{}, err
	}
	if item.EquipmentID == "" {
		return domain.Inventory{}, fmt.Errorf("%w: equipment id is required", domain.ErrValidation)
	}
	return s.inventories.Update(ctx, inventoryID, func(inv *domain.Inventory) error {
		inv.Credit(item, quantity)
		return nil
	})
}

func (s *InventoryService) RemoveItem(ctx context.Context, inventoryID, equipmentID string) (domain.Inventory, error) {
	return s.inventories.Update(ctx, inventoryID, func(inv *domain.Inventory) error {
		if !inv.RemoveItem(equipmentID) {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, equipmentID)
		}
		return nil
	})
}

type MoveRequest struct {
	FromInventoryID string
	ToInventoryID   string
	EquipmentID     string
	Quantity        int
}

type MoveResult struct {
	Outcome TransferOutcome
	Moved   int
	// InSync is false when a touched inventory still shows a value the server rejected.
	InSync bool
}

// MoveItem debits the source inventory, then credits the destination, as two
// separate optimistic updates. Asking for more than the source holds moves
// what is there.
func (s *InventoryService) MoveItem(ctx context.Context, req MoveRequest) (MoveResult, error) {
	if err := positive(req.Quantity); err != nil {
		return MoveResult{}, err
	}
	if req.FromInventoryID == req.ToInventoryID {
		return MoveResult{}, fmt.Errorf("%w: source and destination inventories are the same", domain.ErrValidation)
	}

	source, ok := s.inventories.Get(req.FromInventoryID)
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: inventory %s", domain.ErrNotFound, req.FromInventoryID)
	}
	if _, ok := s.inventories.Get(req.ToInventoryID); !ok {
		return MoveResult{}, fmt.Errorf("%w: inventory %s", domain.ErrNotFound, req.ToInventoryID)
	}
	item, _, ok := source.FindItem(req.EquipmentID)
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: %s in inventory %s", domain.ErrItemNotFound, req.EquipmentID, req.FromInventoryID)
	}

	moved := min(req.Quantity, item.Quantity)
	if moved == 0 {
		return MoveResult{}, fmt.Errorf("%w: inventory %s holds no %s", domain.ErrValidation, req.FromInventoryID, req.EquipmentID)
	}

	outcome, err := s.runTransfer(ctx, "move "+req.EquipmentID, transfer{
		debit: func(ctx context.Context) error {
			_, err := s.inventories.Update(ctx, req.FromInventoryID, func(inv *domain.Inventory) error {
				return inv.AdjustItem(req.EquipmentID, -moved)
			})
			return err
		},
		credit: func(ctx context.Context) error {
			_, err := s.inventories.Update(ctx, req.ToInventoryID, func(inv *domain.Inventory) error {
				inv.Credit(item, moved)
				return nil
			})
			return err
		},
		refund: func(ctx context.Context) error {
			_, err := s.inventories.Update(ctx, req.FromInventoryID, func(inv *domain.Inventory) error {
				inv.Credit(item, moved)
				return nil
			})
			return err
		},
	})

	result := MoveResult{
		Outcome: outcome,
		InSync:  outcome.Consistent() && !anyStale(s.inventories, req.FromInventoryID, req.ToInventoryID),
	}
	if outcome == TransferCompleted {
		result.Moved = moved
	}
	return result, err
}

// MoveItemOnServer lets the API move the item in one call, then reloads both inventories.
func (s *InventoryService) MoveItemOnServer(ctx context.Context, req MoveRequest) error {
	if err := positive(req.Quantity); err != nil {
		return err
	}
	if s.mover == nil {
		return errors.New("server-side move is not available")
	}

	if err := s.mover.MoveItem(ctx, req.FromInventoryID, req.EquipmentID, req.ToInventoryID, req.Quantity); err != nil {
		s.notifier.Notify(domain.Notification{Level: domain.NotifyError, Title: "could not move item", Message: err.Error()})
		return fmt.Errorf("move %s: %w", req.EquipmentID, err)
	}

	var errs []error
	for _, id := range []string{req.FromInventoryID, req.ToInventoryID} {
		if _, err := s.inventories.Refresh(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.notifier.Notify(domain.Notification{Level: domain.NotifySuccess, Title: "item moved", Message: req.EquipmentID})
	return nil
}

type ClaimResult struct {
	Outcome TransferOutcome
	Claimed domain.Currency
	// InSync is false when the inventory or the character still shows a value the server rejected.
	InSync bool
}

// ClaimCurrency moves coins from an inventory purse to a character, debiting
// the inventory first. Denominations the inventory lacks are skipped.
func (s *InventoryService) ClaimCurrency(ctx context.Context, inventoryID, characterID string, amount domain.Currency) (ClaimResult, error) {
	if err := amount.Validate(); err != nil {
		return ClaimResult{}, err
	}
	if amount.IsZero() {
		return ClaimResult{}, fmt.Errorf("%w: nothing to claim", domain.ErrValidation)
	}

	inv, ok := s.inventories.Get(inventoryID)
	if !ok {
		return ClaimResult{}, fmt.Errorf("%w: inventory %s", domain.ErrNotFound, inventoryID)
	}
	if _, ok := s.characters.Get(characterID); !ok {
		return ClaimResult{}, fmt.Errorf("%w: character %s", domain.ErrNotFound, characterID)
	}

	_, taken := inv.Currency.Sub(amount)
	if taken.IsZero() {
		return ClaimResult{}, fmt.Errorf("%w: inventory %s has none of the requested currency", domain.ErrValidation, inventoryID)
	}

	outcome, err := s.runTransfer(ctx, "claim currency", transfer{
		debit: func(ctx context.Context) error {
			_, err := s.inventories.Update(ctx, inventoryID, func(inv *domain.Inventory) error {
				inv.Currency, _ = inv.Currency.Sub(taken)
				return nil
			})
			return err
		},
		credit: func(ctx context.Context) error {
			_, err := s.characters.Update(ctx, characterID, func(c *domain.Character) error {
				c.Currency = c.Currency.Add(taken)
				return nil
			})
			return err
		},
		refund: func(ctx context.Context) error {
			_, err := s.inventories.Update(ctx, inventoryID, func(inv *domain.Inventory) error {
				inv.Currency = inv.Currency.Add(taken)
				return nil
			})
			return err
		},
	})

	result := ClaimResult{
		Outcome: outcome,
		InSync:  outcome.Consistent() && !anyStale(s.inventories, inventoryID) && !anyStale(s.characters, characterID),
	}
	if outcome == TransferCompleted {
		result.Claimed = taken
	}
	return result, err
}

type transfer struct {
	debit  func(context.Context) error
	credit func(context.Context) error
	refund func(context.Context) error
}

func (s *InventoryService) runTransfer(ctx context.Context, name string, t transfer) (TransferOutcome, error) {
	if err := t.debit(ctx); err != nil {
		return TransferDebitFailed, fmt.Errorf("%s: debit: %w", name, err)
	}

	creditErr := t.credit(ctx)
	if creditErr == nil {
		return TransferCompleted, nil
	}
	creditErr = fmt.Errorf("%s: credit: %w", name, creditErr)

	if !s.opts.CompensateOnFailure || t.refund == nil {
		s.notifier.Notify(domain.Notification{
			Level:   domain.NotifyError,
			Title:   name + " left resources out of sync",
			Message: "reload to see the server's state",
		})
		return TransferCreditFailed, creditErr
	}

	if err := t.refund(ctx); err != nil {
		s.notifier.Notify(domain.Notification{
			Level:   domain.NotifyError,
			Title:   name + " could not be undone",
			Message: "reload to see the server's state",
		})
		return TransferCompensationFailed, errors.Join(creditErr, fmt.Errorf("%s: refund: %w", name, err))
	}

	return TransferCompensated, creditErr
}

func anyStale[T domain.Entity](store *Store[T], ids ...string) bool {
	for _, id := range ids {
		if store.State(id) == EntryStale {
			return true
		}
	}
	return false
}

func positive(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	return nil
}
