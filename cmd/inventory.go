package cmd

import (
	"fmt"

	"github.com/bnema/camp-cli/internal/adapters/render/listing"
	"github.com/bnema/camp-cli/internal/application"
	"github.com/bnema/camp-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newInventoryCmd(app *app) *cobra.Command {
	return newResourceCmd(app, resourceCommand[domain.Inventory]{
		use:     "inventory",
		aliases: []string{"inv"},
		short:   "Manage inventories and their items",
		store:   app.workspace.Inventories,
		render: func(items []domain.Inventory, opts listing.Options) listing.Listing {
			return listing.Inventories(items, 0, opts)
		},
		name:   func(i domain.Inventory) string { return i.Name },
		scoped: true,
		extra: []*cobra.Command{
			newInventoryCreateCmd(app),
			newInventoryAddItemCmd(app),
			newInventoryRemoveItemCmd(app),
			newInventoryAdjustCmd(app, "incr", "Increase an item's quantity", 1),
			newInventoryAdjustCmd(app, "decr", "Decrease an item's quantity (never below zero)", -1),
			newInventoryEquipCmd(app),
			newInventoryMoveCmd(app),
			newInventoryClaimCmd(app),
		},
	})
}

func newInventoryCreateCmd(app *app) *cobra.Command {
	var draft domain.Inventory

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if draft.CharacterID == "" {
				draft.CharacterID = app.workspace.Characters.SelectedID()
			}
			created, err := app.workspace.Inventories.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Inventory name")
	cmd.Flags().StringVar(&draft.CharacterID, "character", "", "Owning character (default: selected character)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newInventoryAddItemCmd(app *app) *cobra.Command {
	var item domain.InventoryItem
	var quantity int

	cmd := &cobra.Command{
		Use:   "add-item <inventory-id> <equipment-id>",
		Short: "Add an item to an inventory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := ensureEntry(ctx, app.workspace.Inventories, args[0]); err != nil {
				return err
			}

			item.EquipmentID = args[1]
			if equipment, ok := lookupEquipment(app, args[1]); ok {
				if item.Name == "" {
					item.Name = equipment.Name
				}
				if item.Weight == 0 {
					item.Weight = equipment.Weight
				}
			}
			if item.Name == "" {
				item.Name = args[1]
			}

			inv, err := app.inventory.AddItem(ctx, args[0], item, quantity)
			if err != nil {
				return err
			}
			return printItem(cmd, inv, args[1])
		},
	}

	cmd.Flags().StringVar(&item.Name, "name", "", "Display name (default: equipment name)")
	cmd.Flags().Float64Var(&item.Weight, "weight", 0, "Weight per unit (default: equipment weight)")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "Quantity to add")

	return cmd
}

func newInventoryRemoveItemCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item <inventory-id> <equipment-id>",
		Short: "Remove an item from an inventory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureEntry(cmd.Context(), app.workspace.Inventories, args[0]); err != nil {
				return err
			}
			_, err := app.inventory.RemoveItem(cmd.Context(), args[0], args[1])
			return err
		},
	}
}

func newInventoryAdjustCmd(app *app, use, short string, sign int) *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   use + " <inventory-id> <equipment-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := ensureEntry(ctx, app.workspace.Inventories, args[0]); err != nil {
				return err
			}

			adjust := app.inventory.IncrementItemQuantity
			if sign < 0 {
				adjust = app.inventory.DecrementItemQuantity
			}
			inv, err := adjust(ctx, args[0], args[1], by)
			if err != nil {
				return err
			}
			return printItem(cmd, inv, args[1])
		},
	}

	cmd.Flags().IntVar(&by, "by", 1, "Amount to change the quantity by")

	return cmd
}

func newInventoryEquipCmd(app *app) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "equip <inventory-id> <equipment-id>",
		Short: "Mark an item as equipped",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureEntry(cmd.Context(), app.workspace.Inventories, args[0]); err != nil {
				return err
			}
			inv, err := app.inventory.SetItemEquipped(cmd.Context(), args[0], args[1], !off)
			if err != nil {
				return err
			}
			return printItem(cmd, inv, args[1])
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Unequip instead")

	return cmd
}

func newInventoryMoveCmd(app *app) *cobra.Command {
	var quantity int
	var onServer bool

	cmd := &cobra.Command{
		Use:   "move <from-inventory-id> <to-inventory-id> <equipment-id>",
		Short: "Move an item between inventories",
		Long: "Move an item between inventories. By default the source is debited and the destination credited " +
			"as two separate updates; --server asks the API to do both in one call.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := application.MoveRequest{
				FromInventoryID: args[0],
				ToInventoryID:   args[1],
				EquipmentID:     args[2],
				Quantity:        quantity,
			}
			for _, id := range []string{req.FromInventoryID, req.ToInventoryID} {
				if _, err := ensureEntry(ctx, app.workspace.Inventories, id); err != nil {
					return err
				}
			}

			if onServer {
				if err := app.inventory.MoveItemOnServer(ctx, req); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "moved %s from %s to %s\n", req.EquipmentID, req.FromInventoryID, req.ToInventoryID)
				return err
			}

			result, err := app.inventory.MoveItem(ctx, req)
			if err != nil {
				return transferError(result.Outcome, result.InSync, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "moved %d %s from %s to %s\n", result.Moved, req.EquipmentID, req.FromInventoryID, req.ToInventoryID)
			return err
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "Quantity to move (capped at what the source holds)")
	cmd.Flags().BoolVar(&onServer, "server", false, "Let the server move the item in one call")

	return cmd
}

func newInventoryClaimCmd(app *app) *cobra.Command {
	var amount domain.Currency

	cmd := &cobra.Command{
		Use:   "claim <inventory-id> <character-id>",
		Short: "Move coins from an inventory purse to a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := ensureEntry(ctx, app.workspace.Inventories, args[0]); err != nil {
				return err
			}
			if _, err := ensureEntry(ctx, app.workspace.Characters, args[1]); err != nil {
				return err
			}

			result, err := app.inventory.ClaimCurrency(ctx, args[0], args[1], amount)
			if err != nil {
				return transferError(result.Outcome, result.InSync, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "claimed %s\n", result.Claimed)
			return err
		},
	}

	cmd.Flags().IntVar(&amount.Platinum, "pp", 0, "Platinum pieces")
	cmd.Flags().IntVar(&amount.Gold, "gp", 0, "Gold pieces")
	cmd.Flags().IntVar(&amount.Electrum, "ep", 0, "Electrum pieces")
	cmd.Flags().IntVar(&amount.Silver, "sp", 0, "Silver pieces")
	cmd.Flags().IntVar(&amount.Copper, "cp", 0, "Copper pieces")

	return cmd
}

// transferError adds a reload hint when the server or the local cache was left
// holding half a transfer.
func transferError(outcome application.TransferOutcome, inSync bool, err error) error {
	if outcome == "" || (outcome.Consistent() && inSync) {
		return err
	}
	return fmt.Errorf("%w (%s: run `camp inventory list --refresh`)", err, outcome)
}

// lookupEquipment matches the cached catalog by id or index.
func lookupEquipment(app *app, id string) (domain.Equipment, bool) {
	if equipment, ok := app.workspace.Equipment.Get(id); ok {
		return equipment, true
	}
	for _, equipment := range app.workspace.Equipment.Items() {
		if equipment.Index == id {
			return equipment, true
		}
	}
	return domain.Equipment{}, false
}

func printItem(cmd *cobra.Command, inv domain.Inventory, equipmentID string) error {
	item, _, ok := inv.FindItem(equipmentID)
	if !ok {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s removed\n", inv.Name, equipmentID)
		return err
	}
	equipped := ""
	if item.Equipped {
		equipped = " [equipped]"
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s x%d%s\n", inv.Name, item.Name, item.Quantity, equipped)
	return err
}
