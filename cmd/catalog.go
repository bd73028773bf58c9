package cmd

import (
	"fmt"

	"github.com/bnema/camp-cli/internal/adapters/render/listing"
	"github.com/bnema/camp-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSpellCmd(app *app) *cobra.Command {
	return newResourceCmd(app, resourceCommand[domain.Spell]{
		use:    "spell",
		short:  "Browse the spell catalog",
		store:  app.workspace.Spells,
		render: listing.Spells,
		name:   func(s domain.Spell) string { return s.Name },
	})
}

func newEquipmentCmd(app *app) *cobra.Command {
	return newResourceCmd(app, resourceCommand[domain.Equipment]{
		use:    "equipment",
		short:  "Browse and manage the equipment catalog",
		store:  app.workspace.Equipment,
		render: listing.Equipment,
		name:   func(e domain.Equipment) string { return e.Name },
		extra:  []*cobra.Command{newEquipmentCreateCmd(app)},
	})
}

func newMonsterCmd(app *app) *cobra.Command {
	return newResourceCmd(app, resourceCommand[domain.Monster]{
		use:    "monster",
		short:  "Browse and manage the bestiary",
		store:  app.workspace.Monsters,
		render: listing.Monsters,
		name:   func(m domain.Monster) string { return m.Name },
		extra:  []*cobra.Command{newMonsterCreateCmd(app)},
	})
}

func newUserCmd(app *app) *cobra.Command {
	return newResourceCmd(app, resourceCommand[domain.User]{
		use:    "user",
		short:  "Manage user accounts (admin)",
		store:  app.workspace.Users,
		render: listing.Users,
		name:   func(u domain.User) string { return u.Username },
	})
}

func newEquipmentCreateCmd(app *app) *cobra.Command {
	var draft domain.Equipment

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add equipment to the catalog (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := app.workspace.Equipment.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&draft.Index, "index", "", "Catalog index, e.g. rope-hempen")
	cmd.Flags().StringVar(&draft.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&draft.Category, "category", "", "Equipment category")
	cmd.Flags().Float64Var(&draft.Weight, "weight", 0, "Weight in pounds")
	cmd.Flags().IntVar(&draft.Cost.Quantity, "cost", 0, "Cost amount")
	cmd.Flags().StringVar(&draft.Cost.Unit, "cost-unit", "gp", "Cost unit")
	cmd.Flags().StringArrayVar(&draft.Description, "desc", nil, "Description paragraph (repeatable)")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMonsterCreateCmd(app *app) *cobra.Command {
	var draft domain.Monster

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a monster to the bestiary (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := app.workspace.Monsters.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&draft.Index, "index", "", "Catalog index, e.g. goblin")
	cmd.Flags().StringVar(&draft.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&draft.Size, "size", "", "Size")
	cmd.Flags().StringVar(&draft.Type, "type", "", "Creature type")
	cmd.Flags().StringVar(&draft.Alignment, "alignment", "", "Alignment")
	cmd.Flags().IntVar(&draft.ArmorClass, "ac", 10, "Armor class")
	cmd.Flags().IntVar(&draft.HitPoints, "hp", 1, "Hit points")
	cmd.Flags().Float64Var(&draft.ChallengeRating, "cr", 0, "Challenge rating")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
