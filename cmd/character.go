package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/camp-cli/internal/adapters/render/listing"
	"github.com/bnema/camp-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCharacterCmd(app *app) *cobra.Command {
	return newResourceCmd(app, resourceCommand[domain.Character]{
		use:     "character",
		aliases: []string{"char"},
		short:   "Manage characters",
		store:   app.workspace.Characters,
		render:  listing.Characters,
		name:    func(c domain.Character) string { return c.Name },
		extra: []*cobra.Command{
			newCharacterCreateCmd(app),
			newCharacterRenameCmd(app),
			newCharacterHPCmd(app),
		},
	})
}

func newCharacterCreateCmd(app *app) *cobra.Command {
	var draft domain.Character
	var maxHP int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft.UserID = app.sessions.Current().UserID
			draft.HitPoints = domain.HitPoints{Current: maxHP, Max: maxHP}

			created, err := app.workspace.Characters.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Character name")
	cmd.Flags().StringVar(&draft.Race, "race", "", "Race")
	cmd.Flags().StringVar(&draft.Class, "class", "", "Class")
	cmd.Flags().IntVar(&draft.Level, "level", 1, "Level")
	cmd.Flags().IntVar(&maxHP, "hp", 0, "Maximum hit points")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCharacterRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.workspace.Characters
			if _, err := ensureEntry(cmd.Context(), store, args[0]); err != nil {
				return err
			}

			_, err := store.Update(cmd.Context(), args[0], func(c *domain.Character) error {
				c.Name = strings.TrimSpace(args[1])
				return nil
			})
			return err
		},
	}
}

func newCharacterHPCmd(app *app) *cobra.Command {
	var damage int
	var heal int

	cmd := &cobra.Command{
		Use:   "hp [id]",
		Short: "Apply damage or healing",
		Long:  "Apply damage or healing. Without an id the selected character is used. Damage is taken from temporary hit points first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if damage < 0 || heal < 0 {
				return fmt.Errorf("%w: --damage and --heal must not be negative", domain.ErrValidation)
			}

			store := app.workspace.Characters
			id, err := resolveID(store, args, 0)
			if err != nil {
				return err
			}
			if _, err := ensureEntry(cmd.Context(), store, id); err != nil {
				return err
			}

			updated, err := store.Update(cmd.Context(), id, func(c *domain.Character) error {
				c.HitPoints = c.HitPoints.Heal(heal - damage)
				return nil
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d hp\n", updated.Name, updated.HitPoints.Current, updated.HitPoints.Max)
			return err
		},
	}

	cmd.Flags().IntVar(&damage, "damage", 0, "Hit points lost")
	cmd.Flags().IntVar(&heal, "heal", 0, "Hit points regained")
	cmd.MarkFlagsOneRequired("damage", "heal")

	return cmd
}
