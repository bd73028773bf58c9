package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/camp-cli/internal/adapters/render/listing"
	"github.com/bnema/camp-cli/internal/application"
	"github.com/bnema/camp-cli/internal/domain"
	"github.com/spf13/cobra"
)

// resourceCommand describes the shared list/show/select/delete verbs of one store.
type resourceCommand[T domain.Entity] struct {
	use     string
	short   string
	store   *application.Store[T]
	render  func([]T, listing.Options) listing.Listing
	name    func(T) string
	scoped  bool
	extra   []*cobra.Command
	aliases []string
}

func newResourceCmd[T domain.Entity](app *app, rc resourceCommand[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     rc.use,
		Aliases: rc.aliases,
		Short:   rc.short,
	}

	cmd.AddCommand(
		newResourceListCmd(app, rc),
		newResourceShowCmd(app, rc),
		newResourceSelectCmd(rc),
		newResourceDeleteCmd(rc),
	)
	cmd.AddCommand(rc.extra...)

	return cmd
}

func newResourceListCmd[T domain.Entity](app *app, rc resourceCommand[T]) *cobra.Command {
	var refresh bool
	var asJSON bool
	var characterID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + rc.use + " entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope := domain.Scope{}
			if characterID != "" {
				scope = domain.CharacterScope(characterID)
			}

			if refresh || rc.store.Len() == 0 || !scope.IsZero() {
				if err := loadStore(cmd, rc.store, scope, asJSON); err != nil {
					return err
				}
			}

			return writeItems(cmd, app, rc.store, rc.render, listing.Options{}, rc.store.Items(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Reload from the server instead of the local cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	if rc.scoped {
		cmd.Flags().StringVar(&characterID, "character", "", "Only entries belonging to this character")
	}

	return cmd
}

func newResourceShowCmd[T domain.Entity](app *app, rc resourceCommand[T]) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one " + rc.use + " entry (default: the selected one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(rc.store, args, 0)
			if err != nil {
				return err
			}
			item, err := ensureEntry(cmd.Context(), rc.store, id)
			if err != nil {
				return err
			}
			return writeItems(cmd, app, rc.store, rc.render, listing.Options{}, []T{item}, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newResourceSelectCmd[T domain.Entity](rc resourceCommand[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Focus one " + rc.use + " entry for later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := ensureEntry(cmd.Context(), rc.store, args[0])
			if err != nil {
				return err
			}
			rc.store.Select(cmd.Context(), item.EntityID())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "selected %s (%s)\n", rc.name(item), item.EntityID())
			return err
		},
	}
}

func newResourceDeleteCmd[T domain.Entity](rc resourceCommand[T]) *cobra.Command {
	var confirm string

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one " + rc.use + " entry (default: the selected one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(rc.store, args, 0)
			if err != nil {
				return err
			}
			if _, err := ensureEntry(cmd.Context(), rc.store, id); err != nil {
				return err
			}
			return application.ConfirmedRemove(cmd.Context(), rc.store, id, confirm, rc.name)
		},
	}

	cmd.Flags().StringVar(&confirm, "confirm", "", "Retype the entry's name to confirm")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}

// resolveID falls back to the store's selected entry when no id was given.
func resolveID[T domain.Entity](store *application.Store[T], args []string, idx int) (string, error) {
	if len(args) > idx && args[idx] != "" {
		return args[idx], nil
	}
	if id := store.SelectedID(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%w: no %s id given and none selected", domain.ErrValidation, store.Resource())
}

// ensureEntry returns the cached entry, fetching it when this process has not seen it.
func ensureEntry[T domain.Entity](ctx context.Context, store *application.Store[T], id string) (T, error) {
	if item, ok := store.Get(id); ok {
		return item, nil
	}
	return store.Refresh(ctx, id)
}

func loadStore[T domain.Entity](cmd *cobra.Command, store *application.Store[T], scope domain.Scope, quiet bool) error {
	load := func(ctx context.Context) error {
		_, err := store.LoadAll(ctx, scope)
		return err
	}
	if quiet {
		return load(cmd.Context())
	}
	return runLoadSpinner(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Loading %s...", store.Resource().Label()), load)
}

func writeItems[T domain.Entity](cmd *cobra.Command, app *app, store *application.Store[T], render func([]T, listing.Options) listing.Listing, opts listing.Options, items []T, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	opts.Selected = store.SelectedID()
	opts.State = func(id string) application.EntryState { return store.State(id) }

	rendered, err := app.renderer(render(items, opts))
	if err != nil {
		return fmt.Errorf("render %s: %w", store.Resource(), err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
