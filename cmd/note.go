package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/camp-cli/internal/adapters/render/listing"
	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/textfmt"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *app) *cobra.Command {
	return newResourceCmd(app, resourceCommand[domain.Note]{
		use:    "note",
		short:  "Manage character notes",
		store:  app.workspace.Notes,
		render: listing.Notes,
		name:   func(n domain.Note) string { return n.Title },
		scoped: true,
		extra: []*cobra.Command{
			newNoteCreateCmd(app),
			newNoteEditCmd(app),
			newNoteSearchCmd(app),
		},
	})
}

func newNoteCreateCmd(app *app) *cobra.Command {
	var draft domain.Note

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if draft.CharacterID == "" {
				draft.CharacterID = app.workspace.Characters.SelectedID()
			}
			draft.Tags = textfmt.Hashtags(draft.Content)
			draft.UpdatedAt = app.now().UTC()

			created, err := app.workspace.Notes.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "Note title")
	cmd.Flags().StringVar(&draft.Content, "content", "", "Note body; #hashtags become tags")
	cmd.Flags().StringVar(&draft.CharacterID, "character", "", "Character the note belongs to (default: selected character)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNoteEditCmd(app *app) *cobra.Command {
	var title string
	var content string
	var appendText string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note's title or body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.workspace.Notes
			if _, err := ensureEntry(cmd.Context(), store, args[0]); err != nil {
				return err
			}

			flags := cmd.Flags()
			_, err := store.Update(cmd.Context(), args[0], func(n *domain.Note) error {
				if flags.Changed("title") {
					n.Title = title
				}
				if flags.Changed("content") {
					n.Content = content
				}
				if appendText != "" {
					n.Content = strings.TrimRight(n.Content, "\n") + "\n" + appendText
				}
				n.Tags = textfmt.Hashtags(n.Content)
				n.UpdatedAt = app.now().UTC()
				return nil
			})
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body")
	cmd.Flags().StringVar(&appendText, "append", "", "Text to add at the end of the body")
	cmd.MarkFlagsOneRequired("title", "content", "append")
	cmd.MarkFlagsMutuallyExclusive("content", "append")

	return cmd
}

func newNoteSearchCmd(app *app) *cobra.Command {
	var tag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Find notes by text or #tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.workspace.Notes
			if store.Len() == 0 {
				if err := loadStore(cmd, store, domain.Scope{}, asJSON); err != nil {
					return err
				}
			}

			term := ""
			if len(args) > 0 {
				term = strings.TrimSpace(args[0])
			}
			tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
			if term == "" && tag == "" {
				return fmt.Errorf("%w: give a search term or --tag", domain.ErrValidation)
			}

			matches := filterNotes(store.Items(), term, tag)
			return writeItems(cmd, app, store, listing.Notes, listing.Options{Highlight: term}, matches, asJSON)
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only notes carrying this #tag")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func filterNotes(notes []domain.Note, term, tag string) []domain.Note {
	needle := strings.ToLower(term)
	var out []domain.Note
	for _, note := range notes {
		if needle != "" &&
			!strings.Contains(strings.ToLower(note.Title), needle) &&
			!strings.Contains(strings.ToLower(note.Content), needle) {
			continue
		}
		if tag != "" && !hasTag(note, tag) {
			continue
		}
		out = append(out, note)
	}
	return out
}

func hasTag(note domain.Note, tag string) bool {
	tags := note.Tags
	if len(tags) == 0 {
		tags = textfmt.Hashtags(note.Content)
	}
	for _, t := range tags {
		if strings.EqualFold(strings.TrimPrefix(t, "#"), tag) {
			return true
		}
	}
	return false
}
