package cmd

import (
	"fmt"

	"github.com/bnema/camp-cli/internal/adapters/render/listing"
	"github.com/bnema/camp-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCampaignCmd(app *app) *cobra.Command {
	return newResourceCmd(app, resourceCommand[domain.Campaign]{
		use:    "campaign",
		short:  "Manage campaigns and their rosters",
		store:  app.workspace.Campaigns,
		render: listing.Campaigns,
		name:   func(c domain.Campaign) string { return c.Name },
		extra: []*cobra.Command{
			newCampaignCreateCmd(app),
			newCampaignRosterCmd(app, "add-character", "Add a character to a campaign", true),
			newCampaignRosterCmd(app, "remove-character", "Remove a character from a campaign", false),
		},
	})
}

func newCampaignCreateCmd(app *app) *cobra.Command {
	var draft domain.Campaign

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft.OwnerID = app.sessions.Current().UserID
			created, err := app.workspace.Campaigns.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Campaign name")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Short description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCampaignRosterCmd(app *app, use, short string, add bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <campaign-id> <character-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := ensureEntry(ctx, app.workspace.Campaigns, args[0]); err != nil {
				return err
			}

			change := app.campaigns.RemoveCharacter
			if add {
				change = app.campaigns.AddCharacter
			}
			campaign, err := change(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d characters\n", campaign.Name, len(campaign.CharacterIDs))
			return err
		},
	}
}
