package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *app) *cobra.Command {
	var watch bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reload every collection from the server",
		Long: "Reload every collection from the server into the local cache. With --watch the command keeps " +
			"refreshing until interrupted or until the session expires.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := syncOnce(cmd, app, quiet); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchSync(ctx, cmd, app)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep refreshing on the session guard interval")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Skip the progress spinner")

	return cmd
}

func syncOnce(cmd *cobra.Command, app *app, quiet bool) error {
	admin := app.sessions.IsAdmin()
	refresh := func(ctx context.Context) error {
		return app.workspace.RefreshAll(ctx, admin)
	}

	var err error
	if quiet {
		err = refresh(cmd.Context())
	} else {
		err = runLoadSpinner(cmd.Context(), cmd.ErrOrStderr(), "Syncing...", refresh)
	}
	if err != nil {
		return err
	}

	ws := app.workspace
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "characters: %d, inventories: %d, notes: %d, spells: %d, campaigns: %d\n",
		ws.Characters.Len(), ws.Inventories.Len(), ws.Notes.Len(), ws.Spells.Len(), ws.Campaigns.Len())
	if err == nil && admin {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "equipment: %d, monsters: %d, users: %d\n",
			ws.Equipment.Len(), ws.Monsters.Len(), ws.Users.Len())
	}
	return err
}

func watchSync(ctx context.Context, cmd *cobra.Command, app *app) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interval := app.cfg.GuardInterval
	redirects := app.guard.Watch(ctx, interval, func() domain.Route { return domain.Route("sync") })
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case decision, ok := <-redirects:
			if !ok {
				return nil
			}
			return fmt.Errorf("%w: %s, run `camp %s`", errGuardRedirect, decision.Reason, decision.Redirect)
		case <-ticker.C:
			if err := app.workspace.RefreshAll(ctx, app.sessions.IsAdmin()); err != nil {
				glog.Warningf("sync: %v", err)
				continue
			}
			glog.V(1).Infof("sync: refreshed at %s", app.now().Format(time.RFC3339))
		}
	}
}
