package cmd

import (
	"errors"
	"flag"
	"fmt"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

const (
	routeAnnotation = "camp/route"
	// skipSessionAnnotation marks commands that run without restoring a session.
	skipSessionAnnotation = "camp/skip-session"
)

var errGuardRedirect = errors.New("sign in required")

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "camp",
		Short:         "camp: manage tabletop characters, inventories and campaigns",
		Long:          "camp is a terminal client for the campaign API. It keeps a local copy of your characters, inventories, notes and catalogs, writes changes back optimistically, and signs you out when your session expires.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.prepare(cmd)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newCharacterCmd(app),
		newInventoryCmd(app),
		newNoteCmd(app),
		newSpellCmd(app),
		newEquipmentCmd(app),
		newMonsterCmd(app),
		newUserCmd(app),
		newCampaignCmd(app),
		newAdminCmd(app),
		newSyncCmd(app),
	)

	return rootCmd
}

// prepare restores the persisted session and caches, then runs the session guard
// for the command's route.
func (a *app) prepare(cmd *cobra.Command) error {
	a.stderr.Set(cmd.ErrOrStderr())

	if annotated(cmd, skipSessionAnnotation) {
		return nil
	}

	ctx := cmd.Context()
	if _, err := a.sessions.Restore(ctx); err != nil {
		glog.Warningf("restore session: %v", err)
	}

	decision, err := a.guard.Check(ctx, routeOf(cmd))
	if err != nil {
		glog.Warningf("session guard: %v", err)
	}
	if !decision.Allowed {
		return fmt.Errorf("%w: %s, run `camp %s`", errGuardRedirect, decision.Reason, decision.Redirect)
	}

	if a.sessions.Authenticated() {
		if err := a.workspace.Hydrate(ctx); err != nil {
			glog.Warningf("hydrate workspace: %v", err)
		}
	}
	return nil
}

func routeOf(cmd *cobra.Command) domain.Route {
	for c := cmd; c != nil; c = c.Parent() {
		if route, ok := c.Annotations[routeAnnotation]; ok {
			return domain.Route(route)
		}
	}
	return domain.Route(cmd.CommandPath())
}

func annotated(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[key]; ok {
			return true
		}
	}
	return false
}
