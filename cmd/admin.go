package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAdminCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Server maintenance (admin role required)",
	}

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the server's response cache",
	}
	cacheCmd.AddCommand(newAdminCacheInfoCmd(app), newAdminCacheClearCmd(app))

	cmd.AddCommand(
		cacheCmd,
		newAdminBackupCmd(app),
		newAdminRestoreCmd(app),
	)

	return cmd
}

func requireAdmin(app *app) error {
	if !app.sessions.IsAdmin() {
		return fmt.Errorf("%w: the %s role is required", domain.ErrNotAuthenticated, domain.AdminRole)
	}
	return nil
}

func newAdminCacheInfoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cached keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAdmin(app); err != nil {
				return err
			}

			info, err := app.admin.CacheInfo(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "cached entries: %d\n", info.Count)
			if info.SizeBytes > 0 {
				_, _ = fmt.Fprintf(out, "size: %d bytes\n", info.SizeBytes)
			}
			for _, key := range info.Keys {
				_, _ = fmt.Fprintf(out, "- %s\n", key)
			}
			return nil
		},
	}
}

func newAdminCacheClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the server's response cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAdmin(app); err != nil {
				return err
			}
			return app.admin.ClearCache(cmd.Context())
		},
	}
}

func newAdminBackupCmd(app *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "backup <collection>",
		Short: "Download a collection as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(app); err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				_, err := app.admin.Backup(cmd.Context(), args[0], cmd.OutOrStdout())
				return err
			}

			n, err := writeFileAtomic(outPath, func(w io.Writer) (int64, error) {
				return app.admin.Backup(cmd.Context(), args[0], w)
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", n, outPath)
			return err
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")

	return cmd
}

// writeFileAtomic streams into a temp file next to path and only replaces path
// once write succeeds, so a failed download never clobbers an earlier file.
func writeFileAtomic(path string, write func(io.Writer) (int64, error)) (int64, error) {
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".camp-backup-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp backup file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	n, err := write(tempFile)
	if err != nil {
		_ = tempFile.Close()
		return 0, err
	}

	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		return 0, fmt.Errorf("chmod temp backup file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return 0, fmt.Errorf("close temp backup file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return 0, fmt.Errorf("replace backup file: %w", err)
	}
	cleanup = false

	return n, nil
}

func newAdminRestoreCmd(app *app) *cobra.Command {
	var confirm string

	cmd := &cobra.Command{
		Use:   "restore <collection> <file>",
		Short: "Replace a collection with a backup file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(app); err != nil {
				return err
			}
			if err := domain.ConfirmDeletion(strings.TrimSpace(args[0]), confirm); err != nil {
				return err
			}
			return app.admin.Restore(cmd.Context(), args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&confirm, "confirm", "", "Retype the collection name; restoring replaces it")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}
