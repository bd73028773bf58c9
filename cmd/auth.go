package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(app *app) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Sign in and store the session token",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{routeAnnotation: string(domain.RouteLogin)},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				username = app.sessions.Username(cmd.Context())
			}
			if username == "" {
				var err error
				if username, err = promptLine(cmd, "Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				var err error
				if password, err = promptPassword(cmd, "Password: "); err != nil {
					return err
				}
			}

			session, err := app.sessions.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", session.Username)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (default: last signed-in user)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var username string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:         "register",
		Short:       "Create an account and sign in",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{routeAnnotation: string(domain.RouteRegister)},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				var err error
				if password, err = promptPassword(cmd, "Password: "); err != nil {
					return err
				}
			}

			session, err := app.sessions.Register(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "registered and signed in as %s\n", session.Username)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Sign out and drop the local cache",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{routeAnnotation: string(domain.RouteLogin)},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.sessions.Logout(cmd.Context())
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := app.sessions.Current()
			roles := strings.Join(session.Roles, ", ")
			if roles == "" {
				roles = "none"
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\nroles: %s\nexpires: %s\n",
				session.Username, session.UserID, roles, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return err
		},
	}
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal.
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return promptLine(cmd, prompt)
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
	raw, err := term.ReadPassword(int(in.Fd()))
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
