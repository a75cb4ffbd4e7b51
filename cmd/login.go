package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/tenantctl/internal/adapters/render/report"
	"github.com/bnema/tenantctl/internal/application"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(app *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the admin backend and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				value, err := prompt(cmd, input, "Email: ", false)
				if err != nil {
					return err
				}
				email = value
			}
			if password == "" {
				value, err := prompt(cmd, input, "Password: ", true)
				if err != nil {
					return err
				}
				password = value
			}

			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), false, "Signing in...", func(ctx context.Context) error {
				return app.session.Login(ctx, email, password)
			})
			if err != nil {
				return err
			}

			claims := app.session.Snapshot().Claims
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (session expires %s)\n",
				claims.Identity(), claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Operator email (prompted when empty)")
	cmd.Flags().StringVar(&password, "password", "", "Operator password (prompted when empty)")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app.session.Logout(cmd.Context())
			app.session.Wait()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current operator session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := application.NewSessionStatus(app.session.Snapshot(), app.clock.Now())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), status)
			}

			rendered, err := report.RenderSession(status)
			if err != nil {
				return fmt.Errorf("render session: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

// requireSession fails protected commands before any remote call.
func requireSession(app *app) error {
	if err := app.session.RequireAuthenticated(); err != nil {
		return fmt.Errorf("%w (run `tenantctl login`)", err)
	}
	return nil
}

func prompt(cmd *cobra.Command, input *bufio.Reader, label string, secret bool) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)

	if file, ok := cmd.InOrStdin().(*os.File); ok && secret && term.IsTerminal(int(file.Fd())) {
		value, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(value), nil
	}

	line, err := input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimSpace(line), nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
