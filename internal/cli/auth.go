package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
	"github.com/target/docanalyzer-ui/internal/domain/document"
	"github.com/target/docanalyzer-ui/internal/http/validation"
)

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError{err: err}
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func newLoginCmd(app *App) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the document service",
		Long:  "Log in with a username and password. Missing values are prompted for; the password is not echoed.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = app.prompt("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = app.promptSecret("Password: "); err != nil {
					return err
				}
			}
			username = strings.TrimSpace(username)
			if errs := validation.Credentials(username, password); len(errs) > 0 {
				return fieldErrors(errs)
			}

			ctx := cmd.Context()
			if err := app.api.Login(ctx, document.Credentials{Username: username, Password: password}); err != nil {
				app.Logger.InfoContext(ctx, "login failed", "username", username, "error", err)
				return err
			}
			return app.completeLogin(cmd, username)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var reg document.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if reg.Username == "" {
				if reg.Username, err = app.prompt("Username: "); err != nil {
					return err
				}
			}
			if reg.Email == "" {
				if reg.Email, err = app.prompt("Email: "); err != nil {
					return err
				}
			}
			if reg.Password == "" {
				if reg.Password, err = app.promptSecret("Password: "); err != nil {
					return err
				}
			}
			reg.Username = strings.TrimSpace(reg.Username)
			reg.Email = strings.TrimSpace(reg.Email)
			if errs := validation.Registration(reg.Username, reg.Email, reg.Password); len(errs) > 0 {
				return fieldErrors(errs)
			}

			ctx := cmd.Context()
			if _, err := app.api.Register(ctx, reg); err != nil {
				app.Logger.InfoContext(ctx, "registration failed", "username", reg.Username, "error", err)
				return err
			}
			if err := app.api.Login(ctx, document.Credentials{Username: reg.Username, Password: reg.Password}); err != nil {
				return err
			}
			return app.completeLogin(cmd, reg.Username)
		},
	}
	cmd.Flags().StringVarP(&reg.Username, "username", "u", "", "account username")
	cmd.Flags().StringVar(&reg.Email, "email", "", "account email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "account password (prompted when omitted)")
	return cmd
}

// completeLogin records the session; the announce observer prints the result.
func (a *App) completeLogin(cmd *cobra.Command, username string) error {
	if err := a.session.Login(cmd.Context(), domainauth.User{Username: username}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the service cookies",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.api.Logout(ctx); err != nil {
				app.Logger.WarnContext(ctx, "backend logout failed", "error", err)
			}
			if err := app.api.ClearCookies(ctx); err != nil {
				app.Logger.WarnContext(ctx, "clearing backend cookies failed", "error", err)
			}
			app.viewer.Tracker().Forget(cliScope)
			if err := app.session.Logout(ctx); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			state := app.session.State()
			if !state.IsAuthenticated() {
				app.printf("Not logged in. Service: %s\n", app.Config.APIURL)
				return nil
			}
			app.printf("Logged in as %s. Service: %s\n", state.Username(), app.Config.APIURL)
			return nil
		},
	}
}
