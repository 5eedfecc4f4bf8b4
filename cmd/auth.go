package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storefront/views"
)

func newLoginCommand(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Long: `Sign in with email and password. Missing values are prompted for.

Try "storefront demo-users" for accounts that work against the demo gateway.`,
		Args: cobra.NoArgs,
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				var err error
				if email, password, err = views.PromptCredentials(email, password); err != nil {
					return err
				}
			}

			outcome := views.NewLoginView(a.auth).Submit(cmd.Context(), email, password)
			if !outcome.Succeeded() {
				return outcome.Err
			}
			return a.render.Message(outcome.Message())
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			return a.render.Message("Logged out.")
		}),
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			if !a.sessions.IsActive(cmd.Context()) {
				return a.render.Session(nil)
			}
			return a.render.Session(a.sessions.Current())
		}),
	}
}

func newDemoUsersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo-users",
		Short: "List the gateway's demo accounts",
		Args:  cobra.NoArgs,
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			ids, err := views.NewLoginView(a.auth).DemoIdentities(cmd.Context())
			if err != nil {
				return err
			}
			return a.render.Identities(ids)
		}),
	}
}

func newVerifyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the stored token is still accepted",
		Long:  "Check that the stored token is still accepted. A rejected token logs you out.",
		Args:  cobra.NoArgs,
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			v, err := a.auth.Verify(cmd.Context())
			if err != nil {
				return err
			}
			return a.render.Message(fmt.Sprintf("Token is valid for %s (%s).", v.Email, v.UserID))
		}),
	}
}
