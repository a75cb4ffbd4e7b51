package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "tenantctl",
		Short:         "tenantctl: operator sessions and self-hosted cache refresh",
		Long:          "tenantctl signs an operator into the admin backend, keeps the session token in a local secret store, and refreshes cached tool-prompts, prompts, agents and workflows on self-hosted tenant instances.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.wire(cmd.ErrOrStderr()); err != nil {
				return err
			}
			return app.restoreSession(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newInstanceCmd(app),
		newCatalogCmd(app),
		newRefreshCmd(app),
	)

	return rootCmd
}
