package cli

import (
	"github.com/spf13/cobra"

	"github.com/target/docanalyzer-ui/internal/devseed"
)

func newDevSeedCmd(app *App) *cobra.Command {
	var opts devseed.Options
	cmd := &cobra.Command{
		Use:    "dev-seed",
		Short:  "Create the demo account and upload sample documents",
		Hidden: true,
		Args:   noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Logger = app.Logger
			res, err := devseed.Seed(cmd.Context(), app.api, opts)
			if err != nil {
				return err
			}
			if res.Registered {
				app.printf("Registered %s.\n", res.Username)
			}
			for _, d := range res.Uploaded {
				app.printf("Uploaded %s (id %d).\n", d.Filename, d.ID)
			}
			for _, name := range res.Skipped {
				app.printf("Already present: %s\n", name)
			}
			return app.completeLogin(cmd, res.Username)
		},
	}
	cmd.Flags().StringVar(&opts.Username, "username", devseed.DefaultUsername, "demo account username")
	cmd.Flags().StringVar(&opts.Email, "email", devseed.DefaultEmail, "demo account email")
	cmd.Flags().StringVar(&opts.Password, "password", devseed.DefaultPassword, "demo account password")
	return cmd
}
