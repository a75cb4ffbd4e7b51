package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/tenantctl/internal/adapters/render/report"
	"github.com/bnema/tenantctl/internal/application"
	"github.com/bnema/tenantctl/internal/domain"
	"github.com/spf13/cobra"
)

type instanceFlags struct {
	query  application.InstanceQuery
	asJSON bool
}

func (f *instanceFlags) register(cmd *cobra.Command, persistent bool) {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}
	flags.StringVar(&f.query.Name, "instance", "", "Registered instance name")
	flags.StringVar(&f.query.BaseURL, "base-url", "", "Ad-hoc self-hosted instance URL (bypasses the registry)")
	flags.BoolVar(&f.asJSON, "json", false, "Output JSON")
}

// resolveTarget checks the session and resolves the instance a protected
// command talks to.
func resolveTarget(cmd *cobra.Command, app *app, flags instanceFlags) (domain.RemoteInstance, error) {
	if err := requireSession(app); err != nil {
		return domain.RemoteInstance{}, err
	}
	return app.instances.Resolve(cmd.Context(), flags.query)
}

func newCatalogCmd(app *app) *cobra.Command {
	var flags instanceFlags
	var search string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the refreshable items of a self-hosted instance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			instance, err := resolveTarget(cmd, app, flags)
			if err != nil {
				return err
			}

			var catalog domain.Catalog
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), flags.asJSON, "Loading catalog...", func(ctx context.Context) error {
				var loadErr error
				catalog, loadErr = app.orchestrator.LoadCatalog(ctx, instance)
				return loadErr
			})
			if err != nil {
				return err
			}

			catalog = domain.FilterCatalog(catalog, search)
			if flags.asJSON {
				return writeJSON(cmd.OutOrStdout(), catalog)
			}

			rendered, err := report.RenderCatalog(catalog, report.CatalogOptions{Instance: instance.Name, Search: search})
			if err != nil {
				return fmt.Errorf("render catalog: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive filter over item fields")

	return cmd
}
