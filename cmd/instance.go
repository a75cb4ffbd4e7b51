package cmd

import (
	"fmt"

	"github.com/bnema/tenantctl/internal/adapters/render/report"
	"github.com/bnema/tenantctl/internal/application"
	"github.com/spf13/cobra"
)

func newInstanceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instance",
		Short: "Manage the local registry of tenant instances",
	}

	cmd.AddCommand(newInstanceAddCmd(app), newInstanceListCmd(app), newInstanceRemoveCmd(app))

	return cmd
}

func newInstanceAddCmd(app *app) *cobra.Command {
	var command application.AddInstanceCommand

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register or replace an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command.Name = args[0]
			instance, err := app.instances.Add(cmd.Context(), command)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved instance %s (%s)\n", instance.Name, instance.BaseURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&command.BaseURL, "base-url", "", "Instance base URL")
	cmd.Flags().BoolVar(&command.SelfHosted, "self-hosted", true, "Instance is self-hosted and exposes cache refresh")
	cmd.Flags().BoolVar(&command.Replace, "replace", false, "Overwrite an instance with the same name")
	_ = cmd.MarkFlagRequired("base-url")

	return cmd
}

func newInstanceListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered instances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			instances, err := app.instances.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), instances)
			}

			rendered, err := report.RenderInstances(instances)
			if err != nil {
				return fmt.Errorf("render instances: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newInstanceRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.instances.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed instance %s\n", args[0])
			return nil
		},
	}
}
