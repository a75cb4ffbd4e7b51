package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tenantctl/internal/adapters/render/report"
	"github.com/bnema/tenantctl/internal/application"
	"github.com/bnema/tenantctl/internal/domain"
	"github.com/spf13/cobra"
)

type refreshResult struct {
	Instance string                  `json:"instance"`
	Outcomes []domain.RefreshOutcome `json:"outcomes"`
	Report   domain.BatchReport      `json:"report"`
}

func newRefreshCmd(app *app) *cobra.Command {
	var flags instanceFlags
	var category string
	var command application.RefreshCommand

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh cached items on a self-hosted instance",
		Long:  "Refresh selected items of one category (--id, repeatable) or every item of it (--all). Tool-prompt ids take the form tool/connector.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if category == "" {
				return errors.New("--category is required")
			}
			parsed, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			command.Category = parsed
			if command.All == (len(command.IDs) > 0) {
				return errors.New("pass either --all or at least one --id")
			}

			instance, err := resolveTarget(cmd, app, flags)
			if err != nil {
				return err
			}

			return runRefresh(cmd, app, flags, instance, func(ctx context.Context) ([]domain.RefreshOutcome, error) {
				if command.All {
					return app.orchestrator.RefreshCategory(ctx, instance, command.Category)
				}
				return app.orchestrator.RefreshBatch(ctx, instance, command.Items()), nil
			})
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&category, "category", "", "Item category: tool-prompt, prompt, agent or workflow")
	cmd.Flags().StringArrayVar(&command.IDs, "id", nil, "Item identifier (repeatable)")
	cmd.Flags().BoolVar(&command.All, "all", false, "Refresh every item of the category")

	cmd.AddCommand(newRefreshToolPromptCmd(app, &flags))

	return cmd
}

func newRefreshToolPromptCmd(app *app, flags *instanceFlags) *cobra.Command {
	var toolName string
	var connectorType string

	cmd := &cobra.Command{
		Use:   "tool-prompt",
		Short: "Refresh one tool-prompt by tool name and connector type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			instance, err := resolveTarget(cmd, app, *flags)
			if err != nil {
				return err
			}

			item := domain.NewToolPromptItem(toolName, connectorType)
			return runRefresh(cmd, app, *flags, instance, func(ctx context.Context) ([]domain.RefreshOutcome, error) {
				outcome, _ := app.orchestrator.RefreshItem(ctx, instance, item)
				return []domain.RefreshOutcome{outcome}, nil
			})
		},
	}

	cmd.Flags().StringVar(&toolName, "tool", "", "Tool name")
	cmd.Flags().StringVar(&connectorType, "connector", "", "Connector type")

	return cmd
}

func runRefresh(cmd *cobra.Command, app *app, flags instanceFlags, instance domain.RemoteInstance, refresh func(context.Context) ([]domain.RefreshOutcome, error)) error {
	var outcomes []domain.RefreshOutcome
	err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), flags.asJSON, "Refreshing...", func(ctx context.Context) error {
		var refreshErr error
		outcomes, refreshErr = refresh(ctx)
		return refreshErr
	})
	if err != nil {
		return err
	}

	domain.SortOutcomes(outcomes)
	summary := domain.Summarize(outcomes)

	if flags.asJSON {
		if err := writeJSON(cmd.OutOrStdout(), refreshResult{Instance: instance.Name, Outcomes: outcomes, Report: summary}); err != nil {
			return err
		}
	} else {
		rendered, err := report.RenderOutcomes(outcomes, report.OutcomeOptions{Instance: instance.Name})
		if err != nil {
			return fmt.Errorf("render refresh report: %w", err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d refreshes failed: %w", summary.Failed, summary.Total, summary.Err)
	}
	return nil
}
