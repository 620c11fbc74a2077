package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/docket/internal/presentation"
)

var (
	dashboardProject string
	dashboardJSON    bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show a project's severity histogram",
	Long: `Show the severity histogram for one project's backlog. Every
severity level is listed, zero counts included. An unknown project id
yields an all-zero histogram.

Examples:
  # Text histogram
  docket dashboard --project P1

  # Same data as JSON
  docket dashboard --project P1 --json`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardProject, "project", "p", "", "Project to summarize")
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx, span := cliTracer().Start(cmd.Context(), "cli.dashboard")
	defer span.End()

	if dashboardProject == "" {
		return fmt.Errorf("--project is required")
	}
	span.SetAttributes(attribute.String("project_id", dashboardProject))

	svc, err := newRegistry()
	if err != nil {
		return err
	}
	reporter := newReporter(svc)

	summary, err := reporter.Dashboard(ctx, dashboardProject)
	if err != nil {
		return err
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	dto := presentation.FromSummary(summary)
	if dashboardJSON {
		return formatter.FormatDashboard(dto)
	}
	return formatter.FormatDashboardText(dto)
}
