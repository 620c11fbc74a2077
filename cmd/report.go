package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/docket/internal/presentation"
)

var (
	reportProject string
	reportJSON    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a project's severity report",
	Long: `Show one line per issue in a project's backlog, in backlog order.
An unknown project id yields no rows.

Examples:
  # Text rows
  docket report --project P1

  # Same data as JSON
  docket report --project P1 --json`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportProject, "project", "p", "", "Project to report on")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx, span := cliTracer().Start(cmd.Context(), "cli.report")
	defer span.End()

	if reportProject == "" {
		return fmt.Errorf("--project is required")
	}
	span.SetAttributes(attribute.String("project_id", reportProject))

	svc, err := newRegistry()
	if err != nil {
		return err
	}
	reporter := newReporter(svc)

	rows := reporter.SeverityReport(ctx, reportProject)
	span.SetAttributes(attribute.Int("row_count", len(rows)))

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	dtos := presentation.FromRows(rows)
	if reportJSON {
		return formatter.FormatReport(dtos)
	}
	return formatter.FormatReportText(dtos)
}
