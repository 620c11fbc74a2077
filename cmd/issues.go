package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/docket/internal/presentation"
	"github.com/zjrosen/docket/internal/tracker"
)

var (
	issuesProject  string
	issuesSeverity string
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List issues as JSON",
	Long: `List issues from the configured scenario as JSON.

Without flags every registered issue is listed. Use --project together
with --severity to list one project's backlog filtered to a severity.

Examples:
  # List all issues
  docket issues

  # List the critical issues in a project's backlog
  docket issues --project P1 --severity CRITICAL

  # Parse specific fields with jq
  docket issues | jq '.[].id'`,
	RunE: runIssues,
}

func init() {
	issuesCmd.Flags().StringVarP(&issuesProject, "project", "p", "", "Project to filter by (requires --severity)")
	issuesCmd.Flags().StringVarP(&issuesSeverity, "severity", "s", "", "Severity to filter by (requires --project)")
	rootCmd.AddCommand(issuesCmd)
}

func runIssues(cmd *cobra.Command, _ []string) error {
	ctx, span := cliTracer().Start(cmd.Context(), "cli.issues")
	defer span.End()

	svc, err := newRegistry()
	if err != nil {
		return err
	}
	reporter := newReporter(svc)
	formatter := presentation.NewFormatter(cmd.OutOrStdout())

	if issuesProject != "" || issuesSeverity != "" {
		if issuesProject == "" || issuesSeverity == "" {
			return fmt.Errorf("--project and --severity must be used together")
		}
		severity, err := tracker.ParseSeverity(issuesSeverity)
		if err != nil {
			return err
		}
		span.SetAttributes(
			attribute.String("project_id", issuesProject),
			attribute.String("severity", severity.String()),
		)
		issues := reporter.IssuesBySeverity(ctx, issuesProject, severity)
		return formatter.FormatIssues(presentation.FromDomainIssues(issues))
	}

	issues := reporter.AllIssues(ctx)
	sortIssues(issues)
	span.SetAttributes(attribute.Int("issue_count", len(issues)))
	return formatter.FormatIssues(presentation.FromDomainIssues(issues))
}
