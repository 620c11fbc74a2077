package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/docket/internal/log"
	"github.com/zjrosen/docket/internal/presentation"
	"github.com/zjrosen/docket/internal/pubsub"
	"github.com/zjrosen/docket/internal/report"
	"github.com/zjrosen/docket/internal/seed"
	"github.com/zjrosen/docket/internal/tracker"
)

var demoEvents bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Seed the built-in scenario and walk through the tracker",
	Long: `Seed a fresh registry with the built-in demo scenario and print the
project dashboard, the severity report and the issue listing. Carol, the
manager, then approves the critical bug and the listing is printed again.

The demo always uses the built-in scenario and ignores any configured
scenario file.

Examples:
  # Run the demo
  docket demo

  # Run the demo and print the mutation event trail
  docket demo --events`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoEvents, "events", false, "print the mutation event trail after the demo")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	ctx, span := cliTracer().Start(cmd.Context(), "cli.demo")
	defer span.End()
	span.SetAttributes(attribute.Bool("events", demoEvents))

	out := cmd.OutOrStdout()

	var broker *pubsub.Broker[tracker.Event]
	var events <-chan pubsub.Event[tracker.Event]
	if demoEvents {
		broker = pubsub.NewBroker[tracker.Event]()
		events = broker.Subscribe(ctx)
	}

	svc := tracker.NewService(broker)
	scenario, err := seed.Default()
	if err != nil {
		return err
	}
	if _, err := scenario.Apply(svc); err != nil {
		return fmt.Errorf("applying demo scenario: %w", err)
	}

	reporter := newReporter(svc)
	formatter := presentation.NewFormatter(out)

	summary, err := reporter.Dashboard(ctx, "P1")
	if err != nil {
		return err
	}
	if err := formatter.FormatDashboardText(presentation.FromSummary(summary)); err != nil {
		return err
	}

	rows := reporter.SeverityReport(ctx, "P1")
	if err := formatter.FormatReportText(presentation.FromRows(rows)); err != nil {
		return err
	}

	if err := printIssueListing(ctx, reporter, formatter); err != nil {
		return err
	}

	// Carol reviews the critical bug.
	if manager, ok := svc.User("M1"); ok {
		if issue, ok := svc.Issue("I1"); ok {
			approved := manager.ApproveIssue(issue)
			log.Info(log.CatCLI, "Approval attempted", "approver", manager.ID(), "issue", issue.ID(), "approved", approved)
		}
	}

	if err := printIssueListing(ctx, reporter, formatter); err != nil {
		return err
	}

	if demoEvents {
		broker.Close()
		fmt.Fprintln(out, "Events:")
		for event := range events {
			mutation := event.Payload
			if mutation.Detail == "" {
				fmt.Fprintf(out, "%s %s %s\n", mutation.Entity, mutation.Op, mutation.ID)
			} else {
				fmt.Fprintf(out, "%s %s %s %s\n", mutation.Entity, mutation.Op, mutation.ID, mutation.Detail)
			}
		}
	}

	return nil
}

func printIssueListing(ctx context.Context, reporter *report.Reporter, formatter *presentation.Formatter) error {
	issues := reporter.AllIssues(ctx)
	sortIssues(issues)
	return formatter.FormatIssuesText(presentation.FromDomainIssues(issues))
}
