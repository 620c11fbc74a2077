package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/docket/internal/presentation"
	"github.com/zjrosen/docket/internal/seed"
	"github.com/zjrosen/docket/internal/tracker"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apply a scenario and show the resulting dashboards",
	Long: `Apply a YAML scenario to a fresh registry, print what was applied
and then the dashboard of every seeded project.

Without --file the configured scenario is applied, falling back to the
built-in demo scenario.

Examples:
  # Apply the configured or built-in scenario
  docket seed

  # Apply a scenario file
  docket seed --file team.yaml`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Scenario file to apply")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx, span := cliTracer().Start(cmd.Context(), "cli.seed")
	defer span.End()

	scenario, err := loadSeedScenario()
	if err != nil {
		return err
	}

	svc := tracker.NewService(nil)
	stats, err := scenario.Apply(svc)
	if err != nil {
		return fmt.Errorf("applying scenario: %w", err)
	}
	span.SetAttributes(
		attribute.Int("users", stats.Users),
		attribute.Int("projects", stats.Projects),
		attribute.Int("issues", stats.Issues),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Applied %d users, %d projects, %d issues\n", stats.Users, stats.Projects, stats.Issues)

	reporter := newReporter(svc)
	formatter := presentation.NewFormatter(out)

	projects := svc.Projects()
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID() < projects[j].ID()
	})
	for _, project := range projects {
		summary, err := reporter.Dashboard(ctx, project.ID())
		if err != nil {
			return err
		}
		if err := formatter.FormatDashboardText(presentation.FromSummary(summary)); err != nil {
			return err
		}
	}
	return nil
}

func loadSeedScenario() (*seed.Scenario, error) {
	if seedFile != "" {
		return seed.Load(seedFile)
	}
	return loadScenario()
}
