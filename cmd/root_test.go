package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/docket/internal/config"
	"github.com/zjrosen/docket/internal/presentation"
	"github.com/zjrosen/docket/internal/tracker"
)

// resetCLIState gives a test a zeroed config and flag state and restores
// the previous values on cleanup. Run functions read these package vars,
// so tests set them directly instead of going through cobra parsing.
func resetCLIState(t *testing.T) {
	t.Helper()
	prevCfg := cfg
	prevDemoEvents := demoEvents
	prevIssuesProject := issuesProject
	prevIssuesSeverity := issuesSeverity
	prevDashboardProject := dashboardProject
	prevDashboardJSON := dashboardJSON
	prevReportProject := reportProject
	prevReportJSON := reportJSON
	prevSeedFile := seedFile
	t.Cleanup(func() {
		cfg = prevCfg
		demoEvents = prevDemoEvents
		issuesProject = prevIssuesProject
		issuesSeverity = prevIssuesSeverity
		dashboardProject = prevDashboardProject
		dashboardJSON = prevDashboardJSON
		reportProject = prevReportProject
		reportJSON = prevReportJSON
		seedFile = prevSeedFile
	})
	cfg = config.Config{}
	demoEvents = false
	issuesProject = ""
	issuesSeverity = ""
	dashboardProject = ""
	dashboardJSON = false
	reportProject = ""
	reportJSON = false
	seedFile = ""
}

// newTestCommand returns a bare command with its output captured. It
// carries a background context because run functions and hooks pass
// cmd.Context() on, relying on the non-nil context cobra installs on
// every executed command.
func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	c := &cobra.Command{}
	c.SetContext(context.Background())
	c.SetOut(buf)
	return c, buf
}

// writeScenarioFile drops a small scenario into a temp dir and returns
// its path.
func writeScenarioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `users:
  - id: U7
    name: Dana
    role: DEV
    email: dana@example.com
projects:
  - id: OPS
    name: Ops
    repo_url: https://repo/ops
    members: [U7]
issues:
  - id: B1
    title: Pager flood
    description: Alerts repeat every minute
    severity: HIGH
    kind: bug
    project: OPS
    assignee: U7
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// ============================================================================
// Startup
// ============================================================================

// TestInitRuntime_RejectsInvalidConfig verifies that a subcommand never
// starts against a config that fails validation.
func TestInitRuntime_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*config.Config)
		errContains string
	}{
		{
			name:        "sample rate out of range",
			mutate:      func(c *config.Config) { c.Tracing.SampleRate = 1.5 },
			errContains: "sample_rate",
		},
		{
			name:        "unknown exporter",
			mutate:      func(c *config.Config) { c.Tracing.Exporter = "kafka" },
			errContains: "tracing.exporter",
		},
		{
			name:        "negative cache ttl",
			mutate:      func(c *config.Config) { c.Cache.TTL = -1 },
			errContains: "cache.ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCLIState(t)
			t.Setenv("DOCKET_DEBUG", "")

			cfg = config.Defaults()
			tt.mutate(&cfg)

			c, _ := newTestCommand()
			err := initRuntime(c, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Nil(t, tracingProvider, "no provider should exist after a failed startup")
		})
	}
}

// TestInitRuntime_TracingDisabled verifies the default config starts up
// without creating a tracing provider.
func TestInitRuntime_TracingDisabled(t *testing.T) {
	resetCLIState(t)
	t.Setenv("DOCKET_DEBUG", "")
	cfg = config.Defaults()

	c, _ := newTestCommand()
	require.NoError(t, initRuntime(c, nil))
	assert.Nil(t, tracingProvider)

	shutdownRuntime(c, nil)
}

// TestInitRuntime_FileTracingDefaultsPath verifies that enabling tracing
// with the file exporter and no explicit path lands traces under the
// user config directory.
func TestInitRuntime_FileTracingDefaultsPath(t *testing.T) {
	resetCLIState(t)
	t.Setenv("DOCKET_DEBUG", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg = config.Defaults()
	cfg.Tracing.Enabled = true

	c, _ := newTestCommand()
	require.NoError(t, initRuntime(c, nil))
	require.NotNil(t, tracingProvider)

	wantPath := filepath.Join(home, ".config", "docket", "traces", "traces.jsonl")
	assert.Equal(t, wantPath, cfg.Tracing.FilePath)
	_, err := os.Stat(wantPath)
	assert.NoError(t, err, "trace file should exist after startup")

	shutdownRuntime(c, nil)
	assert.Nil(t, tracingProvider, "shutdown should release the provider")
}

// TestInitRuntime_DebugLoggingWritesConfiguredPath verifies the debug
// gate creates the log file at the configured location.
func TestInitRuntime_DebugLoggingWritesConfiguredPath(t *testing.T) {
	resetCLIState(t)
	t.Setenv("DOCKET_DEBUG", "")

	logPath := filepath.Join(t.TempDir(), "logs", "docket.log")
	cfg = config.Defaults()
	cfg.Debug = true
	cfg.LogPath = logPath

	c, _ := newTestCommand()
	require.NoError(t, initRuntime(c, nil))

	_, err := os.Stat(logPath)
	assert.NoError(t, err, "log file should exist after startup")

	shutdownRuntime(c, nil)
}

// ============================================================================
// Scenario loading
// ============================================================================

// TestLoadScenario_DefaultWhenUnconfigured verifies the built-in demo
// scenario backs commands when no scenario file is configured.
func TestLoadScenario_DefaultWhenUnconfigured(t *testing.T) {
	resetCLIState(t)

	scenario, err := loadScenario()
	require.NoError(t, err)
	assert.Len(t, scenario.Users, 3)
	assert.Len(t, scenario.Projects, 1)
}

// TestLoadScenario_ConfiguredPath verifies a configured scenario file
// takes precedence over the built-in one.
func TestLoadScenario_ConfiguredPath(t *testing.T) {
	resetCLIState(t)
	cfg.Seed.ScenarioPath = writeScenarioFile(t)

	scenario, err := loadScenario()
	require.NoError(t, err)
	require.Len(t, scenario.Users, 1)
	assert.Equal(t, "U7", scenario.Users[0].ID)
}

// TestLoadScenario_MissingConfiguredFile verifies a bad scenario path
// surfaces as an error instead of silently falling back.
func TestLoadScenario_MissingConfiguredFile(t *testing.T) {
	resetCLIState(t)
	cfg.Seed.ScenarioPath = filepath.Join(t.TempDir(), "nope.yaml")

	_, err := loadScenario()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scenario")
}

// TestNewRegistry_MaterializesScenario verifies commands get a registry
// with the scenario fully applied.
func TestNewRegistry_MaterializesScenario(t *testing.T) {
	resetCLIState(t)

	svc, err := newRegistry()
	require.NoError(t, err)

	project, ok := svc.Project("P1")
	require.True(t, ok)
	assert.Equal(t, []string{"I1", "I2"}, project.Backlog())
	assert.Len(t, svc.Users(), 3)
}

// ============================================================================
// demo
// ============================================================================

// demoOutput is the full expected output of `docket demo`: dashboard,
// severity report, issue listing, then the listing again after the
// manager approval. The approval targets an issue that assignment
// already moved to IN_PROGRESS, so both listings match.
const demoOutput = `Project: Alpha
LOW: 1
MEDIUM: 0
HIGH: 0
CRITICAL: 1
I1 NullPointer in Login CRITICAL IN_PROGRESS
I2 UI alignment LOW IN_PROGRESS
[BUG] I1 NullPointer in Login IN_PROGRESS CRITICAL
[TASK] I2 UI alignment IN_PROGRESS LOW
[BUG] I1 NullPointer in Login IN_PROGRESS CRITICAL
[TASK] I2 UI alignment IN_PROGRESS LOW
`

// demoTrail is the mutation event trail for the built-in scenario in
// apply order.
const demoTrail = `Events:
user created U1 Alice
user created U2 Bob
user created M1 Carol
project created P1 Alpha
project linked P1 U1
project linked P1 U2
project linked P1 M1
issue created I1 NullPointer in Login
project linked P1 I1
issue attached I1 screenshot.png
issue tagged I1 login
issue assigned I1 U2
issue created I2 UI alignment
project linked P1 I2
issue status_changed I2 IN_PROGRESS
`

func TestRunDemo_PrintsDemoFlow(t *testing.T) {
	resetCLIState(t)

	c, buf := newTestCommand()
	require.NoError(t, runDemo(c, nil))
	assert.Equal(t, demoOutput, buf.String())
}

func TestRunDemo_EventTrail(t *testing.T) {
	resetCLIState(t)
	demoEvents = true

	c, buf := newTestCommand()
	require.NoError(t, runDemo(c, nil))
	assert.Equal(t, demoOutput+demoTrail, buf.String())
}

// ============================================================================
// issues
// ============================================================================

func TestRunIssues_ListsAllAsJSON(t *testing.T) {
	resetCLIState(t)

	c, buf := newTestCommand()
	require.NoError(t, runIssues(c, nil))

	var issues []presentation.IssueDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &issues))
	require.Len(t, issues, 2)
	assert.Equal(t, "I1", issues[0].ID)
	assert.Equal(t, "BUG", issues[0].Label)
	assert.Equal(t, "IN_PROGRESS", issues[0].Status)
	assert.Equal(t, "I2", issues[1].ID)
	assert.Equal(t, "TASK", issues[1].Label)
}

// TestRunIssues_SeverityFilter exercises the --project/--severity pair,
// using a lowercase severity token to cover parsing.
func TestRunIssues_SeverityFilter(t *testing.T) {
	resetCLIState(t)
	issuesProject = "P1"
	issuesSeverity = "critical"

	c, buf := newTestCommand()
	require.NoError(t, runIssues(c, nil))

	var issues []presentation.IssueDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, "I1", issues[0].ID)
	assert.Equal(t, "CRITICAL", issues[0].Severity)
}

func TestRunIssues_FilterFlagsMustPair(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		severity string
	}{
		{name: "project only", project: "P1"},
		{name: "severity only", severity: "LOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCLIState(t)
			issuesProject = tt.project
			issuesSeverity = tt.severity

			c, _ := newTestCommand()
			err := runIssues(c, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "must be used together")
		})
	}
}

func TestRunIssues_UnknownSeverity(t *testing.T) {
	resetCLIState(t)
	issuesProject = "P1"
	issuesSeverity = "blocker"

	c, _ := newTestCommand()
	err := runIssues(c, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}

// ============================================================================
// dashboard
// ============================================================================

func TestRunDashboard_Text(t *testing.T) {
	resetCLIState(t)
	dashboardProject = "P1"

	c, buf := newTestCommand()
	require.NoError(t, runDashboard(c, nil))

	want := `Project: Alpha
LOW: 1
MEDIUM: 0
HIGH: 0
CRITICAL: 1
`
	assert.Equal(t, want, buf.String())
}

func TestRunDashboard_JSON(t *testing.T) {
	resetCLIState(t)
	dashboardProject = "P1"
	dashboardJSON = true

	c, buf := newTestCommand()
	require.NoError(t, runDashboard(c, nil))

	var dto presentation.DashboardDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &dto))
	assert.Equal(t, "P1", dto.ProjectID)
	assert.Equal(t, "Alpha", dto.ProjectName)
	require.Len(t, dto.Counts, 4)
	assert.Equal(t, presentation.SeverityCountDTO{Severity: "CRITICAL", Count: 1}, dto.Counts[3])
}

func TestRunDashboard_RequiresProject(t *testing.T) {
	resetCLIState(t)

	c, _ := newTestCommand()
	err := runDashboard(c, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--project is required")
}

// TestRunDashboard_UnknownProject verifies an unknown project id still
// renders a complete all-zero histogram.
func TestRunDashboard_UnknownProject(t *testing.T) {
	resetCLIState(t)
	dashboardProject = "P9"

	c, buf := newTestCommand()
	require.NoError(t, runDashboard(c, nil))

	want := `Project:
LOW: 0
MEDIUM: 0
HIGH: 0
CRITICAL: 0
`
	assert.Equal(t, want, buf.String())
}

// ============================================================================
// report
// ============================================================================

func TestRunReport_Text(t *testing.T) {
	resetCLIState(t)
	reportProject = "P1"

	c, buf := newTestCommand()
	require.NoError(t, runReport(c, nil))

	want := `I1 NullPointer in Login CRITICAL IN_PROGRESS
I2 UI alignment LOW IN_PROGRESS
`
	assert.Equal(t, want, buf.String())
}

func TestRunReport_JSON(t *testing.T) {
	resetCLIState(t)
	reportProject = "P1"
	reportJSON = true

	c, buf := newTestCommand()
	require.NoError(t, runReport(c, nil))

	var rows []presentation.ReportRowDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "I1", rows[0].IssueID)
	assert.Equal(t, "CRITICAL", rows[0].Severity)
	assert.Equal(t, "I2", rows[1].IssueID)
}

func TestRunReport_RequiresProject(t *testing.T) {
	resetCLIState(t)

	c, _ := newTestCommand()
	err := runReport(c, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--project is required")
}

// ============================================================================
// seed
// ============================================================================

func TestRunSeed_AppliesFileAndPrintsDashboards(t *testing.T) {
	resetCLIState(t)
	seedFile = writeScenarioFile(t)

	c, buf := newTestCommand()
	require.NoError(t, runSeed(c, nil))

	want := `Applied 1 users, 1 projects, 1 issues
Project: Ops
LOW: 0
MEDIUM: 0
HIGH: 1
CRITICAL: 0
`
	assert.Equal(t, want, buf.String())
}

func TestRunSeed_FallsBackToBuiltinScenario(t *testing.T) {
	resetCLIState(t)

	c, buf := newTestCommand()
	require.NoError(t, runSeed(c, nil))

	out := buf.String()
	assert.Contains(t, out, "Applied 3 users, 1 projects, 2 issues")
	assert.Contains(t, out, "Project: Alpha")
	assert.Contains(t, out, "CRITICAL: 1")
}

func TestRunSeed_MissingFile(t *testing.T) {
	resetCLIState(t)
	seedFile = filepath.Join(t.TempDir(), "absent.yaml")

	c, _ := newTestCommand()
	err := runSeed(c, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scenario")
}

// ============================================================================
// Helpers
// ============================================================================

func TestSortIssues(t *testing.T) {
	svc := tracker.NewService(nil)
	svc.CreateIssue("I3", "c", "", tracker.SeverityLow, "bug")
	svc.CreateIssue("I1", "a", "", tracker.SeverityLow, "bug")
	svc.CreateIssue("I2", "b", "", tracker.SeverityLow, "task")

	issues := svc.Issues()
	sortIssues(issues)

	ids := make([]string, len(issues))
	for i, issue := range issues {
		ids[i] = issue.ID()
	}
	assert.Equal(t, []string{"I1", "I2", "I3"}, ids)
}
