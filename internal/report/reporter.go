package report

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/docket/internal/cachemanager"
	"github.com/zjrosen/docket/internal/log"
	"github.com/zjrosen/docket/internal/tracker"
)

const (
	tracerName      = "docket/report"
	defaultCacheTTL = 30 * time.Second
)

// ReporterOption configures a Reporter.
type ReporterOption func(*reporterConfig)

type reporterConfig struct {
	tracer    trace.Tracer
	cacheTTL  time.Duration
	skipCache bool
}

// WithTracer overrides the tracer used for query spans.
func WithTracer(tracer trace.Tracer) ReporterOption {
	return func(cfg *reporterConfig) {
		cfg.tracer = tracer
	}
}

// WithCacheTTL sets how long dashboard summaries stay cached.
func WithCacheTTL(ttl time.Duration) ReporterOption {
	return func(cfg *reporterConfig) {
		if ttl > 0 {
			cfg.cacheTTL = ttl
		}
	}
}

// WithoutCache disables dashboard caching; every read recomputes.
func WithoutCache() ReporterOption {
	return func(cfg *reporterConfig) {
		cfg.skipCache = true
	}
}

// Reporter serves the read side of the tracker. Dashboard summaries are
// cached under keys that embed the service revision, so any mutation
// moves reads to a fresh key and stale entries age out on their own.
type Reporter struct {
	svc       *tracker.Service
	tracer    trace.Tracer
	dashboard *cachemanager.ReadThroughCache[string, Summary, string]
	cacheTTL  time.Duration
}

// NewReporter creates a Reporter over the given service. Without
// options it caches dashboards for 30s and traces through the global
// tracer provider.
func NewReporter(svc *tracker.Service, opts ...ReporterOption) *Reporter {
	cfg := reporterConfig{
		tracer:   otel.Tracer(tracerName),
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager := cachemanager.NewInMemoryCacheManager[string, Summary]("dashboard", cfg.cacheTTL, 2*cfg.cacheTTL)
	reporter := &Reporter{
		svc:      svc,
		tracer:   cfg.tracer,
		cacheTTL: cfg.cacheTTL,
	}
	reporter.dashboard = cachemanager.NewReadThroughCache[string, Summary, string](
		manager,
		func(ctx context.Context, projectID string) (Summary, error) {
			return BuildDashboard(svc, projectID), nil
		},
		cfg.skipCache,
	)
	return reporter
}

// Dashboard returns the severity histogram for a project.
func (r *Reporter) Dashboard(ctx context.Context, projectID string) (Summary, error) {
	ctx, span := r.tracer.Start(ctx, "report.Dashboard", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	revision := r.svc.Revision()
	key := fmt.Sprintf("%s@%d", projectID, revision)

	summary, cached, err := r.dashboard.Get(ctx, key, projectID, r.cacheTTL)
	if err != nil {
		return Summary{}, err
	}

	span.SetAttributes(
		attribute.String("project_id", projectID),
		attribute.Int64("revision", int64(revision)),
		attribute.Bool("cache_hit", cached),
	)
	log.Debug(log.CatReport, "dashboard served", "project_id", projectID, "revision", revision, "cache_hit", cached)
	return summary, nil
}

// SeverityReport returns the project backlog as flat rows.
func (r *Reporter) SeverityReport(ctx context.Context, projectID string) []Row {
	_, span := r.tracer.Start(ctx, "report.SeverityReport", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	rows := BuildSeverityReport(r.svc, projectID)

	span.SetAttributes(
		attribute.String("project_id", projectID),
		attribute.Int("row_count", len(rows)),
	)
	log.Debug(log.CatReport, "severity report served", "project_id", projectID, "rows", len(rows))
	return rows
}

// AllIssues returns every registered issue. The order is the registry
// iteration order and is not guaranteed.
func (r *Reporter) AllIssues(ctx context.Context) []*tracker.Issue {
	_, span := r.tracer.Start(ctx, "report.AllIssues", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	issues := r.svc.Issues()
	span.SetAttributes(attribute.Int("issue_count", len(issues)))
	return issues
}

// IssuesBySeverity returns a project's backlog filtered to the given
// severity, in backlog order.
func (r *Reporter) IssuesBySeverity(ctx context.Context, projectID string, severity tracker.Severity) []*tracker.Issue {
	_, span := r.tracer.Start(ctx, "report.IssuesBySeverity", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	issues := r.svc.ListBySeverity(projectID, severity)
	span.SetAttributes(
		attribute.String("project_id", projectID),
		attribute.String("severity", severity.String()),
		attribute.Int("issue_count", len(issues)),
	)
	return issues
}
