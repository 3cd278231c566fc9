package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"retailcli/internal/aggregate"
	"retailcli/internal/cleaning"
	"retailcli/internal/config"
	"retailcli/internal/exporter"
	"retailcli/internal/infrastructure"
	"retailcli/internal/ingest"
	"retailcli/internal/store"
)

// Summary reports what a completed run produced.
type Summary struct {
	RunID             string
	RecordsProcessed  int
	DuplicatesRemoved int
	RowsLoaded        int64
	QueriesRun        int
	Quality           cleaning.QualityReport
	Insights          []string
	OutputDir         string
	DatabasePath      string
	Elapsed           time.Duration
}

// Runner executes the full pipeline against one configuration.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	tracer trace.Tracer
}

// NewRunner creates a pipeline runner. Nil logger or tracer fall back to
// defaults so callers only wire what they use.
func NewRunner(cfg *config.Config, logger *slog.Logger, tracer trace.Tracer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(infrastructure.TracerName)
	}
	return &Runner{cfg: cfg, logger: logger, tracer: tracer}
}

// Run executes every stage in order and returns the run summary. A failure
// in any stage aborts the run; no downstream artifact is written after an
// error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = infrastructure.WithRunID(ctx, runID)

	ctx, runSpan := r.tracer.Start(ctx, "pipeline.run")
	defer runSpan.End()

	r.logger.InfoContext(ctx, "pipeline starting",
		slog.String("input", r.cfg.Input.CSVPath),
		slog.String("output_dir", r.cfg.Output.Dir))

	paths := r.cfg.Paths()
	summary := &Summary{
		RunID:        runID,
		OutputDir:    paths.OutputDir,
		DatabasePath: paths.DatabasePath,
	}

	var raw *ingest.Table
	err := r.stage(ctx, "extract", func(ctx context.Context) error {
		var err error
		raw, err = ingest.ReadCSV(r.cfg.Input.CSVPath)
		return err
	})
	if err != nil {
		return nil, r.fail(ctx, runSpan, err)
	}

	var records []cleaning.CleanedRecord
	err = r.stage(ctx, "clean", func(ctx context.Context) error {
		var stats cleaning.Stats
		var err error
		records, stats, err = cleaning.NewCleaner(r.logger).Clean(raw)
		summary.RecordsProcessed = stats.RowsOut
		summary.DuplicatesRemoved = stats.DuplicatesRemoved
		return err
	})
	if err != nil {
		return nil, r.fail(ctx, runSpan, err)
	}

	err = r.stage(ctx, "validate", func(ctx context.Context) error {
		summary.Quality = cleaning.Validate(records)
		r.logger.InfoContext(ctx, "data quality report",
			slog.Int("records", summary.Quality.TotalRecords),
			slog.Int("unique_orders", summary.Quality.UniqueOrders),
			slog.Float64("total_revenue", summary.Quality.TotalRevenue),
			slog.Int("negative_profit_rows", summary.Quality.NegativeProfitCount))
		return nil
	})
	if err != nil {
		return nil, r.fail(ctx, runSpan, err)
	}

	err = r.stage(ctx, "load", func(ctx context.Context) error {
		if err := paths.EnsureOutputDir(); err != nil {
			return err
		}
		rows, err := store.Load(ctx, paths.DatabasePath, records)
		summary.RowsLoaded = rows
		return err
	})
	if err != nil {
		return nil, r.fail(ctx, runSpan, err)
	}

	var results map[string]aggregate.ResultTable
	err = r.stage(ctx, "aggregate", func(ctx context.Context) error {
		results = aggregate.Run(records)
		summary.QueriesRun = len(results)
		return nil
	})
	if err != nil {
		return nil, r.fail(ctx, runSpan, err)
	}

	err = r.stage(ctx, "export", func(ctx context.Context) error {
		order := aggregate.QueryNames()
		if err := exporter.NewCSVWriter(paths).WriteAll(results, order); err != nil {
			return err
		}
		return exporter.NewWorkbookWriter(paths).Write(results, order)
	})
	if err != nil {
		return nil, r.fail(ctx, runSpan, err)
	}

	summary.Insights = Insights(results)
	summary.Elapsed = time.Since(start)

	r.logger.InfoContext(ctx, "pipeline complete",
		slog.Int("records", summary.RecordsProcessed),
		slog.Int("queries", summary.QueriesRun),
		slog.Duration("elapsed", summary.Elapsed))

	return summary, nil
}

// stage runs one pipeline stage inside its own span with timing logs.
func (r *Runner) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := r.tracer.Start(ctx, "pipeline.stage."+name)
	defer span.End()

	start := time.Now()
	r.logger.InfoContext(ctx, "stage starting", slog.String("stage", name))

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.ErrorContext(ctx, "stage failed",
			slog.String("stage", name),
			slog.String("error", err.Error()))
		return err
	}

	r.logger.InfoContext(ctx, "stage complete",
		slog.String("stage", name),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func (r *Runner) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.logger.ErrorContext(ctx, "pipeline aborted", slog.String("error", err.Error()))
	return err
}
