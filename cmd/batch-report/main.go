package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"soptcli/internal/batch"
	"soptcli/internal/config"
	"soptcli/internal/exporter"
	"soptcli/internal/infrastructure"
	"soptcli/pkg/contracts"
	"soptcli/pkg/contracts/domain"
)

// summarizeWorkers bounds concurrent batch summarization.
const summarizeWorkers = 4

func main() {
	in := flag.String("in", "", "input sensor log (.csv or .xlsx, defaults to the configured source file)")
	outDir := flag.String("out", "reports", "output directory for report files")
	format := flag.String("format", "both", "report format: csv, json or both")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if *format != "csv" && *format != "json" && *format != "both" {
		fmt.Fprintf(os.Stderr, "invalid format %q: must be csv, json or both\n", *format)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		defaults := config.Default()
		cfg = &defaults
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	source := *in
	if source == "" {
		source = cfg.Data.SourceFile
	}

	logger.Info("Starting batch report generation",
		slog.String("source", source),
		slog.String("output_dir", *outDir),
		slog.String("format", *format))

	start := time.Now()
	if err := run(context.Background(), logger, source, *outDir, *format); err != nil {
		logger.Error("Report generation failed", slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}

	logger.Info("Report generation complete",
		slog.Duration("elapsed", time.Since(start)))
	infrastructure.CloseLogFile()
}

func run(ctx context.Context, logger *slog.Logger, source, outDir, format string) error {
	loader := batch.NewLoader(logger)
	table, err := loader.Load(source)
	if err != nil {
		return fmt.Errorf("load sensor log: %w", err)
	}

	engine := batch.NewEngine(logger)
	ids := engine.ListBatchIDs(table)
	logger.Info("Summarizing batches",
		slog.Int("batches", len(ids)),
		slog.Int("readings", table.Len()))

	summaries, err := summarizeAll(ctx, engine, table, ids)
	if err != nil {
		return err
	}

	writer := exporter.NewSummaryWriter(logger)
	if format == "csv" || format == "both" {
		path := filepath.Join(outDir, "batch_summary.csv")
		if err := writer.WriteCSV(ctx, path, summaries); err != nil {
			return fmt.Errorf("write CSV report: %w", err)
		}
		logger.Info("Wrote CSV report", slog.String("path", path))
	}
	if format == "json" || format == "both" {
		path := filepath.Join(outDir, "batch_summary.json")
		if err := writer.WriteJSON(ctx, path, summaries); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
		logger.Info("Wrote JSON report", slog.String("path", path))
	}

	return nil
}

// summarizeAll computes summaries for all batches concurrently, preserving
// the batch ID order of ids in the result.
func summarizeAll(ctx context.Context, engine *batch.Engine, table *domain.Table, ids []string) ([]*domain.BatchSummary, error) {
	summaries := make([]*domain.BatchSummary, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summarizeWorkers)

	for i, id := range ids {
		g.Go(func() error {
			summary, err := engine.Summarize(gctx, table, id)
			if err != nil {
				return fmt.Errorf("summarize batch %q: %w", id, err)
			}
			summaries[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}
