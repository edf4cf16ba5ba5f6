// Command cleaner runs the cleaning pipeline once against a raw intake
// CSV and writes the cleaned table to disk, without starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"shelterpulse/internal/config"
	"shelterpulse/internal/dataprocessing"
	"shelterpulse/internal/exporter"
	"shelterpulse/internal/infrastructure"
)

func main() {
	in := flag.String("in", "", "input CSV file (defaults to the configured dataset file)")
	out := flag.String("out", "", "output file; format follows the extension (.csv or .xlsx)")
	format := flag.String("format", "csv", "output format when -out is not set: csv or xlsx")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	paths, err := config.NewPaths(cfg)
	if err != nil {
		logger.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to ensure directories", "error", err)
		os.Exit(1)
	}

	input := *in
	if input == "" {
		input = paths.DatasetFile
	}

	output := *out
	if output == "" {
		switch *format {
		case "csv":
			output = paths.OutputPath("cleaned.csv")
		case "xlsx":
			output = paths.OutputPath("cleaned.xlsx")
		default:
			logger.Error("Unknown format", "format", *format)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, input, output); err != nil {
		logger.Error("Cleaning failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, input, output string) error {
	pipeline := dataprocessing.NewPipeline(logger)

	dataset, err := pipeline.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	logger.Info("dataset cleaned",
		slog.String("source", dataset.SourceFile),
		slog.Int("raw_rows", dataset.RawRows),
		slog.Int("clean_rows", dataset.Len()))

	switch {
	case strings.HasSuffix(output, ".xlsx"):
		if err := exporter.NewXLSXWriter(logger).WriteFile(output, dataset.Records); err != nil {
			return fmt.Errorf("xlsx export failed: %w", err)
		}
	default:
		if err := exporter.NewCSVWriter(logger).WriteFile(output, dataset.Records); err != nil {
			return fmt.Errorf("csv export failed: %w", err)
		}
	}

	logger.Info("export written", slog.String("path", output))
	return nil
}
