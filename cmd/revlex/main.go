// Command revlex runs the review-sentiment pipeline from a config file
// and writes the two summary tables to the configured sinks.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/subosito/gotenv"

	"github.com/cognicore/revlex/internal/langdetect"
	"github.com/cognicore/revlex/internal/logging"
	"github.com/cognicore/revlex/pkg/revlex"
	"github.com/cognicore/revlex/pkg/revlex/config"
	"github.com/cognicore/revlex/pkg/revlex/corpus"
	"github.com/cognicore/revlex/pkg/revlex/report"
)

func main() {
	var (
		configPath = flag.String("config", "revlex.yaml", "Path to run configuration (YAML)")
		corpusPath = flag.String("corpus", "", "Override corpus path from config")
		outputDir  = flag.String("output", "", "Override output directory from config")
		workers    = flag.Int("workers", 0, "Override worker count from config")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	logging.Init(*verbose)

	if err := gotenv.Load(); err != nil {
		slog.Debug("no .env file found, using OS environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *corpusPath, *outputDir, *workers); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, corpusOverride, outputOverride string, workersOverride int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if corpusOverride != "" {
		cfg.Corpus.Path = corpusOverride
	}
	if outputOverride != "" {
		cfg.Output.Dir = outputOverride
	}
	if workersOverride > 0 {
		cfg.Workers = workersOverride
	}

	loader := config.FromConfig(cfg)
	components, err := loader.Load()
	if err != nil {
		return err
	}
	slog.Info("loaded reference data", "lexicon_entries", components.Lexicon.Len())

	var reviews []corpus.Review
	switch cfg.Corpus.Format {
	case "jsonl":
		reviews, err = corpus.LoadJSONL(cfg.Corpus.Path)
	default:
		reviews, err = corpus.LoadCSV(cfg.Corpus.Path)
	}
	if err != nil {
		return err
	}
	slog.Info("loaded corpus", "path", cfg.Corpus.Path, "reviews", len(reviews))

	detector, err := langdetect.New()
	if err != nil {
		return err
	}

	engine := revlex.New(revlex.Options{
		Detector:   detector,
		Tokenizer:  components.Tokenizer,
		Lexicon:    components.Lexicon,
		Language:   cfg.Language,
		MinLength:  cfg.MinLength,
		MaxLength:  cfg.MaxLength,
		MinSupport: cfg.MinSupport,
		Workers:    cfg.Workers,
	})

	result, err := engine.Run(ctx, reviews)
	if err != nil {
		return err
	}

	for reason, n := range result.Excluded {
		slog.Info("excluded records", "reason", reason, "count", n)
	}

	for _, format := range cfg.Output.Formats {
		sink, err := openSink(ctx, format, cfg.Output.Dir)
		if err != nil {
			return err
		}
		if err := sink.Write(result); err != nil {
			sink.Close()
			return err
		}
		if err := sink.Close(); err != nil {
			return err
		}
		slog.Info("wrote output", "format", format, "dir", cfg.Output.Dir)
	}

	slog.Info("run complete", "run", result.RunID,
		"reviews_in", result.TotalIn, "reviews_kept", result.TotalKept)
	return nil
}

func openSink(ctx context.Context, format, dir string) (report.Sink, error) {
	switch format {
	case "jsonl":
		return report.NewJSONSink(dir)
	case "sqlite":
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		return report.OpenSQLite(ctx, filepath.Join(dir, "revlex.db"))
	default:
		return report.NewCSVSink(dir)
	}
}
