// Command wnload ingests LMF XML and CILI TSV distributions (bare files or
// .tar.xz/.tar.gz/.xz/.gz archives) into the embedded store.
//
// Flags:
//
//	--force    allow an update-in-place re-ingest of an existing lexicon
//	--dry-run  parse the input without writing to the store
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/app"
	"github.com/heartmarshall/wordnet-engine/internal/config"
	"github.com/heartmarshall/wordnet-engine/internal/ingest"
)

func main() {
	forceFlag := flag.Bool("force", false, "allow update-in-place re-ingest of an existing lexicon")
	dryRunFlag := flag.Bool("dry-run", false, "parse without writing to the store")
	flag.Parse()

	if flag.NArg() != 1 {
		os.Stderr.WriteString("usage: wnload [--force] [--dry-run] <path>\n")
		os.Exit(1)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log)

	ctx := context.Background()
	store, err := sqlite.Open(ctx, cfg.Store)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	ig := ingest.New(store, cfg.Parser, cfg.Store.TransactionChunkSize, logger)

	opts := ingest.Options{
		Force:  *forceFlag || cfg.Ingest.DefaultForce,
		DryRun: *dryRunFlag || cfg.Ingest.DefaultDryRun,
		Progress: func(fraction float64) {
			logger.Debug("ingest progress", slog.Float64("fraction", fraction))
		},
	}

	updated, counts, err := ig.Add(ctx, path, opts)
	if err != nil {
		logger.Error("ingest failed", slog.String("path", path), slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("ingest complete",
		slog.String("path", path),
		slog.Bool("updated", updated),
		slog.Int("lexicons", counts.Lexicons),
		slog.Int("words", counts.Words),
		slog.Int("synsets", counts.Synsets),
		slog.Int("relations", counts.Relations),
		slog.Int("ilis", counts.ILIs),
	)
}
