// Command wnquery is a read-only demo client over the embedded store: word
// lookups, corpus statistics, and the JSON/XML/CSV export formats.
//
// Flags:
//
//	--lexicon  selector: "id", "id:version", or "*" (default "*")
//	--form     look up words matching this form (and print their senses)
//	--pos      part-of-speech filter for --form
//	--stats    print aggregate statistics instead of a form lookup
//	--export   "json", "xml", or "csv": write the selector's export instead
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/app"
	"github.com/heartmarshall/wordnet-engine/internal/config"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/export"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

func main() {
	lexiconFlag := flag.String("lexicon", "*", `selector: "id", "id:version", or "*"`)
	formFlag := flag.String("form", "", "look up words matching this form")
	posFlag := flag.String("pos", "", "part-of-speech filter for --form")
	statsFlag := flag.Bool("stats", false, "print aggregate statistics")
	exportFlag := flag.String("export", "", `export format: "json", "xml", or "csv"`)
	flag.Parse()

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

	wn, err := query.Open(ctx, store, *lexiconFlag, query.Options{})
	if err != nil {
		logger.Error("open wordnet", slog.String("error", err.Error()))
		os.Exit(1)
	}

	switch {
	case *exportFlag != "":
		if err := runExport(ctx, wn, *exportFlag); err != nil {
			logger.Error("export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case *statsFlag:
		if err := runStats(ctx, wn); err != nil {
			logger.Error("stats failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case *formFlag != "":
		if err := runLookup(ctx, wn, *formFlag, domain.PartOfSpeech(*posFlag)); err != nil {
			logger.Error("lookup failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	default:
		if err := runLexicons(ctx, wn); err != nil {
			logger.Error("lexicons failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

func runExport(ctx context.Context, wn *query.Wordnet, format string) error {
	snap, err := export.Build(ctx, wn, export.Options{})
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = export.JSON(snap, time.Now())
	case "xml":
		data, err = export.XML(snap)
	case "csv":
		data, err = export.CSV(snap)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(data)
	return err
}

func runStats(ctx context.Context, wn *query.Wordnet) error {
	stats, err := wn.GetStatistics(ctx)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runLookup(ctx context.Context, wn *query.Wordnet, form string, pos domain.PartOfSpeech) error {
	words, err := wn.Words(ctx, form, pos)
	if err != nil {
		return err
	}

	type result struct {
		Word   domain.Word    `json:"word"`
		Senses []domain.Sense `json:"senses"`
	}
	var out []result
	for _, w := range words {
		senses, err := wn.SensesForWordID(ctx, w.ID)
		if err != nil {
			return err
		}
		out = append(out, result{Word: w, Senses: senses})
	}
	return printJSON(out)
}

func runLexicons(ctx context.Context, wn *query.Wordnet) error {
	lexicons, err := wn.Lexicons(ctx)
	if err != nil {
		return err
	}
	return printJSON(lexicons)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
