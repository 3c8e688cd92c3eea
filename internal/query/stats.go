package query

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// psq builds SQLite-flavored (`?`) queries, since squirrel defaults to the
// Postgres `$N` placeholder style the rest of the pack uses.
var psq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Statistics summarizes the Wordnet's entire scope: every lexicon it reads.
type Statistics struct {
	Lexicons    int
	Words       int
	Senses      int
	Synsets     int
	Relations   int
	Definitions int
	Examples    int
}

// LexiconStatistics summarizes a single lexicon within the Wordnet's scope.
type LexiconStatistics struct {
	LexiconID string
	Words     int
	Senses    int
	Synsets   int
	Relations int
}

// DataQualityMetrics reports rows that violate soft expectations without
// breaking a hard invariant: a Synset ought to carry at least one
// Definition and Sense, and an empty synset or senseless word signals an
// incomplete or truncated source document.
type DataQualityMetrics struct {
	SynsetsWithoutDefinition int
	SynsetsWithoutSense      int
	WordsWithoutSense        int
}

// SynsetSizeAnalysis histograms synset membership size (senses per
// synset), capped to the 20 most common sizes.
type SynsetSizeAnalysis struct {
	AverageSize float64
	Histogram   []SynsetSizeBucket
}

// SynsetSizeBucket is one (size, count) point in a SynsetSizeAnalysis.
type SynsetSizeBucket struct {
	Size  int
	Count int
}

// GetStatistics aggregates row counts across every lexicon in scope.
func (w *Wordnet) GetStatistics(ctx context.Context) (Statistics, error) {
	q := sqlite.QuerierFromCtx(ctx, w.db.DB)
	ids := w.lexiconIDs
	if len(ids) == 0 {
		return Statistics{}, nil
	}

	var stats Statistics
	stats.Lexicons = len(ids)

	if err := scalarCount(ctx, q, psq.Select("COUNT(1)").From("words").Where(squirrel.Eq{"lexicon_id": ids}), &stats.Words); err != nil {
		return Statistics{}, err
	}
	if err := scalarCount(ctx, q, psq.Select("COUNT(1)").From("synsets").Where(squirrel.Eq{"lexicon_id": ids}), &stats.Synsets); err != nil {
		return Statistics{}, err
	}
	if err := scalarCount(ctx, q,
		psq.Select("COUNT(1)").From("senses s").
			Join("words w ON w.id = s.word_id").
			Where(squirrel.Eq{"w.lexicon_id": ids}),
		&stats.Senses); err != nil {
		return Statistics{}, err
	}
	if err := scalarCount(ctx, q, psq.Select("COUNT(1)").From("relations").Where(squirrel.Eq{"source_lexicon": ids}), &stats.Relations); err != nil {
		return Statistics{}, err
	}
	if err := scalarCount(ctx, q,
		psq.Select("COUNT(1)").From("definitions d").
			Join("synsets syn ON syn.id = d.synset_id").
			Where(squirrel.Eq{"syn.lexicon_id": ids}),
		&stats.Definitions); err != nil {
		return Statistics{}, err
	}
	if err := scalarCount(ctx, q,
		psq.Select("COUNT(1)").From("examples e").
			Where(squirrel.Or{
				squirrel.Expr("e.synset_id IN (SELECT id FROM synsets WHERE "+inClause("lexicon_id", ids)+")", toAny(ids)...),
				squirrel.Expr("e.sense_id IN (SELECT s.id FROM senses s JOIN words ww ON ww.id = s.word_id WHERE "+inClause("ww.lexicon_id", ids)+")", toAny(ids)...),
			}),
		&stats.Examples); err != nil {
		return Statistics{}, err
	}

	return stats, nil
}

// GetLexiconStatistics aggregates row counts for one lexicon in scope.
func (w *Wordnet) GetLexiconStatistics(ctx context.Context, lexiconID string) (LexiconStatistics, error) {
	if !w.inScope(lexiconID) {
		return LexiconStatistics{}, fmt.Errorf("lexicon statistics %q: %w", lexiconID, domain.ErrNotFound)
	}

	q := sqlite.QuerierFromCtx(ctx, w.db.DB)
	stats := LexiconStatistics{LexiconID: lexiconID}

	if err := scalarCount(ctx, q, psq.Select("COUNT(1)").From("words").Where(squirrel.Eq{"lexicon_id": lexiconID}), &stats.Words); err != nil {
		return LexiconStatistics{}, err
	}
	if err := scalarCount(ctx, q, psq.Select("COUNT(1)").From("synsets").Where(squirrel.Eq{"lexicon_id": lexiconID}), &stats.Synsets); err != nil {
		return LexiconStatistics{}, err
	}
	if err := scalarCount(ctx, q,
		psq.Select("COUNT(1)").From("senses s").
			Join("words w ON w.id = s.word_id").
			Where(squirrel.Eq{"w.lexicon_id": lexiconID}),
		&stats.Senses); err != nil {
		return LexiconStatistics{}, err
	}
	if err := scalarCount(ctx, q, psq.Select("COUNT(1)").From("relations").Where(squirrel.Eq{"source_lexicon": lexiconID}), &stats.Relations); err != nil {
		return LexiconStatistics{}, err
	}

	return stats, nil
}

// GetDataQualityMetrics reports synsets and words that carry none of the
// content a complete entry should have.
func (w *Wordnet) GetDataQualityMetrics(ctx context.Context) (DataQualityMetrics, error) {
	q := sqlite.QuerierFromCtx(ctx, w.db.DB)
	ids := w.lexiconIDs
	if len(ids) == 0 {
		return DataQualityMetrics{}, nil
	}

	var m DataQualityMetrics

	if err := scalarCount(ctx, q,
		psq.Select("COUNT(1)").From("synsets syn").
			Where(squirrel.Eq{"syn.lexicon_id": ids}).
			Where("NOT EXISTS (SELECT 1 FROM definitions d WHERE d.synset_id = syn.id)"),
		&m.SynsetsWithoutDefinition); err != nil {
		return DataQualityMetrics{}, err
	}
	if err := scalarCount(ctx, q,
		psq.Select("COUNT(1)").From("synsets syn").
			Where(squirrel.Eq{"syn.lexicon_id": ids}).
			Where("NOT EXISTS (SELECT 1 FROM senses s WHERE s.synset_id = syn.id)"),
		&m.SynsetsWithoutSense); err != nil {
		return DataQualityMetrics{}, err
	}
	if err := scalarCount(ctx, q,
		psq.Select("COUNT(1)").From("words w").
			Where(squirrel.Eq{"w.lexicon_id": ids}).
			Where("NOT EXISTS (SELECT 1 FROM senses s WHERE s.word_id = w.id)"),
		&m.WordsWithoutSense); err != nil {
		return DataQualityMetrics{}, err
	}

	return m, nil
}

// GetPartOfSpeechDistribution counts synsets per part of speech across the
// Wordnet's scope.
func (w *Wordnet) GetPartOfSpeechDistribution(ctx context.Context) (map[domain.PartOfSpeech]int, error) {
	q := sqlite.QuerierFromCtx(ctx, w.db.DB)
	ids := w.lexiconIDs
	if len(ids) == 0 {
		return map[domain.PartOfSpeech]int{}, nil
	}

	sql, args, err := psq.Select("part_of_speech", "COUNT(1)").
		From("synsets").
		Where(squirrel.Eq{"lexicon_id": ids}).
		GroupBy("part_of_speech").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("part of speech distribution: %w", err)
	}

	rows, err := q.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("part of speech distribution: %w", err)
	}
	defer rows.Close()

	out := map[domain.PartOfSpeech]int{}
	for rows.Next() {
		var pos domain.PartOfSpeech
		var n int
		if err := rows.Scan(&pos, &n); err != nil {
			return nil, fmt.Errorf("scan pos distribution: %w", err)
		}
		out[pos] = n
	}
	return out, rows.Err()
}

// GetSynsetSizeAnalysis histograms synset membership size (senses per
// synset) across the Wordnet's scope, capped to the 20 most common sizes.
func (w *Wordnet) GetSynsetSizeAnalysis(ctx context.Context) (SynsetSizeAnalysis, error) {
	q := sqlite.QuerierFromCtx(ctx, w.db.DB)
	ids := w.lexiconIDs
	if len(ids) == 0 {
		return SynsetSizeAnalysis{}, nil
	}

	sql, args, err := psq.Select("size", "COUNT(1) AS freq").
		FromSelect(
			psq.Select("COUNT(s.id) AS size").
				From("synsets syn").
				LeftJoin("senses s ON s.synset_id = syn.id").
				Where(squirrel.Eq{"syn.lexicon_id": ids}).
				GroupBy("syn.id"),
			"sizes").
		GroupBy("size").
		OrderBy("freq DESC", "size").
		Limit(20).
		ToSql()
	if err != nil {
		return SynsetSizeAnalysis{}, fmt.Errorf("synset size analysis: %w", err)
	}

	rows, err := q.QueryContext(ctx, sql, args...)
	if err != nil {
		return SynsetSizeAnalysis{}, fmt.Errorf("synset size analysis: %w", err)
	}
	defer rows.Close()

	var analysis SynsetSizeAnalysis
	var totalSize, totalSynsets int
	for rows.Next() {
		var b SynsetSizeBucket
		if err := rows.Scan(&b.Size, &b.Count); err != nil {
			return SynsetSizeAnalysis{}, fmt.Errorf("scan size bucket: %w", err)
		}
		analysis.Histogram = append(analysis.Histogram, b)
		totalSize += b.Size * b.Count
		totalSynsets += b.Count
	}
	if err := rows.Err(); err != nil {
		return SynsetSizeAnalysis{}, err
	}
	if totalSynsets > 0 {
		analysis.AverageSize = float64(totalSize) / float64(totalSynsets)
	}

	return analysis, nil
}

func (w *Wordnet) inScope(lexiconID string) bool {
	for _, id := range w.lexiconIDs {
		if id == lexiconID {
			return true
		}
	}
	return false
}

func scalarCount(ctx context.Context, q sqlite.Querier, b squirrel.SelectBuilder, dst *int) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build count query: %w", err)
	}
	if err := q.QueryRowContext(ctx, sql, args...).Scan(dst); err != nil {
		return fmt.Errorf("run count query: %w", err)
	}
	return nil
}

func inClause(col string, ids []string) string {
	out := col + " IN ("
	for i := range ids {
		if i > 0 {
			out += ","
		}
		out += "?"
	}
	return out + ")"
}

func toAny(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
