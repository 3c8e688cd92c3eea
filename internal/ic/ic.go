// Package ic computes Information Content frequency tables from a text
// corpus, propagated through a Wordnet's hypernym taxonomy. IC underlies the
// res/jcn/lin similarity measures in the similarity package.
package ic

import (
	"context"
	"fmt"
	"math"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/graph"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

// TotalKey is the sentinel key each POS bucket uses for its running total.
const TotalKey = "__total__"

// Freq holds smoothed synset occurrence counts per part of speech, keyed by
// synset id, plus a TotalKey entry per POS for the denominator of P(synset).
type Freq map[domain.PartOfSpeech]map[string]float64

// inScopePOS returns n/v/a/r with the satellite-adjective marker folded
// into the plain adjective bucket.
func inScopePOS(pos domain.PartOfSpeech) (domain.PartOfSpeech, bool) {
	switch pos {
	case domain.PosAdjectiveSatellite:
		return domain.PosAdjective, true
	case domain.PosNoun, domain.PosVerb, domain.PosAdjective, domain.PosAdverb:
		return pos, true
	default:
		return "", false
	}
}

// Compute builds a Freq table from corpus (token -> occurrence count) over
// wn's synset population, propagating each token's weight through hypernym
// ancestry via tax. distributeWeight splits a token's count evenly across
// its candidate synsets instead of crediting each with the full count;
// smoothing is the Laplace-style floor every synset (and POS total) starts
// from, avoiding a zero-probability synset from producing +Inf content.
func Compute(ctx context.Context, wn *query.Wordnet, tax *graph.Taxonomy, corpus map[string]int, distributeWeight bool, smoothing float64) (Freq, error) {
	freq := Freq{}
	synsetPOS := map[string]domain.PartOfSpeech{}

	all, err := wn.AllSynsets(ctx)
	if err != nil {
		return nil, fmt.Errorf("ic.Compute: %w", err)
	}
	for _, s := range all {
		pos, ok := inScopePOS(s.PartOfSpeech)
		if !ok {
			continue
		}
		if freq[pos] == nil {
			freq[pos] = map[string]float64{TotalKey: smoothing}
		}
		freq[pos][s.ID] = smoothing
		synsetPOS[s.ID] = pos
	}

	for token, count := range corpus {
		synsetIDs, err := synsetsForToken(ctx, wn, token)
		if err != nil {
			return nil, fmt.Errorf("ic.Compute: token %q: %w", token, err)
		}
		if len(synsetIDs) == 0 {
			continue
		}

		weight := float64(count)
		if distributeWeight {
			weight = float64(count) / float64(len(synsetIDs))
		}

		bumpedTotal := map[domain.PartOfSpeech]bool{}
		for _, sid := range synsetIDs {
			pos, ok := synsetPOS[sid]
			if !ok {
				continue
			}
			if err := propagate(ctx, tax, freq[pos], sid, weight); err != nil {
				return nil, fmt.Errorf("ic.Compute: token %q: %w", token, err)
			}
			if !bumpedTotal[pos] {
				freq[pos][TotalKey] += weight
				bumpedTotal[pos] = true
			}
		}
	}

	return freq, nil
}

// synsetsForToken resolves every synset reachable from any sense of any
// word matching token, across every part of speech (the POS restriction is
// applied later, per-synset).
func synsetsForToken(ctx context.Context, wn *query.Wordnet, token string) ([]string, error) {
	words, err := wn.Words(ctx, token, "")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []string
	for _, w := range words {
		senses, err := wn.SensesForWordID(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range senses {
			if s.Synset != "" && !seen[s.Synset] {
				seen[s.Synset] = true
				out = append(out, s.Synset)
			}
		}
	}
	return out, nil
}

// propagate adds weight to synsetID and every ancestor reachable through
// hypernym relations, visiting each synset at most once.
func propagate(ctx context.Context, tax *graph.Taxonomy, bucket map[string]float64, synsetID string, weight float64) error {
	visited := map[string]bool{}

	var walk func(id string) error
	walk = func(id string) error {
		if visited[id] {
			return nil
		}
		visited[id] = true
		bucket[id] += weight

		hyps, err := tax.Hypernyms(ctx, id)
		if err != nil {
			return err
		}
		for _, h := range hyps {
			if err := walk(h.ID); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(synsetID)
}

// InformationContent returns −ln(P) for synset under freq, where
// P = freq[pos][id]/freq[pos][__total__]. Returns 0 when synset's POS is
// out of scope, untracked, or P is non-positive.
func InformationContent(freq Freq, synset domain.Synset) float64 {
	pos, ok := inScopePOS(synset.PartOfSpeech)
	if !ok {
		return 0
	}
	bucket, ok := freq[pos]
	if !ok {
		return 0
	}
	total := bucket[TotalKey]
	if total <= 0 {
		return 0
	}
	p := bucket[synset.ID] / total
	if p <= 0 {
		return 0
	}
	return -math.Log(p)
}
