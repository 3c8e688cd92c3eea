// Package graph implements taxonomy traversal over a Wordnet's hypernym
// relations: every operation reads through the query package and mutates
// nothing.
package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

// Taxonomy wraps a Wordnet with a per-session cache of each synset's direct
// hypernyms (ancestor sets and depths are recomputed on every call):
// read-only data, so invalidation is never needed for the Taxonomy's lifetime.
type Taxonomy struct {
	wn *query.Wordnet

	hypernymCache map[string][]domain.Synset
}

// New wraps wn in a Taxonomy ready for traversal.
func New(wn *query.Wordnet) *Taxonomy {
	return &Taxonomy{wn: wn, hypernymCache: map[string][]domain.Synset{}}
}

func (t *Taxonomy) hypernyms(ctx context.Context, synsetID string) ([]domain.Synset, error) {
	if cached, ok := t.hypernymCache[synsetID]; ok {
		return cached, nil
	}
	hyps, err := t.wn.Hypernyms(ctx, synsetID)
	if err != nil {
		return nil, err
	}
	t.hypernymCache[synsetID] = hyps
	return hyps, nil
}

// Hypernyms returns the synsets synsetID directly names as a hypernym.
func (t *Taxonomy) Hypernyms(ctx context.Context, synsetID string) ([]domain.Synset, error) {
	return t.hypernyms(ctx, synsetID)
}

// Path is one root-ward chain of synset ids, starting at the synset the
// traversal began from and ending at a root (or the synthetic root, with
// simulateRoot).
type Path []string

const simulatedRootID = ""

// HypernymPaths runs a DFS over synsetID's hypernym chains, emitting one
// Path per chain that reaches a synset with no outbound hypernym relation.
// With simulateRoot, every path is extended with a synthetic root node
// (the empty string) so disconnected components still share an ancestor.
func (t *Taxonomy) HypernymPaths(ctx context.Context, synsetID string, simulateRoot bool) ([]Path, error) {
	var paths []Path

	onTrail := map[string]bool{}

	var walk func(id string, trail Path) error
	walk = func(id string, trail Path) error {
		if onTrail[id] {
			return fmt.Errorf("%w: %q", domain.ErrHypernymCycle, id)
		}
		onTrail[id] = true
		defer delete(onTrail, id)

		trail = append(trail, id)
		hyps, err := t.hypernyms(ctx, id)
		if err != nil {
			return err
		}
		if len(hyps) == 0 {
			full := append(Path(nil), trail...)
			if simulateRoot {
				full = append(full, simulatedRootID)
			}
			paths = append(paths, full)
			return nil
		}
		for _, h := range hyps {
			if err := walk(h.ID, trail); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(synsetID, nil); err != nil {
		return nil, fmt.Errorf("hypernym paths(%q): %w", synsetID, err)
	}
	return paths, nil
}

// MaxDepth returns the length of the longest hypernym chain from synsetID
// to any root.
func (t *Taxonomy) MaxDepth(ctx context.Context, synsetID string) (int, error) {
	paths, err := t.HypernymPaths(ctx, synsetID, false)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, p := range paths {
		if d := len(p) - 1; d > max {
			max = d
		}
	}
	return max, nil
}

// MinDepth returns the length of the shortest hypernym chain from synsetID
// to any root.
func (t *Taxonomy) MinDepth(ctx context.Context, synsetID string) (int, error) {
	paths, err := t.HypernymPaths(ctx, synsetID, false)
	if err != nil {
		return 0, err
	}
	min := -1
	for _, p := range paths {
		d := len(p) - 1
		if min < 0 || d < min {
			min = d
		}
	}
	if min < 0 {
		return 0, nil
	}
	return min, nil
}

// Roots returns the ids of every synset with no outbound hypernym relation,
// optionally filtered by part of speech.
func (t *Taxonomy) Roots(ctx context.Context, pos domain.PartOfSpeech) ([]string, error) {
	return t.wn.Roots(ctx, pos)
}

// Leaves returns the ids of every synset no other synset names as a
// hypernym target, optionally filtered by part of speech.
func (t *Taxonomy) Leaves(ctx context.Context, pos domain.PartOfSpeech) ([]string, error) {
	return t.wn.Leaves(ctx, pos)
}

// ancestors returns the set of synset ids reachable from synsetID through
// hypernym relations, including synsetID itself.
func (t *Taxonomy) ancestors(ctx context.Context, synsetID string) (map[string]bool, error) {
	set := map[string]bool{}

	var visit func(id string) error
	visit = func(id string) error {
		if set[id] {
			return nil
		}
		set[id] = true
		hyps, err := t.hypernyms(ctx, id)
		if err != nil {
			return err
		}
		for _, h := range hyps {
			if err := visit(h.ID); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(synsetID); err != nil {
		return nil, err
	}
	return set, nil
}

// LowestCommonHypernyms returns the synsets in both a's and b's ancestor
// sets (inclusive of a and b themselves) whose absolute depth from a root —
// via MinDepth — is maximal: the most specific shared generalization. Ties
// are returned in full.
func (t *Taxonomy) LowestCommonHypernyms(ctx context.Context, a, b string) ([]string, error) {
	setA, err := t.ancestors(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("lowest common hypernyms(%q, %q): %w", a, b, err)
	}
	setB, err := t.ancestors(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("lowest common hypernyms(%q, %q): %w", a, b, err)
	}

	var shared []string
	for id := range setA {
		if setB[id] {
			shared = append(shared, id)
		}
	}
	sort.Strings(shared)

	var common []string
	bestDepth := -1
	for _, id := range shared {
		depth, err := t.MinDepth(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lowest common hypernyms(%q, %q): %w", a, b, err)
		}
		switch {
		case depth > bestDepth:
			bestDepth = depth
			common = []string{id}
		case depth == bestDepth:
			common = append(common, id)
		}
	}
	return common, nil
}

// ShortestPath enumerates a's and b's hypernym paths and returns the nodes
// strictly between them along their shortest connecting chain through a
// common ancestor: neither a nor b is ever included, even when one is the
// other's ancestor. Returns an empty (non-nil-error) path when a == b or
// when they are directly connected by a single hypernym edge. Returns
// domain.ErrNoPath when no common ancestor exists and simulateRoot is
// false; with simulateRoot, every pair shares the synthetic root.
func (t *Taxonomy) ShortestPath(ctx context.Context, a, b string, simulateRoot bool) (Path, error) {
	if a == b {
		return nil, nil
	}

	pathsA, err := t.HypernymPaths(ctx, a, simulateRoot)
	if err != nil {
		return nil, err
	}
	pathsB, err := t.HypernymPaths(ctx, b, simulateRoot)
	if err != nil {
		return nil, err
	}

	var best Path
	found := false
	for _, pa := range pathsA {
		idxA := map[string]int{}
		for i, id := range pa {
			idxA[id] = i
		}
		for _, pb := range pathsB {
			for j, id := range pb {
				i, ok := idxA[id]
				if !ok {
					continue
				}
				candidate := interiorPath(pa, i, pb, j, a, b)
				if !found || len(candidate) < len(best) {
					best, found = candidate, true
				}
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("shortest path(%q, %q): %w", a, b, domain.ErrNoPath)
	}
	return best, nil
}

// interiorPath builds the strictly-interior node list for a candidate
// shortest path: pa[i] and pb[j] are the same common ancestor id; a and b
// are the two query endpoints (pa[0] and pb[0] respectively), excluded from
// the result along with the common ancestor itself when it coincides with
// either endpoint.
func interiorPath(pa Path, i int, pb Path, j int, a, b string) Path {
	var out Path
	if i > 0 {
		out = append(out, pa[1:i]...)
	}
	if id := pa[i]; id != a && id != b {
		out = append(out, id)
	}
	if j > 0 {
		out = append(out, reversed(pb[1:j])...)
	}
	return out
}

func reversed(p Path) Path {
	out := make(Path, len(p))
	for i, id := range p {
		out[len(p)-1-i] = id
	}
	return out
}
