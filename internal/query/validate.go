package query

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// ValidationIssueKind classifies a single consistency problem found by
// Validate.
type ValidationIssueKind string

const (
	// IssueHypernymCycle reports a cycle in the hypernym sub-graph, which
	// should never occur given the ingestion invariants but is checked
	// defensively after a crash-recovered partial write.
	IssueHypernymCycle ValidationIssueKind = "hypernym_cycle"
	// IssueOrphanRelation reports a relation from an in-scope synset whose
	// target synset does not exist anywhere in the store.
	IssueOrphanRelation ValidationIssueKind = "orphan_relation"
	// IssueOrphanSense names a sense whose word or synset does not exist
	// in scope. Validate does not report this kind.
	IssueOrphanSense ValidationIssueKind = "orphan_sense"
)

// ValidationIssue describes one consistency problem Validate found.
type ValidationIssue struct {
	Kind    ValidationIssueKind
	Subject string // the synset, relation, or sense id at fault
	Detail  string
}

// Validate walks the hypernym sub-graph from every in-scope synset and checks
// for cycles with a recursion-stack DFS, then looks for synset relations
// whose target synset exists nowhere in the store. Senses are not checked.
// It mutates nothing: a read-only consistency check, not a repair.
func (w *Wordnet) Validate(ctx context.Context) ([]ValidationIssue, error) {
	synsets, err := w.allSynsetIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	var issues []ValidationIssue

	cycles, err := w.findHypernymCycles(ctx, synsets)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	issues = append(issues, cycles...)

	orphans, err := w.findOrphanRelations(ctx, synsets)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	issues = append(issues, orphans...)

	return issues, nil
}

func (w *Wordnet) allSynsetIDs(ctx context.Context) (map[string]bool, error) {
	out := map[string]bool{}
	for _, lexID := range w.lexiconIDs {
		synsets, err := w.syn.ListByLexicon(ctx, lexID)
		if err != nil {
			return nil, err
		}
		for _, s := range synsets {
			out[s.ID] = true
		}
	}
	return out, nil
}

// findHypernymCycles runs a recursion-stack DFS from every synset in
// synsets, following only hypernym relations, and reports any synset
// reached a second time while still on the stack.
func (w *Wordnet) findHypernymCycles(ctx context.Context, synsets map[string]bool) ([]ValidationIssue, error) {
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var issues []ValidationIssue

	var visit func(id string) error
	visit = func(id string) error {
		if onStack[id] {
			issues = append(issues, ValidationIssue{
				Kind:    IssueHypernymCycle,
				Subject: id,
				Detail:  fmt.Sprintf("synset %q reaches itself through a hypernym chain", id),
			})
			return nil
		}
		if visited[id] {
			return nil
		}
		visited[id] = true
		onStack[id] = true
		defer delete(onStack, id)

		rels, err := w.syn.RelationsFromByType(ctx, id, []domain.RelationType{domain.RelHypernym})
		if err != nil {
			return err
		}
		for _, rel := range rels {
			if err := visit(rel.Target); err != nil {
				return err
			}
		}
		return nil
	}

	for id := range synsets {
		if err := visit(id); err != nil {
			return nil, err
		}
	}

	return issues, nil
}

// findOrphanRelations reports relations from synsets in scope whose target
// synset id is absent both from synsets and from the store.
func (w *Wordnet) findOrphanRelations(ctx context.Context, synsets map[string]bool) ([]ValidationIssue, error) {
	var issues []ValidationIssue
	for id := range synsets {
		rels, err := w.syn.RelationsFrom(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			if rel.Target == "" {
				continue
			}
			if _, ok := synsets[rel.Target]; !ok {
				if _, err := w.syn.GetByID(ctx, rel.Target); err != nil {
					issues = append(issues, ValidationIssue{
						Kind:    IssueOrphanRelation,
						Subject: rel.ID,
						Detail:  fmt.Sprintf("relation %q points at missing synset %q", rel.ID, rel.Target),
					})
				}
			}
		}
	}
	return issues, nil
}
