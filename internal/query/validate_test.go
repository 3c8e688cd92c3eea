package query_test

import (
	"context"
	"testing"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/synset"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

func TestValidate_CleanData(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	issues, err := wn.Validate(context.Background())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("Validate() = %+v, want none", issues)
	}
}

func TestValidate_DetectsHypernymCycle(t *testing.T) {
	t.Parallel()
	store := seeded(t)

	// ss-entity is otherwise a root; point it back at ss-dog to close a
	// cycle entity -> dog -> canine -> animal -> entity.
	synRepo := synset.New(store.DB, store.Txm, 900)
	err := synRepo.InsertRelations(context.Background(), []domain.Relation{
		{ID: "rel-cycle", Source: "ss-entity", Target: "ss-dog", Type: string(domain.RelHypernym), SourceLexicon: "test-en"},
	})
	if err != nil {
		t.Fatalf("inject cycle: %v", err)
	}

	wn := openWordnet(t, store, "test-en", query.Options{})
	issues, err := wn.Validate(context.Background())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	found := false
	for _, issue := range issues {
		if issue.Kind == query.IssueHypernymCycle {
			found = true
		}
	}
	if !found {
		t.Fatalf("Validate() = %+v, want a hypernym_cycle issue", issues)
	}
}
