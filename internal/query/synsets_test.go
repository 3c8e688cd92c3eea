package query_test

import (
	"context"
	"testing"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

func TestSynsets_ByForm(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	synsets, err := wn.Synsets(context.Background(), "dog", domain.PosNoun, "")
	if err != nil {
		t.Fatalf("Synsets: %v", err)
	}
	if len(synsets) != 1 || synsets[0].ID != "ss-dog" {
		t.Fatalf("Synsets(dog) = %+v, want [ss-dog]", synsets)
	}
}

func TestSynsets_FilteredByILI(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	synsets, err := wn.Synsets(context.Background(), "dog", domain.PosNoun, "i-wolf")
	if err != nil {
		t.Fatalf("Synsets: %v", err)
	}
	if len(synsets) != 0 {
		t.Fatalf("Synsets(dog, ili=i-wolf) = %+v, want none", synsets)
	}
}

func TestSynset_HasDefinitionsRelationsMembers(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	s, err := wn.Synset(context.Background(), "ss-dog")
	if err != nil {
		t.Fatalf("Synset: %v", err)
	}
	if len(s.Definitions) != 1 {
		t.Fatalf("Synset(ss-dog).Definitions = %+v, want 1", s.Definitions)
	}
	if len(s.Relations) != 1 || s.Relations[0].Type != string(domain.RelHypernym) {
		t.Fatalf("Synset(ss-dog).Relations = %+v, want 1 hypernym", s.Relations)
	}
	if len(s.Members) != 1 || s.Members[0] != "w-dog" {
		t.Fatalf("Synset(ss-dog).Members = %+v, want [w-dog]", s.Members)
	}
	if len(s.Senses) != 1 || s.Senses[0] != "s-dog-1" {
		t.Fatalf("Synset(ss-dog).Senses = %+v, want [s-dog-1]", s.Senses)
	}
	if len(s.Examples) != 1 {
		t.Fatalf("Synset(ss-dog).Examples = %+v, want 1", s.Examples)
	}
}

func TestSynset_NotFound(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	if _, err := wn.Synset(context.Background(), "missing"); err == nil {
		t.Fatal("Synset(missing) err = nil, want error")
	}
}
