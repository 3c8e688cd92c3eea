package query_test

import (
	"context"
	"sort"
	"testing"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

func TestHypernyms(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	hyps, err := wn.Hypernyms(context.Background(), "ss-dog")
	if err != nil {
		t.Fatalf("Hypernyms: %v", err)
	}
	if len(hyps) != 1 || hyps[0].ID != "ss-canine" {
		t.Fatalf("Hypernyms(ss-dog) = %+v, want [ss-canine]", hyps)
	}
}

func TestRoots(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	roots, err := wn.Roots(context.Background(), domain.PosNoun)
	if err != nil {
		t.Fatalf("Roots: %v", err)
	}
	if len(roots) != 1 || roots[0] != "ss-entity" {
		t.Fatalf("Roots(noun) = %v, want [ss-entity]", roots)
	}
}

func TestLeaves(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	leaves, err := wn.Leaves(context.Background(), domain.PosNoun)
	if err != nil {
		t.Fatalf("Leaves: %v", err)
	}
	sort.Strings(leaves)
	want := []string{"ss-cat", "ss-dog", "ss-wolf"}
	if len(leaves) != len(want) {
		t.Fatalf("Leaves(noun) = %v, want %v", leaves, want)
	}
	for i, id := range want {
		if leaves[i] != id {
			t.Fatalf("Leaves(noun) = %v, want %v", leaves, want)
		}
	}
}
