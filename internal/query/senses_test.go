package query_test

import (
	"context"
	"testing"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

func TestSenses_ByForm(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	senses, err := wn.Senses(context.Background(), "dog", domain.PosNoun)
	if err != nil {
		t.Fatalf("Senses: %v", err)
	}
	if len(senses) != 1 || senses[0].ID != "s-dog-1" {
		t.Fatalf("Senses(dog) = %+v, want [s-dog-1]", senses)
	}
}

func TestSenses_ByWordID(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	senses, err := wn.Senses(context.Background(), "w-dog", "")
	if err != nil {
		t.Fatalf("Senses: %v", err)
	}
	if len(senses) != 1 || senses[0].ID != "s-dog-1" {
		t.Fatalf("Senses(w-dog) = %+v, want [s-dog-1]", senses)
	}
}

func TestSense_IncludesExamples(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	sense, err := wn.Sense(context.Background(), "s-dog-1")
	if err != nil {
		t.Fatalf("Sense: %v", err)
	}
	if sense.Synset != "ss-dog" {
		t.Fatalf("Sense(s-dog-1).Synset = %q, want ss-dog", sense.Synset)
	}
}

func TestSense_NotFound(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	if _, err := wn.Sense(context.Background(), "missing"); err == nil {
		t.Fatal("Sense(missing) err = nil, want error")
	}
}
