package ic_test

import (
	"context"
	"math"
	"testing"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/sqlitetest"
	"github.com/heartmarshall/wordnet-engine/internal/graph"
	"github.com/heartmarshall/wordnet-engine/internal/ic"
	"github.com/heartmarshall/wordnet-engine/internal/lmftest"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

func openTax(t *testing.T) (*query.Wordnet, *graph.Taxonomy) {
	t.Helper()
	store := sqlitetest.NewStore(t)
	lmftest.Seed(t, store)

	wn, err := query.Open(context.Background(), store, "test-en", query.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return wn, graph.New(wn)
}

func TestCompute_PropagatesToAncestors(t *testing.T) {
	t.Parallel()
	wn, tax := openTax(t)
	ctx := context.Background()

	corpus := map[string]int{"dog": 4}
	freq, err := ic.Compute(ctx, wn, tax, corpus, true, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	nouns := freq["n"]
	if nouns == nil {
		t.Fatal("Compute: no noun bucket")
	}

	for _, id := range []string{"ss-dog", "ss-canine", "ss-animal", "ss-entity"} {
		if got := nouns[id]; got != 5.0 {
			t.Fatalf("freq[n][%s] = %v, want 5 (smoothing 1 + weight 4)", id, got)
		}
	}
	if got := nouns["ss-cat"]; got != 1.0 {
		t.Fatalf("freq[n][ss-cat] = %v, want 1 (smoothing only)", got)
	}
	if got := nouns[ic.TotalKey]; got != 5.0 {
		t.Fatalf("freq[n][__total__] = %v, want 5 (smoothing 1 + weight 4)", got)
	}
}

func TestCompute_NoDistributeCreditsFullCount(t *testing.T) {
	t.Parallel()
	wn, tax := openTax(t)
	ctx := context.Background()

	// "dog" resolves to exactly one synset in the fixture, so distribution
	// has no visible effect here; this asserts the non-distributed branch
	// credits the full count instead.
	corpus := map[string]int{"dog": 3}
	freqNoDist, err := ic.Compute(ctx, wn, tax, corpus, false, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got := freqNoDist["n"]["ss-dog"]; got != 4.0 {
		t.Fatalf("freq[n][ss-dog] (no distribute) = %v, want 4 (smoothing 1 + count 3)", got)
	}
}

func TestInformationContent_RootHasLowContentLeafHasHigh(t *testing.T) {
	t.Parallel()
	wn, tax := openTax(t)
	ctx := context.Background()

	corpus := map[string]int{"dog": 10, "wolf": 1, "cat": 1}
	freq, err := ic.Compute(ctx, wn, tax, corpus, true, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	entity, err := wn.Synset(ctx, "ss-entity")
	if err != nil {
		t.Fatalf("Synset(ss-entity): %v", err)
	}
	dog, err := wn.Synset(ctx, "ss-dog")
	if err != nil {
		t.Fatalf("Synset(ss-dog): %v", err)
	}

	icEntity := ic.InformationContent(freq, *entity)
	icDog := ic.InformationContent(freq, *dog)

	if icEntity != 0 {
		t.Fatalf("IC(ss-entity) = %v, want 0 (P=1 at the root)", icEntity)
	}
	if icDog <= icEntity {
		t.Fatalf("IC(ss-dog) = %v, want > IC(ss-entity) = %v", icDog, icEntity)
	}
}

func TestInformationContent_OutOfScopePOSReturnsZero(t *testing.T) {
	t.Parallel()
	wn, tax := openTax(t)
	ctx := context.Background()

	freq, err := ic.Compute(ctx, wn, tax, map[string]int{}, true, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	move, err := wn.Synset(ctx, "ss-move")
	if err != nil {
		t.Fatalf("Synset(ss-move): %v", err)
	}
	move.PartOfSpeech = "x"
	if got := ic.InformationContent(freq, *move); got != 0 {
		t.Fatalf("IC(out-of-scope POS) = %v, want 0", got)
	}
}

func TestInformationContent_MatchesManualLogCalculation(t *testing.T) {
	t.Parallel()
	wn, tax := openTax(t)
	ctx := context.Background()

	freq, err := ic.Compute(ctx, wn, tax, map[string]int{"dog": 10, "wolf": 1, "cat": 1}, true, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	wolf, err := wn.Synset(ctx, "ss-wolf")
	if err != nil {
		t.Fatalf("Synset(ss-wolf): %v", err)
	}

	// total = smoothing(1) + dog(10) + wolf(1) + cat(1) = 13; only the
	// "wolf" token's weight reaches ss-wolf itself, so
	// freq[n][ss-wolf] = smoothing(1) + 1 = 2.
	want := -math.Log(2.0 / 13.0)
	got := ic.InformationContent(freq, *wolf)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("IC(ss-wolf) = %v, want %v", got, want)
	}
}
