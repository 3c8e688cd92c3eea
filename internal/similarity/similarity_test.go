package similarity_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/sqlitetest"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/graph"
	"github.com/heartmarshall/wordnet-engine/internal/ic"
	"github.com/heartmarshall/wordnet-engine/internal/lmftest"
	"github.com/heartmarshall/wordnet-engine/internal/query"
	"github.com/heartmarshall/wordnet-engine/internal/similarity"
)

func newSim(t *testing.T) (*similarity.Similarity, *query.Wordnet) {
	t.Helper()
	store := sqlitetest.NewStore(t)
	lmftest.Seed(t, store)

	wn, err := query.Open(context.Background(), store, "test-en", query.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tax := graph.New(wn)
	return similarity.New(wn, tax), wn
}

func synset(t *testing.T, wn *query.Wordnet, id string) domain.Synset {
	t.Helper()
	s, err := wn.Synset(context.Background(), id)
	if err != nil {
		t.Fatalf("Synset(%q): %v", id, err)
	}
	return *s
}

func TestPath_Identity(t *testing.T) {
	t.Parallel()
	sim, wn := newSim(t)
	dog := synset(t, wn, "ss-dog")

	got, err := sim.Path(context.Background(), dog, dog)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got != 1 {
		t.Fatalf("Path(dog, dog) = %v, want 1", got)
	}
}

func TestPath_SiblingsOneHopFromSharedHypernym(t *testing.T) {
	t.Parallel()
	sim, wn := newSim(t)
	ctx := context.Background()
	dog := synset(t, wn, "ss-dog")
	wolf := synset(t, wn, "ss-wolf")

	// dog -> canine -> wolf: 2 edges.
	got, err := sim.Path(ctx, dog, wolf)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	want := 1.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Path(dog, wolf) = %v, want %v", got, want)
	}
}

func TestPath_IncompatiblePOS(t *testing.T) {
	t.Parallel()
	sim, wn := newSim(t)
	dog := synset(t, wn, "ss-dog")
	run := synset(t, wn, "ss-run")

	_, err := sim.Path(context.Background(), dog, run)
	if !errors.Is(err, domain.ErrIncompatiblePos) {
		t.Fatalf("Path(dog, run) err = %v, want ErrIncompatiblePos", err)
	}
}

func TestWup_Siblings(t *testing.T) {
	t.Parallel()
	sim, wn := newSim(t)
	ctx := context.Background()
	dog := synset(t, wn, "ss-dog")
	wolf := synset(t, wn, "ss-wolf")

	// lcs = canine; maxDepth(canine) = 2 (canine -> animal -> entity), so
	// k = 3. i = edges(dog -> canine) = 1, j = edges(wolf -> canine) = 1.
	got, err := sim.Wup(ctx, dog, wolf)
	if err != nil {
		t.Fatalf("Wup: %v", err)
	}
	want := 2 * 3.0 / (1 + 1 + 2*3.0)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Wup(dog, wolf) = %v, want %v", got, want)
	}
}

func TestLch_RequiresPositiveMaxDepth(t *testing.T) {
	t.Parallel()
	sim, wn := newSim(t)
	dog := synset(t, wn, "ss-dog")
	wolf := synset(t, wn, "ss-wolf")

	_, err := sim.Lch(context.Background(), dog, wolf, 0)
	if !errors.Is(err, domain.ErrInvalidMaxDepth) {
		t.Fatalf("Lch maxD=0 err = %v, want ErrInvalidMaxDepth", err)
	}
}

func TestLch_ComputesExpectedValue(t *testing.T) {
	t.Parallel()
	sim, wn := newSim(t)
	ctx := context.Background()
	dog := synset(t, wn, "ss-dog")
	wolf := synset(t, wn, "ss-wolf")

	got, err := sim.Lch(ctx, dog, wolf, 3)
	if err != nil {
		t.Fatalf("Lch: %v", err)
	}
	want := -math.Log((2.0 + 1) / (2 * 3.0))
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Lch(dog, wolf, 3) = %v, want %v", got, want)
	}
}

func TestRes_JcnLin_SiblingsVsCrossBranch(t *testing.T) {
	t.Parallel()
	sim, wn := newSim(t)
	ctx := context.Background()

	corpus := map[string]int{"dog": 10, "wolf": 10, "cat": 1}
	tax := graph.New(wn)
	freq, err := ic.Compute(ctx, wn, tax, corpus, true, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	dog := synset(t, wn, "ss-dog")
	wolf := synset(t, wn, "ss-wolf")
	cat := synset(t, wn, "ss-cat")

	resSiblings, err := sim.Res(ctx, dog, wolf, freq)
	if err != nil {
		t.Fatalf("Res(dog, wolf): %v", err)
	}
	resCrossBranch, err := sim.Res(ctx, dog, cat, freq)
	if err != nil {
		t.Fatalf("Res(dog, cat): %v", err)
	}
	if resSiblings <= resCrossBranch {
		t.Fatalf("Res(dog, wolf) = %v, want > Res(dog, cat) = %v (canine is more specific than animal)", resSiblings, resCrossBranch)
	}

	linSiblings, err := sim.Lin(ctx, dog, wolf, freq)
	if err != nil {
		t.Fatalf("Lin(dog, wolf): %v", err)
	}
	if linSiblings <= 0 || linSiblings > 1 {
		t.Fatalf("Lin(dog, wolf) = %v, want in (0, 1]", linSiblings)
	}

	jcnIdentity, err := sim.Jcn(ctx, dog, dog, freq)
	if err != nil {
		t.Fatalf("Jcn(dog, dog): %v", err)
	}
	if jcnIdentity != 1 {
		t.Fatalf("Jcn(dog, dog) = %v, want 1", jcnIdentity)
	}
}

func TestRes_IncompatiblePOS(t *testing.T) {
	t.Parallel()
	sim, wn := newSim(t)
	dog := synset(t, wn, "ss-dog")
	run := synset(t, wn, "ss-run")

	_, err := sim.Res(context.Background(), dog, run, ic.Freq{})
	if !errors.Is(err, domain.ErrIncompatiblePos) {
		t.Fatalf("Res(dog, run) err = %v, want ErrIncompatiblePos", err)
	}
}
