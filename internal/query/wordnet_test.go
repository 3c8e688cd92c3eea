package query_test

import (
	"context"
	"testing"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/sqlitetest"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/lmftest"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

func boolPtr(b bool) *bool { return &b }

func seeded(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlitetest.NewStore(t)
	lmftest.Seed(t, store)
	return store
}

func openWordnet(t *testing.T, store *sqlite.Store, selector string, opts query.Options) *query.Wordnet {
	t.Helper()
	wn, err := query.Open(context.Background(), store, selector, opts)
	if err != nil {
		t.Fatalf("Open(%q): %v", selector, err)
	}
	return wn
}

func TestOpen_Wildcard(t *testing.T) {
	t.Parallel()
	store := seeded(t)

	wn := openWordnet(t, store, "*", query.Options{})
	ids := wn.LexiconIDs()
	if len(ids) != 2 {
		t.Fatalf("LexiconIDs() = %v, want 2 entries", ids)
	}
}

func TestOpen_SingleSelector(t *testing.T) {
	t.Parallel()
	store := seeded(t)

	wn := openWordnet(t, store, "test-en", query.Options{})
	ids := wn.LexiconIDs()
	if len(ids) != 1 || ids[0] != "test-en" {
		t.Fatalf("LexiconIDs() = %v, want [test-en]", ids)
	}
}

func TestOpen_VersionedSelector(t *testing.T) {
	t.Parallel()
	store := seeded(t)

	wn := openWordnet(t, store, "test-en:1.0", query.Options{})
	if len(wn.LexiconIDs()) != 1 {
		t.Fatalf("LexiconIDs() = %v, want 1 entry", wn.LexiconIDs())
	}

	if _, err := query.Open(context.Background(), store, "test-en:9.9", query.Options{}); err == nil {
		t.Fatal("Open(test-en:9.9) err = nil, want not-found")
	}
}

func TestOpen_LangFilter(t *testing.T) {
	t.Parallel()
	store := seeded(t)

	wn := openWordnet(t, store, "*", query.Options{Lang: "es"})
	ids := wn.LexiconIDs()
	if len(ids) != 1 || ids[0] != "test-es" {
		t.Fatalf("LexiconIDs() = %v, want [test-es]", ids)
	}
}

func TestOpen_Expand(t *testing.T) {
	t.Parallel()
	store := seeded(t)

	wn := openWordnet(t, store, "test-en", query.Options{Expand: []string{"test-es"}})
	ids := wn.LexiconIDs()
	if len(ids) != 2 {
		t.Fatalf("LexiconIDs() = %v, want 2 entries", ids)
	}
}

func TestLexicons(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "*", query.Options{})

	lexicons, err := wn.Lexicons(context.Background())
	if err != nil {
		t.Fatalf("Lexicons: %v", err)
	}
	if len(lexicons) != 2 {
		t.Fatalf("Lexicons() = %d, want 2", len(lexicons))
	}
}

func TestWords_NormalizesForm(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	words, err := wn.Words(context.Background(), "DOG", domain.PosNoun)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if len(words) != 1 || words[0].Lemma != "dog" {
		t.Fatalf("Words(DOG) = %+v, want [dog]", words)
	}
}

func TestWords_MatchesWrittenForm(t *testing.T) {
	t.Parallel()
	store := seeded(t)
	wn := openWordnet(t, store, "test-en", query.Options{})

	words, err := wn.Words(context.Background(), "dogs", domain.PosNoun)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if len(words) != 1 || words[0].Lemma != "dog" {
		t.Fatalf("Words(dogs) = %+v, want [dog]", words)
	}
}

func TestWords_LemmatizerFallback(t *testing.T) {
	t.Parallel()
	store := seeded(t)

	called := false
	wn := openWordnet(t, store, "test-en", query.Options{
		SearchAllForms: boolPtr(true),
		Lemmatizer: func(form string, pos domain.PartOfSpeech) map[domain.PartOfSpeech][]string {
			called = true
			return map[domain.PartOfSpeech][]string{domain.PosNoun: {"dog"}}
		},
	})

	words, err := wn.Words(context.Background(), "doggies", domain.PosNoun)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if !called {
		t.Fatal("lemmatizer fallback was not consulted")
	}
	if len(words) != 1 || words[0].Lemma != "dog" {
		t.Fatalf("Words(doggies) = %+v, want [dog]", words)
	}
}

func TestWords_SearchAllFormsFalseDisablesLemmatizer(t *testing.T) {
	t.Parallel()
	store := seeded(t)

	called := false
	wn := openWordnet(t, store, "test-en", query.Options{
		SearchAllForms: boolPtr(false),
		Lemmatizer: func(form string, pos domain.PartOfSpeech) map[domain.PartOfSpeech][]string {
			called = true
			return nil
		},
	})

	words, err := wn.Words(context.Background(), "doggies", domain.PosNoun)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if called {
		t.Fatal("lemmatizer fallback was consulted despite SearchAllForms=false")
	}
	if len(words) != 0 {
		t.Fatalf("Words(doggies) = %+v, want none", words)
	}
}
