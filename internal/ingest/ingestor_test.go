package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/sqlitetest"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/synset"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/word"
	"github.com/heartmarshall/wordnet-engine/internal/config"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/ingest"
)

const miniLMF = `<?xml version="1.0"?>
<LexicalResource>
  <Lexicon id="test-en" label="Test English" language="en" version="1.0">
    <LexicalEntry id="w-dog">
      <Lemma writtenForm="dog" partOfSpeech="n"/>
      <Sense id="s-dog-1" synset="ss-dog"/>
    </LexicalEntry>
    <LexicalEntry id="w-canine">
      <Lemma writtenForm="canine" partOfSpeech="n"/>
      <Sense id="s-canine-1" synset="ss-canine"/>
    </LexicalEntry>
    <Synset id="ss-dog" partOfSpeech="n" ili="i12345">
      <Definition>a domesticated carnivore</Definition>
      <Example>the dog barked</Example>
      <SynsetRelation relType="hypernym" target="ss-canine"/>
    </Synset>
    <Synset id="ss-canine" partOfSpeech="n">
      <Definition>any member of the family Canidae</Definition>
    </Synset>
  </Lexicon>
</LexicalResource>
`

func parserConfig() config.ParserConfig {
	return config.ParserConfig{AllowedVersions: []string{"1.0"}, ProgressEveryElements: 10}
}

func writeMiniLMF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mini.xml")
	if err := os.WriteFile(path, []byte(miniLMF), 0o644); err != nil {
		t.Fatalf("write mini LMF: %v", err)
	}
	return path
}

func TestIngestor_Add_FreshLexicon(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	ig := ingest.New(store, parserConfig(), 10000, nil)

	updated, counts, err := ig.Add(ctx, writeMiniLMF(t), ingest.Options{})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Equal(t, 1, counts.Lexicons)
	assert.Equal(t, 2, counts.Words)
	assert.Equal(t, 2, counts.Synsets)

	lex := lexicon.New(store.DB, store.Txm)
	got, err := lex.GetByID(ctx, "test-en")
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)

	syn := synset.New(store.DB, store.Txm, 900)
	dog, err := syn.GetByID(ctx, "ss-dog")
	require.NoError(t, err)
	assert.Len(t, dog.Definitions, 1)
	assert.Len(t, dog.Examples, 1)
	assert.Len(t, dog.Relations, 1)

	w := word.New(store.DB, store.Txm, 900)
	got2, err := w.GetByID(ctx, "w-dog")
	require.NoError(t, err)
	require.Len(t, got2.Forms, 1)
	assert.Equal(t, "dog", got2.Forms[0].WrittenForm)
}

func TestIngestor_Add_DuplicateWithoutForce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	ig := ingest.New(store, parserConfig(), 10000, nil)

	path := writeMiniLMF(t)
	_, _, err := ig.Add(ctx, path, ingest.Options{})
	require.NoError(t, err)

	_, _, err = ig.Add(ctx, path, ingest.Options{})
	assert.ErrorIs(t, err, domain.ErrLexiconExists)
}

func TestIngestor_Add_ForceUpdatesInPlace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	ig := ingest.New(store, parserConfig(), 10000, nil)

	path := writeMiniLMF(t)
	_, _, err := ig.Add(ctx, path, ingest.Options{})
	require.NoError(t, err)

	updated, _, err := ig.Add(ctx, path, ingest.Options{Force: true})
	require.NoError(t, err)
	assert.True(t, updated)

	lex := lexicon.New(store.DB, store.Txm)
	lexicons, err := lex.List(ctx)
	require.NoError(t, err)
	assert.Len(t, lexicons, 1, "no duplicate rows after update-in-place")
}

func TestIngestor_Add_DryRunWritesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	ig := ingest.New(store, parserConfig(), 10000, nil)

	_, counts, err := ig.Add(ctx, writeMiniLMF(t), ingest.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Lexicons)

	lex := lexicon.New(store.DB, store.Txm)
	lexicons, err := lex.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, lexicons)
}

func TestIngestor_Add_ILI(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	ig := ingest.New(store, parserConfig(), 10000, nil)

	tsv := "ili\tstatus\tdefinition\ni12345\tstandard\ta domesticated carnivore\n"
	path := filepath.Join(t.TempDir(), "cili.tsv")
	require.NoError(t, os.WriteFile(path, []byte(tsv), 0o644))

	_, counts, err := ig.Add(ctx, path, ingest.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, counts.ILIs)
}

func TestIngestor_Add_InvalidInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	ig := ingest.New(store, parserConfig(), 10000, nil)

	path := filepath.Join(t.TempDir(), "garbage.txt")
	require.NoError(t, os.WriteFile(path, []byte("this is not lmf or ili"), 0o644))

	_, _, err := ig.Add(ctx, path, ingest.Options{})
	assert.Error(t, err)
}

func TestIngestor_Remove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	ig := ingest.New(store, parserConfig(), 10000, nil)

	_, _, err := ig.Add(ctx, writeMiniLMF(t), ingest.Options{})
	require.NoError(t, err)

	require.NoError(t, ig.Remove(ctx, "test-en"))

	lex := lexicon.New(store.DB, store.Txm)
	_, err = lex.GetByID(ctx, "test-en")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	syn := synset.New(store.DB, store.Txm, 900)
	_, err = syn.GetByID(ctx, "ss-dog")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngestor_Remove_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	ig := ingest.New(store, parserConfig(), 10000, nil)

	err := ig.Remove(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
