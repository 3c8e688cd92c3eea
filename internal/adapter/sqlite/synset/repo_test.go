package synset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/sqlitetest"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/synset"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

func newRepo(t *testing.T) (*synset.Repo, *lexicon.Repo) {
	t.Helper()
	store := sqlitetest.NewStore(t)
	return synset.New(store.DB, store.Txm, 900), lexicon.New(store.DB, store.Txm)
}

func seedLexicon(t *testing.T, ctx context.Context, lex *lexicon.Repo, id string) {
	t.Helper()
	require.NoError(t, lex.Insert(ctx, domain.Lexicon{ID: id, Label: id, Language: "en", Version: "1.0"}))
}

func TestRepo_InsertAndGetByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, lex := newRepo(t)
	seedLexicon(t, ctx, lex, "test-en")

	s := domain.Synset{ID: "ss-dog-1", ILI: "i12345", PartOfSpeech: domain.PosNoun, Language: "en", Lexicon: "test-en"}
	require.NoError(t, repo.InsertSynsets(ctx, []domain.Synset{s}))
	require.NoError(t, repo.InsertDefinitions(ctx, []domain.Definition{
		{ID: "def-1", Synset: s.ID, Language: "en", Text: "a domesticated canine"},
	}))
	require.NoError(t, repo.InsertExamples(ctx, []domain.Example{
		{ID: "ex-1", Synset: s.ID, Language: "en", Text: "the dog barked"},
	}))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ILI, got.ILI)
	require.Len(t, got.Definitions, 1)
	assert.Equal(t, "a domesticated canine", got.Definitions[0].Text)
	assert.Len(t, got.Examples, 1)
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ByILI(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, lex := newRepo(t)
	seedLexicon(t, ctx, lex, "test-en")
	seedLexicon(t, ctx, lex, "test-es")

	synsets := []domain.Synset{
		{ID: "en-dog-1", ILI: "i12345", PartOfSpeech: domain.PosNoun, Language: "en", Lexicon: "test-en"},
		{ID: "es-perro-1", ILI: "i12345", PartOfSpeech: domain.PosNoun, Language: "es", Lexicon: "test-es"},
		{ID: "en-cat-1", ILI: "i99999", PartOfSpeech: domain.PosNoun, Language: "en", Lexicon: "test-en"},
	}
	require.NoError(t, repo.InsertSynsets(ctx, synsets))

	got, err := repo.ByILI(ctx, "i12345", []string{"test-en", "test-es"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRepo_RelationsFromAndTo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, lex := newRepo(t)
	seedLexicon(t, ctx, lex, "test-en")

	synsets := []domain.Synset{
		{ID: "ss-dog-1", PartOfSpeech: domain.PosNoun, Language: "en", Lexicon: "test-en"},
		{ID: "ss-canine-1", PartOfSpeech: domain.PosNoun, Language: "en", Lexicon: "test-en"},
	}
	require.NoError(t, repo.InsertSynsets(ctx, synsets))

	rel := domain.Relation{ID: "rel-1", Source: "ss-dog-1", Target: "ss-canine-1", Type: string(domain.RelHypernym), SourceLexicon: "test-en"}
	require.NoError(t, repo.InsertRelations(ctx, []domain.Relation{rel}))

	from, err := repo.RelationsFrom(ctx, "ss-dog-1")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "ss-canine-1", from[0].Target)

	to, err := repo.RelationsTo(ctx, "ss-canine-1")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "ss-dog-1", to[0].Source)

	byType, err := repo.RelationsFromByType(ctx, "ss-dog-1", []domain.RelationType{domain.RelHyponym})
	require.NoError(t, err)
	assert.Empty(t, byType)
}
