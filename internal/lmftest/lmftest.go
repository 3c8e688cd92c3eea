// Package lmftest holds the small LMF document and CILI table shared by
// tests across ingest, query, graph, similarity, ic, and morphy: a
// two-lexicon (English/Spanish) taxonomy fragment deep enough to exercise
// hypernym traversal, cross-lingual ILI alignment, and POS-sensitive
// operations, grounded on the teacher's seeding-helper test pattern.
package lmftest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/config"
	"github.com/heartmarshall/wordnet-engine/internal/ingest"
)

// LMF is a two-lexicon noun/verb taxonomy fragment:
//
//	entity -> animal -> canine -> dog, wolf
//	               \--> feline -> cat
//	move -> run
//
// plus a Spanish lexicon ("test-es") with a single "perro" synset sharing
// dog's ILI, for cross-lingual alignment tests.
const LMF = `<?xml version="1.0"?>
<LexicalResource>
  <Lexicon id="test-en" label="Test English" language="en" version="1.0">
    <LexicalEntry id="w-entity">
      <Lemma writtenForm="entity" partOfSpeech="n"/>
      <Sense id="s-entity-1" synset="ss-entity"/>
    </LexicalEntry>
    <LexicalEntry id="w-animal">
      <Lemma writtenForm="animal" partOfSpeech="n"/>
      <Sense id="s-animal-1" synset="ss-animal"/>
    </LexicalEntry>
    <LexicalEntry id="w-canine">
      <Lemma writtenForm="canine" partOfSpeech="n"/>
      <Sense id="s-canine-1" synset="ss-canine"/>
    </LexicalEntry>
    <LexicalEntry id="w-feline">
      <Lemma writtenForm="feline" partOfSpeech="n"/>
      <Sense id="s-feline-1" synset="ss-feline"/>
    </LexicalEntry>
    <LexicalEntry id="w-dog">
      <Lemma writtenForm="dog" partOfSpeech="n"/>
      <Form id="f-dogs" writtenForm="dogs"/>
      <Sense id="s-dog-1" synset="ss-dog"/>
    </LexicalEntry>
    <LexicalEntry id="w-wolf">
      <Lemma writtenForm="wolf" partOfSpeech="n"/>
      <Sense id="s-wolf-1" synset="ss-wolf"/>
    </LexicalEntry>
    <LexicalEntry id="w-cat">
      <Lemma writtenForm="cat" partOfSpeech="n"/>
      <Sense id="s-cat-1" synset="ss-cat"/>
    </LexicalEntry>
    <LexicalEntry id="w-move">
      <Lemma writtenForm="move" partOfSpeech="v"/>
      <Sense id="s-move-1" synset="ss-move"/>
    </LexicalEntry>
    <LexicalEntry id="w-run">
      <Lemma writtenForm="run" partOfSpeech="v"/>
      <Sense id="s-run-1" synset="ss-run"/>
    </LexicalEntry>

    <Synset id="ss-entity" partOfSpeech="n" ili="i-entity">
      <Definition>that which is perceived or known</Definition>
    </Synset>
    <Synset id="ss-animal" partOfSpeech="n" ili="i-animal">
      <Definition>a living organism other than a plant</Definition>
      <SynsetRelation relType="hypernym" target="ss-entity"/>
    </Synset>
    <Synset id="ss-canine" partOfSpeech="n" ili="i-canine">
      <Definition>a mammal of the dog family</Definition>
      <SynsetRelation relType="hypernym" target="ss-animal"/>
    </Synset>
    <Synset id="ss-feline" partOfSpeech="n" ili="i-feline">
      <Definition>a mammal of the cat family</Definition>
      <SynsetRelation relType="hypernym" target="ss-animal"/>
    </Synset>
    <Synset id="ss-dog" partOfSpeech="n" ili="i-dog">
      <Definition>a domesticated carnivore</Definition>
      <Example>the dog barked all night</Example>
      <SynsetRelation relType="hypernym" target="ss-canine"/>
    </Synset>
    <Synset id="ss-wolf" partOfSpeech="n" ili="i-wolf">
      <Definition>a wild carnivore related to the dog</Definition>
      <SynsetRelation relType="hypernym" target="ss-canine"/>
    </Synset>
    <Synset id="ss-cat" partOfSpeech="n" ili="i-cat">
      <Definition>a small domesticated carnivore</Definition>
      <SynsetRelation relType="hypernym" target="ss-feline"/>
    </Synset>
    <Synset id="ss-move" partOfSpeech="v" ili="i-move">
      <Definition>change position</Definition>
    </Synset>
    <Synset id="ss-run" partOfSpeech="v" ili="i-run">
      <Definition>move fast on foot</Definition>
      <SynsetRelation relType="hypernym" target="ss-move"/>
    </Synset>
  </Lexicon>

  <Lexicon id="test-es" label="Test Spanish" language="es" version="1.0">
    <LexicalEntry id="w-perro">
      <Lemma writtenForm="perro" partOfSpeech="n"/>
      <Sense id="s-perro-1" synset="ss-perro"/>
    </LexicalEntry>
    <Synset id="ss-perro" partOfSpeech="n" ili="i-dog">
      <Definition>carnivoro domesticado</Definition>
    </Synset>
  </Lexicon>
</LexicalResource>
`

// CILI is the mini Collaborative Interlingual Index table matching the ILI
// ids referenced by LMF, plus one deprecated entry to exercise status
// filtering.
const CILI = "ili\tstatus\tdefinition\tsuperseded_by\n" +
	"i-entity\tstandard\tthat which is perceived or known\t\n" +
	"i-animal\tstandard\ta living organism\t\n" +
	"i-canine\tstandard\ta mammal of the dog family\t\n" +
	"i-feline\tstandard\ta mammal of the cat family\t\n" +
	"i-dog\tstandard\ta domesticated carnivore\t\n" +
	"i-wolf\tstandard\ta wild carnivore\t\n" +
	"i-cat\tstandard\ta small domesticated carnivore\t\n" +
	"i-move\tstandard\tchange position\t\n" +
	"i-run\tstandard\tmove fast on foot\t\n" +
	"i-old\tdeprecated\tsuperseded entry\ti-dog\n"

// ParserConfig is the Config used to parse LMF above.
func ParserConfig() config.ParserConfig {
	return config.ParserConfig{AllowedVersions: []string{"1.0"}, ProgressEveryElements: 10}
}

// WriteLMF writes LMF to a temp file and returns its path.
func WriteLMF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mini.xml")
	if err := os.WriteFile(path, []byte(LMF), 0o644); err != nil {
		t.Fatalf("lmftest: write LMF: %v", err)
	}
	return path
}

// WriteCILI writes CILI to a temp file and returns its path.
func WriteCILI(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mini-cili.tsv")
	if err := os.WriteFile(path, []byte(CILI), 0o644); err != nil {
		t.Fatalf("lmftest: write CILI: %v", err)
	}
	return path
}

// Seed ingests LMF and CILI into store, failing the test on any error. It
// returns the Ingestor used, in case a test wants to ingest more data.
func Seed(t *testing.T, store *sqlite.Store) *ingest.Ingestor {
	t.Helper()
	ctx := context.Background()

	ig := ingest.New(store, ParserConfig(), 10000, nil)

	if _, _, err := ig.Add(ctx, WriteCILI(t), ingest.Options{}); err != nil {
		t.Fatalf("lmftest: seed CILI: %v", err)
	}
	if _, _, err := ig.Add(ctx, WriteLMF(t), ingest.Options{}); err != nil {
		t.Fatalf("lmftest: seed LMF: %v", err)
	}

	return ig
}
