// Package lmf streams a Lexical Markup Framework (LMF) XML document —
// the wire format WordNet-family distributions ship in — into the domain
// types the store persists, without holding the whole document in memory.
package lmf

import "github.com/heartmarshall/wordnet-engine/internal/domain"

// Sink receives parsed records as the parser encounters them. Each method is
// called once per record: Lexicon and Relation as soon as their start tag is
// read, the others when their element closes; implementations (typically the
// ingestor) are responsible for buffering and batching before writing to
// the store.
type Sink interface {
	Lexicon(domain.Lexicon) error
	Word(domain.Word) error
	Sense(domain.Sense) error
	Synset(domain.Synset) error
	Definition(domain.Definition) error
	Example(domain.Example) error
	Relation(domain.Relation) error
}

// ProgressFunc is called after every N elements processed (N is the
// parser's configured ProgressEveryElements) with the running count of
// elements processed so far.
type ProgressFunc func(elementsProcessed int)

// Document is a fully materialized LMF document, assembled by DocumentSink.
// The Ingestor parses into a Document first so it can pre-check existing
// lexicons and report dry-run counts before writing anything to the store.
type Document struct {
	Lexicons    []domain.Lexicon
	Words       []domain.Word
	Senses      []domain.Sense
	Synsets     []domain.Synset
	Definitions []domain.Definition
	Examples    []domain.Example
	Relations   []domain.Relation
}

// DocumentSink is a Sink that accumulates every record into a Document in
// memory. Its zero value is ready to use.
type DocumentSink struct {
	Doc Document
}

func (d *DocumentSink) Lexicon(l domain.Lexicon) error {
	d.Doc.Lexicons = append(d.Doc.Lexicons, l)
	return nil
}

func (d *DocumentSink) Word(w domain.Word) error {
	d.Doc.Words = append(d.Doc.Words, w)
	return nil
}

func (d *DocumentSink) Sense(s domain.Sense) error {
	d.Doc.Senses = append(d.Doc.Senses, s)
	return nil
}

func (d *DocumentSink) Synset(s domain.Synset) error {
	d.Doc.Synsets = append(d.Doc.Synsets, s)
	return nil
}

func (d *DocumentSink) Definition(def domain.Definition) error {
	d.Doc.Definitions = append(d.Doc.Definitions, def)
	return nil
}

func (d *DocumentSink) Example(ex domain.Example) error {
	d.Doc.Examples = append(d.Doc.Examples, ex)
	return nil
}

func (d *DocumentSink) Relation(r domain.Relation) error {
	d.Doc.Relations = append(d.Doc.Relations, r)
	return nil
}
