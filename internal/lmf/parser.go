package lmf

import (
	"encoding/xml"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Config controls how Parse validates and reports progress.
type Config struct {
	AllowedVersions       []string
	ProgressEveryElements int
}

// Parse streams an LMF document from r, validating its declared version
// against cfg.AllowedVersions and emitting each record to sink as soon as it
// is complete (Lexicon and relation records at their start tag, the rest when
// their element closes). file is used only to annotate error messages.
func Parse(r io.Reader, file string, cfg Config, sink Sink, progress ProgressFunc) error {
	p := &parser{
		dec:    xml.NewDecoder(r),
		file:   file,
		cfg:    cfg,
		sink:   sink,
		report: progress,
	}
	return p.run()
}

type parser struct {
	dec    *xml.Decoder
	file   string
	cfg    Config
	sink   Sink
	report ProgressFunc

	lexiconID       string
	lexiconLanguage string
	elementCount    int

	// current in-progress builders; nil when not inside that element.
	word       *domain.Word
	sense      *domain.Sense
	synset     *domain.Synset
	pendingDef *domain.Definition
	pendingEx  *domain.Example
	textBuf    strings.Builder
}

func (p *parser) run() error {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &domain.ParseError{File: p.file, Element: "xml", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.start(t); err != nil {
				return err
			}
		case xml.EndElement:
			if err := p.end(t); err != nil {
				return err
			}
		case xml.CharData:
			if p.pendingDef != nil || p.pendingEx != nil {
				p.textBuf.Write(t)
			}
		}
	}
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (p *parser) bump() {
	p.elementCount++
	every := p.cfg.ProgressEveryElements
	if every <= 0 {
		every = 1000
	}
	if p.report != nil && p.elementCount%every == 0 {
		p.report(p.elementCount)
	}
}

func (p *parser) start(se xml.StartElement) error {
	p.bump()

	switch se.Name.Local {
	case "Lexicon":
		version := attr(se, "version")
		if len(p.cfg.AllowedVersions) > 0 && !slices.Contains(p.cfg.AllowedVersions, version) {
			return &domain.ParseError{File: p.file, Element: "Lexicon", Err: fmt.Errorf("%w: %q", domain.ErrUnsupportedVersion, version)}
		}
		id := attr(se, "id")
		p.lexiconID = id
		p.lexiconLanguage = attr(se, "language")
		return p.sink.Lexicon(domain.Lexicon{
			ID:       id,
			Label:    attr(se, "label"),
			Language: p.lexiconLanguage,
			Version:  version,
			Email:    attr(se, "email"),
			License:  attr(se, "license"),
			URL:      attr(se, "url"),
			Citation: attr(se, "citation"),
			Logo:     attr(se, "logo"),
		})

	case "LexicalEntry":
		p.word = &domain.Word{ID: attr(se, "id"), Lexicon: p.lexiconID}

	case "Lemma":
		if p.word == nil {
			return p.elementError(se, fmt.Errorf("Lemma outside LexicalEntry"))
		}
		writtenForm := attr(se, "writtenForm")
		p.word.Lemma = writtenForm
		p.word.PartOfSpeech = domain.PartOfSpeech(attr(se, "partOfSpeech"))
		p.word.Language = p.lexiconLanguage
		p.word.Forms = append(p.word.Forms, domain.Form{
			ID:          domain.LemmaFormID(p.word.ID),
			Word:        p.word.ID,
			WrittenForm: writtenForm,
		})

	case "Form":
		if p.word == nil {
			return p.elementError(se, fmt.Errorf("Form outside LexicalEntry"))
		}
		p.word.Forms = append(p.word.Forms, domain.Form{
			ID:          attr(se, "id"),
			Word:        p.word.ID,
			WrittenForm: attr(se, "writtenForm"),
			Script:      attr(se, "script"),
			Tag:         attr(se, "tag"),
		})

	case "Sense":
		if p.word == nil {
			return p.elementError(se, fmt.Errorf("Sense outside LexicalEntry"))
		}
		p.sense = &domain.Sense{
			ID:          attr(se, "id"),
			Word:        p.word.ID,
			Synset:      attr(se, "synset"),
			Source:      p.lexiconID,
			SenseKey:    attr(se, "senseKey"),
			AdjPosition: attr(se, "adjposition"),
			Subcategory: attr(se, "subcat"),
		}

	case "SenseRelation":
		if p.sense == nil {
			return p.elementError(se, fmt.Errorf("SenseRelation outside Sense"))
		}
		rel := domain.Relation{
			ID:            uuid.New().String(),
			Source:        p.sense.ID,
			Target:        attr(se, "target"),
			Type:          attr(se, "relType"),
			SourceLexicon: p.lexiconID,
		}
		return p.sink.Relation(rel)

	case "Synset":
		p.synset = &domain.Synset{
			ID:           attr(se, "id"),
			ILI:          attr(se, "ili"),
			PartOfSpeech: domain.PartOfSpeech(attr(se, "partOfSpeech")),
			Language:     p.lexiconLanguage,
			Lexicon:      p.lexiconID,
		}

	case "SynsetRelation":
		if p.synset == nil {
			return p.elementError(se, fmt.Errorf("SynsetRelation outside Synset"))
		}
		rel := domain.Relation{
			ID:            uuid.New().String(),
			Source:        p.synset.ID,
			Target:        attr(se, "target"),
			Type:          attr(se, "relType"),
			SourceLexicon: p.lexiconID,
		}
		return p.sink.Relation(rel)

	case "Definition":
		if p.synset == nil {
			return p.elementError(se, fmt.Errorf("Definition outside Synset"))
		}
		p.textBuf.Reset()
		p.pendingDef = &domain.Definition{
			ID:       fmt.Sprintf("%s-def-%d", p.synset.ID, len(p.synset.Definitions)),
			Synset:   p.synset.ID,
			Language: p.lexiconLanguage,
			Source:   attr(se, "source"),
		}

	case "Example":
		p.textBuf.Reset()
		switch {
		case p.synset != nil:
			p.pendingEx = &domain.Example{
				ID:       fmt.Sprintf("%s-ex-%d", p.synset.ID, len(p.synset.Examples)),
				Synset:   p.synset.ID,
				Language: p.lexiconLanguage,
				Source:   attr(se, "source"),
			}
		case p.sense != nil:
			p.pendingEx = &domain.Example{
				ID:       fmt.Sprintf("%s-ex-%d", p.sense.ID, len(p.sense.Examples)),
				Sense:    p.sense.ID,
				Language: p.lexiconLanguage,
				Source:   attr(se, "source"),
			}
		}
	}

	return nil
}

func (p *parser) end(ee xml.EndElement) error {
	switch ee.Name.Local {
	case "LexicalEntry":
		w := p.word
		p.word = nil
		if w == nil {
			return nil
		}
		// The synthesized lemma form is kept only when no explicit Form
		// carries the same written form.
		lemmaFormID := domain.LemmaFormID(w.ID)
		if slices.ContainsFunc(w.Forms, func(f domain.Form) bool { return f.ID != lemmaFormID && f.WrittenForm == w.Lemma }) {
			w.Forms = slices.DeleteFunc(w.Forms, func(f domain.Form) bool { return f.ID == lemmaFormID })
		}
		return p.sink.Word(*w)

	case "Sense":
		s := p.sense
		p.sense = nil
		if s == nil {
			return nil
		}
		return p.sink.Sense(*s)

	case "Synset":
		s := p.synset
		p.synset = nil
		if s == nil {
			return nil
		}
		return p.sink.Synset(*s)

	case "Definition":
		if p.pendingDef == nil {
			return nil
		}
		p.pendingDef.Text = strings.TrimSpace(p.textBuf.String())
		def := *p.pendingDef
		p.pendingDef = nil
		if p.synset != nil {
			p.synset.Definitions = append(p.synset.Definitions, def)
		}
		return p.sink.Definition(def)

	case "Example":
		if p.pendingEx == nil {
			return nil
		}
		p.pendingEx.Text = strings.TrimSpace(p.textBuf.String())
		ex := *p.pendingEx
		p.pendingEx = nil
		if p.synset != nil {
			p.synset.Examples = append(p.synset.Examples, ex)
		} else if p.sense != nil {
			p.sense.Examples = append(p.sense.Examples, ex)
		}
		return p.sink.Example(ex)
	}

	return nil
}

func (p *parser) elementError(se xml.StartElement, err error) error {
	return &domain.ParseError{File: p.file, Element: se.Name.Local, Err: err}
}
