package export

import (
	"encoding/json"
	"time"
)

type jsonDocument struct {
	Lexicons   []jsonLexicon `json:"lexicons"`
	ExportDate string        `json:"exportDate"`
	Format     string        `json:"format"`
}

type jsonLexicon struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Entries  []jsonEntry  `json:"entries"`
	Synsets  []jsonSynset `json:"synsets"`
}

type jsonEntry struct {
	ID           string   `json:"id"`
	Lemma        string   `json:"lemma"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Senses       []string `json:"senses"`
}

type jsonSynset struct {
	ID           string   `json:"id"`
	ILI          string   `json:"ili,omitempty"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Members      []string `json:"members,omitempty"`
	Definitions  []string `json:"definitions,omitempty"`
	Examples     []string `json:"examples,omitempty"`
}

// JSON renders snap per the documented shape:
// { lexicons: [...with entries, synsets...], exportDate, format }.
func JSON(snap *Snapshot, exportDate time.Time) ([]byte, error) {
	doc := jsonDocument{
		ExportDate: exportDate.UTC().Format(time.RFC3339),
		Format:     "json",
	}

	for _, lex := range snap.Lexicons {
		jl := jsonLexicon{
			ID:       lex.Lexicon.ID,
			Label:    lex.Lexicon.Label,
			Language: lex.Lexicon.Language,
			Version:  lex.Lexicon.Version,
		}

		for _, e := range lex.Entries {
			je := jsonEntry{ID: e.Word.ID, Lemma: e.Word.Lemma, PartOfSpeech: string(e.Word.PartOfSpeech)}
			for _, s := range e.Senses {
				je.Senses = append(je.Senses, s.ID)
			}
			jl.Entries = append(jl.Entries, je)
		}

		for _, s := range lex.Synsets {
			js := jsonSynset{ID: s.ID, ILI: s.ILI, PartOfSpeech: string(s.PartOfSpeech), Members: s.Members}
			for _, d := range s.Definitions {
				js.Definitions = append(js.Definitions, d.Text)
			}
			for _, ex := range s.Examples {
				js.Examples = append(js.Examples, ex.Text)
			}
			jl.Synsets = append(jl.Synsets, js)
		}

		doc.Lexicons = append(doc.Lexicons, jl)
	}

	return json.MarshalIndent(doc, "", "  ")
}
