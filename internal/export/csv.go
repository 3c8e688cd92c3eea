package export

import (
	"bytes"
	"encoding/csv"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

var csvHeader = []string{"Type", "ID", "Lemma", "PartOfSpeech", "Language", "Lexicon", "Definition", "Example"}

// CSV renders snap as one row per (word, sense) pair, per the documented
// column contract.
func CSV(snap *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, lex := range snap.Lexicons {
		synsetByID := make(map[string]domain.Synset, len(lex.Synsets))
		for _, s := range lex.Synsets {
			synsetByID[s.ID] = s
		}

		for _, e := range lex.Entries {
			for _, sense := range e.Senses {
				var definition, example string
				if syn, ok := synsetByID[sense.Synset]; ok {
					if len(syn.Definitions) > 0 {
						definition = syn.Definitions[0].Text
					}
					if len(syn.Examples) > 0 {
						example = syn.Examples[0].Text
					}
				}
				if len(sense.Examples) > 0 {
					example = sense.Examples[0].Text
				}

				row := []string{
					"sense", sense.ID, e.Word.Lemma, string(e.Word.PartOfSpeech),
					e.Word.Language, lex.Lexicon.ID, definition, example,
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
