package export

import "encoding/xml"

type xmlResource struct {
	XMLName  xml.Name     `xml:"LexicalResource"`
	Lexicons []xmlLexicon `xml:"Lexicon"`
}

type xmlLexicon struct {
	ID       string      `xml:"id,attr"`
	Label    string      `xml:"label,attr"`
	Language string      `xml:"language,attr"`
	Version  string      `xml:"version,attr"`
	Entries  []xmlEntry  `xml:"LexicalEntry"`
	Synsets  []xmlSynset `xml:"Synset"`
}

type xmlEntry struct {
	ID     string     `xml:"id,attr"`
	Lemma  xmlLemma   `xml:"Lemma"`
	Senses []xmlSense `xml:"Sense"`
}

type xmlLemma struct {
	WrittenForm  string `xml:"writtenForm,attr"`
	PartOfSpeech string `xml:"partOfSpeech,attr"`
}

type xmlSense struct {
	ID     string `xml:"id,attr"`
	Synset string `xml:"synset,attr"`
}

type xmlSynset struct {
	ID           string        `xml:"id,attr"`
	PartOfSpeech string        `xml:"partOfSpeech,attr"`
	ILI          string        `xml:"ili,attr,omitempty"`
	Definitions  []string      `xml:"Definition"`
	Examples     []string      `xml:"Example"`
	Relations    []xmlRelation `xml:"SynsetRelation"`
}

type xmlRelation struct {
	RelType string `xml:"relType,attr"`
	Target  string `xml:"target,attr"`
}

// XML renders snap as a LexicalResource document mirroring LMF structure,
// per the documented export contract.
func XML(snap *Snapshot) ([]byte, error) {
	var res xmlResource

	for _, lex := range snap.Lexicons {
		xl := xmlLexicon{
			ID:       lex.Lexicon.ID,
			Label:    lex.Lexicon.Label,
			Language: lex.Lexicon.Language,
			Version:  lex.Lexicon.Version,
		}

		for _, e := range lex.Entries {
			xe := xmlEntry{
				ID:    e.Word.ID,
				Lemma: xmlLemma{WrittenForm: e.Word.Lemma, PartOfSpeech: string(e.Word.PartOfSpeech)},
			}
			for _, s := range e.Senses {
				xe.Senses = append(xe.Senses, xmlSense{ID: s.ID, Synset: s.Synset})
			}
			xl.Entries = append(xl.Entries, xe)
		}

		for _, s := range lex.Synsets {
			xs := xmlSynset{ID: s.ID, PartOfSpeech: string(s.PartOfSpeech), ILI: s.ILI}
			for _, d := range s.Definitions {
				xs.Definitions = append(xs.Definitions, d.Text)
			}
			for _, ex := range s.Examples {
				xs.Examples = append(xs.Examples, ex.Text)
			}
			for _, r := range s.Relations {
				xs.Relations = append(xs.Relations, xmlRelation{RelType: r.Type, Target: r.Target})
			}
			xl.Synsets = append(xl.Synsets, xs)
		}

		res.Lexicons = append(res.Lexicons, xl)
	}

	out, err := xml.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
