// Package morphy implements the rule-and-exception lemmatizer: suffix
// substitution rules per part of speech, refined by an exception table
// learned from the backing Wordnet's full word list.
package morphy

import (
	"context"
	"strings"
	"sync"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

// rule is one suffix -> replacement substitution.
type rule struct {
	suffix      string
	replacement string
}

// rules holds the declaration-ordered suffix tables per part of speech.
var rules = map[domain.PartOfSpeech][]rule{
	domain.PosNoun: {
		{"s", ""},
		{"ces", "x"},
		{"ses", "s"},
		{"ves", "f"},
		{"ives", "ife"},
		{"xes", "x"},
		{"xes", "xis"},
		{"zes", "z"},
		{"ches", "ch"},
		{"shes", "sh"},
		{"men", "man"},
		{"ies", "y"},
	},
	domain.PosVerb: {
		{"s", ""},
		{"ies", "y"},
		{"es", "e"},
		{"es", ""},
		{"ed", "e"},
		{"ed", ""},
		{"ing", "e"},
		{"ing", ""},
	},
	domain.PosAdjective: {
		{"er", ""},
		{"est", ""},
		{"er", "e"},
		{"est", "e"},
	},
}

func init() {
	rules[domain.PosAdverb] = rules[domain.PosAdjective]
}

// inScopePOS is the fixed set analyze() iterates when pos is omitted.
var inScopePOS = []domain.PartOfSpeech{domain.PosNoun, domain.PosVerb, domain.PosAdjective, domain.PosAdverb}

// nullKey is the bucket analyze emits for the unmodified form when
// uninitialized and no POS was requested.
const nullKey = domain.PartOfSpeech("null")

// Morphy is a rule-and-exception lemmatizer. The zero value is usable
// uninitialized (pure suffix rules); NewFromWordnet additionally seeds an
// exception table from a Wordnet's full word list.
type Morphy struct {
	mu          sync.RWMutex
	initialized bool
	allLemmas   map[domain.PartOfSpeech]map[string]bool
	exceptions  map[domain.PartOfSpeech]map[string]map[string]bool
}

// New returns an uninitialized Morphy: pure suffix-rule application, every
// candidate kept, the original form always included.
func New() *Morphy {
	return &Morphy{}
}

// NewFromWordnet builds a Morphy and synchronously initializes its
// exception table from wn before returning, per the spec's "must complete
// before the first analyze returns" contract.
func NewFromWordnet(ctx context.Context, wn *query.Wordnet) (*Morphy, error) {
	m := New()
	if err := m.initFromWordnet(ctx, wn); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Morphy) initFromWordnet(ctx context.Context, wn *query.Wordnet) error {
	words, err := wn.AllWords(ctx)
	if err != nil {
		return err
	}

	allLemmas := map[domain.PartOfSpeech]map[string]bool{}
	exceptions := map[domain.PartOfSpeech]map[string]map[string]bool{}

	for _, w := range words {
		pos := w.PartOfSpeech
		if allLemmas[pos] == nil {
			allLemmas[pos] = map[string]bool{}
			exceptions[pos] = map[string]map[string]bool{}
		}

		lemma := w.Lemma
		if lemma == "" && len(w.Forms) > 0 {
			lemma = w.Forms[0].WrittenForm
		}
		if lemma == "" {
			continue
		}
		allLemmas[pos][lemma] = true

		for _, f := range w.Forms {
			if f.WrittenForm == "" || f.WrittenForm == lemma {
				continue
			}
			if exceptions[pos][f.WrittenForm] == nil {
				exceptions[pos][f.WrittenForm] = map[string]bool{}
			}
			exceptions[pos][f.WrittenForm][lemma] = true
		}
	}

	m.mu.Lock()
	m.allLemmas = allLemmas
	m.exceptions = exceptions
	m.initialized = true
	m.mu.Unlock()
	return nil
}

// applyRules returns every candidate a form's suffix rules for pos produce,
// in declaration order, applying a rule only when its suffix is strictly
// shorter than the form.
func applyRules(form string, pos domain.PartOfSpeech) []string {
	var out []string
	for _, r := range rules[pos] {
		if len(r.suffix) >= len(form) {
			continue
		}
		if !strings.HasSuffix(form, r.suffix) {
			continue
		}
		out = append(out, strings.TrimSuffix(form, r.suffix)+r.replacement)
	}
	return out
}

// Analyze returns every POS's set of lemma candidates for form. If pos is
// non-empty, only that POS is analyzed; otherwise every POS in {n, v, a, r}
// is analyzed, and when uninitialized a "null" bucket holding {form} is
// also emitted and subtracted from every other bucket.
func (m *Morphy) Analyze(form string, pos domain.PartOfSpeech) map[domain.PartOfSpeech]map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posList := inScopePOS
	if pos != "" {
		posList = []domain.PartOfSpeech{pos}
	}

	out := map[domain.PartOfSpeech]map[string]bool{}
	for _, p := range posList {
		out[p] = m.candidatesLocked(form, p)
	}

	if pos == "" && !m.initialized {
		out[nullKey] = map[string]bool{form: true}
		for _, p := range posList {
			delete(out[p], form)
		}
	}

	return out
}

func (m *Morphy) candidatesLocked(form string, pos domain.PartOfSpeech) map[string]bool {
	candidates := map[string]bool{}

	if !m.initialized {
		candidates[form] = true
		for _, c := range applyRules(form, pos) {
			candidates[c] = true
		}
		return candidates
	}

	allLemmas := m.allLemmas[pos]
	for lemma := range m.exceptions[pos][form] {
		if allLemmas[lemma] {
			candidates[lemma] = true
		}
	}
	for _, c := range applyRules(form, pos) {
		if allLemmas[c] {
			candidates[c] = true
		}
	}
	return candidates
}

// Lemmatizer adapts m to the query.Lemmatizer signature the Wordnet façade
// consults on a direct lookup miss.
func (m *Morphy) Lemmatizer(form string, pos domain.PartOfSpeech) map[domain.PartOfSpeech][]string {
	analyzed := m.Analyze(form, pos)
	out := map[domain.PartOfSpeech][]string{}
	for p, set := range analyzed {
		if p == nullKey {
			continue
		}
		for lemma := range set {
			out[p] = append(out[p], lemma)
		}
	}
	return out
}
