// Package similarity implements the path-, rank-, and information-content
// based synset similarity measures built on top of the graph package's
// taxonomy traversal.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/graph"
	"github.com/heartmarshall/wordnet-engine/internal/ic"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

// Similarity computes pairwise synset similarity scores. All measures
// require a and b to share a part of speech.
type Similarity struct {
	wn  *query.Wordnet
	tax *graph.Taxonomy
}

// New builds a Similarity over wn's taxonomy.
func New(wn *query.Wordnet, tax *graph.Taxonomy) *Similarity {
	return &Similarity{wn: wn, tax: tax}
}

func checkPOS(a, b domain.Synset) error {
	if a.PartOfSpeech != b.PartOfSpeech {
		return fmt.Errorf("similarity(%s, %s): %w", a.ID, b.ID, domain.ErrIncompatiblePos)
	}
	return nil
}

// edgeCount returns the number of hypernym edges between x and y given the
// strictly-interior path graph.ShortestPath returns for them: zero when
// x == y, else len(p)+1 (one edge to each endpoint plus one per interior
// node).
func edgeCount(x, y string, p graph.Path) int {
	if x == y {
		return 0
	}
	return len(p) + 1
}

// Path returns 1 when a == b, 0 when no hypernym path connects them, and
// 1/(d+1) otherwise, where d is the edge count of their shortest path.
func (s *Similarity) Path(ctx context.Context, a, b domain.Synset) (float64, error) {
	if err := checkPOS(a, b); err != nil {
		return 0, err
	}
	if a.ID == b.ID {
		return 1, nil
	}
	path, err := s.tax.ShortestPath(ctx, a.ID, b.ID, false)
	if errors.Is(err, domain.ErrNoPath) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("path(%s, %s): %w", a.ID, b.ID, err)
	}
	return 1 / (float64(edgeCount(a.ID, b.ID, path)) + 1), nil
}

// Wup is the Wu-Palmer measure: 1 when a == b, 0 when a and b share no
// common hypernym, else 2k/(i+j+2k) where lcs is the first of their lowest
// common hypernyms, i and j are the edge counts of a's and b's shortest
// paths to lcs, and k is lcs's max depth plus one.
func (s *Similarity) Wup(ctx context.Context, a, b domain.Synset) (float64, error) {
	if err := checkPOS(a, b); err != nil {
		return 0, err
	}
	if a.ID == b.ID {
		return 1, nil
	}

	common, err := s.tax.LowestCommonHypernyms(ctx, a.ID, b.ID)
	if err != nil {
		return 0, fmt.Errorf("wup(%s, %s): %w", a.ID, b.ID, err)
	}
	if len(common) == 0 {
		return 0, nil
	}
	lcsID := common[0]

	iPath, err := s.tax.ShortestPath(ctx, a.ID, lcsID, false)
	if err != nil {
		return 0, fmt.Errorf("wup(%s, %s): %w", a.ID, b.ID, err)
	}
	jPath, err := s.tax.ShortestPath(ctx, b.ID, lcsID, false)
	if err != nil {
		return 0, fmt.Errorf("wup(%s, %s): %w", a.ID, b.ID, err)
	}
	maxD, err := s.tax.MaxDepth(ctx, lcsID)
	if err != nil {
		return 0, fmt.Errorf("wup(%s, %s): %w", a.ID, b.ID, err)
	}

	i := float64(edgeCount(a.ID, lcsID, iPath))
	j := float64(edgeCount(b.ID, lcsID, jPath))
	k := float64(maxD + 1)

	denom := i + j + 2*k
	if denom <= 0 {
		return 0, nil
	}
	return 2 * k / denom, nil
}

// Lch is the Leacock-Chodorow measure: -ln((d+1)/(2*maxD)), where d is the
// edge count of a's and b's shortest path and maxD is the caller-supplied
// depth of the whole taxonomy for a's and b's part of speech. maxD must be
// positive.
func (s *Similarity) Lch(ctx context.Context, a, b domain.Synset, maxD int) (float64, error) {
	if err := checkPOS(a, b); err != nil {
		return 0, err
	}
	if maxD <= 0 {
		return 0, fmt.Errorf("lch(%s, %s): %w", a.ID, b.ID, domain.ErrInvalidMaxDepth)
	}

	path, err := s.tax.ShortestPath(ctx, a.ID, b.ID, false)
	if err != nil {
		return 0, fmt.Errorf("lch(%s, %s): %w", a.ID, b.ID, err)
	}
	d := float64(edgeCount(a.ID, b.ID, path))
	return -math.Log((d + 1) / (2 * float64(maxD))), nil
}

// mostInformativeLCS picks the synset among a's and b's lowest common
// hypernyms with the highest information content under freq.
func (s *Similarity) mostInformativeLCS(ctx context.Context, a, b domain.Synset, freq ic.Freq) (*domain.Synset, error) {
	common, err := s.tax.LowestCommonHypernyms(ctx, a.ID, b.ID)
	if err != nil {
		return nil, err
	}
	if len(common) == 0 {
		return nil, nil
	}

	var best *domain.Synset
	bestIC := -1.0
	for _, id := range common {
		syn, err := s.wn.Synset(ctx, id)
		if err != nil {
			return nil, err
		}
		content := ic.InformationContent(freq, *syn)
		if best == nil || content > bestIC {
			best, bestIC = syn, content
		}
	}
	return best, nil
}

// Res is the Resnik measure: the information content of a's and b's
// most-informative lowest common hypernym. 0 when they share no ancestor.
func (s *Similarity) Res(ctx context.Context, a, b domain.Synset, freq ic.Freq) (float64, error) {
	if err := checkPOS(a, b); err != nil {
		return 0, err
	}
	lcs, err := s.mostInformativeLCS(ctx, a, b, freq)
	if err != nil {
		return 0, fmt.Errorf("res(%s, %s): %w", a.ID, b.ID, err)
	}
	if lcs == nil {
		return 0, nil
	}
	return ic.InformationContent(freq, *lcs), nil
}

// Jcn is the Jiang-Conrath measure: 1 when a == b, else
// 1/(IC(a)+IC(b)-2*IC(lcs)), 0 when the denominator is non-positive.
func (s *Similarity) Jcn(ctx context.Context, a, b domain.Synset, freq ic.Freq) (float64, error) {
	if err := checkPOS(a, b); err != nil {
		return 0, err
	}
	if a.ID == b.ID {
		return 1, nil
	}
	lcs, err := s.mostInformativeLCS(ctx, a, b, freq)
	if err != nil {
		return 0, fmt.Errorf("jcn(%s, %s): %w", a.ID, b.ID, err)
	}
	if lcs == nil {
		return 0, nil
	}
	denom := ic.InformationContent(freq, a) + ic.InformationContent(freq, b) - 2*ic.InformationContent(freq, *lcs)
	if denom <= 0 {
		return 0, nil
	}
	return 1 / denom, nil
}

// Lin is the Lin measure: 1 when a == b, else min(1, 2*IC(lcs)/(IC(a)+IC(b))),
// 0 when the denominator is zero.
func (s *Similarity) Lin(ctx context.Context, a, b domain.Synset, freq ic.Freq) (float64, error) {
	if err := checkPOS(a, b); err != nil {
		return 0, err
	}
	if a.ID == b.ID {
		return 1, nil
	}
	lcs, err := s.mostInformativeLCS(ctx, a, b, freq)
	if err != nil {
		return 0, fmt.Errorf("lin(%s, %s): %w", a.ID, b.ID, err)
	}
	if lcs == nil {
		return 0, nil
	}
	denom := ic.InformationContent(freq, a) + ic.InformationContent(freq, b)
	if denom == 0 {
		return 0, nil
	}
	v := 2 * ic.InformationContent(freq, *lcs) / denom
	if v > 1 {
		v = 1
	}
	return v, nil
}
