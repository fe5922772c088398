// Package inline computes word- and character-level differences within a
// single pair of lines.
package inline

import (
	"strings"
	"unicode"

	"github.com/diffscope/diffscope/internal/aligner"
	"github.com/diffscope/diffscope/internal/config"
	"github.com/diffscope/diffscope/internal/models"
)

// Differ produces inline segments for a pair of differing lines. Similarity
// results are memoized in a bounded cache shared across one comparison
// session.
type Differ struct {
	cfg   config.CompareConfig
	cache *SimilarityCache
}

// NewDiffer creates an inline differ with its own similarity cache.
func NewDiffer(cfg config.CompareConfig) *Differ {
	return &Differ{
		cfg:   cfg,
		cache: NewSimilarityCache(config.DefaultSimilarityCacheSize),
	}
}

// ResetCache drops the memoized similarity results. Callers invoke it at the
// start of each independent comparison session.
func (d *Differ) ResetCache() {
	d.cache.Reset()
}

// Similarity reports 1 - editDistance/max(len(a), len(b)), memoized.
func (d *Differ) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}

	if v, ok := d.cache.Get(a, b); ok {
		return v
	}

	similarity := 1 - float64(Distance(a, b))/float64(maxLen)
	d.cache.Put(a, b, similarity)
	return similarity
}

// Diff computes inline segments for two differing lines. Highly similar short
// lines are diffed character by character; everything else word by word.
// Lines beyond the fine-diff ceiling are reported as one wholly-removed and
// one wholly-added segment, bounding worst-case cost.
func (d *Differ) Diff(left, right string) (leftSegs, rightSegs []models.DiffSegment) {
	if left == right {
		seg := models.DiffSegment{Text: left, Type: models.SegmentUnchanged}
		return []models.DiffSegment{seg}, []models.DiffSegment{seg}
	}

	th := d.cfg.Thresholds
	if len(left) > th.FineDiffMaxLineLength || len(right) > th.FineDiffMaxLineLength {
		return wholeLineSegments(left, right)
	}

	charMode := len(left) <= th.CharDiffMaxLineLength &&
		len(right) <= th.CharDiffMaxLineLength &&
		d.Similarity(left, right) > th.CharDiffSimilarity

	if charMode {
		return d.diffTokens(tokenizeChars(left), tokenizeChars(right))
	}
	return d.diffTokens(tokenizeWords(left), tokenizeWords(right))
}

// DiffWords computes inline segments at word granularity regardless of
// similarity, used by the structural aligner's fuzzy pairing pass.
func (d *Differ) DiffWords(left, right string) (leftSegs, rightSegs []models.DiffSegment) {
	if left == right {
		seg := models.DiffSegment{Text: left, Type: models.SegmentUnchanged}
		return []models.DiffSegment{seg}, []models.DiffSegment{seg}
	}
	th := d.cfg.Thresholds
	if len(left) > th.FineDiffMaxLineLength || len(right) > th.FineDiffMaxLineLength {
		return wholeLineSegments(left, right)
	}
	return d.diffTokens(tokenizeWords(left), tokenizeWords(right))
}

// diffTokens aligns two token sequences and folds the alignment into merged
// per-side segments.
func (d *Differ) diffTokens(ltoks, rtoks []string) (leftSegs, rightSegs []models.DiffSegment) {
	pairs := aligner.Align(ltoks, rtoks, aligner.Options{})

	for _, p := range pairs {
		switch p.Op {
		case aligner.OpMatch:
			leftSegs = append(leftSegs, models.DiffSegment{Text: ltoks[p.A], Type: models.SegmentUnchanged})
			rightSegs = append(rightSegs, models.DiffSegment{Text: rtoks[p.B], Type: models.SegmentUnchanged})
		case aligner.OpDelete:
			leftSegs = append(leftSegs, models.DiffSegment{Text: ltoks[p.A], Type: models.SegmentRemoved})
		case aligner.OpInsert:
			rightSegs = append(rightSegs, models.DiffSegment{Text: rtoks[p.B], Type: models.SegmentAdded})
		}
	}

	return mergeSegments(leftSegs), mergeSegments(rightSegs)
}

// wholeLineSegments degrades to one removed and one added segment.
func wholeLineSegments(left, right string) ([]models.DiffSegment, []models.DiffSegment) {
	var leftSegs, rightSegs []models.DiffSegment
	if left != "" {
		leftSegs = []models.DiffSegment{{Text: left, Type: models.SegmentRemoved}}
	}
	if right != "" {
		rightSegs = []models.DiffSegment{{Text: right, Type: models.SegmentAdded}}
	}
	return leftSegs, rightSegs
}

// mergeSegments combines adjacent segments with the same classification.
func mergeSegments(segments []models.DiffSegment) []models.DiffSegment {
	if len(segments) == 0 {
		return nil
	}

	merged := make([]models.DiffSegment, 0, len(segments))
	current := segments[0]
	for i := 1; i < len(segments); i++ {
		if segments[i].Type == current.Type {
			current.Text += segments[i].Text
		} else {
			merged = append(merged, current)
			current = segments[i]
		}
	}
	merged = append(merged, current)
	return merged
}

// tokenizeChars splits a string into per-rune tokens.
func tokenizeChars(s string) []string {
	tokens := make([]string, 0, len(s))
	for _, r := range s {
		tokens = append(tokens, string(r))
	}
	return tokens
}

// tokenizeWords splits a string into alternating word and whitespace tokens
// so that joining the tokens reproduces the input exactly.
func tokenizeWords(s string) []string {
	var tokens []string
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		isSpace := unicode.IsSpace(r)
		if b.Len() > 0 && isSpace != inSpace {
			tokens = append(tokens, b.String())
			b.Reset()
		}
		inSpace = isSpace
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}
