package differ

import (
	"github.com/rs/zerolog"

	"github.com/diffscope/diffscope/internal/config"
	"github.com/diffscope/diffscope/internal/inline"
	"github.com/diffscope/diffscope/internal/models"
	"github.com/diffscope/diffscope/internal/normalizer"
	"github.com/diffscope/diffscope/internal/semantic"
)

// matchKind distinguishes exact structural matches from pairings whose values
// still differ and need inline segments.
type matchKind int

const (
	matchNone matchKind = iota
	matchExact
	matchModified
)

// StructuralAligner realigns key-value style text so that a single inserted
// or removed field does not cascade into spurious differences on every
// following line.
type StructuralAligner struct {
	cfg           config.CompareConfig
	logger        zerolog.Logger
	norm          *normalizer.Normalizer
	inline        *inline.Differ
	sizeValidator *ContentSizeValidator
}

// StructuralAlignerBuilder provides a fluent interface for creating
// StructuralAligner
type StructuralAlignerBuilder struct {
	cfg    config.CompareConfig
	logger zerolog.Logger
	inline *inline.Differ
}

// NewStructuralAlignerBuilder creates a new builder with default configuration
func NewStructuralAlignerBuilder() *StructuralAlignerBuilder {
	return &StructuralAlignerBuilder{
		cfg:    config.NewDefaultCompareConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig sets the comparison configuration
func (b *StructuralAlignerBuilder) WithConfig(cfg config.CompareConfig) *StructuralAlignerBuilder {
	b.cfg = cfg
	return b
}

// WithLogger sets the logger
func (b *StructuralAlignerBuilder) WithLogger(logger zerolog.Logger) *StructuralAlignerBuilder {
	b.logger = logger
	return b
}

// WithInlineDiffer shares an existing inline differ and its similarity cache
func (b *StructuralAlignerBuilder) WithInlineDiffer(d *inline.Differ) *StructuralAlignerBuilder {
	b.inline = d
	return b
}

// Build creates a new StructuralAligner instance
func (b *StructuralAlignerBuilder) Build() (*StructuralAligner, error) {
	cfg := b.cfg
	cfg.ApplyDefaults()

	inlineDiffer := b.inline
	if inlineDiffer == nil {
		inlineDiffer = inline.NewDiffer(cfg)
	}

	return &StructuralAligner{
		cfg:           cfg,
		logger:        b.logger.With().Str("component", "structural_aligner").Logger(),
		norm:          normalizer.New(cfg),
		inline:        inlineDiffer,
		sizeValidator: NewContentSizeValidator(cfg.MaxInputSizeMB),
	}, nil
}

// Align compares two key-value style documents through the ordered matching
// passes: exact in-place, windowed exact, position-independent key-value, and
// similarity pairing. Everything left over is a plain addition or removal.
func (sa *StructuralAligner) Align(left, right string) (*models.DiffResult, error) {
	if err := sa.sizeValidator.ValidateSize(left, right); err != nil {
		if IsContentTooLargeError(err) {
			sa.logger.Warn().Msg("input exceeds size limit, degrading to coarse diff")
			return CoarseResult(left, right), nil
		}
		return nil, err
	}

	ltoks := BuildTokens(left, sa.norm)
	rtoks := BuildTokens(right, sa.norm)

	partner := make([]int, len(ltoks))
	kinds := make([]matchKind, len(ltoks))
	for i := range partner {
		partner[i] = -1
	}
	used := make([]bool, len(rtoks))

	sa.matchExactInPlace(ltoks, rtoks, partner, kinds, used)
	sa.matchWindowed(ltoks, rtoks, partner, kinds, used)
	sa.matchKeyValue(ltoks, rtoks, partner, kinds, used)
	sa.matchBySimilarity(ltoks, rtoks, partner, kinds, used)

	return sa.buildResult(ltoks, rtoks, partner, kinds, used), nil
}

// matchExactInPlace pairs lines with identical normalized content at the same
// index.
func (sa *StructuralAligner) matchExactInPlace(ltoks, rtoks []LineToken, partner []int, kinds []matchKind, used []bool) {
	for i := range ltoks {
		if i < len(rtoks) && ltoks[i].Normalized == rtoks[i].Normalized {
			partner[i] = i
			kinds[i] = matchExact
			used[i] = true
		}
	}
}

// matchWindowed pairs still-unmatched left lines with identical normalized
// content inside a bounded window, tolerating small indent drift. Lines
// tagged as the same special field class (both timestamps under one key, for
// example) pair even when their raw values differ.
func (sa *StructuralAligner) matchWindowed(ltoks, rtoks []LineToken, partner []int, kinds []matchKind, used []bool) {
	window := sa.cfg.Thresholds.StructuralMatchWindow
	indentWindow := sa.cfg.Thresholds.StructuralIndentWindow

	for i := range ltoks {
		if partner[i] >= 0 {
			continue
		}
		lo, hi := windowBounds(i, window, len(rtoks))
		for j := lo; j <= hi; j++ {
			if used[j] {
				continue
			}
			if ltoks[i].Normalized == rtoks[j].Normalized && absInt(ltoks[i].Indent-rtoks[j].Indent) <= indentWindow {
				partner[i] = j
				kinds[i] = matchExact
				used[j] = true
				break
			}
		}
		if partner[i] >= 0 {
			continue
		}
		for j := lo; j <= hi; j++ {
			if used[j] {
				continue
			}
			if sa.sameSpecialClass(ltoks[i], rtoks[j]) && absInt(ltoks[i].Indent-rtoks[j].Indent) <= indentWindow {
				partner[i] = j
				kinds[i] = matchModified
				used[j] = true
				break
			}
		}
	}
}

// sameSpecialClass reports whether two key-value lines carry the same key and
// the same non-normal field classification.
func (sa *StructuralAligner) sameSpecialClass(lt, rt LineToken) bool {
	if !lt.HasKeyValue || !rt.HasKeyValue || lt.Key != rt.Key {
		return false
	}
	leftKind := semantic.ClassifyField(lt.Key, lt.Value)
	return leftKind != semantic.FieldNormal && leftKind == semantic.ClassifyField(rt.Key, rt.Value)
}

// matchKeyValue pairs remaining key-value lines purely on key, value, and
// indent, ignoring position entirely.
func (sa *StructuralAligner) matchKeyValue(ltoks, rtoks []LineToken, partner []int, kinds []matchKind, used []bool) {
	indentWindow := sa.cfg.Thresholds.KeyValueIndentWindow

	for i := range ltoks {
		if partner[i] >= 0 || !ltoks[i].HasKeyValue {
			continue
		}
		for j := range rtoks {
			if used[j] || !rtoks[j].HasKeyValue {
				continue
			}
			if ltoks[i].Key == rtoks[j].Key && ltoks[i].Value == rtoks[j].Value &&
				absInt(ltoks[i].Indent-rtoks[j].Indent) <= indentWindow {
				partner[i] = j
				kinds[i] = matchExact
				used[j] = true
				break
			}
		}
	}
}

// matchBySimilarity pairs leftover lines inside a small window when their
// edit-distance similarity clears the threshold; comment pairs need a higher
// one.
func (sa *StructuralAligner) matchBySimilarity(ltoks, rtoks []LineToken, partner []int, kinds []matchKind, used []bool) {
	window := sa.cfg.Thresholds.SimilarityMatchWindow

	for i := range ltoks {
		if partner[i] >= 0 || ltoks[i].IsEmpty {
			continue
		}
		lo, hi := windowBounds(i, window, len(rtoks))
		bestJ := -1
		bestSim := 0.0
		for j := lo; j <= hi; j++ {
			if used[j] || rtoks[j].IsEmpty {
				continue
			}
			threshold := sa.cfg.Thresholds.StructuralSimilarity
			if ltoks[i].IsComment && rtoks[j].IsComment {
				threshold = sa.cfg.Thresholds.CommentSimilarity
			}
			sim := sa.inline.Similarity(ltoks[i].Normalized, rtoks[j].Normalized)
			if sim > threshold && sim > bestSim {
				bestSim = sim
				bestJ = j
			}
		}
		if bestJ >= 0 {
			partner[i] = bestJ
			kinds[i] = matchModified
			used[bestJ] = true
		}
	}
}

// buildResult lays out one row per left line, placing each matched right line
// at its partner's index, then inserts unmatched right lines near their
// nearest placed anchor.
func (sa *StructuralAligner) buildResult(ltoks, rtoks []LineToken, partner []int, kinds []matchKind, used []bool) *models.DiffResult {
	builder := NewDiffResultBuilder()
	rightRow := make(map[int]int, len(rtoks))

	for i := range ltoks {
		j := partner[i]
		switch {
		case j < 0:
			builder.AddRow(removedLine(ltoks[i].Original, i+1), emptyLine())
		case kinds[i] == matchExact:
			rightRow[j] = builder.Len()
			builder.AddRow(unchangedLine(ltoks[i].Original, i+1), unchangedLine(rtoks[j].Original, j+1))
		default:
			rightRow[j] = builder.Len()
			sa.addModifiedRow(builder, ltoks[i], rtoks[j], i+1, j+1)
		}
	}

	for j := range rtoks {
		if used[j] {
			continue
		}
		pos := 0
		for prev := j - 1; prev >= 0; prev-- {
			if row, ok := rightRow[prev]; ok {
				pos = row + 1
				break
			}
		}
		builder.InsertRow(pos, emptyLine(), addedLine(rtoks[j].Original, j+1))
		for placed, row := range rightRow {
			if row >= pos {
				rightRow[placed] = row + 1
			}
		}
		rightRow[j] = pos
	}

	return builder.Build()
}

// addModifiedRow attaches word-level inline segments to a fuzzy-matched pair,
// demoting to unchanged when normalization was the only difference.
func (sa *StructuralAligner) addModifiedRow(builder *DiffResultBuilder, lt, rt LineToken, leftNum, rightNum int) {
	leftSegs, rightSegs := sa.inline.DiffWords(lt.Original, rt.Original)
	if !hasChangedSegments(leftSegs) && !hasChangedSegments(rightSegs) {
		builder.AddRow(unchangedLine(lt.Original, leftNum), unchangedLine(rt.Original, rightNum))
		return
	}
	builder.AddRow(
		modifiedLine(lt.Original, leftNum, leftSegs),
		modifiedLine(rt.Original, rightNum, rightSegs),
	)
}

// windowBounds clamps a centered window to valid indexes.
func windowBounds(center, window, length int) (lo, hi int) {
	lo = center - window
	if lo < 0 {
		lo = 0
	}
	hi = center + window
	if hi > length-1 {
		hi = length - 1
	}
	return lo, hi
}

// absInt returns the absolute value of an integer.
func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
