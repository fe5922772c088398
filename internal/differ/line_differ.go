package differ

import (
	"github.com/rs/zerolog"

	"github.com/diffscope/diffscope/internal/aligner"
	"github.com/diffscope/diffscope/internal/config"
	"github.com/diffscope/diffscope/internal/inline"
	"github.com/diffscope/diffscope/internal/models"
	"github.com/diffscope/diffscope/internal/normalizer"
)

// LineDiffer orchestrates line-by-line comparison of two documents.
type LineDiffer struct {
	cfg           config.CompareConfig
	logger        zerolog.Logger
	norm          *normalizer.Normalizer
	inline        *inline.Differ
	sizeValidator *ContentSizeValidator
}

// LineDifferBuilder provides a fluent interface for creating LineDiffer
type LineDifferBuilder struct {
	cfg    config.CompareConfig
	logger zerolog.Logger
	inline *inline.Differ
}

// NewLineDifferBuilder creates a new builder with default configuration
func NewLineDifferBuilder() *LineDifferBuilder {
	return &LineDifferBuilder{
		cfg:    config.NewDefaultCompareConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig sets the comparison configuration
func (b *LineDifferBuilder) WithConfig(cfg config.CompareConfig) *LineDifferBuilder {
	b.cfg = cfg
	return b
}

// WithLogger sets the logger
func (b *LineDifferBuilder) WithLogger(logger zerolog.Logger) *LineDifferBuilder {
	b.logger = logger
	return b
}

// WithInlineDiffer shares an existing inline differ (and its similarity
// cache) instead of creating a private one
func (b *LineDifferBuilder) WithInlineDiffer(d *inline.Differ) *LineDifferBuilder {
	b.inline = d
	return b
}

// Build creates a new LineDiffer instance
func (b *LineDifferBuilder) Build() (*LineDiffer, error) {
	cfg := b.cfg
	cfg.ApplyDefaults()

	inlineDiffer := b.inline
	if inlineDiffer == nil {
		inlineDiffer = inline.NewDiffer(cfg)
	}

	return &LineDiffer{
		cfg:           cfg,
		logger:        b.logger.With().Str("component", "line_differ").Logger(),
		norm:          normalizer.New(cfg),
		inline:        inlineDiffer,
		sizeValidator: NewContentSizeValidator(cfg.MaxInputSizeMB),
	}, nil
}

// NewLineDiffer creates a LineDiffer with the given logger and configuration
func NewLineDiffer(logger zerolog.Logger, cfg config.CompareConfig) (*LineDiffer, error) {
	return NewLineDifferBuilder().WithLogger(logger).WithConfig(cfg).Build()
}

// Compare diffs two documents line by line. Oversized inputs degrade to a
// coarse whole-document result instead of failing.
func (ld *LineDiffer) Compare(left, right string) (*models.DiffResult, error) {
	if err := ld.sizeValidator.ValidateSize(left, right); err != nil {
		if IsContentTooLargeError(err) {
			ld.logger.Warn().Msg("input exceeds size limit, degrading to coarse diff")
			return CoarseResult(left, right), nil
		}
		return nil, err
	}

	ltoks := BuildTokens(left, ld.norm)
	rtoks := BuildTokens(right, ld.norm)

	lnorms := normalizedKeys(ltoks)
	rnorms := normalizedKeys(rtoks)

	if equalKeys(lnorms, rnorms) {
		return unchangedResult(ltoks, rtoks), nil
	}

	pairs := aligner.Align(lnorms, rnorms, aligner.Options{PairReplacements: true})
	pairs = ld.pairAdjacentEdits(pairs, ltoks, rtoks)

	builder := NewDiffResultBuilder()
	for _, p := range pairs {
		switch p.Op {
		case aligner.OpMatch:
			builder.AddRow(unchangedLine(ltoks[p.A].Original, p.A+1), unchangedLine(rtoks[p.B].Original, p.B+1))
		case aligner.OpReplace:
			ld.addReplaceRow(builder, ltoks[p.A], rtoks[p.B], p.A+1, p.B+1)
		case aligner.OpDelete:
			builder.AddRow(removedLine(ltoks[p.A].Original, p.A+1), emptyLine())
		case aligner.OpInsert:
			builder.AddRow(emptyLine(), addedLine(rtoks[p.B].Original, p.B+1))
		}
	}

	return builder.Build(), nil
}

// addReplaceRow runs the inline differ over a paired line couple. A pairing
// with no actual differing segments is demoted back to unchanged; the only
// difference was normalization.
func (ld *LineDiffer) addReplaceRow(builder *DiffResultBuilder, lt, rt LineToken, leftNum, rightNum int) {
	leftSegs, rightSegs := ld.inline.Diff(lt.Original, rt.Original)
	if !hasChangedSegments(leftSegs) && !hasChangedSegments(rightSegs) {
		builder.AddRow(unchangedLine(lt.Original, leftNum), unchangedLine(rt.Original, rightNum))
		return
	}
	builder.AddRow(
		modifiedLine(lt.Original, leftNum, leftSegs),
		modifiedLine(rt.Original, rightNum, rightSegs),
	)
}

// pairAdjacentEdits merges adjacent insert/delete steps into replace steps
// when a similarity or structure heuristic suggests the two lines are the
// same logical line edited.
func (ld *LineDiffer) pairAdjacentEdits(pairs []aligner.Pair, ltoks, rtoks []LineToken) []aligner.Pair {
	out := make([]aligner.Pair, 0, len(pairs))
	for i := 0; i < len(pairs); i++ {
		p := pairs[i]
		if i+1 < len(pairs) {
			next := pairs[i+1]
			if p.Op == aligner.OpInsert && next.Op == aligner.OpDelete && ld.looksModified(ltoks[next.A], rtoks[p.B]) {
				out = append(out, aligner.Pair{Op: aligner.OpReplace, A: next.A, B: p.B})
				i++
				continue
			}
			if p.Op == aligner.OpDelete && next.Op == aligner.OpInsert && ld.looksModified(ltoks[p.A], rtoks[next.B]) {
				out = append(out, aligner.Pair{Op: aligner.OpReplace, A: p.A, B: next.B})
				i++
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// looksModified decides whether a removed/added line couple should render as
// one modified line.
func (ld *LineDiffer) looksModified(lt, rt LineToken) bool {
	if lt.IsEmpty || rt.IsEmpty {
		return false
	}
	if sharedStructure(lt.Original, rt.Original) {
		return true
	}
	return ld.inline.Similarity(lt.Normalized, rt.Normalized) > ld.cfg.Thresholds.LinePairSimilarity
}

// unchangedResult builds the short-circuit result for documents whose
// normalized forms are identical. Each side keeps its own original content.
func unchangedResult(ltoks, rtoks []LineToken) *models.DiffResult {
	builder := NewDiffResultBuilder()
	for i := range ltoks {
		builder.AddRow(unchangedLine(ltoks[i].Original, i+1), unchangedLine(rtoks[i].Original, i+1))
	}
	return builder.Build()
}

// CoarseResult reports the whole left document as removed and the whole right
// document as added, skipping alignment entirely. Used when inputs exceed the
// configured size ceiling.
func CoarseResult(left, right string) *models.DiffResult {
	builder := NewDiffResultBuilder()
	for i, line := range SplitLines(left) {
		builder.AddRow(removedLine(line, i+1), emptyLine())
	}
	for i, line := range SplitLines(right) {
		builder.AddRow(emptyLine(), addedLine(line, i+1))
	}
	return builder.Build()
}

// normalizedKeys extracts the comparison keys of a token slice.
func normalizedKeys(tokens []LineToken) []string {
	keys := make([]string, len(tokens))
	for i := range tokens {
		keys[i] = tokens[i].Normalized
	}
	return keys
}

// equalKeys reports whether two key slices are identical.
func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
