// Package orchestrator ties format detection, semantic analysis, and the line
// and structural differs into a single comparison entry point.
package orchestrator

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/diffscope/diffscope/internal/config"
	"github.com/diffscope/diffscope/internal/differ"
	"github.com/diffscope/diffscope/internal/inline"
	"github.com/diffscope/diffscope/internal/models"
	"github.com/diffscope/diffscope/internal/semantic"
)

// EnhancedDiffer compares two documents end to end: it detects the input
// format, runs semantic JSON analysis when both sides parse, and falls back
// through structural and plain line diffing otherwise.
type EnhancedDiffer struct {
	cfg           config.CompareConfig
	logger        zerolog.Logger
	inline        *inline.Differ
	lineDiffer    *differ.LineDiffer
	structural    *differ.StructuralAligner
	sizeValidator *differ.ContentSizeValidator
}

// EnhancedDifferBuilder provides a fluent interface for creating EnhancedDiffer
type EnhancedDifferBuilder struct {
	cfg    config.CompareConfig
	logger zerolog.Logger
}

// NewEnhancedDifferBuilder creates a new builder with default configuration
func NewEnhancedDifferBuilder() *EnhancedDifferBuilder {
	return &EnhancedDifferBuilder{
		cfg:    config.NewDefaultCompareConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig sets the comparison configuration
func (b *EnhancedDifferBuilder) WithConfig(cfg config.CompareConfig) *EnhancedDifferBuilder {
	b.cfg = cfg
	return b
}

// WithLogger sets the logger
func (b *EnhancedDifferBuilder) WithLogger(logger zerolog.Logger) *EnhancedDifferBuilder {
	b.logger = logger
	return b
}

// Build creates a new EnhancedDiffer instance. Array move detection without a
// key field degrades to positional comparison rather than failing.
func (b *EnhancedDifferBuilder) Build() (*EnhancedDiffer, error) {
	cfg := b.cfg
	cfg.ApplyDefaults()

	if cfg.DetectArrayMoves && cfg.ArrayKeyField == "" {
		b.logger.Warn().Msg("array move detection requires an array key field, using positional comparison")
		cfg.DetectArrayMoves = false
	}

	inlineDiffer := inline.NewDiffer(cfg)

	lineDiffer, err := differ.NewLineDifferBuilder().
		WithConfig(cfg).
		WithLogger(b.logger).
		WithInlineDiffer(inlineDiffer).
		Build()
	if err != nil {
		return nil, err
	}

	structural, err := differ.NewStructuralAlignerBuilder().
		WithConfig(cfg).
		WithLogger(b.logger).
		WithInlineDiffer(inlineDiffer).
		Build()
	if err != nil {
		return nil, err
	}

	return &EnhancedDiffer{
		cfg:           cfg,
		logger:        b.logger.With().Str("component", "enhanced_differ").Logger(),
		inline:        inlineDiffer,
		lineDiffer:    lineDiffer,
		structural:    structural,
		sizeValidator: differ.NewContentSizeValidator(cfg.MaxInputSizeMB),
	}, nil
}

// NewEnhancedDiffer creates an EnhancedDiffer with the given logger and
// configuration.
func NewEnhancedDiffer(logger zerolog.Logger, cfg config.CompareConfig) (*EnhancedDiffer, error) {
	return NewEnhancedDifferBuilder().WithLogger(logger).WithConfig(cfg).Build()
}

// Compare runs one comparison session over a document pair.
func (ed *EnhancedDiffer) Compare(left, right string) (*models.EnhancedDiffResult, error) {
	sessionID := uuid.New().String()
	logger := ed.logger.With().Str("session_id", sessionID).Logger()
	logger.Debug().
		Int("left_bytes", len(left)).
		Int("right_bytes", len(right)).
		Str("format_hint", ed.cfg.FormatType).
		Msg("comparison session started")

	ed.inline.ResetCache()

	if err := ed.sizeValidator.ValidateSize(left, right); err != nil {
		if !differ.IsContentTooLargeError(err) {
			return nil, err
		}
		logger.Warn().Msg("input exceeds size limit, degrading to coarse diff")
		return &models.EnhancedDiffResult{
			DiffResult: *differ.CoarseResult(left, right),
			Format:     models.FormatText,
		}, nil
	}

	switch ed.cfg.FormatType {
	case config.FormatJSON:
		return ed.compareJSON(logger, left, right)
	case config.FormatYAML, config.FormatConfig:
		return ed.compareStructured(logger, left, right, models.FormatType(ed.cfg.FormatType))
	case config.FormatText, config.FormatXML:
		return ed.compareText(logger, left, right, models.FormatType(ed.cfg.FormatType))
	}

	if result, ok := ed.tryJSON(logger, left, right); ok {
		return result, nil
	}
	if looksLikeConfig(left) && looksLikeConfig(right) {
		return ed.compareStructured(logger, left, right, models.FormatConfig)
	}
	return ed.compareText(logger, left, right, models.FormatText)
}

// tryJSON attempts the semantic JSON path; malformed input on either side
// reports false so the caller falls through to text comparison.
func (ed *EnhancedDiffer) tryJSON(logger zerolog.Logger, left, right string) (*models.EnhancedDiffResult, bool) {
	leftTree, lok := parseDocument(left)
	rightTree, rok := parseDocument(right)
	if !lok || !rok {
		logger.Debug().Bool("left_parsed", lok).Bool("right_parsed", rok).Msg("json parse failed, falling back")
		return nil, false
	}
	result, err := ed.compareTrees(logger, leftTree, rightTree)
	if err != nil {
		return nil, false
	}
	return result, true
}

// compareJSON forces the semantic JSON path. Malformed input still degrades
// silently to plain text comparison.
func (ed *EnhancedDiffer) compareJSON(logger zerolog.Logger, left, right string) (*models.EnhancedDiffResult, error) {
	if result, ok := ed.tryJSON(logger, left, right); ok {
		return result, nil
	}
	return ed.compareText(logger, left, right, models.FormatText)
}

// compareTrees runs semantic analysis over two parsed documents and renders
// their line view from canonical pretty-printed text.
func (ed *EnhancedDiffer) compareTrees(logger zerolog.Logger, leftTree, rightTree any) (*models.EnhancedDiffResult, error) {
	engine := semantic.NewEngine(logger, ed.cfg)

	leftText, err := prettyPrint(leftTree)
	if err != nil {
		return nil, err
	}
	rightText, err := prettyPrint(rightTree)
	if err != nil {
		return nil, err
	}

	detector := semantic.NewDetector(logger, ed.cfg, engine)
	changes, moved := detector.Detect(leftTree, rightTree)
	stats := engine.ComputeStats(leftTree, rightTree)

	// Semantically equal documents keep an all-unchanged line view, but
	// structural changes such as keyed-array reorders are still reported.
	if engine.DeepEqual(leftTree, rightTree) {
		logger.Debug().Int("structural_changes", len(changes)).Msg("documents semantically equal")
		return &models.EnhancedDiffResult{
			DiffResult:        *equalDocumentsResult(leftText, rightText),
			Format:            models.FormatJSON,
			StructuralChanges: changes,
			MovedProperties:   moved,
			Stats:             stats,
		}, nil
	}

	lineResult, err := ed.structural.Align(leftText, rightText)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("structural_changes", len(changes)).
		Int("additions", lineResult.Additions).
		Int("removals", lineResult.Removals).
		Msg("json comparison finished")

	return &models.EnhancedDiffResult{
		DiffResult:        *lineResult,
		Format:            models.FormatJSON,
		StructuralChanges: changes,
		MovedProperties:   moved,
		Stats:             stats,
	}, nil
}

// compareStructured runs the structural aligner over key-value style text.
func (ed *EnhancedDiffer) compareStructured(logger zerolog.Logger, left, right string, format models.FormatType) (*models.EnhancedDiffResult, error) {
	lineResult, err := ed.structural.Align(left, right)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("format", string(format)).
		Int("additions", lineResult.Additions).
		Int("removals", lineResult.Removals).
		Msg("structured comparison finished")
	return &models.EnhancedDiffResult{
		DiffResult: *lineResult,
		Format:     format,
	}, nil
}

// compareText runs the plain line differ.
func (ed *EnhancedDiffer) compareText(logger zerolog.Logger, left, right string, format models.FormatType) (*models.EnhancedDiffResult, error) {
	lineResult, err := ed.lineDiffer.Compare(left, right)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("format", string(format)).
		Int("additions", lineResult.Additions).
		Int("removals", lineResult.Removals).
		Msg("text comparison finished")
	return &models.EnhancedDiffResult{
		DiffResult: *lineResult,
		Format:     format,
	}, nil
}

// parseDocument parses JSON text, accepting only a top-level object or array.
func parseDocument(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, false
	}
	var tree any
	if err := json.Unmarshal([]byte(trimmed), &tree); err != nil {
		return nil, false
	}
	return tree, true
}

// prettyPrint renders a parsed document as two-space indented JSON.
func prettyPrint(tree any) (string, error) {
	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// equalDocumentsResult renders semantically equal documents as all-unchanged
// rows, keeping each side's own canonical text. Leftover lines on the longer
// side pair with padding.
func equalDocumentsResult(leftText, rightText string) *models.DiffResult {
	leftLines := differ.SplitLines(leftText)
	rightLines := differ.SplitLines(rightText)

	length := len(leftLines)
	if len(rightLines) > length {
		length = len(rightLines)
	}

	result := &models.DiffResult{
		Left:  make([]models.DiffLine, 0, length),
		Right: make([]models.DiffLine, 0, length),
	}
	for i := 0; i < length; i++ {
		result.Left = append(result.Left, unchangedOrPadding(leftLines, i))
		result.Right = append(result.Right, unchangedOrPadding(rightLines, i))
	}
	return result
}

// unchangedOrPadding returns line i as unchanged, or a padding line past the
// end.
func unchangedOrPadding(lines []string, i int) models.DiffLine {
	if i >= len(lines) {
		return models.DiffLine{Type: models.LineEmpty}
	}
	num := i + 1
	return models.DiffLine{Content: lines[i], Type: models.LineUnchanged, Number: &num}
}

// looksLikeConfig reports whether most non-empty, non-comment lines carry a
// key-value separator.
func looksLikeConfig(text string) bool {
	lines := differ.SplitLines(text)
	total := 0
	keyValue := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, ";") {
			continue
		}
		total++
		if strings.ContainsAny(trimmed, ":=") {
			keyValue++
		}
	}
	return total > 0 && keyValue*2 > total
}
