package config

// Thresholds groups the tunable cutoffs of the comparison engine. Zero values
// are replaced with the defaults from constants.go at load time.
type Thresholds struct {
	CharDiffSimilarity     float64 `json:"char_diff_similarity,omitempty" yaml:"char_diff_similarity,omitempty" validate:"min=0,max=1"`
	CharDiffMaxLineLength  int     `json:"char_diff_max_line_length,omitempty" yaml:"char_diff_max_line_length,omitempty" validate:"min=0"`
	FineDiffMaxLineLength  int     `json:"fine_diff_max_line_length,omitempty" yaml:"fine_diff_max_line_length,omitempty" validate:"min=0"`
	StructuralSimilarity   float64 `json:"structural_similarity,omitempty" yaml:"structural_similarity,omitempty" validate:"min=0,max=1"`
	CommentSimilarity      float64 `json:"comment_similarity,omitempty" yaml:"comment_similarity,omitempty" validate:"min=0,max=1"`
	LinePairSimilarity     float64 `json:"line_pair_similarity,omitempty" yaml:"line_pair_similarity,omitempty" validate:"min=0,max=1"`
	StructuralMatchWindow  int     `json:"structural_match_window,omitempty" yaml:"structural_match_window,omitempty" validate:"min=0"`
	SimilarityMatchWindow  int     `json:"similarity_match_window,omitempty" yaml:"similarity_match_window,omitempty" validate:"min=0"`
	StructuralIndentWindow int     `json:"structural_indent_window,omitempty" yaml:"structural_indent_window,omitempty" validate:"min=0"`
	KeyValueIndentWindow   int     `json:"key_value_indent_window,omitempty" yaml:"key_value_indent_window,omitempty" validate:"min=0"`
	MaxTreeDepth           int     `json:"max_tree_depth,omitempty" yaml:"max_tree_depth,omitempty" validate:"min=0"`
}

// DefaultThresholds returns the reference threshold values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CharDiffSimilarity:     DefaultCharDiffSimilarity,
		CharDiffMaxLineLength:  DefaultCharDiffMaxLineLength,
		FineDiffMaxLineLength:  DefaultFineDiffMaxLineLength,
		StructuralSimilarity:   DefaultStructuralSimilarity,
		CommentSimilarity:      DefaultCommentSimilarity,
		LinePairSimilarity:     DefaultLinePairSimilarity,
		StructuralMatchWindow:  DefaultStructuralMatchWindow,
		SimilarityMatchWindow:  DefaultSimilarityMatchWindow,
		StructuralIndentWindow: DefaultStructuralIndentWindow,
		KeyValueIndentWindow:   DefaultKeyValueIndentWindow,
		MaxTreeDepth:           DefaultMaxTreeDepth,
	}
}

// CompareConfig defines configuration for a single comparison. It is supplied
// by the caller and never mutated by the engine.
type CompareConfig struct {
	IgnoreWhitespace         bool       `json:"ignore_whitespace,omitempty" yaml:"ignore_whitespace,omitempty"`
	IgnoreTrailingWhitespace bool       `json:"ignore_trailing_whitespace,omitempty" yaml:"ignore_trailing_whitespace,omitempty"`
	IgnoreLineEndings        bool       `json:"ignore_line_endings,omitempty" yaml:"ignore_line_endings,omitempty"`
	NormalizeIndentation     bool       `json:"normalize_indentation,omitempty" yaml:"normalize_indentation,omitempty"`
	TabSize                  int        `json:"tab_size,omitempty" yaml:"tab_size,omitempty" validate:"min=1,max=16"`
	FormatType               string     `json:"format_type,omitempty" yaml:"format_type,omitempty" validate:"formattype"`
	IgnoreCase               bool       `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
	SemanticComparison       bool       `json:"semantic_comparison,omitempty" yaml:"semantic_comparison,omitempty"`
	IgnoreKeys               []string   `json:"ignore_keys,omitempty" yaml:"ignore_keys,omitempty"`
	IgnorePaths              []string   `json:"ignore_paths,omitempty" yaml:"ignore_paths,omitempty"`
	DetectArrayMoves         bool       `json:"detect_array_moves,omitempty" yaml:"detect_array_moves,omitempty"`
	ArrayKeyField            string     `json:"array_key_field,omitempty" yaml:"array_key_field,omitempty"`
	MaxInputSizeMB           int        `json:"max_input_size_mb,omitempty" yaml:"max_input_size_mb,omitempty" validate:"min=1"`
	Thresholds               Thresholds `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
}

// NewDefaultCompareConfig creates default comparison configuration
func NewDefaultCompareConfig() CompareConfig {
	return CompareConfig{
		IgnoreLineEndings: true,
		TabSize:           DefaultTabSize,
		FormatType:        FormatAuto,
		MaxInputSizeMB:    DefaultMaxInputSizeMB,
		Thresholds:        DefaultThresholds(),
	}
}

// ApplyDefaults fills unset threshold and size fields with reference values.
func (c *CompareConfig) ApplyDefaults() {
	if c.TabSize == 0 {
		c.TabSize = DefaultTabSize
	}
	if c.MaxInputSizeMB == 0 {
		c.MaxInputSizeMB = DefaultMaxInputSizeMB
	}
	d := DefaultThresholds()
	t := &c.Thresholds
	if t.CharDiffSimilarity == 0 {
		t.CharDiffSimilarity = d.CharDiffSimilarity
	}
	if t.CharDiffMaxLineLength == 0 {
		t.CharDiffMaxLineLength = d.CharDiffMaxLineLength
	}
	if t.FineDiffMaxLineLength == 0 {
		t.FineDiffMaxLineLength = d.FineDiffMaxLineLength
	}
	if t.StructuralSimilarity == 0 {
		t.StructuralSimilarity = d.StructuralSimilarity
	}
	if t.CommentSimilarity == 0 {
		t.CommentSimilarity = d.CommentSimilarity
	}
	if t.LinePairSimilarity == 0 {
		t.LinePairSimilarity = d.LinePairSimilarity
	}
	if t.StructuralMatchWindow == 0 {
		t.StructuralMatchWindow = d.StructuralMatchWindow
	}
	if t.SimilarityMatchWindow == 0 {
		t.SimilarityMatchWindow = d.SimilarityMatchWindow
	}
	if t.StructuralIndentWindow == 0 {
		t.StructuralIndentWindow = d.StructuralIndentWindow
	}
	if t.KeyValueIndentWindow == 0 {
		t.KeyValueIndentWindow = d.KeyValueIndentWindow
	}
	if t.MaxTreeDepth == 0 {
		t.MaxTreeDepth = d.MaxTreeDepth
	}
}

// Format values accepted by CompareConfig.FormatType. FormatAuto lets the
// orchestrator detect the format from the content.
const (
	FormatAuto   = "auto"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatXML    = "xml"
	FormatText   = "text"
	FormatConfig = "config"
)
