package config

// Default values for comparison configuration
const (
	// DefaultTabSize is the width used when expanding tabs during normalization.
	DefaultTabSize = 4
	// DefaultMaxInputSizeMB bounds the total input size for fine-grained diffing.
	DefaultMaxInputSizeMB = 10
)

// Threshold defaults. The values are empirical and preserved for output
// compatibility; callers may override them through the Thresholds struct.
const (
	// DefaultCharDiffSimilarity is the minimum similarity for character-level
	// inline diffing; below it, lines are diffed word by word.
	DefaultCharDiffSimilarity = 0.2
	// DefaultCharDiffMaxLineLength is the longest line eligible for
	// character-level inline diffing.
	DefaultCharDiffMaxLineLength = 500
	// DefaultFineDiffMaxLineLength is the longest line eligible for any
	// fine-grained inline diffing; longer lines degrade to whole-line segments.
	DefaultFineDiffMaxLineLength = 1000
	// DefaultStructuralSimilarity is the minimum similarity for pairing
	// leftover lines during structural alignment.
	DefaultStructuralSimilarity = 0.3
	// DefaultCommentSimilarity is the pairing threshold applied when both
	// candidate lines are comments.
	DefaultCommentSimilarity = 0.4
	// DefaultLinePairSimilarity is the minimum similarity for pairing a
	// removed/added line couple as one modified line.
	DefaultLinePairSimilarity = 0.3
	// DefaultStructuralMatchWindow is how many lines around the original
	// position the structural aligner searches for an exact content match.
	DefaultStructuralMatchWindow = 30
	// DefaultSimilarityMatchWindow is how many lines around the original
	// position the similarity pass searches for a fuzzy match.
	DefaultSimilarityMatchWindow = 5
	// DefaultStructuralIndentWindow is the indent-level tolerance for
	// windowed content matches.
	DefaultStructuralIndentWindow = 2
	// DefaultKeyValueIndentWindow is the indent-level tolerance for
	// position-independent key-value matches.
	DefaultKeyValueIndentWindow = 1
	// DefaultMaxTreeDepth bounds recursive walks over parsed JSON trees.
	DefaultMaxTreeDepth = 64
	// DefaultSimilarityCacheSize bounds the string-similarity memo.
	DefaultSimilarityCacheSize = 4096
	// DefaultEqualityCacheSize bounds the deep-equality memo.
	DefaultEqualityCacheSize = 4096
)
