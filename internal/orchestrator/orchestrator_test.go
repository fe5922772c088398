package orchestrator_test

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffscope/diffscope/internal/config"
	"github.com/diffscope/diffscope/internal/models"
	"github.com/diffscope/diffscope/internal/orchestrator"
)

func newDiffer(t *testing.T, cfg config.CompareConfig) *orchestrator.EnhancedDiffer {
	t.Helper()
	ed, err := orchestrator.NewEnhancedDiffer(zerolog.Nop(), cfg)
	require.NoError(t, err)
	return ed
}

func defaultDiffer(t *testing.T) *orchestrator.EnhancedDiffer {
	t.Helper()
	return newDiffer(t, config.NewDefaultCompareConfig())
}

func countLineTypes(lines []models.DiffLine) map[models.LineType]int {
	counts := make(map[models.LineType]int)
	for _, line := range lines {
		counts[line.Type]++
	}
	return counts
}

func TestCompareJSONValueChange(t *testing.T) {
	ed := defaultDiffer(t)

	result, err := ed.Compare(`{"a": 1, "b": 2}`, `{"a": 1, "b": 3}`)
	require.NoError(t, err)

	assert.Equal(t, models.FormatJSON, result.Format)
	assert.True(t, result.HasDifferences)
	assert.Equal(t, 1, result.Additions)
	assert.Equal(t, 1, result.Removals)

	counts := countLineTypes(result.Left)
	assert.Equal(t, 1, counts[models.LineModified], "exactly one line pair is modified")
	assert.Zero(t, counts[models.LineRemoved])

	assert.Equal(t, 1, result.Stats.ChangedPaths)
	assert.Equal(t, 2, result.Stats.TotalPaths)
}

func TestCompareJSONSemanticallyEqualDocuments(t *testing.T) {
	ed := defaultDiffer(t)

	// Key order and insignificant whitespace never count as differences.
	result, err := ed.Compare(`{"b": 2, "a": 1}`, `{ "a": 1,   "b": 2 }`)
	require.NoError(t, err)

	assert.Equal(t, models.FormatJSON, result.Format)
	assert.False(t, result.HasDifferences)
	assert.Zero(t, result.Additions)
	assert.Zero(t, result.Removals)
}

func TestCompareJSONIgnoredPathSuppressesDifferences(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.IgnorePaths = []string{"$.meta.ts"}
	ed := newDiffer(t, cfg)

	result, err := ed.Compare(
		`{"a": 1, "meta": {"ts": "2024-01-01"}}`,
		`{"a": 1, "meta": {"ts": "2025-06-15"}}`,
	)
	require.NoError(t, err)

	assert.Equal(t, models.FormatJSON, result.Format)
	assert.False(t, result.HasDifferences)
}

func TestCompareJSONMovedProperty(t *testing.T) {
	ed := defaultDiffer(t)

	result, err := ed.Compare(`{"old": {"x": 1}}`, `{"new": {"x": 1}}`)
	require.NoError(t, err)

	require.Len(t, result.StructuralChanges, 1)
	assert.Equal(t, models.ChangeMoved, result.StructuralChanges[0].Type)
	assert.Equal(t, "$.new", result.MovedProperties["$.old"])
}

func TestCompareJSONReorderedKeyedArray(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.DetectArrayMoves = true
	cfg.ArrayKeyField = "id"
	ed := newDiffer(t, cfg)

	result, err := ed.Compare(
		`{"items": [{"id": 1}, {"id": 2}]}`,
		`{"items": [{"id": 2}, {"id": 1}]}`,
	)
	require.NoError(t, err)

	// Order is insignificant for keyed arrays, but the reorder is reported.
	assert.False(t, result.HasDifferences)
	require.Len(t, result.StructuralChanges, 2)
	for _, change := range result.StructuralChanges {
		assert.Equal(t, models.ChangeReordered, change.Type)
	}
}

func TestCompareMalformedJSONFallsBackToText(t *testing.T) {
	ed := defaultDiffer(t)

	result, err := ed.Compare("{broken json\nsecond line", "{broken json\nchanged line")
	require.NoError(t, err, "malformed JSON degrades silently")

	assert.Equal(t, models.FormatText, result.Format)
	assert.True(t, result.HasDifferences)
}

func TestCompareDetectsConfigFormat(t *testing.T) {
	ed := defaultDiffer(t)

	left := "host = example.com\nport = 8080\ntimeout = 30"
	right := "host = example.com\nport = 9090\ntimeout = 30"

	result, err := ed.Compare(left, right)
	require.NoError(t, err)

	assert.Equal(t, models.FormatConfig, result.Format)
	counts := countLineTypes(result.Left)
	assert.Equal(t, 1, counts[models.LineModified])
	assert.Equal(t, 2, counts[models.LineUnchanged])
}

func TestComparePlainTextUsesLineDiffer(t *testing.T) {
	ed := defaultDiffer(t)

	result, err := ed.Compare("the quick brown fox\nsecond line", "the quick brown fox\nsecond line")
	require.NoError(t, err)

	assert.Equal(t, models.FormatText, result.Format)
	assert.False(t, result.HasDifferences)
}

func TestCompareFormatHintOverridesDetection(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.FormatType = config.FormatText
	ed := newDiffer(t, cfg)

	// Valid JSON, but the hint forces plain text comparison.
	result, err := ed.Compare(`{"a": 1}`, `{"a": 1}`)
	require.NoError(t, err)

	assert.Equal(t, models.FormatText, result.Format)
	assert.False(t, result.HasDifferences)
}

func TestCompareArrayMovesWithoutKeyFieldDegrades(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.DetectArrayMoves = true
	ed := newDiffer(t, cfg)

	// Positional comparison applies, so the reorder is a difference.
	result, err := ed.Compare(`{"items": [1, 2]}`, `{"items": [2, 1]}`)
	require.NoError(t, err)

	assert.True(t, result.HasDifferences)
}

func TestCompareOversizedJSONDegradesToCoarse(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.MaxInputSizeMB = 1
	ed := newDiffer(t, cfg)

	huge := `{"data": "` + strings.Repeat("x", 2*1024*1024) + `"}`

	result, err := ed.Compare(huge, `{"data": "y"}`)
	require.NoError(t, err, "oversized input degrades instead of failing")
	assert.True(t, result.HasDifferences)
}

func TestCompareRowsStayAligned(t *testing.T) {
	ed := defaultDiffer(t)

	inputs := [][2]string{
		{`{"a": 1}`, `{"a": 1, "b": [1, 2, 3]}`},
		{"plain\ntext", "plain\nother\ntext"},
		{"k = v", "k = v\nextra = 1"},
	}
	for _, pair := range inputs {
		result, err := ed.Compare(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, len(result.Left), len(result.Right))
	}
}
