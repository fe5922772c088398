package differ_test

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffscope/diffscope/internal/config"
	"github.com/diffscope/diffscope/internal/differ"
	"github.com/diffscope/diffscope/internal/models"
)

func newLineDiffer(t *testing.T, cfg config.CompareConfig) *differ.LineDiffer {
	t.Helper()
	ld, err := differ.NewLineDiffer(zerolog.Nop(), cfg)
	require.NoError(t, err)
	return ld
}

func defaultLineDiffer(t *testing.T) *differ.LineDiffer {
	t.Helper()
	return newLineDiffer(t, config.NewDefaultCompareConfig())
}

// assertRowInvariants checks the structural properties every result must hold:
// equal pane lengths and a line number exactly on lines that exist in an
// original input.
func assertRowInvariants(t *testing.T, result *models.DiffResult) {
	t.Helper()
	require.Equal(t, len(result.Left), len(result.Right), "panes must stay aligned")
	for _, pane := range [][]models.DiffLine{result.Left, result.Right} {
		for _, line := range pane {
			if line.Type == models.LineEmpty {
				assert.Nil(t, line.Number, "padding lines carry no line number")
			} else {
				assert.NotNil(t, line.Number, "real lines carry a line number")
			}
		}
	}
}

func TestCompareIdenticalDocuments(t *testing.T) {
	ld := defaultLineDiffer(t)
	doc := "alpha\nbeta\ngamma"

	result, err := ld.Compare(doc, doc)
	require.NoError(t, err)

	assertRowInvariants(t, result)
	assert.False(t, result.HasDifferences)
	assert.Zero(t, result.Additions)
	assert.Zero(t, result.Removals)
	require.Len(t, result.Left, 3)
	for i, line := range result.Left {
		assert.Equal(t, models.LineUnchanged, line.Type)
		assert.Equal(t, i+1, *line.Number)
	}
}

func TestCompareSingleEditedLineBecomesModified(t *testing.T) {
	ld := defaultLineDiffer(t)

	result, err := ld.Compare("a\nb\nc", "a\nx\nc")
	require.NoError(t, err)

	assertRowInvariants(t, result)
	require.Len(t, result.Left, 3)
	assert.Equal(t, models.LineUnchanged, result.Left[0].Type)
	assert.Equal(t, models.LineModified, result.Left[1].Type)
	assert.Equal(t, models.LineModified, result.Right[1].Type)
	assert.Equal(t, models.LineUnchanged, result.Left[2].Type)

	// One modified row counts as one addition and one removal.
	assert.Equal(t, 1, result.Additions)
	assert.Equal(t, 1, result.Removals)
	assert.True(t, result.HasDifferences)
}

func TestCompareModifiedSegmentsReconstructOriginals(t *testing.T) {
	ld := defaultLineDiffer(t)

	result, err := ld.Compare("timeout: 30\nretries: 5", "timeout: 45\nretries: 5")
	require.NoError(t, err)

	require.Equal(t, models.LineModified, result.Left[0].Type)
	assert.Equal(t, "timeout: 30", joinSegments(result.Left[0].Segments))
	assert.Equal(t, "timeout: 45", joinSegments(result.Right[0].Segments))
}

func TestCompareInsertedLine(t *testing.T) {
	ld := defaultLineDiffer(t)

	result, err := ld.Compare("a\nc", "a\nb\nc")
	require.NoError(t, err)

	assertRowInvariants(t, result)
	require.Len(t, result.Left, 3)
	assert.Equal(t, models.LineEmpty, result.Left[1].Type)
	assert.Equal(t, models.LineAdded, result.Right[1].Type)
	assert.Equal(t, "b", result.Right[1].Content)
	assert.Equal(t, 2, *result.Right[1].Number)
	assert.Equal(t, 1, result.Additions)
	assert.Zero(t, result.Removals)
}

func TestCompareRemovedLine(t *testing.T) {
	ld := defaultLineDiffer(t)

	result, err := ld.Compare("a\nb\nc", "a\nc")
	require.NoError(t, err)

	assertRowInvariants(t, result)
	require.Len(t, result.Left, 3)
	assert.Equal(t, models.LineRemoved, result.Left[1].Type)
	assert.Equal(t, models.LineEmpty, result.Right[1].Type)
	assert.Zero(t, result.Additions)
	assert.Equal(t, 1, result.Removals)
}

func TestCompareCRLFAgainstLF(t *testing.T) {
	ld := defaultLineDiffer(t)

	result, err := ld.Compare("a\r\nb\r\nc", "a\nb\nc")
	require.NoError(t, err)

	assert.False(t, result.HasDifferences)
}

func TestCompareIgnoreWhitespaceDemotesFormattingOnlyEdits(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.IgnoreWhitespace = true
	ld := newLineDiffer(t, cfg)

	result, err := ld.Compare("key:   value", "key: value")
	require.NoError(t, err)

	assert.False(t, result.HasDifferences)
	require.Len(t, result.Left, 1)
	assert.Equal(t, models.LineUnchanged, result.Left[0].Type)
	// Display content keeps each side's original text.
	assert.Equal(t, "key:   value", result.Left[0].Content)
	assert.Equal(t, "key: value", result.Right[0].Content)
}

func TestCompareOversizedInputDegradesToCoarseResult(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.MaxInputSizeMB = 1
	ld := newLineDiffer(t, cfg)

	huge := strings.Repeat("line of text\n", 100_000) // ~1.3 MB

	result, err := ld.Compare(huge, "small")
	require.NoError(t, err, "oversized input degrades instead of failing")

	assertRowInvariants(t, result)
	assert.True(t, result.HasDifferences)
	// Coarse mode: every left line removed, every right line added.
	for _, line := range result.Left {
		assert.Contains(t, []models.LineType{models.LineRemoved, models.LineEmpty}, line.Type)
	}
	for _, line := range result.Right {
		assert.Contains(t, []models.LineType{models.LineAdded, models.LineEmpty}, line.Type)
	}
}

func TestCompareAmbiguousEditPairsAsModified(t *testing.T) {
	ld := defaultLineDiffer(t)

	// When the alignment is ambiguous, the edited pair renders as one modified
	// row even if the contents share nothing.
	result, err := ld.Compare("shared\ncompletely unrelated text", "shared\n99999")
	require.NoError(t, err)

	assertRowInvariants(t, result)
	require.Len(t, result.Left, 2)
	assert.Equal(t, models.LineModified, result.Left[1].Type)
	assert.Equal(t, "completely unrelated text", joinSegments(result.Left[1].Segments))
	assert.Equal(t, "99999", joinSegments(result.Right[1].Segments))
}

func TestCompareCountSymmetry(t *testing.T) {
	ld := defaultLineDiffer(t)

	pairs := [][2]string{
		{"a\nb\nc", "a\nx\nc"},
		{"a\nc", "a\nb\nc"},
		{"one\ntwo\nthree", "four\nfive"},
		{"same\nsame", "same\nsame"},
	}

	for _, pair := range pairs {
		forward, err := ld.Compare(pair[0], pair[1])
		require.NoError(t, err)
		reverse, err := ld.Compare(pair[1], pair[0])
		require.NoError(t, err)

		assert.Equal(t, forward.Additions, reverse.Removals, "%q vs %q", pair[0], pair[1])
		assert.Equal(t, forward.Removals, reverse.Additions, "%q vs %q", pair[0], pair[1])
	}
}

func joinSegments(segments []models.DiffSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}
