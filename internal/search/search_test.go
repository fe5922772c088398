package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffscope/diffscope/internal/models"
	"github.com/diffscope/diffscope/internal/search"
)

func lineNumber(n int) *int { return &n }

func sampleResult() *models.DiffResult {
	return &models.DiffResult{
		Left: []models.DiffLine{
			{Content: "host = example.com", Type: models.LineUnchanged, Number: lineNumber(1)},
			{Content: "port = 8080", Type: models.LineRemoved, Number: lineNumber(2)},
			{Type: models.LineEmpty},
		},
		Right: []models.DiffLine{
			{Content: "host = example.com", Type: models.LineUnchanged, Number: lineNumber(1)},
			{Type: models.LineEmpty},
			{Content: "port = 9090", Type: models.LineAdded, Number: lineNumber(2)},
		},
	}
}

func TestFindLiteralMatchesBothPanes(t *testing.T) {
	matches, err := search.Find(sampleResult(), "port", false)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, search.SideLeft, matches[0].Side)
	assert.Equal(t, 1, matches[0].Line)
	assert.Equal(t, 1, matches[0].Column)
	assert.Equal(t, search.SideRight, matches[1].Side)
	assert.Equal(t, 2, matches[1].Line)
}

func TestFindMultipleMatchesInOneLine(t *testing.T) {
	result := &models.DiffResult{
		Left:  []models.DiffLine{{Content: "aba aba", Type: models.LineUnchanged, Number: lineNumber(1)}},
		Right: []models.DiffLine{{Type: models.LineEmpty}},
	}

	matches, err := search.Find(result, "aba", false)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].Column)
	assert.Equal(t, 5, matches[1].Column)
}

func TestFindRegex(t *testing.T) {
	matches, err := search.Find(sampleResult(), `\d{4}`, true)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "8080", matches[0].Text)
	assert.Equal(t, "9090", matches[1].Text)
}

func TestFindInvalidRegexFails(t *testing.T) {
	_, err := search.Find(sampleResult(), "[unclosed", true)
	assert.Error(t, err)
}

func TestFindSkipsPaddingRows(t *testing.T) {
	matches, err := search.Find(sampleResult(), "", false)
	require.NoError(t, err)
	assert.Empty(t, matches, "empty query matches nothing")

	matches, err = search.Find(sampleResult(), "example", false)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestFindReportsRuneColumns(t *testing.T) {
	result := &models.DiffResult{
		Left:  []models.DiffLine{{Content: "héllo wörld match", Type: models.LineUnchanged, Number: lineNumber(1)}},
		Right: []models.DiffLine{{Type: models.LineEmpty}},
	}

	matches, err := search.Find(result, "match", false)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, 13, matches[0].Column, "column counts runes, not bytes")
}

func TestFindNilResult(t *testing.T) {
	matches, err := search.Find(nil, "x", false)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
