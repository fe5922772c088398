// Package search locates query matches inside a rendered diff result.
package search

import (
	"regexp"
	"strings"

	"github.com/diffscope/diffscope/internal/common/errorwrapper"
	"github.com/diffscope/diffscope/internal/models"
)

// Side identifies which pane of a diff result a match was found in.
type Side string

const (
	// SideLeft marks a match in the left pane.
	SideLeft Side = "left"
	// SideRight marks a match in the right pane.
	SideRight Side = "right"
)

// Match is one query hit inside a diff result. Line is the 0-based row index
// into the result panes; Column is the 1-based rune column within the line.
type Match struct {
	Side   Side   `json:"side"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// Find scans both panes of a diff result for the query. With useRegex the
// query is compiled as a regular expression, otherwise it matches literally.
// Padding rows never match.
func Find(result *models.DiffResult, query string, useRegex bool) ([]Match, error) {
	if result == nil || query == "" {
		return nil, nil
	}

	var pattern *regexp.Regexp
	if useRegex {
		var err error
		pattern, err = regexp.Compile(query)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "compiling search pattern")
		}
	}

	var matches []Match
	matches = appendPaneMatches(matches, result.Left, SideLeft, query, pattern)
	matches = appendPaneMatches(matches, result.Right, SideRight, query, pattern)
	return matches, nil
}

// appendPaneMatches scans one pane's lines for the query.
func appendPaneMatches(matches []Match, lines []models.DiffLine, side Side, query string, pattern *regexp.Regexp) []Match {
	for row, line := range lines {
		if line.Type == models.LineEmpty {
			continue
		}
		for _, span := range findSpans(line.Content, query, pattern) {
			matches = append(matches, Match{
				Side:   side,
				Line:   row,
				Column: runeColumn(line.Content, span[0]),
				Text:   line.Content[span[0]:span[1]],
			})
		}
	}
	return matches
}

// findSpans returns the byte-offset spans of every match in one line.
func findSpans(content, query string, pattern *regexp.Regexp) [][]int {
	if pattern != nil {
		return pattern.FindAllStringIndex(content, -1)
	}
	var spans [][]int
	offset := 0
	for {
		i := strings.Index(content[offset:], query)
		if i < 0 {
			return spans
		}
		start := offset + i
		spans = append(spans, []int{start, start + len(query)})
		offset = start + len(query)
	}
}

// runeColumn converts a byte offset into a 1-based rune column.
func runeColumn(content string, byteOffset int) int {
	return len([]rune(content[:byteOffset])) + 1
}
