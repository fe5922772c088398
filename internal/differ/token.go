package differ

import (
	"strings"

	"github.com/diffscope/diffscope/internal/normalizer"
)

// LineToken is the per-line working unit of a comparison. Tokens are created
// per call, never mutated, and discarded when the comparison returns.
type LineToken struct {
	Original    string
	Normalized  string
	Indent      int
	Key         string
	Value       string
	HasKeyValue bool
	IsComment   bool
	IsEmpty     bool
}

// SplitLines splits a document into lines, collapsing CRLF and lone CR line
// endings first.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// BuildTokens creates one LineToken per input line using the given
// normalizer.
func BuildTokens(text string, norm *normalizer.Normalizer) []LineToken {
	lines := SplitLines(text)
	tokens := make([]LineToken, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		tok := LineToken{
			Original:   line,
			Normalized: norm.Normalize(line),
			Indent:     norm.IndentLevel(line),
			IsEmpty:    trimmed == "",
			IsComment:  isCommentLine(trimmed),
		}
		if !tok.IsComment && !tok.IsEmpty {
			if key, value, ok := splitKeyValue(trimmed); ok {
				tok.Key = key
				tok.Value = value
				tok.HasKeyValue = true
			}
		}
		tokens[i] = tok
	}
	return tokens
}

// isCommentLine reports whether a trimmed line is a comment in common
// configuration syntaxes.
func isCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, ";")
}

// splitKeyValue extracts a key and value from a "key: value" or "key = value"
// line. The earlier separator wins when both appear.
func splitKeyValue(trimmed string) (key, value string, ok bool) {
	idx := -1
	for _, sep := range []byte{':', '='} {
		if i := strings.IndexByte(trimmed, sep); i >= 0 && (idx < 0 || i < idx) {
			idx = i
		}
	}
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(trimmed[:idx])
	value = strings.TrimSpace(trimmed[idx+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// sharedStructure reports whether two lines share key-value or bracket
// characters, a cheap signal that they are the same logical line edited.
func sharedStructure(a, b string) bool {
	for _, marker := range []string{":", "=", "{", "}", "[", "]"} {
		if strings.Contains(a, marker) && strings.Contains(b, marker) {
			return true
		}
	}
	return false
}
