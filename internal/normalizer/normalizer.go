// Package normalizer turns raw input lines into comparison keys according to
// the comparison configuration. Normalized output is used only for matching;
// the original content is always what gets displayed.
package normalizer

import (
	"strings"
	"unicode"

	"github.com/diffscope/diffscope/internal/config"
)

// Normalizer applies the configured normalization pipeline to single lines.
type Normalizer struct {
	cfg config.CompareConfig
}

// New creates a normalizer for the given comparison configuration.
func New(cfg config.CompareConfig) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Normalize produces the comparison key for one line. Steps, in order:
// line-ending collapse, control/zero-width/BOM stripping, Unicode space
// mapping, tab expansion, optional indentation collapse, trailing-whitespace
// trim, optional internal whitespace collapse, optional case folding, and
// YAML-specific cleanup.
func (n *Normalizer) Normalize(line string) string {
	s := stripLineBreaks(line)
	s = stripInvisible(s)
	s = mapUnicodeSpaces(s)
	s = expandTabs(s, n.cfg.TabSize)

	if n.cfg.NormalizeIndentation || n.cfg.FormatType == config.FormatYAML {
		s = collapseIndentation(s)
	}

	if n.cfg.IgnoreTrailingWhitespace || n.cfg.IgnoreWhitespace {
		s = strings.TrimRight(s, " ")
	}

	if n.cfg.IgnoreWhitespace {
		s = collapseInternalWhitespace(s)
	}

	if n.cfg.IgnoreCase {
		s = strings.ToLower(s)
	}

	if n.cfg.FormatType == config.FormatYAML {
		s = normalizeYAMLScalar(s)
	}

	return s
}

// IndentLevel reports the 0-based indent level of a line after tab expansion,
// using two spaces per level.
func (n *Normalizer) IndentLevel(line string) int {
	s := expandTabs(stripLineBreaks(line), n.cfg.TabSize)
	leading := 0
	for _, r := range s {
		if r != ' ' {
			break
		}
		leading++
	}
	return leading / 2
}

// stripLineBreaks removes carriage returns and embedded newlines so a line
// token never spans line boundaries.
func stripLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r != '\r' && r != '\n' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripInvisible drops control characters, zero-width characters, and the BOM.
func stripInvisible(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\ufeff', '\u200b', '\u200c', '\u200d', '\u2060':
			continue
		}
		if r != '\t' && unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// mapUnicodeSpaces maps Unicode space variants to the ASCII space.
func mapUnicodeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r != ' ' && r != '\t' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

// expandTabs replaces each tab with a fixed number of spaces.
func expandTabs(s string, tabSize int) string {
	if tabSize <= 0 {
		tabSize = config.DefaultTabSize
	}
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabSize))
}

// collapseIndentation rewrites indentation written in 3-, 4-, or 5-space
// steps into 2-space steps so differently indented documents align.
func collapseIndentation(s string) string {
	leading := 0
	for leading < len(s) && s[leading] == ' ' {
		leading++
	}
	if leading == 0 {
		return s
	}
	level := -1
	for _, step := range []int{4, 3, 5} {
		if leading%step == 0 {
			level = leading / step
			break
		}
	}
	if level < 0 {
		level = leading / 2
	}
	return strings.Repeat(" ", level*2) + s[leading:]
}

// collapseInternalWhitespace reduces every whitespace run to a single space
// and trims both ends.
func collapseInternalWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeYAMLScalar strips redundant quoting around scalar values and
// normalizes spacing after the key separator.
func normalizeYAMLScalar(s string) string {
	idx := strings.Index(s, ":")
	if idx < 0 {
		return s
	}
	key := strings.TrimRight(s[:idx], " ")
	value := strings.TrimSpace(s[idx+1:])
	value = stripScalarQuotes(value)
	if value == "" {
		return key + ":"
	}
	return key + ": " + value
}

// stripScalarQuotes removes matching single or double quotes around a scalar.
func stripScalarQuotes(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
