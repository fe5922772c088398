package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffscope/diffscope/internal/config"
	"github.com/diffscope/diffscope/internal/normalizer"
)

func TestNormalizeStripsInvisibleCharacters(t *testing.T) {
	n := normalizer.New(config.NewDefaultCompareConfig())

	assert.Equal(t, "hello", n.Normalize("\ufeffhello"))
	assert.Equal(t, "hello", n.Normalize("he\u200bllo"))
	assert.Equal(t, "hello", n.Normalize("hel\u200d\u2060lo"))
	assert.Equal(t, "hello", n.Normalize("hel\x07lo"))
}

func TestNormalizeMapsUnicodeSpaces(t *testing.T) {
	n := normalizer.New(config.NewDefaultCompareConfig())

	assert.Equal(t, "a b", n.Normalize("a\u00a0b"))
	assert.Equal(t, "a b", n.Normalize("a\u2002b"))
}

func TestNormalizeExpandsTabs(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.TabSize = 4
	n := normalizer.New(cfg)

	assert.Equal(t, "    x", n.Normalize("\tx"))

	cfg.TabSize = 2
	n = normalizer.New(cfg)
	assert.Equal(t, "  x", n.Normalize("\tx"))
}

func TestNormalizeRemovesEmbeddedLineBreaks(t *testing.T) {
	n := normalizer.New(config.NewDefaultCompareConfig())

	assert.Equal(t, "ab", n.Normalize("a\rb"))
	assert.Equal(t, "ab", n.Normalize("a\nb"))
}

func TestNormalizeTrailingWhitespace(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.IgnoreTrailingWhitespace = true
	n := normalizer.New(cfg)

	assert.Equal(t, "value", n.Normalize("value   "))

	// Without the option the trailing spaces survive.
	n = normalizer.New(config.NewDefaultCompareConfig())
	assert.Equal(t, "value   ", n.Normalize("value   "))
}

func TestNormalizeIgnoreWhitespaceCollapsesRuns(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.IgnoreWhitespace = true
	n := normalizer.New(cfg)

	assert.Equal(t, "a b c", n.Normalize("  a   b\t\tc  "))
}

func TestNormalizeIgnoreCase(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.IgnoreCase = true
	n := normalizer.New(cfg)

	assert.Equal(t, "key: value", n.Normalize("Key: VALUE"))
}

func TestNormalizeCollapsesIndentationSteps(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.NormalizeIndentation = true
	n := normalizer.New(cfg)

	// 4-space steps collapse to 2-space steps.
	assert.Equal(t, "  a", n.Normalize("    a"))
	assert.Equal(t, "    a", n.Normalize("        a"))
	// 3-space steps collapse too.
	assert.Equal(t, "  a", n.Normalize("   a"))
}

func TestNormalizeYAMLScalars(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.FormatType = config.FormatYAML
	n := normalizer.New(cfg)

	assert.Equal(t, "name: value", n.Normalize(`name: "value"`))
	assert.Equal(t, "name: value", n.Normalize(`name: 'value'`))
	assert.Equal(t, "name: value", n.Normalize("name:    value"))
	assert.Equal(t, "name:", n.Normalize("name:"))
}

func TestIndentLevel(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.TabSize = 2
	n := normalizer.New(cfg)

	assert.Equal(t, 0, n.IndentLevel("a"))
	assert.Equal(t, 1, n.IndentLevel("  a"))
	assert.Equal(t, 2, n.IndentLevel("    a"))
	assert.Equal(t, 1, n.IndentLevel("\ta"))
}
