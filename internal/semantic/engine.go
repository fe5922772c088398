// Package semantic implements configurable deep equality, field
// classification, structural change detection, and leaf-path statistics over
// parsed JSON trees.
package semantic

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diffscope/diffscope/internal/config"
)

// Engine performs configurable deep equality over parsed JSON trees. Each
// engine owns a bounded equality memo; creating a fresh engine per comparison
// session keeps memoized results from bleeding across sessions.
type Engine struct {
	cfg    config.CompareConfig
	memo   *EqualityCache
	logger zerolog.Logger
}

// NewEngine creates a semantic equality engine for the given configuration.
func NewEngine(logger zerolog.Logger, cfg config.CompareConfig) *Engine {
	cfg.ApplyDefaults()
	return &Engine{
		cfg:    cfg,
		memo:   NewEqualityCache(config.DefaultEqualityCacheSize),
		logger: logger.With().Str("component", "semantic_engine").Logger(),
	}
}

// DeepEqual reports whether two parsed JSON values are equal under the
// configured ignore rules and coercions.
func (e *Engine) DeepEqual(a, b any) bool {
	return e.deepEqual(a, b, "$", 0)
}

// deepEqual is the recursive comparison. The path uses "$.key" notation with
// "[i]" for array indexes.
func (e *Engine) deepEqual(a, b any, path string, depth int) bool {
	if depth > e.cfg.Thresholds.MaxTreeDepth {
		e.logger.Warn().Str("path", path).Msg("max tree depth exceeded during deep equality")
		return false
	}
	if e.pathIgnored(path) {
		return true
	}

	a = e.normalizeValue(a)
	b = e.normalizeValue(b)

	am, aIsMap := a.(map[string]any)
	bm, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return e.objectsEqual(am, bm, path, depth)
	}

	as, aIsSlice := a.([]any)
	bs, bIsSlice := b.([]any)
	if aIsSlice && bIsSlice {
		return e.arraysEqual(as, bs, path, depth)
	}

	if aIsMap != bIsMap || aIsSlice != bIsSlice {
		return false
	}

	return e.primitivesEqual(a, b, path)
}

// primitivesEqual compares two scalar values with memoization.
func (e *Engine) primitivesEqual(a, b any, path string) bool {
	if v, ok := e.memo.Get(path, a, b); ok {
		return v
	}
	equal := a == b
	e.memo.Put(path, a, b, equal)
	return equal
}

// objectsEqual compares two objects by key set, after removing ignored keys,
// then recursively per common key.
func (e *Engine) objectsEqual(a, b map[string]any, path string, depth int) bool {
	ak := e.relevantKeys(a)
	bk := e.relevantKeys(b)
	if len(ak) != len(bk) {
		return false
	}
	for k := range ak {
		if _, ok := bk[k]; !ok {
			return false
		}
	}
	for k := range ak {
		if !e.deepEqual(a[k], b[k], childPath(path, k), depth+1) {
			return false
		}
	}
	return true
}

// arraysEqual compares arrays positionally, or as key-to-item maps when array
// move detection is configured with a key field.
func (e *Engine) arraysEqual(a, b []any, path string, depth int) bool {
	if e.cfg.DetectArrayMoves && e.cfg.ArrayKeyField != "" {
		return e.keyedArraysEqual(a, b, path, depth)
	}
	return e.positionalArraysEqual(a, b, path, depth)
}

// positionalArraysEqual requires equal length and element-wise equality.
func (e *Engine) positionalArraysEqual(a, b []any, path string, depth int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !e.deepEqual(a[i], b[i], indexPath(path, i), depth+1) {
			return false
		}
	}
	return true
}

// keyedArraysEqual compares arrays as key-to-item maps, ignoring order. Items
// lacking the key field fall back to positional comparison among themselves.
func (e *Engine) keyedArraysEqual(a, b []any, path string, depth int) bool {
	if len(a) != len(b) {
		return false
	}

	aKeyed, aRest := splitByKey(a, e.cfg.ArrayKeyField)
	bKeyed, bRest := splitByKey(b, e.cfg.ArrayKeyField)

	if len(aKeyed) != len(bKeyed) || len(aRest) != len(bRest) {
		return false
	}
	for key, av := range aKeyed {
		bv, ok := bKeyed[key]
		if !ok {
			return false
		}
		if !e.deepEqual(av, bv, keyedPath(path, e.cfg.ArrayKeyField, key), depth+1) {
			return false
		}
	}
	for i := range aRest {
		if !e.deepEqual(aRest[i], bRest[i], indexPath(path, i), depth+1) {
			return false
		}
	}
	return true
}

// relevantKeys returns the key set of an object minus the ignored keys.
func (e *Engine) relevantKeys(obj map[string]any) map[string]struct{} {
	keys := make(map[string]struct{}, len(obj))
	for k := range obj {
		if e.keyIgnored(k) {
			continue
		}
		keys[k] = struct{}{}
	}
	return keys
}

// keyIgnored reports whether a key name is in the configured ignore list.
func (e *Engine) keyIgnored(key string) bool {
	for _, ignored := range e.cfg.IgnoreKeys {
		if key == ignored {
			return true
		}
	}
	return false
}

// pathIgnored reports whether a path matches any configured ignore pattern.
func (e *Engine) pathIgnored(path string) bool {
	for _, pattern := range e.cfg.IgnorePaths {
		if PathMatches(pattern, path) {
			return true
		}
	}
	return false
}

// normalizeValue canonicalizes a value before comparison. Numeric types fold
// to float64; with semantic comparison on, numeric-looking strings and
// "true"/"false"/"null" literals coerce to their typed equivalents; case and
// whitespace folding follow the configuration.
func (e *Engine) normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case string:
		return e.normalizeString(n)
	}
	return v
}

// normalizeString applies the configured string coercions and foldings.
func (e *Engine) normalizeString(s string) any {
	if e.cfg.SemanticComparison {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" {
			if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return f
			}
		}
		switch strings.ToLower(trimmed) {
		case "true":
			return true
		case "false":
			return false
		case "null":
			return nil
		}
	}
	if e.cfg.IgnoreCase {
		s = strings.ToLower(s)
	}
	if e.cfg.IgnoreWhitespace {
		s = strings.Join(strings.Fields(s), " ")
	}
	return s
}

// childPath appends an object key to a path.
func childPath(path, key string) string {
	return path + "." + key
}

// indexPath appends an array index to a path.
func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// keyedPath appends a keyed array element to a path.
func keyedPath(path, field string, key string) string {
	return path + "[" + field + "=" + key + "]"
}

// splitByKey partitions array items into a key-to-item map and a leftover
// list of items lacking the key field.
func splitByKey(items []any, field string) (map[string]any, []any) {
	keyed := make(map[string]any)
	var rest []any
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			rest = append(rest, item)
			continue
		}
		keyVal, ok := obj[field]
		if !ok {
			rest = append(rest, item)
			continue
		}
		keyed[stringifyKey(keyVal)] = item
	}
	return keyed, rest
}

// stringifyKey renders an array key value as a map key.
func stringifyKey(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(k)
	case int:
		return strconv.Itoa(k)
	case nil:
		return "null"
	default:
		return ""
	}
}

// PathMatches reports whether a dotted wildcard pattern matches a concrete
// path. A "*" segment matches exactly one path segment; "[*]" matches any
// array index.
func PathMatches(pattern, path string) bool {
	if pattern == path {
		return true
	}
	ps := splitPath(pattern)
	ts := splitPath(path)
	if len(ps) != len(ts) {
		return false
	}
	for i := range ps {
		if ps[i] == "*" {
			continue
		}
		if ps[i] != ts[i] {
			return false
		}
	}
	return true
}

// splitPath breaks "$.a.b[0]" into segments ["$", "a", "b", "0"]. A "[*]"
// index becomes the "*" segment.
func splitPath(path string) []string {
	var segments []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			segments = append(segments, b.String())
			b.Reset()
		}
	}
	for _, r := range path {
		switch r {
		case '.', '[':
			flush()
		case ']':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return segments
}
