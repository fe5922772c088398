package semantic

import (
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/diffscope/diffscope/internal/config"
	"github.com/diffscope/diffscope/internal/models"
)

// Detector finds tree-level structural changes between two parsed JSON
// documents: reordered array items, values moved between keys, and leaf type
// changes. Ambiguous many-to-many value matches are deliberately not
// reported; precision wins over recall.
type Detector struct {
	cfg    config.CompareConfig
	engine *Engine
	logger zerolog.Logger
}

// NewDetector creates a structural change detector sharing the given
// equality engine.
func NewDetector(logger zerolog.Logger, cfg config.CompareConfig, engine *Engine) *Detector {
	cfg.ApplyDefaults()
	if engine == nil {
		engine = NewEngine(logger, cfg)
	}
	return &Detector{
		cfg:    cfg,
		engine: engine,
		logger: logger.With().Str("component", "structural_detector").Logger(),
	}
}

// Detect walks both trees and returns the structural changes plus a map from
// each moved value's source path to its destination path.
func (d *Detector) Detect(left, right any) ([]models.StructuralChange, map[string]string) {
	var changes []models.StructuralChange
	moved := make(map[string]string)
	d.detect(left, right, "$", 0, &changes, moved)
	return changes, moved
}

// detect recurses over one aligned subtree pair.
func (d *Detector) detect(left, right any, path string, depth int, changes *[]models.StructuralChange, moved map[string]string) {
	if depth > d.cfg.Thresholds.MaxTreeDepth {
		d.logger.Warn().Str("path", path).Msg("max tree depth exceeded during change detection")
		return
	}

	lm, lIsMap := left.(map[string]any)
	rm, rIsMap := right.(map[string]any)
	if lIsMap && rIsMap {
		d.detectInObjects(lm, rm, path, depth, changes, moved)
		return
	}

	ls, lIsSlice := left.([]any)
	rs, rIsSlice := right.([]any)
	if lIsSlice && rIsSlice {
		d.detectInArrays(ls, rs, path, depth, changes, moved)
		return
	}

	if typeName(left) != typeName(right) {
		*changes = append(*changes, models.StructuralChange{
			Type:     models.ChangeTypeChanged,
			Path:     path,
			OldValue: left,
			NewValue: right,
		})
	}
}

// detectInObjects reports moves between left-only and right-only keys, then
// recurses into the keys common to both sides.
func (d *Detector) detectInObjects(left, right map[string]any, path string, depth int, changes *[]models.StructuralChange, moved map[string]string) {
	var leftOnly, rightOnly, common []string
	for k := range left {
		if d.engine.keyIgnored(k) {
			continue
		}
		if _, ok := right[k]; ok {
			common = append(common, k)
		} else {
			leftOnly = append(leftOnly, k)
		}
	}
	for k := range right {
		if d.engine.keyIgnored(k) {
			continue
		}
		if _, ok := left[k]; !ok {
			rightOnly = append(rightOnly, k)
		}
	}
	sort.Strings(leftOnly)
	sort.Strings(rightOnly)
	sort.Strings(common)

	claimed := make(map[string]bool, len(rightOnly))
	for _, lk := range leftOnly {
		match := ""
		matchCount := 0
		for _, rk := range rightOnly {
			if claimed[rk] {
				continue
			}
			if d.engine.DeepEqual(left[lk], right[rk]) {
				match = rk
				matchCount++
			}
		}
		if matchCount != 1 {
			continue
		}
		claimed[match] = true
		*changes = append(*changes, models.StructuralChange{
			Type:     models.ChangeMoved,
			Path:     path,
			From:     lk,
			To:       match,
			OldValue: left[lk],
		})
		moved[childPath(path, lk)] = childPath(path, match)
	}

	for _, k := range common {
		d.detect(left[k], right[k], childPath(path, k), depth+1, changes, moved)
	}
}

// detectInArrays reports reordered keyed items when array move detection is
// configured, then recurses into aligned items.
func (d *Detector) detectInArrays(left, right []any, path string, depth int, changes *[]models.StructuralChange, moved map[string]string) {
	if d.cfg.DetectArrayMoves && d.cfg.ArrayKeyField != "" {
		leftIndex := keyIndexMap(left, d.cfg.ArrayKeyField)
		rightIndex := keyIndexMap(right, d.cfg.ArrayKeyField)

		keys := make([]string, 0, len(leftIndex))
		for key := range leftIndex {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			li := leftIndex[key]
			ri, ok := rightIndex[key]
			if !ok {
				continue
			}
			if li != ri {
				*changes = append(*changes, models.StructuralChange{
					Type: models.ChangeReordered,
					Path: keyedPath(path, d.cfg.ArrayKeyField, key),
					From: strconv.Itoa(li),
					To:   strconv.Itoa(ri),
				})
			}
			d.detect(left[li], right[ri], keyedPath(path, d.cfg.ArrayKeyField, key), depth+1, changes, moved)
		}
		return
	}

	limit := len(left)
	if len(right) < limit {
		limit = len(right)
	}
	for i := 0; i < limit; i++ {
		d.detect(left[i], right[i], indexPath(path, i), depth+1, changes, moved)
	}
}

// keyIndexMap maps each keyed item's key to its index in the array. Items
// lacking the key field are skipped.
func keyIndexMap(items []any, field string) map[string]int {
	index := make(map[string]int, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		keyVal, ok := obj[field]
		if !ok {
			continue
		}
		index[stringifyKey(keyVal)] = i
	}
	return index
}

// typeName reports the JSON type of a parsed value.
func typeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64, int, int32, int64, float32:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
