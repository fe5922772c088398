package semantic

import (
	"github.com/diffscope/diffscope/internal/models"
)

// CollectLeafPaths flattens a parsed document into a map from leaf path to
// leaf value, respecting the configured ignore rules.
func (e *Engine) CollectLeafPaths(v any) map[string]any {
	paths := make(map[string]any)
	e.collectLeafPaths(v, "$", 0, paths)
	return paths
}

// collectLeafPaths recurses into containers, recording scalar leaves.
func (e *Engine) collectLeafPaths(v any, path string, depth int, paths map[string]any) {
	if depth > e.cfg.Thresholds.MaxTreeDepth {
		e.logger.Warn().Str("path", path).Msg("max tree depth exceeded during path collection")
		return
	}
	if e.pathIgnored(path) {
		return
	}

	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if e.keyIgnored(k) {
				continue
			}
			e.collectLeafPaths(child, childPath(path, k), depth+1, paths)
		}
	case []any:
		for i, child := range node {
			e.collectLeafPaths(child, indexPath(path, i), depth+1, paths)
		}
	default:
		paths[path] = v
	}
}

// ComputeStats enumerates the leaf paths of both documents and reports the
// counts of common-but-changed, left-only, and right-only paths, plus the
// percentage of distinct paths touched.
func (e *Engine) ComputeStats(left, right any) models.DiffStats {
	leftPaths := e.CollectLeafPaths(left)
	rightPaths := e.CollectLeafPaths(right)

	stats := models.DiffStats{}
	total := 0

	for path, lv := range leftPaths {
		total++
		rv, ok := rightPaths[path]
		if !ok {
			stats.RemovedPaths++
			continue
		}
		if !e.deepEqual(lv, rv, path, 0) {
			stats.ChangedPaths++
		}
	}
	for path := range rightPaths {
		if _, ok := leftPaths[path]; !ok {
			total++
			stats.AddedPaths++
		}
	}

	stats.TotalPaths = total
	if total > 0 {
		stats.PercentChanged = float64(stats.ChangedPaths+stats.AddedPaths+stats.RemovedPaths) / float64(total) * 100
	}
	return stats
}
