package differ

import "github.com/diffscope/diffscope/internal/models"

// DiffResultBuilder assembles aligned result rows and derives the aggregate
// counters. Both sides always grow together, preserving the equal-length
// invariant.
type DiffResultBuilder struct {
	left  []models.DiffLine
	right []models.DiffLine
}

// NewDiffResultBuilder creates a new result builder
func NewDiffResultBuilder() *DiffResultBuilder {
	return &DiffResultBuilder{}
}

// AddRow appends one aligned row.
func (rb *DiffResultBuilder) AddRow(left, right models.DiffLine) *DiffResultBuilder {
	rb.left = append(rb.left, left)
	rb.right = append(rb.right, right)
	return rb
}

// InsertRow inserts one aligned row at the given position.
func (rb *DiffResultBuilder) InsertRow(pos int, left, right models.DiffLine) *DiffResultBuilder {
	if pos < 0 {
		pos = 0
	}
	if pos > len(rb.left) {
		pos = len(rb.left)
	}
	rb.left = append(rb.left[:pos], append([]models.DiffLine{left}, rb.left[pos:]...)...)
	rb.right = append(rb.right[:pos], append([]models.DiffLine{right}, rb.right[pos:]...)...)
	return rb
}

// Len reports the current number of rows.
func (rb *DiffResultBuilder) Len() int {
	return len(rb.left)
}

// Build computes the counters and returns the final result. A modified row
// counts as exactly one addition and one removal.
func (rb *DiffResultBuilder) Build() *models.DiffResult {
	additions := 0
	removals := 0
	for i := range rb.left {
		switch rb.left[i].Type {
		case models.LineRemoved:
			removals++
		case models.LineModified:
			additions++
			removals++
		}
		if rb.right[i].Type == models.LineAdded {
			additions++
		}
	}

	return &models.DiffResult{
		Left:           rb.left,
		Right:          rb.right,
		Additions:      additions,
		Removals:       removals,
		HasDifferences: additions > 0 || removals > 0,
	}
}

// unchangedLine builds an unchanged line with its 1-based number.
func unchangedLine(content string, number int) models.DiffLine {
	return models.DiffLine{Content: content, Type: models.LineUnchanged, Number: lineNumber(number)}
}

// removedLine builds a removed line with its 1-based number.
func removedLine(content string, number int) models.DiffLine {
	return models.DiffLine{Content: content, Type: models.LineRemoved, Number: lineNumber(number)}
}

// addedLine builds an added line with its 1-based number.
func addedLine(content string, number int) models.DiffLine {
	return models.DiffLine{Content: content, Type: models.LineAdded, Number: lineNumber(number)}
}

// modifiedLine builds a modified line carrying its inline segments.
func modifiedLine(content string, number int, segments []models.DiffSegment) models.DiffLine {
	return models.DiffLine{Content: content, Type: models.LineModified, Number: lineNumber(number), Segments: segments}
}

// emptyLine builds a padding placeholder carrying no line number.
func emptyLine() models.DiffLine {
	return models.DiffLine{Type: models.LineEmpty}
}

// lineNumber boxes a 1-based line number.
func lineNumber(n int) *int {
	return &n
}

// hasChangedSegments reports whether any segment is an addition or removal.
func hasChangedSegments(segments []models.DiffSegment) bool {
	for _, seg := range segments {
		if seg.Type != models.SegmentUnchanged {
			return true
		}
	}
	return false
}
