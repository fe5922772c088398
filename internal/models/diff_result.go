package models

// LineType classifies a line in a diff result.
type LineType string

const (
	// LineUnchanged indicates a line present on both sides with equal content.
	LineUnchanged LineType = "unchanged"
	// LineAdded indicates a line present only on the right side.
	LineAdded LineType = "added"
	// LineRemoved indicates a line present only on the left side.
	LineRemoved LineType = "removed"
	// LineModified indicates a line edited in place, carrying inline segments.
	LineModified LineType = "modified"
	// LineEmpty indicates a padding placeholder keeping both sides aligned.
	LineEmpty LineType = "empty"
)

// SegmentType classifies an inline span within a modified line.
type SegmentType string

const (
	// SegmentUnchanged indicates a span shared by both sides.
	SegmentUnchanged SegmentType = "unchanged"
	// SegmentAdded indicates a span present only on the right side.
	SegmentAdded SegmentType = "added"
	// SegmentRemoved indicates a span present only on the left side.
	SegmentRemoved SegmentType = "removed"
)

// DiffSegment is a text span with an inline classification. Concatenating a
// modified line's segment texts, in order, reproduces that side's original
// line content exactly.
type DiffSegment struct {
	Text string      `json:"text"`
	Type SegmentType `json:"type"`
}

// DiffLine is one row of one side of a diff result. Number is 1-based and nil
// for padding lines that do not exist in the original input. Segments are
// present only when Type is LineModified.
type DiffLine struct {
	Content  string        `json:"content"`
	Type     LineType      `json:"type"`
	Number   *int          `json:"number,omitempty"`
	Segments []DiffSegment `json:"segments,omitempty"`
}

// DiffResult holds the aligned line sequences of a comparison. Left and Right
// always have equal length; a modified line counts as one addition and one
// removal.
type DiffResult struct {
	Left           []DiffLine `json:"left"`
	Right          []DiffLine `json:"right"`
	Additions      int        `json:"additions"`
	Removals       int        `json:"removals"`
	HasDifferences bool       `json:"has_differences"`
}
