package models

// ChangeType classifies a tree-level structural change between two JSON
// documents.
type ChangeType string

const (
	// ChangeMoved indicates a value that moved from one key to another.
	ChangeMoved ChangeType = "moved"
	// ChangeRenamed indicates a key renamed while keeping its value.
	ChangeRenamed ChangeType = "renamed"
	// ChangeTypeChanged indicates a value whose runtime type differs between sides.
	ChangeTypeChanged ChangeType = "type_changed"
	// ChangeReordered indicates an array item present on both sides at
	// different indexes.
	ChangeReordered ChangeType = "reordered"
)

// StructuralChange describes one tree-level difference between two parsed
// JSON documents.
type StructuralChange struct {
	Type     ChangeType `json:"type"`
	Path     string     `json:"path"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
	OldValue any        `json:"old_value,omitempty"`
	NewValue any        `json:"new_value,omitempty"`
}

// DiffStats aggregates leaf-path statistics for a JSON comparison.
type DiffStats struct {
	TotalPaths     int     `json:"total_paths"`
	ChangedPaths   int     `json:"changed_paths"`
	AddedPaths     int     `json:"added_paths"`
	RemovedPaths   int     `json:"removed_paths"`
	PercentChanged float64 `json:"percent_changed"`
}

// FormatType identifies the detected or configured input format.
type FormatType string

const (
	// FormatJSON treats inputs as JSON documents.
	FormatJSON FormatType = "json"
	// FormatYAML treats inputs as YAML documents.
	FormatYAML FormatType = "yaml"
	// FormatXML treats inputs as XML documents.
	FormatXML FormatType = "xml"
	// FormatText treats inputs as plain text.
	FormatText FormatType = "text"
	// FormatConfig treats inputs as line-oriented key-value configuration.
	FormatConfig FormatType = "config"
)

// EnhancedDiffResult extends DiffResult with structural analysis produced for
// JSON input. MovedProperties maps the source path of each moved value to its
// destination path.
type EnhancedDiffResult struct {
	DiffResult
	Format            FormatType         `json:"format"`
	StructuralChanges []StructuralChange `json:"structural_changes,omitempty"`
	MovedProperties   map[string]string  `json:"moved_properties,omitempty"`
	Stats             DiffStats          `json:"stats"`
}
