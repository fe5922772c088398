package semantic

import (
	"regexp"
	"strings"
)

// FieldKind tags a key-value field with a semantic class used by the
// structural aligner to pair fields whose values are expected to churn.
type FieldKind string

const (
	// FieldTimestamp marks date/time fields.
	FieldTimestamp FieldKind = "timestamp"
	// FieldID marks identifier and token fields.
	FieldID FieldKind = "id"
	// FieldVersion marks version fields.
	FieldVersion FieldKind = "version"
	// FieldNormal marks everything else.
	FieldNormal FieldKind = "normal"
)

var (
	isoTimestampPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?)?$`)
	epochPattern         = regexp.MustCompile(`^\d{10}(\d{3})?$`)
	uuidPattern          = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	objectIDPattern      = regexp.MustCompile(`^[0-9a-f]{24}$`)
	prefixedTokenPattern = regexp.MustCompile(`^[A-Za-z]{2,8}_[A-Za-z0-9]{8,}$`)
	semverPattern        = regexp.MustCompile(`^v?\d+\.\d+\.\d+(-[0-9A-Za-z.\-]+)?(\+[0-9A-Za-z.\-]+)?$`)
)

// ClassifyField tags a key-value field as timestamp, id, version, or normal.
// Key-name heuristics run first; literal value patterns only when the key is
// inconclusive.
func ClassifyField(key, value string) FieldKind {
	k := strings.ToLower(strings.TrimSpace(key))

	switch {
	case strings.Contains(k, "time"), strings.Contains(k, "date"),
		strings.HasSuffix(k, "_at"), strings.HasSuffix(k, "_on"):
		return FieldTimestamp
	case k == "id", k == "uuid", k == "guid", strings.HasSuffix(k, "_id"),
		strings.Contains(k, "uuid"), strings.Contains(k, "token"):
		return FieldID
	case strings.Contains(k, "version"):
		return FieldVersion
	}

	v := strings.TrimSpace(value)
	v = strings.Trim(v, `"'`)
	switch {
	case isoTimestampPattern.MatchString(v), epochPattern.MatchString(v):
		return FieldTimestamp
	case uuidPattern.MatchString(v), objectIDPattern.MatchString(v), prefixedTokenPattern.MatchString(v):
		return FieldID
	case semverPattern.MatchString(v):
		return FieldVersion
	}

	return FieldNormal
}
