package differ

import (
	"errors"
	"fmt"

	"github.com/diffscope/diffscope/internal/common/errorwrapper"
)

// ContentSizeValidator validates input size against limits
type ContentSizeValidator struct {
	maxSizeBytes int64
}

// NewContentSizeValidator creates a new content size validator
func NewContentSizeValidator(maxSizeMB int) *ContentSizeValidator {
	return &ContentSizeValidator{
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// ValidateSize checks if both inputs are within the configured limit
func (csv *ContentSizeValidator) ValidateSize(left, right string) error {
	if err := csv.validateSingleContent(left, "left_input"); err != nil {
		return err
	}
	return csv.validateSingleContent(right, "right_input")
}

// validateSingleContent validates a single input size
func (csv *ContentSizeValidator) validateSingleContent(content, fieldName string) error {
	if int64(len(content)) > csv.maxSizeBytes {
		return errorwrapper.NewValidationError(fieldName, len(content),
			fmt.Sprintf("%s too large (%d bytes > %d bytes limit)",
				fieldName, len(content), csv.maxSizeBytes))
	}
	return nil
}

// IsContentTooLargeError checks if the error reports an oversized input
func IsContentTooLargeError(err error) bool {
	var validationErr *errorwrapper.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Field == "left_input" || validationErr.Field == "right_input"
	}
	return false
}
