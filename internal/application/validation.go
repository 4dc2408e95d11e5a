package application

import (
	"fmt"
	"strings"

	"provmark/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sourcePath" -> "source path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"sourcePath":    "source path",
		"outputPath":    "output path",
		"categoryIndex": "category index",
		"rowIndex":      "row index",
		"previewSize":   "preview size",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateNonNegative rejects negative positions and counts
func ValidateNonNegative(fieldName string, value int) error {
	if value < 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must not be negative, got: %d", formatFieldName(fieldName), value),
		}
	}
	return nil
}

// ValidateNamespace parses a category namespace, wrapping parse failures
// as a ValidationError
func ValidateNamespace(fieldName, value string) (domain.Namespace, error) {
	ns, err := domain.ParseNamespace(value)
	if err != nil {
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected transform or feature, got: %s", value),
		}
	}
	return ns, nil
}
