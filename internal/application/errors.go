package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrNoDataset        = errors.New("no dataset loaded")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrImportFailed     = errors.New("import failed")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ImportError represents a dataset that could not be read or stored
type ImportError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot import %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot import %s: %s", e.Path, e.Reason)
}

func (e *ImportError) Is(target error) bool {
	return target == ErrImportFailed
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
