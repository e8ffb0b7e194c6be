package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = errors.New("not found")
	ErrNestedTransaction = errors.New("transaction already in progress")
	ErrVersionMismatch   = errors.New("incompatible mirror schema version")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// VersionMismatchError reports a mirror store stamped with a schema version
// other than the one this build expects. The store is incompatible and must
// not be used.
type VersionMismatchError struct {
	Path     string
	Stored   string
	Expected string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("mirror %s has schema version %q, expected %q", e.Path, e.Stored, e.Expected)
}

func (e *VersionMismatchError) Is(target error) bool {
	return target == ErrVersionMismatch
}
