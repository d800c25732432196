package production

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDatasetNotFound is returned when the workbook does not exist.
	ErrDatasetNotFound = errors.New("production dataset not found")

	// ErrDatasetUnreadable is returned when the workbook cannot be opened or
	// holds no usable sheet.
	ErrDatasetUnreadable = errors.New("production dataset unreadable")

	// ErrSchemaMismatch is returned when the columns do not match the layout
	// the dashboard expects.
	ErrSchemaMismatch = errors.New("production dataset schema mismatch")

	// ErrUnknownColumn is returned for a volume column that does not exist.
	ErrUnknownColumn = errors.New("unknown volume column")
)

// SchemaError lists the columns that make a table unusable.
type SchemaError struct {
	// Missing are required columns absent from the header.
	Missing []string
	// Conflicting are columns that appear twice, either literally or because
	// a source column and its short code are both present.
	Conflicting []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Conflicting) > 0 {
		parts = append(parts, fmt.Sprintf("conflicting columns: %s", strings.Join(e.Conflicting, ", ")))
	}
	if len(parts) == 0 {
		return ErrSchemaMismatch.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSchemaMismatch, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}
