package importer

import (
	"errors"
	"fmt"
)

// ErrDirNotFound is returned when the import directory does not exist.
// It also matches fs.ErrNotExist through the wrapped OS error.
var ErrDirNotFound = errors.New("import directory not found")

// FormatError describes a malformed row in a bank CSV export.
type FormatError struct {
	File  string // empty when parsing from a reader
	Row   int    // 1-based line number, 0 if unknown
	Field string // "date", "amount", or "row"
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	loc := e.File
	if e.Row > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += fmt.Sprintf("row %d", e.Row)
	}
	if loc != "" {
		loc += ": "
	}
	if e.Field == "row" {
		return fmt.Sprintf("%smalformed row: %v", loc, e.Err)
	}
	return fmt.Sprintf("%sparsing %s %q: %v", loc, e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
