package importer

import (
	"errors"
	"fmt"
	"strings"
)

// errAccountMissing fails rows that carry no account identifier, since
// a transaction cannot be attached to an account without one.
var errAccountMissing = errors.New("account identifier is empty")

// Row is one parsed CSV line, keyed by lowercased column name. It lives
// only for the duration of a single conversion.
type Row map[string]string

// Get returns the value for a column (case-insensitive), or "" when the
// column is absent. Missing optional columns therefore default to the
// empty string rather than failing.
func (r Row) Get(col string) string {
	return r[strings.ToLower(col)]
}

// Bool parses a boolean-ish source field. Only the literal string
// "true" is true; anything else, including "", "TRUE" and "1", is false.
func (r Row) Bool(col string) bool {
	return r.Get(col) == "true"
}

// ConversionError reports a row field an adapter could not parse. The
// offending raw value is preserved for diagnostics.
type ConversionError struct {
	Format Format
	Field  string
	Value  string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: parsing %s %q: %v", e.Format, e.Field, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// RowError is a non-fatal, row-scoped import failure: either the row's
// headers matched no known format, or its adapter failed.
type RowError struct {
	Line   int // 1-based data row number, in file order
	Format Format
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %s", e.Line, e.Format, e.Reason)
}
