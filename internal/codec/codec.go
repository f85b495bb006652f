// Package codec converts signatures to and from their two textual encodings:
// a flat tabular (CSV) form holding only band data, and a structured (JSON)
// form carrying the full record. Both encoders are deterministic so repeated
// encodes of an unchanged record are byte-identical. The codec checks shape
// only; semantic rules like category membership belong to the validate
// package.
package codec

import "fmt"

// ParseError describes malformed input text. Row is the 1-based data row for
// tabular faults and -1 when the fault is not row-addressable.
type ParseError struct {
	Reason string
	Row    int
}

func (e *ParseError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("parse error at row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func parseErr(row int, format string, args ...any) error {
	return &ParseError{Row: row, Reason: fmt.Sprintf(format, args...)}
}
