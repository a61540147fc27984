package snapshot

import (
	"errors"
	"fmt"
)

// ErrUnrecoverable is returned when a document cannot be parsed even after
// truncating it down to its first line.
var ErrUnrecoverable = errors.New("unrecoverable yaml document")

// ParseError describes a document that could not be recovered.
type ParseError struct {
	// Name is the short name of the document (file base name).
	Name string
	// Path is the full path of the document, or Name when loaded from memory.
	Path string
	// LinesTotal is the number of lines the document had.
	LinesTotal int
	// Err is the error from the strict parse of the full document.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid yaml file %s (%d lines): %v", e.Path, e.LinesTotal, e.Err)
}

// Unwrap exposes both ErrUnrecoverable and the underlying parser error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrUnrecoverable, e.Err}
}
