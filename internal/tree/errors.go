package tree

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument is the sentinel matched by every MalformedDocumentError.
var ErrMalformedDocument = errors.New("malformed document")

// MalformedDocumentError is returned by document parsers for input that is
// not a well-formed tree. The extractor never produces it.
type MalformedDocumentError struct {
	// Format is the wire format being parsed ("xml", "json").
	Format string
	// Offset is the input offset where parsing failed, or -1 if unknown.
	Offset int64
	// Err is the underlying parser error.
	Err error
}

func (e *MalformedDocumentError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("malformed %s document at offset %d: %v", e.Format, e.Offset, e.Err)
	}

	return fmt.Sprintf("malformed %s document: %v", e.Format, e.Err)
}

func (e *MalformedDocumentError) Unwrap() []error {
	return []error{ErrMalformedDocument, e.Err}
}
