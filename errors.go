package proneval

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBoundary is the base of all document boundary errors
	ErrInvalidBoundary = errors.New("invalid document boundary")

	// ErrSizeMismatch is returned when reference and candidate
	// source sides differ in their number of tokens
	ErrSizeMismatch = errors.New("corpus size mismatch")

	// ErrMalformedAlignment is the base of all alignment file errors
	ErrMalformedAlignment = errors.New("malformed alignment")
)

// BoundaryError describes an unusable line of a
// document boundary file.
type BoundaryError struct {
	LineNo int // 1-based
	Line   string
	Reason string
}

func (e *BoundaryError) Error() string {
	if e.LineNo == 0 {
		return fmt.Sprintf("invalid doc boundary file: %s", e.Reason)
	}
	return fmt.Sprintf("invalid line %d in doc boundary file: %q: %s", e.LineNo, e.Line, e.Reason)
}

func (e *BoundaryError) Unwrap() error {
	return ErrInvalidBoundary
}

// SizeMismatchError reports the token counts of
// both source sides.
type SizeMismatchError struct {
	Reference int
	Candidate int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("reference and candidate sizes differ: %d != %d", e.Reference, e.Candidate)
}

func (e *SizeMismatchError) Unwrap() error {
	return ErrSizeMismatch
}

// AlignmentError describes a link or line of an alignment
// file that does not fit the sentences it belongs to.
type AlignmentError struct {
	Path   string
	LineNo int // 1-based, 0 for whole file errors
	Link   string
	Reason string
}

func (e *AlignmentError) Error() string {
	where := e.Path
	if where == "" {
		where = "alignment"
	}
	if e.LineNo > 0 {
		where = fmt.Sprintf("%s:%d", where, e.LineNo)
	}
	if e.Link != "" {
		return fmt.Sprintf("%s: link %q: %s", where, e.Link, e.Reason)
	}
	return fmt.Sprintf("%s: %s", where, e.Reason)
}

func (e *AlignmentError) Unwrap() error {
	return ErrMalformedAlignment
}
