package xmlpull

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when ReadNext is called with no input left.
	ErrOutOfRange = errors.New("no input left to read")
	// ErrEmptyStack is returned when a closing tag or text appears with no open element.
	ErrEmptyStack = errors.New("no open element")
	// ErrMalformed is the parent of every structural error.
	ErrMalformed = errors.New("malformed XML")
)

var (
	errUnterminatedTag     = fmt.Errorf("%w: unterminated tag", ErrMalformed)
	errUnterminatedComment = fmt.Errorf("%w: unterminated comment", ErrMalformed)
	errUnterminatedProlog  = fmt.Errorf("%w: unterminated XML declaration", ErrMalformed)
	errUnterminatedEntity  = fmt.Errorf("%w: unterminated entity reference", ErrMalformed)
	errUnterminatedAttr    = fmt.Errorf("%w: unterminated attribute value", ErrMalformed)
	errUnclosedElement     = fmt.Errorf("%w: unexpected end of input in element content", ErrMalformed)
	errEmptyName           = fmt.Errorf("%w: empty name", ErrMalformed)
	errMissingEquals       = fmt.Errorf("%w: attribute without value", ErrMalformed)
	errMissingQuote        = fmt.Errorf("%w: attribute value must be double-quoted", ErrMalformed)
	errUnknownEntity       = fmt.Errorf("%w: unknown entity", ErrMalformed)
	errMismatchedEndTag    = fmt.Errorf("%w: mismatched end element", ErrMalformed)
	errUnsupportedMarkup   = fmt.Errorf("%w: unsupported markup", ErrMalformed)
	errMisplacedPI         = fmt.Errorf("%w: processing instruction outside prolog", ErrMalformed)
	errDepthLimit          = fmt.Errorf("%w: element depth exceeds MaxDepth", ErrMalformed)
)

// SyntaxError reports a parse failure with the cursor and element path at the
// point of failure.
type SyntaxError struct {
	Err    error
	Path   string
	Offset int
}

// Error formats the syntax error with location and cause.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" && e.Path != "/" {
		return fmt.Sprintf("xml syntax error at offset %d in %s: %v", e.Offset, e.Path, e.Err)
	}
	return fmt.Sprintf("xml syntax error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
