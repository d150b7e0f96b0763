package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jacoelho/pullxml/pkg/xmlpull"
)

// ErrorCode classifies a parse failure.
type ErrorCode string

const (
	// ErrOutOfRange indicates a read was attempted with no input left.
	ErrOutOfRange ErrorCode = "xml-out-of-range"
	// ErrEmptyState indicates a closing tag or text appeared with no open element.
	ErrEmptyState ErrorCode = "xml-empty-state"
	// ErrMalformed indicates a structural expectation was not met.
	ErrMalformed ErrorCode = "xml-malformed"
	// ErrIO indicates the document could not be read.
	ErrIO ErrorCode = "xml-io"
)

// Report describes a parse failure with its code and, when known, the element
// path and byte offset at which it happened.
type Report struct {
	Code    string
	Message string
	Path    string
	Offset  int
}

// Error formats the report for display, including code, message, and context.
func (r *Report) Error() string {
	if r == nil {
		return "report <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", r.Code, r.Message))
	if r.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", r.Path))
	}
	if r.Offset > 0 {
		b.WriteString(fmt.Sprintf(" (offset %d)", r.Offset))
	}
	return b.String()
}

// NewReport builds a Report with a code, message, and optional path.
func NewReport(code ErrorCode, msg, path string) Report {
	return Report{Code: string(code), Message: msg, Path: path}
}

// CodeOf returns the code for err, or "" if err is not a parse or read failure.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, xmlpull.ErrOutOfRange):
		return ErrOutOfRange
	case errors.Is(err, xmlpull.ErrEmptyStack):
		return ErrEmptyState
	case errors.Is(err, xmlpull.ErrMalformed):
		return ErrMalformed
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ErrIO
	}
	return ""
}

// FromError builds a Report from an error returned by the parser or loader.
func FromError(err error) (Report, bool) {
	code := CodeOf(err)
	if code == "" {
		return Report{}, false
	}
	var syntax *xmlpull.SyntaxError
	if errors.As(err, &syntax) {
		return Report{
			Code:    string(code),
			Message: syntax.Err.Error(),
			Path:    syntax.Path,
			Offset:  syntax.Offset,
		}, true
	}
	return NewReport(code, err.Error(), ""), true
}

// AsReport extracts a Report wrapped anywhere in err's chain.
func AsReport(err error) (*Report, bool) {
	var report *Report
	if errors.As(err, &report) && report != nil {
		return report, true
	}
	return nil, false
}
