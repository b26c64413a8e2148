package bibtex

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the bibliography file does not exist.
var ErrNotFound = errors.New("bibliography file not found")

// ParseError indicates a bibliography source that could not be turned
// into entries: malformed syntax, an unreadable path, or a file that
// parsed but yielded nothing usable.
type ParseError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s (file: %s): %v", e.Msg, e.Path, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s (file: %s)", e.Msg, e.Path)
	default:
		return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError indicates a record lacking a required field. The
// record is skipped; the batch continues.
type MissingFieldError struct {
	Field string
	Key   string
}

func (e *MissingFieldError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("missing required field %q in entry %s", e.Field, e.Key)
	}
	return fmt.Sprintf("missing required field %q", e.Field)
}

// IsParseError reports whether err is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsMissingField reports whether err is a MissingFieldError.
func IsMissingField(err error) bool {
	var mf *MissingFieldError
	return errors.As(err, &mf)
}
