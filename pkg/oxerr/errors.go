// Error kinds shared by every orthoxml package.

package oxerr

import (
	"errors"
	"fmt"
)

// Defining possible error
var (
	ErrMalformedDocument   = errors.New("MalformedDocument")
	ErrUnresolvedReference = errors.New("UnresolvedReference")
	ErrUnknownTaxon        = errors.New("UnknownTaxon")
	ErrTaxonomyConflict    = errors.New("TaxonomyConflict")
	ErrUnknownScoreName    = errors.New("UnknownScoreName")
	ErrSchemaViolation     = errors.New("SchemaViolation")
	ErrIO                  = errors.New("IOError")
)

// Error carries the kind plus the offending context. Line is 0 when unknown.
type Error struct {
	Kind error
	Msg  string
	Line int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func AtLine(kind error, line int, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Line: line}
}

// Kind returns the sentinel an error wraps, or nil for foreign errors.
func Kind(err error) error {
	for _, k := range []error{
		ErrMalformedDocument, ErrUnresolvedReference, ErrUnknownTaxon,
		ErrTaxonomyConflict, ErrUnknownScoreName, ErrSchemaViolation, ErrIO,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
