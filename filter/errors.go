package filter

import (
	"errors"
	"fmt"

	"github.com/s0up4200/interesting/flickr"
)

// ErrEmptyExpression is returned when compiling a blank expression
var ErrEmptyExpression = errors.New("empty filter expression")

// CompilationError reports an expression the compiler rejected. Line and
// Column are zero when the compiler gave no location.
type CompilationError struct {
	Expression string
	Line       int
	Column     int
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("filter %q: line %d, column %d: %s", e.Expression, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("filter %q: %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error { return e.Err }

// EvaluationError reports a filter that failed on one photo
type EvaluationError struct {
	Expression string
	Photo      flickr.Photo
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("filter %q failed on photo %s: %v", e.Expression, e.Photo.ID, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
