// Package filter selects photos with expr-lang expressions such as
//
//	Public && contains(Title, "sunset")
//	ownedBy("12345@N00") || Farm == 66
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/interesting/flickr"
)

const programCacheSize = 64

var programs = newLRUCache[*vm.Program](programCacheSize)

// PhotoFilter is a compiled photo filter
type PhotoFilter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a filter expression. Compiled programs are cached by
// expression text.
func Compile(expression string) (*PhotoFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, ErrEmptyExpression
	}

	if program, ok := programs.Get(expression); ok {
		return &PhotoFilter{program: program, expr: expression}, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnv(flickr.Photo{})),
		expr.AsBool(),
	)
	if err != nil {
		compErr := &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
		var fileErr *file.Error
		if errors.As(err, &fileErr) {
			compErr.Line = fileErr.Line
			compErr.Column = fileErr.Column
			compErr.Reason = fileErr.Message
		}
		return nil, compErr
	}

	programs.Put(expression, program)
	return &PhotoFilter{program: program, expr: expression}, nil
}

// Evaluate runs the filter against a photo
func (f *PhotoFilter) Evaluate(photo flickr.Photo) (bool, error) {
	out, err := expr.Run(f.program, newEnv(photo))
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, Photo: photo, Err: err}
	}

	result, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expr,
			Photo:      photo,
			Err:        fmt.Errorf("expected bool result, got %T", out),
		}
	}
	return result, nil
}

// Match reports whether the photo passes the filter. Evaluation errors
// count as no match.
func (f *PhotoFilter) Match(photo flickr.Photo) bool {
	ok, err := f.Evaluate(photo)
	return err == nil && ok
}

// Apply returns the photos on page that pass the filter. A nil filter
// passes everything.
func (f *PhotoFilter) Apply(page *flickr.PhotoPage) []flickr.Photo {
	photos := page.List()
	if f == nil {
		return photos
	}

	matched := photos[:0]
	for _, photo := range photos {
		if f.Match(photo) {
			matched = append(matched, photo)
		}
	}
	return matched
}

// String returns the original expression
func (f *PhotoFilter) String() string {
	return f.expr
}

func newEnv(photo flickr.Photo) map[string]interface{} {
	return map[string]interface{}{
		// Photo fields
		"ID":     photo.ID,
		"Owner":  photo.Owner,
		"Title":  photo.Title,
		"Server": photo.Server,
		"Farm":   photo.Farm,
		"Public": photo.Public(),
		"Friend": photo.IsFriend == 1,
		"Family": photo.IsFamily == 1,
		"URL":    photo.URL(""),

		"ownedBy": func(owner string) bool {
			return strings.EqualFold(photo.Owner, owner)
		},

		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
