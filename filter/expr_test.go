package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/interesting/flickr"
)

var testPhotos = []flickr.Photo{
	{ID: "1", Owner: "alice@N01", Title: "Sunset over the bay", Server: "65535", Farm: 66, IsPublic: 1},
	{ID: "2", Owner: "bob@N02", Title: "Morning fog", Server: "65535", Farm: 66, IsPublic: 0, IsFriend: 1},
	{ID: "3", Owner: "alice@N01", Title: "City lights", Server: "7000", Farm: 8, IsPublic: 1},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{name: "valid expression", expr: `Public && contains(Title, "sunset")`},
		{name: "helper call", expr: `ownedBy("alice@N01")`},
		{name: "invalid syntax", expr: `contains(Title, "unclosed`, wantErr: true},
		{name: "non bool result", expr: `Title`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				require.ErrorAs(t, err, &compErr)
				assert.Equal(t, tt.expr, compErr.Expression)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expr, f.String())
		})
	}
}

func TestCompilationErrorLocation(t *testing.T) {
	_, err := Compile(`Public &&`)
	require.Error(t, err)

	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, 1, compErr.Line)
	assert.NotEmpty(t, compErr.Reason)
	assert.Contains(t, compErr.Error(), `filter "Public &&": line 1, column`)
	assert.NotNil(t, errors.Unwrap(compErr))
}

func TestFilterErrorMessages(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "compilation with location",
			err:      &CompilationError{Expression: "Farm ==", Line: 1, Column: 7, Reason: "unexpected token EOF"},
			expected: `filter "Farm ==": line 1, column 7: unexpected token EOF`,
		},
		{
			name:     "compilation without location",
			err:      &CompilationError{Expression: "Title", Reason: "expected bool"},
			expected: `filter "Title": expected bool`,
		},
		{
			name:     "evaluation",
			err:      &EvaluationError{Expression: "Public", Photo: testPhotos[1], Err: cause},
			expected: `filter "Public" failed on photo 2: boom`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}

	var evalErr *EvaluationError
	require.ErrorAs(t, &EvaluationError{Photo: testPhotos[0], Err: cause}, &evalErr)
	assert.ErrorIs(t, evalErr, cause)
	assert.Equal(t, "alice@N01", evalErr.Photo.Owner)
}

func TestCompileEmpty(t *testing.T) {
	_, err := Compile("   ")
	assert.ErrorIs(t, err, ErrEmptyExpression)
}

func TestCompileCachesPrograms(t *testing.T) {
	first, err := Compile(`Farm == 8`)
	require.NoError(t, err)
	second, err := Compile(`Farm == 8`)
	require.NoError(t, err)

	assert.Same(t, first.program, second.program)
}

func TestApply(t *testing.T) {
	page := flickr.NewPhotoPage(1, 1, 3, 3, testPhotos)

	tests := []struct {
		name     string
		expr     string
		expected []string
	}{
		{name: "public", expr: `Public`, expected: []string{"1", "3"}},
		{name: "title contains", expr: `contains(Title, "SUNSET")`, expected: []string{"1"}},
		{name: "owner", expr: `ownedBy("alice@n01") && Farm == 8`, expected: []string{"3"}},
		{name: "friends", expr: `Friend || startsWith(Title, "morning")`, expected: []string{"2"}},
		{name: "nothing", expr: `ID == "404"`, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expr)
			require.NoError(t, err)

			var ids []string
			for _, p := range f.Apply(page) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	assert.Len(t, page.Photos, 3, "apply must not modify the page")
}

func TestApplyNilFilter(t *testing.T) {
	var f *PhotoFilter
	page := flickr.NewPhotoPage(1, 1, 3, 3, testPhotos)
	assert.Len(t, f.Apply(page), 3)
}

func TestLRUCache(t *testing.T) {
	c := newLRUCache[int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("c", 3)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
