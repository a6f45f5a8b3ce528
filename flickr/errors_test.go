package flickr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsFailure(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{Offset: 3}

	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{
			name: "url error",
			err:  &url.Error{Op: "Get", URL: "http://x", Err: errors.New("dial tcp: refused")},
			kind: KindNetwork,
		},
		{
			name: "op error",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")},
			kind: KindNetwork,
		},
		{
			name: "connection refused",
			err:  fmt.Errorf("dial: %w", syscall.ECONNREFUSED),
			kind: KindNetwork,
		},
		{
			name: "json syntax",
			err:  fmt.Errorf("decode: %w", syntaxErr),
			kind: KindConversion,
		},
		{
			name: "json type",
			err:  &json.UnmarshalTypeError{Value: "string", Field: "page"},
			kind: KindConversion,
		},
		{
			name: "conversion error",
			err:  &ConversionError{Message: "Conversion Error"},
			kind: KindConversion,
		},
		{
			name: "wrapped failure kept",
			err:  fmt.Errorf("call: %w", &HTTPFailure{StatusCode: 500}),
			kind: KindHTTP,
		},
		{
			name: "anything else",
			err:  errors.New("Unknown Error"),
			kind: KindUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := AsFailure(tt.err)
			assert.Equal(t, tt.kind, KindOf(f))
			if tt.kind != KindHTTP {
				assert.ErrorIs(t, f, tt.err)
			}
		})
	}

	assert.Nil(t, AsFailure(nil))
}

func TestFailureMessages(t *testing.T) {
	tests := []struct {
		name     string
		failure  Failure
		expected string
	}{
		{"network", &NetworkFailure{Cause: errors.New("Network Error")}, "Network Error"},
		{"network without cause", &NetworkFailure{}, "network error"},
		{"http", &HTTPFailure{StatusCode: 404, Message: "Page not found"}, "flickr API error: status 404: Page not found"},
		{"conversion", &ConversionFailure{Cause: &ConversionError{Message: "Conversion Error"}}, "Conversion Error"},
		{"unexpected", &UnexpectedFailure{Cause: errors.New("Unknown Error")}, "Unknown Error"},
		{"unexpected without cause", &UnexpectedFailure{}, "unexpected error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.failure.Error())
		})
	}
}

func TestHTTPFailure(t *testing.T) {
	t.Run("IsNotFound", func(t *testing.T) {
		err := &HTTPFailure{StatusCode: 404}
		assert.True(t, err.IsNotFound())

		err.StatusCode = 500
		assert.False(t, err.IsNotFound())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &HTTPFailure{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})
}

func TestNilFailures(t *testing.T) {
	tests := []struct {
		name     string
		failure  Failure
		expected string
	}{
		{"network", (*NetworkFailure)(nil), "network error"},
		{"http", (*HTTPFailure)(nil), "http error"},
		{"conversion", (*ConversionFailure)(nil), "conversion error"},
		{"unexpected", (*UnexpectedFailure)(nil), "unexpected error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsNil(tt.failure))
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, tt.failure.Error())
				assert.Nil(t, errors.Unwrap(tt.failure))
			})
		})
	}

	t.Run("interface nil", func(t *testing.T) {
		assert.True(t, IsNil(nil))
	})

	t.Run("non-nil failure", func(t *testing.T) {
		assert.False(t, IsNil(&NetworkFailure{}))
	})

	t.Run("typed nil in chain is unexpected", func(t *testing.T) {
		err := fmt.Errorf("call: %w", (*HTTPFailure)(nil))
		f := AsFailure(err)
		assert.Equal(t, KindUnexpected, KindOf(f))
		assert.False(t, IsNil(f))
	})

	t.Run("nil http failure predicates", func(t *testing.T) {
		var hf *HTTPFailure
		assert.False(t, hf.IsNotFound())
		assert.False(t, hf.IsUnauthorized())
	})
}
