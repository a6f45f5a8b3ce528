package flickr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid flickr configuration")
	// ErrInvalidArgument indicates a page or page size out of range
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPrimaryContext is returned when a call is started from the primary
	// execution context. No request is made.
	ErrPrimaryContext = errors.New("illegal state: network call started on the primary execution context")
)

// Failure is the classified reason a call did not succeed.
// It is one of *NetworkFailure, *HTTPFailure, *ConversionFailure or
// *UnexpectedFailure.
type Failure interface {
	error
	failure()
}

// NetworkFailure is an I/O failure before any response was received
type NetworkFailure struct {
	Cause error
}

func (e *NetworkFailure) Error() string {
	if e == nil {
		return "network error"
	}
	return causeText(e.Cause, "network error")
}

func (e *NetworkFailure) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (*NetworkFailure) failure() {}

// HTTPFailure is a response carrying a non-success status
type HTTPFailure struct {
	StatusCode int
	// APICode is the Flickr error code for stat=fail payloads, 0 otherwise
	APICode int
	Message string
}

func (e *HTTPFailure) Error() string {
	if e == nil {
		return "http error"
	}
	if e.APICode != 0 {
		return fmt.Sprintf("flickr API error: status %d: code %d: %s", e.StatusCode, e.APICode, e.Message)
	}
	return fmt.Sprintf("flickr API error: status %d: %s", e.StatusCode, e.Message)
}

func (*HTTPFailure) failure() {}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPFailure) IsNotFound() bool {
	return e != nil && e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *HTTPFailure) IsUnauthorized() bool {
	return e != nil && (e.StatusCode == 401 || e.StatusCode == 403)
}

// ConversionFailure is a response body that could not be decoded
type ConversionFailure struct {
	Cause error
}

func (e *ConversionFailure) Error() string {
	if e == nil {
		return "conversion error"
	}
	return causeText(e.Cause, "conversion error")
}

func (e *ConversionFailure) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (*ConversionFailure) failure() {}

// UnexpectedFailure is anything that does not fit the other kinds
type UnexpectedFailure struct {
	Cause error
}

func (e *UnexpectedFailure) Error() string {
	if e == nil {
		return "unexpected error"
	}
	return causeText(e.Cause, "unexpected error")
}

func (e *UnexpectedFailure) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (*UnexpectedFailure) failure() {}

// ConversionError reports a payload with the wrong shape
type ConversionError struct {
	Message string
}

func (e *ConversionError) Error() string { return e.Message }

// IsNil reports whether f is nil or a nil pointer of one of the failure types
func IsNil(f Failure) bool {
	switch f := f.(type) {
	case nil:
		return true
	case *NetworkFailure:
		return f == nil
	case *HTTPFailure:
		return f == nil
	case *ConversionFailure:
		return f == nil
	case *UnexpectedFailure:
		return f == nil
	default:
		return false
	}
}

// Kind names a failure class
type Kind string

const (
	KindNetwork    Kind = "network"
	KindHTTP       Kind = "http"
	KindConversion Kind = "conversion"
	KindUnexpected Kind = "unexpected"
)

// KindOf returns the class of f
func KindOf(f Failure) Kind {
	switch f.(type) {
	case *NetworkFailure:
		return KindNetwork
	case *HTTPFailure:
		return KindHTTP
	case *ConversionFailure:
		return KindConversion
	default:
		return KindUnexpected
	}
}

// AsFailure classifies err into exactly one Failure kind.
// A Failure already present in the chain is returned unchanged.
func AsFailure(err error) Failure {
	if err == nil {
		return nil
	}

	var f Failure
	if errors.As(err, &f) {
		if IsNil(f) {
			return &UnexpectedFailure{Cause: err}
		}
		return f
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		convErr   *ConversionError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &convErr) {
		return &ConversionFailure{Cause: err}
	}

	var (
		netErr net.Error
		urlErr *url.Error
		opErr  *net.OpError
	)
	switch {
	case errors.As(err, &netErr),
		errors.As(err, &urlErr),
		errors.As(err, &opErr),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET):
		return &NetworkFailure{Cause: err}
	}

	return &UnexpectedFailure{Cause: err}
}

func causeText(cause error, fallback string) string {
	if cause == nil {
		return fallback
	}
	return cause.Error()
}
