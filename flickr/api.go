package flickr

import (
	"context"
)

// Service defines the transport for Flickr operations. Implementations are
// synchronous; the Client decides where they run.
type Service interface {
	// InterestingPhotos fetches one page of the interestingness list.
	// Errors returned are Failure values.
	InterestingPhotos(ctx context.Context, page, perPage int) (*InterestingResponse, *Response, error)
}

// Callback receives the outcome of a call. Exactly one method is invoked,
// exactly once.
type Callback interface {
	Success(page *PhotoPage, resp *Response)
	Failure(f Failure)
}

// CallbackFuncs adapts a pair of functions to the Callback interface.
// A nil function ignores its outcome.
type CallbackFuncs struct {
	OnSuccess func(page *PhotoPage, resp *Response)
	OnFailure func(f Failure)
}

var _ Callback = CallbackFuncs{}

// Success implements Callback
func (c CallbackFuncs) Success(page *PhotoPage, resp *Response) {
	if c.OnSuccess != nil {
		c.OnSuccess(page, resp)
	}
}

// Failure implements Callback
func (c CallbackFuncs) Failure(f Failure) {
	if c.OnFailure != nil {
		c.OnFailure(f)
	}
}
