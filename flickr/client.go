package flickr

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/interesting/flickr/exec"
)

// MaxConcurrentPages bounds FetchPages
const MaxConcurrentPages = 4

// Client issues interesting-photo calls and delivers each outcome to a
// Callback on the configured executors.
type Client struct {
	service      Service
	httpExec     exec.Executor
	callbackExec exec.Executor
	logger       zerolog.Logger
}

// NewClient wraps a Service. Only the executor options apply here.
func NewClient(service Service, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if service == nil {
		return nil, fmt.Errorf("%w: service is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		service:      service,
		httpExec:     o.httpExec,
		callbackExec: o.callbackExec,
		logger:       logger,
	}, nil
}

// NewHTTPClient creates a Client backed by the Flickr REST API
func NewHTTPClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	service, err := NewHTTPService(apiKey, logger, opts...)
	if err != nil {
		return nil, err
	}
	return NewClient(service, logger, opts...)
}

// GetInterestingPhotos requests one page of interesting photos and reports the
// outcome to cb. It returns an error only when the call could not be started:
// invalid arguments, or ErrPrimaryContext when ctx is the primary execution
// context. In both cases no request is made and cb is never invoked.
func (c *Client) GetInterestingPhotos(ctx context.Context, page, perPage int, cb Callback) error {
	if cb == nil {
		return fmt.Errorf("%w: callback is required", ErrInvalidArgument)
	}
	if page < 0 {
		return fmt.Errorf("%w: page must be >= 0, got %d", ErrInvalidArgument, page)
	}
	if perPage <= 0 {
		return fmt.Errorf("%w: per page must be > 0, got %d", ErrInvalidArgument, perPage)
	}
	if exec.IsPrimary(ctx) {
		c.logger.Error().
			Int("page", page).
			Msg("Refusing network call on primary execution context")
		return ErrPrimaryContext
	}

	c.httpExec.Execute(func() {
		body, resp, err := c.service.InterestingPhotos(exec.WithWorker(ctx), page, perPage)
		if err == nil && (body == nil || body.Photos == nil) {
			err = &UnexpectedFailure{Cause: errors.New("transport returned no payload")}
		}

		c.callbackExec.Execute(func() {
			if err != nil {
				f := AsFailure(err)
				c.logger.Debug().
					Err(f).
					Str("kind", string(KindOf(f))).
					Int("page", page).
					Msg("Interesting photos call failed")
				cb.Failure(f)
				return
			}
			cb.Success(body.Photos, resp)
		})
	})

	return nil
}

// FetchPages fetches several pages concurrently and blocks until all have
// completed. Pages are returned in the order requested. The first failure
// is returned as a Failure.
func (c *Client) FetchPages(ctx context.Context, pages []int, perPage int) ([]*PhotoPage, error) {
	if exec.IsPrimary(ctx) {
		return nil, ErrPrimaryContext
	}

	results := make([]*PhotoPage, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentPages)

	for i, page := range pages {
		g.Go(func() error {
			done := make(chan error, 1)
			err := c.GetInterestingPhotos(ctx, page, perPage, CallbackFuncs{
				OnSuccess: func(p *PhotoPage, _ *Response) {
					results[i] = p
					done <- nil
				},
				OnFailure: func(f Failure) {
					done <- f
				},
			})
			if err != nil {
				return err
			}

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return &NetworkFailure{Cause: ctx.Err()}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
