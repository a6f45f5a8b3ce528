package flickr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const methodInterestingList = "flickr.interestingness.getList"

// HTTPService talks to the Flickr REST API over HTTP
type HTTPService struct {
	endpoint   string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

var _ Service = (*HTTPService)(nil)

// NewHTTPService creates a new Flickr HTTP transport
func NewHTTPService(apiKey string, logger zerolog.Logger, opts ...Option) (*HTTPService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: flickr API key is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := url.ParseRequestURI(o.endpoint); err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint %q: %v", ErrInvalidConfig, o.endpoint, err)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	s := &HTTPService{
		endpoint:   o.endpoint,
		apiKey:     apiKey,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}

	if o.breaker != nil {
		settings := *o.breaker
		settings.IsSuccessful = func(err error) bool {
			var nf *NetworkFailure
			return !errors.As(err, &nf)
		}
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		}
		s.breaker = gobreaker.NewCircuitBreaker(settings)
	}

	return s, nil
}

// InterestingPhotos performs one flickr.interestingness.getList request
func (s *HTTPService) InterestingPhotos(ctx context.Context, page, perPage int) (*InterestingResponse, *Response, error) {
	if s.breaker == nil {
		return s.fetch(ctx, page, perPage)
	}

	var resp *Response
	out, err := s.breaker.Execute(func() (interface{}, error) {
		body, r, err := s.fetch(ctx, page, perPage)
		resp = r
		return body, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, nil, &NetworkFailure{Cause: err}
	}
	if err != nil {
		return nil, resp, err
	}
	return out.(*InterestingResponse), resp, nil
}

func (s *HTTPService) fetch(ctx context.Context, page, perPage int) (*InterestingResponse, *Response, error) {
	params := url.Values{}
	params.Set("method", methodInterestingList)
	params.Set("api_key", s.apiKey)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("format", "json")
	params.Set("nojsoncallback", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, nil, &UnexpectedFailure{Cause: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	s.logger.Debug().
		Int("page", page).
		Int("per_page", perPage).
		Msg("Requesting interesting photos")

	httpResp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, &NetworkFailure{Cause: redactURLError(err)}
	}
	defer httpResp.Body.Close()

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header.Clone(),
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, resp, &NetworkFailure{Cause: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, resp, &HTTPFailure{
			StatusCode: httpResp.StatusCode,
			Message:    statusMessage(httpResp),
		}
	}

	var out InterestingResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, resp, &ConversionFailure{Cause: err}
	}

	if out.Stat == StatFail {
		return nil, resp, &HTTPFailure{
			StatusCode: httpResp.StatusCode,
			APICode:    out.Code,
			Message:    out.Message,
		}
	}
	if !out.OK() || out.Photos == nil {
		return nil, resp, &ConversionFailure{
			Cause: &ConversionError{Message: fmt.Sprintf("unexpected payload: stat=%q", out.Stat)},
		}
	}

	s.logger.Debug().
		Int("page", out.Photos.Page).
		Int("count", out.Photos.Len()).
		Int("pages", out.Photos.Pages).
		Msg("Retrieved interesting photos")

	return &out, resp, nil
}

// redactURLError hides the API key in the request URL that *url.Error
// repeats in its message
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return urlErr.Err
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
	}
	u.RawQuery = q.Encode()

	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}

func statusMessage(resp *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
