package flickr

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/s0up4200/interesting/flickr/exec"
)

const (
	// DefaultEndpoint is the Flickr REST endpoint
	DefaultEndpoint = "https://api.flickr.com/services/rest/"
	// DefaultTimeout bounds a single request
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the client
	DefaultUserAgent = "interesting/dev"
)

// Option configures a Client or HTTPService.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	endpoint     string
	timeout      time.Duration
	userAgent    string
	httpClient   *http.Client
	breaker      *gobreaker.Settings
	httpExec     exec.Executor
	callbackExec exec.Executor
}

func defaultOptions() clientOptions {
	return clientOptions{
		endpoint:     DefaultEndpoint,
		timeout:      DefaultTimeout,
		userAgent:    DefaultUserAgent,
		httpExec:     exec.NewGo(),
		callbackExec: exec.Sync,
	}
}

// WithEndpoint overrides the REST endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) {
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying HTTP client. The timeout option is
// ignored when a custom client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithCircuitBreaker stops issuing requests after consecutive network
// failures until the cool-down elapses.
func WithCircuitBreaker(name string, failures uint32, coolDown time.Duration) Option {
	return func(o *clientOptions) {
		if failures == 0 {
			return
		}
		o.breaker = &gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     coolDown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		}
	}
}

// WithExecutors sets where requests run and where callbacks are delivered.
// Tests pass exec.Sync for both.
func WithExecutors(httpExec, callbackExec exec.Executor) Option {
	return func(o *clientOptions) {
		if httpExec != nil {
			o.httpExec = httpExec
		}
		if callbackExec != nil {
			o.callbackExec = callbackExec
		}
	}
}
