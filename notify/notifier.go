// Package notify turns failed flickr calls into user-visible notifications.
//
// Network, HTTP and conversion failures are shown and swallowed. An
// unexpected failure is never shown: Notify returns it, and the callback
// built by Notifier.Callback panics with it so the process crashes.
package notify

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/interesting/flickr"
)

// HTTPErrorText is shown for every HTTP failure regardless of status
const HTTPErrorText = "Http Error"

// Notifier classifies failures and shows notifications for recoverable ones
type Notifier struct {
	toaster  Toaster
	duration time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// Option configures a Notifier
type Option func(*Notifier)

// WithDuration sets how long notifications stay visible
func WithDuration(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.duration = d
		}
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		if now != nil {
			n.now = now
		}
	}
}

// NewNotifier creates a notifier showing messages on toaster
func NewNotifier(toaster Toaster, logger zerolog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		toaster:  toaster,
		duration: DefaultDuration,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify handles one failure. For network, HTTP and conversion failures it
// shows a notification and returns it with a nil error. For an unexpected
// failure nothing is shown and the failure is returned as the error.
func (n *Notifier) Notify(f flickr.Failure) (Notification, error) {
	if flickr.IsNil(f) {
		return n.unexpected(&flickr.UnexpectedFailure{Cause: errors.New("nil failure")})
	}

	var text string

	switch f := f.(type) {
	case *flickr.NetworkFailure:
		text = f.Error()
	case *flickr.HTTPFailure:
		text = HTTPErrorText
	case *flickr.ConversionFailure:
		text = f.Error()
	case *flickr.UnexpectedFailure:
		return n.unexpected(f)
	default:
		return n.unexpected(&flickr.UnexpectedFailure{Cause: f})
	}

	notification := Notification{
		Kind:     flickr.KindOf(f),
		Text:     text,
		ShownAt:  n.now(),
		Duration: n.duration,
	}

	n.logger.Warn().
		Err(f).
		Str("kind", string(notification.Kind)).
		Str("text", text).
		Msg("Showing failure notification")

	n.toaster.Show(notification)
	return notification, nil
}

func (n *Notifier) unexpected(f *flickr.UnexpectedFailure) (Notification, error) {
	n.logger.Error().Err(f).Msg("Unexpected failure")
	return Notification{}, f
}

// Callback returns a flickr.Callback that passes successes to onSuccess and
// failures to Notify. An unexpected failure is re-raised with panic.
func (n *Notifier) Callback(onSuccess func(*flickr.PhotoPage, *flickr.Response)) flickr.Callback {
	return flickr.CallbackFuncs{
		OnSuccess: onSuccess,
		OnFailure: n.MustNotify,
	}
}

// MustNotify is like Notify but panics with the failure when it is unexpected
func (n *Notifier) MustNotify(f flickr.Failure) {
	if _, err := n.Notify(f); err != nil {
		panic(err)
	}
}
