package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/s0up4200/interesting/flickr"
)

// DefaultDuration is how long a notification stays visible
const DefaultDuration = 3500 * time.Millisecond

// Notification is a transient, user-visible message
type Notification struct {
	Kind     flickr.Kind
	Text     string
	ShownAt  time.Time
	Duration time.Duration
}

// Expired reports whether the notification is no longer visible at now
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ShownAt.Add(n.Duration))
}

// Toaster displays notifications
type Toaster interface {
	Show(n Notification)
}

// ConsoleToaster prints notifications to a writer
type ConsoleToaster struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleToaster creates a toaster writing to out
func NewConsoleToaster(out io.Writer) *ConsoleToaster {
	return &ConsoleToaster{out: out}
}

// Show implements Toaster
func (c *ConsoleToaster) Show(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "⚠️  %s\n", n.Text)
}

// Recorder keeps the most recent notification. Each Show replaces the
// previous one.
type Recorder struct {
	mu     sync.Mutex
	latest *Notification
	count  int
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Show implements Toaster
func (r *Recorder) Show(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest = &n
	r.count++
}

// Latest returns the most recent notification, if any
func (r *Recorder) Latest() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.latest == nil {
		return Notification{}, false
	}
	return *r.latest, true
}

// LatestText returns the text of the most recent notification, or ""
func (r *Recorder) LatestText() string {
	n, _ := r.Latest()
	return n.Text
}

// Count returns how many notifications were shown
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Visible returns the latest notification if it has not expired at now
func (r *Recorder) Visible(now time.Time) (Notification, bool) {
	n, ok := r.Latest()
	if !ok || n.Expired(now) {
		return Notification{}, false
	}
	return n, true
}
