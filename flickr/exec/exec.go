// Package exec models execution contexts for API calls.
//
// A caller marks the context it runs interactive work on as primary with
// WithPrimary. Blocking network calls must never be started from a primary
// context; the flickr client checks IsPrimary before doing any I/O.
package exec

import (
	"context"
	"sync"
)

// Identity names the execution context a piece of code runs on
type Identity string

const (
	// Unspecified is the identity of a context that was never marked
	Unspecified Identity = ""
	// Primary is the interactive context (UI loop, command main goroutine)
	Primary Identity = "primary"
	// Worker is a background context that may block on I/O
	Worker Identity = "worker"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the given identity
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// WithPrimary marks ctx as the primary execution context
func WithPrimary(ctx context.Context) context.Context {
	return WithIdentity(ctx, Primary)
}

// WithWorker marks ctx as a background execution context
func WithWorker(ctx context.Context) context.Context {
	return WithIdentity(ctx, Worker)
}

// IdentityOf returns the identity carried by ctx
func IdentityOf(ctx context.Context) Identity {
	if ctx == nil {
		return Unspecified
	}
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}

// IsPrimary reports whether ctx is the primary execution context
func IsPrimary(ctx context.Context) bool {
	return IdentityOf(ctx) == Primary
}

// Executor runs units of work
type Executor interface {
	Execute(fn func())
}

// ExecutorFunc adapts a function to the Executor interface
type ExecutorFunc func(fn func())

// Execute implements Executor
func (f ExecutorFunc) Execute(fn func()) {
	f(fn)
}

// Sync runs every unit of work inline on the calling goroutine.
// Tests use it for both dispatch and delivery so callbacks complete before
// the call returns.
var Sync Executor = ExecutorFunc(func(fn func()) { fn() })

// Go runs each unit of work on its own goroutine
type Go struct {
	wg sync.WaitGroup
}

// NewGo creates a goroutine executor
func NewGo() *Go {
	return &Go{}
}

// Execute implements Executor
func (g *Go) Execute(fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		fn()
	}()
}

// Wait blocks until all work started by this executor has returned
func (g *Go) Wait() {
	g.wg.Wait()
}
