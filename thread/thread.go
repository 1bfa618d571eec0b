// Package thread tracks the background goroutines ("managed threads")
// started by the runtime libraries, so that a process can wait for all of
// them to exit before tearing the libraries down.
package thread

import (
	"sync"

	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/logging"
)

// Tracker counts goroutines started via Go, until they return. The zero
// value is ready to use.
type Tracker struct {
	cond  *sync.Cond
	mu    sync.Mutex
	count int
}

var defaultTracker Tracker

// Go runs fn on a new goroutine, tracked by the package default Tracker.
func Go(name string, fn func()) { defaultTracker.Go(name, fn) }

// Count returns the number of running goroutines started via Go.
func Count() int { return defaultTracker.Count() }

// ShutdownWait blocks until every goroutine started via Go has returned.
// It is a process-wide barrier, and cannot be canceled.
func ShutdownWait() { defaultTracker.Wait() }

// Go runs fn on a new goroutine, which is counted until fn returns (or
// panics). The name is used for logging only.
func (x *Tracker) Go(name string, fn func()) {
	x.mu.Lock()
	x.count++
	x.mu.Unlock()

	go func() {
		defer x.done(name)
		logging.Logf(logging.Trace, logging.SubjectThread, `thread %q started`, name)
		fn()
	}()
}

// Count returns the number of running goroutines.
func (x *Tracker) Count() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.count
}

// Wait blocks until the count reaches zero. Goroutines started while
// waiting are also waited for.
func (x *Tracker) Wait() {
	x.mu.Lock()
	defer x.mu.Unlock()
	for x.count > 0 {
		x.condLocked().Wait()
	}
}

func (x *Tracker) done(name string) {
	logging.Logf(logging.Trace, logging.SubjectThread, `thread %q exiting`, name)
	errcode.Reset()
	x.mu.Lock()
	defer x.mu.Unlock()
	x.count--
	if x.count == 0 && x.cond != nil {
		x.cond.Broadcast()
	}
}

func (x *Tracker) condLocked() *sync.Cond {
	if x.cond == nil {
		x.cond = sync.NewCond(&x.mu)
	}
	return x.cond
}
