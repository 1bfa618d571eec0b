// Package allocator provides the memory allocator abstraction that the
// runtime libraries are initialized against.
//
// Go memory is garbage collected, so an Allocator is primarily an
// accounting and fault-injection seam: components acquire their
// bookkeeping through it, which lets a [Tracer] detect leaked resources and
// [Failing] force construction failures.
package allocator

import (
	"sync/atomic"

	"github.com/joeycumines/go-crt/errcode"
)

type (
	// Allocator acquires and releases raw memory blocks.
	//
	// Implementations must be safe for concurrent use. Failures must be
	// reported via errcode.Raise, so that they are also visible as the
	// calling goroutine's last error.
	Allocator interface {
		// Acquire returns a zeroed block of exactly size bytes.
		Acquire(size int) ([]byte, error)

		// Release returns a block obtained from Acquire or Realloc.
		// Releasing a nil block is a no-op.
		Release(block []byte)

		// Realloc resizes a block, preserving its contents up to the
		// smaller of the two sizes. A nil block behaves like Acquire.
		Realloc(block []byte, size int) ([]byte, error)
	}

	defaultAllocator struct{}

	failingAllocator struct{}

	processSlot struct {
		Allocator
	}
)

var (
	defaultInstance Allocator = defaultAllocator{}

	process atomic.Pointer[processSlot]
)

// Default returns the heap allocator.
func Default() Allocator { return defaultInstance }

// Failing returns an allocator that fails every acquisition with
// errcode.OOM.
func Failing() Allocator { return failingAllocator{} }

// SetProcess installs the process-wide allocator, or clears it, if nil.
//
// WARNING: Only one owner (normally a crt.APIHandle) should manage the slot
// at a time.
func SetProcess(a Allocator) {
	if a == nil {
		process.Store(nil)
		return
	}
	process.Store(&processSlot{a})
}

// Process returns the process-wide allocator, or nil if none is installed.
func Process() Allocator {
	if slot := process.Load(); slot != nil {
		return slot.Allocator
	}
	return nil
}

// ProcessOrDefault returns Process, falling back to Default.
func ProcessOrDefault() Allocator {
	if a := Process(); a != nil {
		return a
	}
	return Default()
}

func (defaultAllocator) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errcode.Raise(errcode.InvalidArgument)
	}
	return make([]byte, size), nil
}

func (defaultAllocator) Release([]byte) {}

func (x defaultAllocator) Realloc(block []byte, size int) ([]byte, error) {
	if block == nil {
		return x.Acquire(size)
	}
	if size <= 0 {
		return nil, errcode.Raise(errcode.InvalidArgument)
	}
	if size <= cap(block) {
		n := len(block)
		block = block[:size]
		if size > n {
			clear(block[n:])
		}
		return block, nil
	}
	b := make([]byte, size)
	copy(b, block)
	return b, nil
}

func (failingAllocator) Acquire(int) ([]byte, error) {
	return nil, errcode.Raise(errcode.OOM)
}

func (failingAllocator) Release([]byte) {}

func (failingAllocator) Realloc([]byte, int) ([]byte, error) {
	return nil, errcode.Raise(errcode.OOM)
}
