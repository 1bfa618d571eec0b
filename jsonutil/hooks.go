// Package jsonutil is a small JSON document model, ordered, with encoding
// performed in buffers obtained from configurable memory hooks.
package jsonutil

import (
	"sync/atomic"

	"github.com/joeycumines/go-crt/allocator"
)

// Hooks are the memory functions used by the encoder. A nil field uses
// the default heap.
type Hooks struct {
	// Malloc must return a block with a length of at least size.
	Malloc func(size int) ([]byte, error)
	// Free is called exactly once, for every block returned by Malloc.
	Free func(block []byte)
}

var hooks atomic.Pointer[Hooks]

// InitHooks installs the memory hooks. Passing nil restores the default.
func InitHooks(h *Hooks) {
	if h == nil {
		hooks.Store(nil)
		return
	}
	v := *h
	hooks.Store(&v)
}

// AllocatorHooks returns hooks delegating to alloc.
func AllocatorHooks(alloc allocator.Allocator) *Hooks {
	return &Hooks{
		Malloc: alloc.Acquire,
		Free:   alloc.Release,
	}
}

func malloc(size int) ([]byte, error) {
	if h := hooks.Load(); h != nil && h.Malloc != nil {
		return h.Malloc(size)
	}
	return allocator.Default().Acquire(size)
}

func free(block []byte) {
	if h := hooks.Load(); h != nil && h.Free != nil {
		h.Free(block)
		return
	}
	allocator.Default().Release(block)
}
