package allocator

import (
	"sync"
	"unsafe"
)

// Tracer wraps an Allocator, tracking outstanding blocks, so that leaks can
// be detected, e.g. in tests. Instances must be initialized using the
// NewTracer factory.
type Tracer struct {
	inner  Allocator
	blocks map[*byte]int
	mu     sync.Mutex
	bytes  int64
	total  int64
}

var _ Allocator = (*Tracer)(nil)

// NewTracer wraps inner, which defaults to Default if nil.
func NewTracer(inner Allocator) *Tracer {
	if inner == nil {
		inner = Default()
	}
	return &Tracer{
		inner:  inner,
		blocks: make(map[*byte]int),
	}
}

func (x *Tracer) Acquire(size int) ([]byte, error) {
	block, err := x.inner.Acquire(size)
	if err != nil {
		return nil, err
	}
	x.mu.Lock()
	x.track(block)
	x.mu.Unlock()
	return block, nil
}

func (x *Tracer) Release(block []byte) {
	if block == nil {
		return
	}
	x.mu.Lock()
	tracked := x.untrack(block)
	x.mu.Unlock()
	if tracked {
		x.inner.Release(block)
	}
}

func (x *Tracer) Realloc(block []byte, size int) ([]byte, error) {
	if block == nil {
		return x.Acquire(size)
	}
	b, err := x.inner.Realloc(block, size)
	if err != nil {
		return nil, err
	}
	x.mu.Lock()
	x.untrack(block)
	x.track(b)
	x.mu.Unlock()
	return b, nil
}

// Count returns the number of outstanding blocks.
func (x *Tracer) Count() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.blocks)
}

// Bytes returns the number of outstanding bytes.
func (x *Tracer) Bytes() int64 {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.bytes
}

// Acquisitions returns the number of successful Acquire and Realloc calls.
func (x *Tracer) Acquisitions() int64 {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.total
}

func (x *Tracer) track(block []byte) {
	x.blocks[unsafe.SliceData(block)] = len(block)
	x.bytes += int64(len(block))
	x.total++
}

func (x *Tracer) untrack(block []byte) bool {
	key := unsafe.SliceData(block)
	size, ok := x.blocks[key]
	if ok {
		delete(x.blocks, key)
		x.bytes -= int64(size)
	}
	return ok
}
