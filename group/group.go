package group

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/logging"
	"github.com/joeycumines/go-crt/thread"
	"github.com/joeycumines/go-eventloop"
)

// groupBlockSize is the bookkeeping acquired from the allocator, per loop.
const groupBlockSize = 128

type (
	// ShutdownCallbackOptions registers a function to be called once the
	// group has fully shut down, i.e. after every loop goroutine exited.
	ShutdownCallbackOptions struct {
		Fn       func(userData any)
		UserData any
	}

	// Group is a reference counted pool of event loops. Instances must be
	// initialized using the NewDefault factory.
	Group struct {
		// betteralign:ignore

		alloc    allocator.Allocator
		shutdown *ShutdownCallbackOptions
		block    []byte
		loops    []*eventloop.Loop
		exited   []chan struct{}
		refs     atomic.Int64
		next     atomic.Uint64
	}
)

// NewDefault creates a group of threadCount loops, or one per CPU, if
// threadCount is 0, with a single reference held by the caller. On failure,
// the error is also raised on the calling goroutine, and the shutdown
// callback is never invoked.
func NewDefault(alloc allocator.Allocator, threadCount uint16, shutdown *ShutdownCallbackOptions) (*Group, error) {
	if alloc == nil {
		alloc = allocator.ProcessOrDefault()
	}

	n := int(threadCount)
	if n == 0 {
		n = runtime.NumCPU()
	}

	block, err := alloc.Acquire(groupBlockSize * n)
	if err != nil {
		logging.Build(logging.Error, SubjectEventLoopGroup).Err(err).Log(`failed to allocate event loop group`)
		return nil, err
	}

	x := &Group{
		alloc:    alloc,
		shutdown: shutdown,
		block:    block,
		loops:    make([]*eventloop.Loop, 0, n),
		exited:   make([]chan struct{}, n),
	}

	for len(x.loops) < n {
		loop, err := eventloop.New()
		if err != nil {
			for _, loop := range x.loops {
				_ = loop.Close()
			}
			alloc.Release(block)
			logging.Build(logging.Error, SubjectEventLoopGroup).
				Err(err).
				Int(`index`, len(x.loops)).
				Log(`failed to create event loop`)
			return nil, errors.Join(errcode.Raise(ErrorEventLoopGroupCreationFailed), err)
		}
		x.loops = append(x.loops, loop)
	}

	for i, loop := range x.loops {
		exited := make(chan struct{})
		x.exited[i] = exited
		thread.Go(fmt.Sprintf(`event-loop-%d`, i), func() {
			defer close(exited)
			if err := loop.Run(context.Background()); err != nil && !errors.Is(err, eventloop.ErrLoopTerminated) {
				logging.Build(logging.Error, SubjectEventLoop).Err(err).Int(`index`, i).Log(`event loop exited with error`)
			}
		})
	}

	x.refs.Store(1)

	logging.Build(logging.Info, SubjectEventLoopGroup).Int(`loops`, n).Log(`event loop group created`)

	return x, nil
}

// Acquire adds a reference, returning the receiver.
func (x *Group) Acquire() *Group {
	if x != nil {
		if x.refs.Add(1) <= 1 {
			panic(`group: acquire after final release`)
		}
	}
	return x
}

// Release drops a reference. The final release starts the asynchronous
// shutdown. Releasing a nil Group is a no-op.
func (x *Group) Release() {
	if x == nil {
		return
	}
	switch refs := x.refs.Add(-1); {
	case refs == 0:
		thread.Go(`event-loop-group-cleanup`, x.destroy)
	case refs < 0:
		panic(`group: release after final release`)
	}
}

// LoopCount returns the number of loops in the group.
func (x *Group) LoopCount() int { return len(x.loops) }

// LoopAt returns the loop at index, which must be in [0, LoopCount).
func (x *Group) LoopAt(index int) *eventloop.Loop { return x.loops[index] }

// NextLoop returns loops in round-robin order, for spreading work.
func (x *Group) NextLoop() *eventloop.Loop {
	return x.loops[(x.next.Add(1)-1)%uint64(len(x.loops))]
}

// Submit schedules task on the next loop.
func (x *Group) Submit(task func()) error {
	if x.refs.Load() <= 0 {
		return errcode.Raise(ErrorEventLoopGroupReleased)
	}
	if err := x.NextLoop().Submit(task); err != nil {
		return errors.Join(errcode.Raise(ErrorEventLoopShutdown), err)
	}
	return nil
}

func (x *Group) destroy() {
	logging.Build(logging.Debug, SubjectEventLoopGroup).Int(`loops`, len(x.loops)).Log(`event loop group shutting down`)

	for i, loop := range x.loops {
		if err := loop.Shutdown(context.Background()); err != nil && !errors.Is(err, eventloop.ErrLoopTerminated) {
			logging.Build(logging.Warn, SubjectEventLoop).Err(err).Int(`index`, i).Log(`event loop shutdown failed`)
		}
		<-x.exited[i]
	}

	x.alloc.Release(x.block)
	x.block = nil

	logging.Build(logging.Debug, SubjectEventLoopGroup).Log(`event loop group shut down`)

	if x.shutdown != nil && x.shutdown.Fn != nil {
		x.shutdown.Fn(x.shutdown.UserData)
	}
}
