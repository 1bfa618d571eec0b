package crtio

import (
	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/group"
	"github.com/joeycumines/go-crt/logging"
)

// shutdownWrapperSize is the size of the record acquired per handle that
// registers a shutdown callback.
const shutdownWrapperSize = 64

type (
	// ShutdownOptions registers a callback, invoked exactly once, on a
	// goroutine owned by the group, after every loop has stopped.
	ShutdownOptions struct {
		Callback func(userData any)
		UserData any
	}

	// EventLoopGroup owns a single reference to a group.Group. Instances
	// must be initialized using the NewEventLoopGroup factory, and must not
	// be copied.
	EventLoopGroup struct {
		_ noCopy

		group     *group.Group
		lastError errcode.Code
	}

	shutdownWrapper struct {
		alloc    allocator.Allocator
		callback func(userData any)
		userData any
		block    []byte
	}

	// noCopy may be embedded into structs which must not be copied after
	// first use. See https://golang.org/issues/8005#issuecomment-190753527.
	noCopy struct{}
)

// NewEventLoopGroup creates a group of threadCount loops (0 meaning one per
// CPU), using alloc, or the process allocator, if nil. The returned handle
// is always non-nil: on failure, it is invalid, and LastError reports why.
func NewEventLoopGroup(threadCount uint16, alloc allocator.Allocator, options *ShutdownOptions) *EventLoopGroup {
	if alloc == nil {
		alloc = allocator.ProcessOrDefault()
	}

	var (
		wrapper  *shutdownWrapper
		callback *group.ShutdownCallbackOptions
	)
	if options != nil {
		var err error
		wrapper, err = newShutdownWrapper(alloc, options)
		if err != nil {
			return &EventLoopGroup{lastError: errcode.Of(err)}
		}
		callback = &group.ShutdownCallbackOptions{
			Fn:       shutdownTrampoline,
			UserData: wrapper,
		}
	}

	g, err := group.NewDefault(alloc, threadCount, callback)
	if err != nil {
		// the group never saw the callback, so the wrapper is still ours
		wrapper.free()
		code := errcode.Last()
		if code == errcode.Success {
			code = errcode.Of(err)
		}
		logging.Build(logging.Error, group.SubjectEventLoopGroup).
			Str(`error_code`, code.String()).
			Log(`event loop group handle is invalid`)
		return &EventLoopGroup{lastError: code}
	}

	return &EventLoopGroup{group: g}
}

// Close releases the owned reference, if any. It is safe to call on an
// invalid, moved-from or already closed handle.
func (x *EventLoopGroup) Close() {
	if x == nil {
		return
	}
	g := x.group
	x.group = nil
	if x.lastError == errcode.Success {
		x.lastError = errcode.Unknown
	}
	g.Release()
}

// Move transfers ownership to a new handle, leaving the receiver invalid,
// with LastError reporting errcode.Unknown.
func (x *EventLoopGroup) Move() *EventLoopGroup {
	dst := new(EventLoopGroup)
	dst.MoveFrom(x)
	return dst
}

// MoveFrom transfers ownership from src into the receiver, first releasing
// whatever the receiver held. The source is left invalid, with LastError
// reporting errcode.Unknown. Moving a handle into itself is a no-op, and
// moving from nil leaves the receiver invalid, like a moved-from handle.
func (x *EventLoopGroup) MoveFrom(src *EventLoopGroup) {
	if x == src {
		return
	}
	x.group.Release()
	if src == nil {
		x.group, x.lastError = nil, errcode.Unknown
		return
	}
	x.group, x.lastError = src.group, src.lastError
	src.group, src.lastError = nil, errcode.Unknown
}

// Valid reports whether the handle owns a group.
func (x *EventLoopGroup) Valid() bool {
	return x != nil && x.lastError == errcode.Success && x.group != nil
}

// LastError returns the code recorded when construction failed, or
// errcode.Unknown after the handle was moved from or closed, otherwise
// errcode.Success.
func (x *EventLoopGroup) LastError() errcode.Code {
	if x == nil {
		return errcode.Unknown
	}
	return x.lastError
}

// UnderlyingHandle returns the owned group, or nil, if the handle is not
// valid. The reference remains owned by the handle: callers retaining it
// beyond the life of the handle must use group.Group.Acquire.
func (x *EventLoopGroup) UnderlyingHandle() *group.Group {
	if !x.Valid() {
		return nil
	}
	return x.group
}

func newShutdownWrapper(alloc allocator.Allocator, options *ShutdownOptions) (*shutdownWrapper, error) {
	block, err := alloc.Acquire(shutdownWrapperSize)
	if err != nil {
		return nil, err
	}
	return &shutdownWrapper{
		alloc:    alloc,
		callback: options.Callback,
		userData: options.UserData,
		block:    block,
	}, nil
}

func (x *shutdownWrapper) free() {
	if x == nil || x.block == nil {
		return
	}
	block := x.block
	x.block = nil
	x.alloc.Release(block)
}

// shutdownTrampoline adapts group.ShutdownCallbackOptions to the user
// callback, then frees the wrapper.
func shutdownTrampoline(userData any) {
	wrapper := userData.(*shutdownWrapper)
	defer wrapper.free()
	if wrapper.callback != nil {
		wrapper.callback(wrapper.userData)
	}
}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
