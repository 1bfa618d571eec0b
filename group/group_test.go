package group

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/thread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault(t *testing.T) {
	tracer := allocator.NewTracer(nil)
	var calls atomic.Int32
	shutdownCh := make(chan any, 1)
	g, err := NewDefault(tracer, 2, &ShutdownCallbackOptions{
		Fn: func(userData any) {
			calls.Add(1)
			shutdownCh <- userData
		},
		UserData: `user data`,
	})
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 2, g.LoopCount())
	assert.Equal(t, 1, tracer.Count())

	done := make(chan struct{})
	require.NoError(t, g.Submit(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(time.Second * 5):
		t.Fatal(`task did not run`)
	}

	g.Release()

	select {
	case v := <-shutdownCh:
		assert.Equal(t, `user data`, v)
	case <-time.After(time.Second * 5):
		t.Fatal(`shutdown callback not invoked`)
	}

	thread.ShutdownWait()
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 0, tracer.Count())
	assert.Equal(t, 0, thread.Count())
}

func TestNewDefault_cpuCount(t *testing.T) {
	g, err := NewDefault(nil, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), g.LoopCount())
	g.Release()
	thread.ShutdownWait()
}

func TestNewDefault_allocationFailure(t *testing.T) {
	errcode.Reset()
	defer errcode.Reset()

	var called atomic.Bool
	g, err := NewDefault(allocator.Failing(), 1, &ShutdownCallbackOptions{Fn: func(any) { called.Store(true) }})
	assert.Nil(t, g)
	assert.Equal(t, errcode.OOM, errcode.Of(err))
	assert.Equal(t, errcode.OOM, errcode.Last())

	thread.ShutdownWait()
	assert.False(t, called.Load())
}

func TestGroup_refCount(t *testing.T) {
	shutdown := make(chan struct{})
	g, err := NewDefault(nil, 1, &ShutdownCallbackOptions{Fn: func(any) { close(shutdown) }})
	require.NoError(t, err)

	assert.Same(t, g, g.Acquire())
	g.Release()

	select {
	case <-shutdown:
		t.Fatal(`shut down while still referenced`)
	case <-time.After(time.Millisecond * 50):
	}

	ran := make(chan struct{})
	require.NoError(t, g.Submit(func() { close(ran) }))
	<-ran

	g.Release()
	<-shutdown
	thread.ShutdownWait()

	assert.Equal(t, ErrorEventLoopGroupReleased, errcode.Of(g.Submit(func() {})))
	assert.Panics(t, func() { g.Release() })
}

func TestGroup_Release_nil(t *testing.T) {
	var g *Group
	g.Release()
	assert.Nil(t, g.Acquire())
}

func TestGroup_NextLoop(t *testing.T) {
	g, err := NewDefault(nil, 3, nil)
	require.NoError(t, err)
	defer thread.ShutdownWait()
	defer g.Release()

	seen := make(map[any]int)
	for i := 0; i < 9; i++ {
		seen[g.NextLoop()]++
	}
	require.Len(t, seen, 3)
	for i := 0; i < g.LoopCount(); i++ {
		assert.Equal(t, 3, seen[g.LoopAt(i)])
	}
}

func TestCodes(t *testing.T) {
	require.NoError(t, errcode.Register(Errors))
	defer errcode.Unregister(Errors)
	assert.Equal(t, `crt-io: IO_EVENT_LOOP_SHUTDOWN, Event loop has shutdown and a resource was still using it.`, errcode.DebugString(ErrorEventLoopShutdown))
	assert.Equal(t, errcode.PackageIO, ErrorEventLoopGroupCreationFailed.Package())
	assert.Equal(t, errcode.PackageIO, SubjectEventLoopGroup.Package())
}
