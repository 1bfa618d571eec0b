package logging

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// loggerBlockSize is the bookkeeping acquired from the allocator by each
// initialized Logger.
const loggerBlockSize = 256

type (
	// StandardOptions configures Logger.InitStandard. Exactly one of
	// Filename or Writer must be set.
	StandardOptions struct {
		// Writer receives log lines, and is not closed by the logger.
		Writer io.Writer

		// RateLimits enables caller-category rate limiting, for builders
		// obtained via Build, if non-empty. See logiface.Builder.Limit.
		RateLimits map[time.Duration]int

		// Filename is opened for append (created if necessary), and is
		// closed by Logger.CleanUp.
		Filename string

		Level Level
	}

	// Logger is the standard logger, writing one JSON object per line.
	//
	// The zero value is an uninitialized logger, which discards everything.
	// A Logger must not be copied. It may be reinitialized (CleanUp then
	// InitStandard) while other goroutines log: those holding the previous
	// state finish against it, and their lines may be dropped once its
	// file is closed.
	Logger struct {
		state atomic.Pointer[loggerState]
	}

	// loggerState is immutable once published.
	loggerState struct {
		log   *logiface.Logger[*stumpy.Event]
		alloc allocator.Allocator
		file  *os.File
		block []byte
		level Level
	}

	lockedWriter struct {
		w  io.Writer
		mu sync.Mutex
	}
)

var installed atomic.Pointer[Logger]

// Set installs the process-wide logger, or uninstalls it, if nil.
func Set(logger *Logger) { installed.Store(logger) }

// Get returns the process-wide logger, or nil.
func Get() *Logger { return installed.Load() }

// Build starts a message on the process-wide logger. The returned builder
// is nil (and safe to use) if the message would not be logged.
func Build(level Level, subject Subject) *logiface.Builder[*stumpy.Event] {
	return Get().Build(level, subject)
}

// Logf logs a formatted message on the process-wide logger.
func Logf(level Level, subject Subject, format string, args ...any) {
	Get().build(level, subject).Logf(format, args...)
}

// InitStandard initializes the receiver as a standard logger. Failures are
// also raised on the calling goroutine, see errcode.Raise.
func (x *Logger) InitStandard(alloc allocator.Allocator, options StandardOptions) error {
	if x.state.Load() != nil {
		return errcode.Raise(errcode.InvalidState)
	}
	if (options.Filename == ``) == (options.Writer == nil) {
		return errcode.Raise(errcode.InvalidArgument)
	}
	if alloc == nil {
		alloc = allocator.Default()
	}

	block, err := alloc.Acquire(loggerBlockSize)
	if err != nil {
		return err
	}

	w := options.Writer
	var file *os.File
	if options.Filename != `` {
		file, err = os.OpenFile(options.Filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			alloc.Release(block)
			return errors.Join(errcode.Raise(fileErrorCode(err)), err)
		}
		w = file
	}

	loggerOptions := []logiface.Option[*stumpy.Event]{
		stumpy.L.WithStumpy(stumpy.WithWriter(&lockedWriter{w: w})),
		stumpy.L.WithLevel(options.Level.Logiface()),
	}
	if len(options.RateLimits) != 0 {
		loggerOptions = append(loggerOptions, stumpy.L.WithCategoryRateLimits(options.RateLimits))
	}

	state := &loggerState{
		log:   stumpy.L.New(loggerOptions...),
		alloc: alloc,
		file:  file,
		block: block,
		level: options.Level,
	}
	if !x.state.CompareAndSwap(nil, state) {
		_ = state.release()
		return errcode.Raise(errcode.InvalidState)
	}

	return nil
}

// CleanUp releases everything acquired by InitStandard, resetting the
// receiver to the uninitialized state. Calling it on an uninitialized
// logger is a no-op.
func (x *Logger) CleanUp() error {
	if x == nil {
		return nil
	}
	state := x.state.Swap(nil)
	if state == nil {
		return nil
	}
	return state.release()
}

// Level returns the configured level, None if uninitialized.
func (x *Logger) Level() Level {
	if x == nil {
		return None
	}
	if state := x.state.Load(); state != nil {
		return state.level
	}
	return None
}

// Build starts a message tagged with subject. Rate limiting applies if it
// was configured, with the caller of Log as the category.
func (x *Logger) Build(level Level, subject Subject) *logiface.Builder[*stumpy.Event] {
	return x.build(level, subject).Limit()
}

func (x *Logger) build(level Level, subject Subject) *logiface.Builder[*stumpy.Event] {
	if x == nil || level <= None {
		return nil
	}
	state := x.state.Load()
	if state == nil || level > state.level {
		return nil
	}
	return state.log.Build(level.Logiface()).Str(`subject`, subject.String())
}

func (x *loggerState) release() error {
	var err error
	if x.file != nil {
		err = x.file.Close()
	}
	x.alloc.Release(x.block)
	return err
}

func (x *lockedWriter) Write(p []byte) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.w.Write(p)
}

func fileErrorCode(err error) errcode.Code {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errcode.FileInvalidPath
	case errors.Is(err, fs.ErrPermission):
		return errcode.NoPermission
	default:
		return errcode.SysCallFailure
	}
}
