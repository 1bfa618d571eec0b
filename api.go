package crt

import (
	"fmt"
	"io"
	"sync"

	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/auth"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/http"
	"github.com/joeycumines/go-crt/jsonutil"
	"github.com/joeycumines/go-crt/logging"
	"github.com/joeycumines/go-crt/mqtt"
	"github.com/joeycumines/go-crt/thread"
)

// ShutdownBehavior controls whether APIHandle.Close waits for the
// runtime's background goroutines.
type ShutdownBehavior int

const (
	// ShutdownBlocking waits, without a timeout, for every managed
	// goroutine in the process to exit. See thread.ShutdownWait.
	ShutdownBlocking ShutdownBehavior = iota
	// ShutdownNotBlocking returns without waiting.
	ShutdownNotBlocking
)

// APIHandle owns the runtime's process-wide state. Instances must be
// initialized using the New factory, and must be closed.
//
// WARNING: The process allocator and logger slots are global. Only one
// APIHandle should be live at a time, and its lifetime must be serialized
// with respect to any other use of the runtime.
type APIHandle struct {
	alloc    allocator.Allocator
	logger   logging.Logger
	mu       sync.Mutex
	behavior ShutdownBehavior
	closed   bool
}

// New installs the process allocator, initializes the HTTP, MQTT and auth
// libraries, then installs JSON memory hooks delegating to the allocator.
// If a library fails to initialize, the libraries already initialized are
// cleaned up, and the process allocator is cleared.
func New(opts ...Option) (*APIHandle, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	allocator.SetProcess(cfg.alloc)

	var cleanUps []func()
	rollback := func() {
		for i := len(cleanUps) - 1; i >= 0; i-- {
			cleanUps[i]()
		}
		allocator.SetProcess(nil)
	}

	for _, lib := range [...]struct {
		init    func(allocator.Allocator) error
		cleanUp func()
		name    string
	}{
		{http.LibraryInit, http.LibraryCleanUp, `http`},
		{mqtt.LibraryInit, mqtt.LibraryCleanUp, `mqtt`},
		{auth.LibraryInit, auth.LibraryCleanUp, `auth`},
	} {
		if err := lib.init(cfg.alloc); err != nil {
			rollback()
			return nil, fmt.Errorf(`crt: failed to initialize %s library: %w`, lib.name, err)
		}
		cleanUps = append(cleanUps, lib.cleanUp)
	}

	jsonutil.InitHooks(jsonutil.AllocatorHooks(cfg.alloc))

	return &APIHandle{
		alloc:    cfg.alloc,
		behavior: cfg.behavior,
	}, nil
}

// Close reverses New. With ShutdownBlocking, it first waits for every
// managed goroutine to exit. The process logger is uninstalled and cleaned
// up only if it is the receiver's, then the auth, MQTT and HTTP libraries
// are cleaned up, in that order, before the JSON hooks and the process
// allocator are cleared. The error, if any, is from closing the log file.
// Subsequent calls are no-ops.
func (x *APIHandle) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return nil
	}
	x.closed = true

	if x.behavior == ShutdownBlocking {
		thread.ShutdownWait()
	}

	// log lines emitted during cleanup are dropped
	err := x.disableLogging()

	auth.LibraryCleanUp()
	mqtt.LibraryCleanUp()
	http.LibraryCleanUp()

	jsonutil.InitHooks(nil)
	allocator.SetProcess(nil)

	return err
}

// EnableLogging configures the process logger to append to filename,
// replacing any logger previously configured by the receiver. Level
// logging.None disables logging. Failures are silent, but the code is
// available from LastError.
func (x *APIHandle) EnableLogging(level logging.Level, filename string) {
	_ = x.ConfigureLogging(logging.StandardOptions{Level: level, Filename: filename})
}

// EnableLoggingWriter is like EnableLogging, but writes to w, which is not
// closed.
func (x *APIHandle) EnableLoggingWriter(level logging.Level, w io.Writer) {
	_ = x.ConfigureLogging(logging.StandardOptions{Level: level, Writer: w})
}

// ConfigureLogging is EnableLogging with the full set of options, returning
// any error.
func (x *APIHandle) ConfigureLogging(options logging.StandardOptions) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return errcode.Raise(errcode.InvalidState)
	}

	if err := x.disableLogging(); err != nil {
		logging.Build(logging.Warn, logging.SubjectGeneral).Err(err).Log(`failed to close previous log file`)
	}

	if options.Level == logging.None {
		return nil
	}

	if err := x.logger.InitStandard(x.alloc, options); err != nil {
		return err
	}
	logging.Set(&x.logger)

	return nil
}

// LoggingLevel returns the level of the receiver's logger, if installed,
// otherwise logging.None.
func (x *APIHandle) LoggingLevel() logging.Level {
	x.mu.Lock()
	defer x.mu.Unlock()
	if logging.Get() != &x.logger {
		return logging.None
	}
	return x.logger.Level()
}

// SetShutdownBehavior sets the behavior of Close.
func (x *APIHandle) SetShutdownBehavior(behavior ShutdownBehavior) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.behavior = behavior
}

// ShutdownBehavior returns the behavior Close will use.
func (x *APIHandle) ShutdownBehavior() ShutdownBehavior {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.behavior
}

// Allocator returns the allocator the receiver installed.
func (x *APIHandle) Allocator() allocator.Allocator { return x.alloc }

// disableLogging uninstalls the embedded logger, if it is installed, then
// cleans it up.
func (x *APIHandle) disableLogging() error {
	if logging.Get() == &x.logger {
		logging.Set(nil)
	}
	return x.logger.CleanUp()
}

func (x ShutdownBehavior) String() string {
	switch x {
	case ShutdownBlocking:
		return `blocking`
	case ShutdownNotBlocking:
		return `not-blocking`
	default:
		return fmt.Sprintf(`ShutdownBehavior(%d)`, int(x))
	}
}
