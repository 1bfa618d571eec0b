// Package library implements the reference counted init/cleanup shared by
// the runtime's libraries (io, http, mqtt, auth).
package library

import (
	"sync"

	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/logging"
)

type (
	// Config models a library. Every field except Name is optional.
	Config struct {
		Errors   *errcode.List
		Subjects *logging.SubjectList

		// Depends initializes the libraries this one depends on.
		Depends func(alloc allocator.Allocator) error

		// Release cleans up the libraries initialized by Depends.
		Release func()

		Name string
	}

	// Library tracks the initialization state of a library. Instances must
	// be initialized using the New factory.
	Library struct {
		alloc  allocator.Allocator
		config Config
		mu     sync.Mutex
		refs   int
	}
)

// New returns an uninitialized Library.
func New(config Config) *Library {
	if config.Name == `` {
		panic(`library: missing name`)
	}
	return &Library{config: config}
}

// Init initializes the library, if this is the first reference, using
// alloc (the process allocator, or the default, if nil). Every successful
// call must be paired with a CleanUp.
func (x *Library) Init(alloc allocator.Allocator) error {
	if alloc == nil {
		alloc = allocator.ProcessOrDefault()
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.refs > 0 {
		x.refs++
		return nil
	}

	if x.config.Depends != nil {
		if err := x.config.Depends(alloc); err != nil {
			return err
		}
	}

	if x.config.Errors != nil {
		if err := errcode.Register(x.config.Errors); err != nil {
			x.releaseDepends()
			return err
		}
	}

	if x.config.Subjects != nil {
		if err := logging.RegisterSubjects(x.config.Subjects); err != nil {
			errcode.Unregister(x.config.Errors)
			x.releaseDepends()
			return err
		}
	}

	x.alloc = alloc
	x.refs = 1

	logging.Build(logging.Debug, logging.SubjectGeneral).Str(`library`, x.config.Name).Log(`library initialized`)

	return nil
}

// CleanUp drops a reference, cleaning up once the last is dropped. Calling
// it on an uninitialized library is a no-op.
func (x *Library) CleanUp() {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.refs == 0 {
		return
	}
	x.refs--
	if x.refs > 0 {
		return
	}

	logging.Build(logging.Debug, logging.SubjectGeneral).Str(`library`, x.config.Name).Log(`library cleaned up`)

	logging.UnregisterSubjects(x.config.Subjects)
	errcode.Unregister(x.config.Errors)
	x.alloc = nil
	x.releaseDepends()
}

// Allocator returns the allocator passed to the initializing Init, or nil
// while uninitialized.
func (x *Library) Allocator() allocator.Allocator {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.alloc
}

// Initialized reports whether any references are held.
func (x *Library) Initialized() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.refs > 0
}

func (x *Library) releaseDepends() {
	if x.config.Release != nil {
		x.config.Release()
	}
}
