package crtio

import (
	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/group"
	"github.com/joeycumines/go-crt/internal/library"
)

var lib = library.New(library.Config{
	Name:     `crt-io`,
	Errors:   group.Errors,
	Subjects: group.Subjects,
})

// LibraryInit initializes the IO library, using alloc, or the process
// allocator, if nil. Calls are reference counted, and each successful call
// must be paired with LibraryCleanUp.
func LibraryInit(alloc allocator.Allocator) error { return lib.Init(alloc) }

// LibraryCleanUp releases a reference obtained by LibraryInit.
func LibraryCleanUp() { lib.CleanUp() }

// LibraryAllocator returns the allocator the library was initialized with,
// or nil.
func LibraryAllocator() allocator.Allocator { return lib.Allocator() }
