// Package group implements the event loop group: a reference counted pool of
// [eventloop.Loop] instances, each running on its own managed goroutine
// (locked to an OS thread, by the loop itself).
//
// A Group is shared by reference. Every holder calls [Group.Release] once;
// the final release tears the loops down asynchronously, and then invokes
// the optional shutdown callback, on a goroutine tracked by package thread.
//
// This package also owns the error codes and log subjects of the IO
// library, which are registered by crtio.LibraryInit.
//
// [eventloop.Loop]: https://pkg.go.dev/github.com/joeycumines/go-eventloop#Loop
package group
