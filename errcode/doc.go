// Package errcode models the integer error codes shared by every library in
// the runtime family.
//
// Each library owns a contiguous range of [PackageSize] codes, identified by
// its [PackageID], and registers a [List] describing those codes when it is
// initialized. Codes are reported in two ways: as ordinary Go errors (see
// [Error] and [Of]), and via a per-goroutine "last error" slot, which
// mirrors the thread-local error state of the wrapped libraries (see [Raise]
// and [Last]).
package errcode
