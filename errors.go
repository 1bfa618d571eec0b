package crt

import (
	"github.com/joeycumines/go-crt/errcode"
)

// ErrorDebugString formats a code as "<library>: <NAME>, <message>".
func ErrorDebugString(code errcode.Code) string { return errcode.DebugString(code) }

// LastError returns the last code raised on the calling goroutine, or
// errcode.Success.
func LastError() errcode.Code { return errcode.Last() }

// LastErrorOrUnknown is LastError, but returns errcode.Unknown instead of
// errcode.Success, for reporting a failure that raised no code.
func LastErrorOrUnknown() errcode.Code {
	if code := errcode.Last(); code != errcode.Success {
		return code
	}
	return errcode.Unknown
}
