package errcode

import (
	"runtime"
	"sync"
)

// lastErrors maps goroutine id to the last raised code. Success entries are
// deleted rather than stored.
var lastErrors sync.Map

// Raise records code as the last error of the calling goroutine, returning
// it as an error. Raising Success resets the slot and returns nil.
//
// Slots are keyed by goroutine and are not removed when a goroutine exits.
// Goroutines started via thread.Go are reset on exit; any other goroutine
// that may raise a code, and which exits while the process continues,
// must call Reset before exiting.
func Raise(code Code) error {
	id := goroutineID()
	if code == Success {
		lastErrors.Delete(id)
		return nil
	}
	lastErrors.Store(id, code)
	return &Error{Code: code}
}

// Last returns the last code raised on the calling goroutine, or Success.
func Last() Code {
	if v, ok := lastErrors.Load(goroutineID()); ok {
		return v.(Code)
	}
	return Success
}

// Reset clears the calling goroutine's last error.
func Reset() {
	lastErrors.Delete(goroutineID())
}

// Count returns the number of goroutines with a recorded code.
func Count() int {
	var n int
	lastErrors.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

// goroutineID parses the current goroutine's id out of its stack header.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}
