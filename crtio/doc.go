// Package crtio is the IO library: it owns the event loop group error
// table and log subjects, and provides EventLoopGroup, the single owner
// handle to a group.Group.
//
// Handles must not be copied, only moved, using Move or MoveFrom. Copies
// are rejected by go vet (copylocks).
package crtio
