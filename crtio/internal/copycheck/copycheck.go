//go:build copycheck

// Package copycheck is loaded by the crtio tests, with the copycheck tag,
// and must produce copylocks diagnostics for every function.
package copycheck

import (
	"github.com/joeycumines/go-crt/crtio"
)

func byValue(g crtio.EventLoopGroup) {}

func deref(g *crtio.EventLoopGroup) crtio.EventLoopGroup { return *g }

func assign(g *crtio.EventLoopGroup) {
	c := *g
	_ = c
}

var (
	_ = byValue
	_ = deref
	_ = assign
)
