package http

import (
	"testing"

	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/crtio"
	"github.com/joeycumines/go-crt/errcode"
)

func TestLibraryInit(t *testing.T) {
	tracer := allocator.NewTracer(nil)
	if err := LibraryInit(tracer); err != nil {
		t.Fatal(err)
	}
	if LibraryAllocator() != tracer {
		t.Error(`unexpected allocator`)
	}
	if crtio.LibraryAllocator() != tracer {
		t.Error(`io library not initialized with the same allocator`)
	}
	if s := errcode.DebugString(ErrorConnectionClosed); s != `crt-http: HTTP_CONNECTION_CLOSED, The connection has closed or is closing.` {
		t.Errorf(`unexpected debug string: %q`, s)
	}
	if s := SubjectStream.String(); s != `http-stream` {
		t.Errorf(`unexpected subject: %q`, s)
	}

	LibraryCleanUp()

	if LibraryAllocator() != nil || crtio.LibraryAllocator() != nil {
		t.Error(`expected libraries to be cleaned up`)
	}
	if s := errcode.DebugString(ErrorConnectionClosed); s != `Unknown Error Code` {
		t.Errorf(`unexpected debug string: %q`, s)
	}
}

func TestLibraryInit_nested(t *testing.T) {
	if err := crtio.LibraryInit(nil); err != nil {
		t.Fatal(err)
	}
	defer crtio.LibraryCleanUp()

	if err := LibraryInit(nil); err != nil {
		t.Fatal(err)
	}
	LibraryCleanUp()

	if crtio.LibraryAllocator() == nil {
		t.Error(`io library cleaned up while still referenced`)
	}
}

func TestErrors_contiguous(t *testing.T) {
	for i, info := range Errors.Infos {
		if want := errcode.PackageHTTP.Begin() + errcode.Code(i); info.Code != want {
			t.Errorf(`index %d: expected code %d, got %d`, i, want, info.Code)
		}
	}
}
