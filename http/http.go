// Package http is the HTTP library of the runtime. It depends on crtio,
// which it initializes, and owns the HTTP error codes and log subjects.
package http

import (
	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/crtio"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/internal/library"
	"github.com/joeycumines/go-crt/logging"
)

const (
	ErrorUnknown = errcode.Code(errcode.PackageHTTP)*errcode.PackageSize + iota
	ErrorHeaderNotFound
	ErrorInvalidHeaderField
	ErrorInvalidHeaderName
	ErrorInvalidHeaderValue
	ErrorInvalidMethod
	ErrorInvalidPath
	ErrorInvalidStatusCode
	ErrorMissingBodyStream
	ErrorConnectionClosed
	ErrorSwitchedProtocols
	ErrorUnsupportedProtocol
	ErrorConnectionManagerShuttingDown
	ErrorProtocolError
	ErrorStreamIDsExhausted
	ErrorProxyConnectFailed
)

const (
	SubjectGeneral = logging.Subject(errcode.PackageHTTP)*errcode.PackageSize + iota
	SubjectConnection
	SubjectEncoder
	SubjectDecoder
	SubjectServer
	SubjectStream
	SubjectConnectionManager
	SubjectProxyNegotiation
)

var (
	Errors = &errcode.List{
		Library: `crt-http`,
		Infos: []errcode.Info{
			{Code: ErrorUnknown, Name: `HTTP_UNKNOWN`, Message: `Encountered an unknown error.`},
			{Code: ErrorHeaderNotFound, Name: `HTTP_HEADER_NOT_FOUND`, Message: `The specified header was not found.`},
			{Code: ErrorInvalidHeaderField, Name: `HTTP_INVALID_HEADER_FIELD`, Message: `Invalid header field, including a forbidden header field.`},
			{Code: ErrorInvalidHeaderName, Name: `HTTP_INVALID_HEADER_NAME`, Message: `Invalid header name.`},
			{Code: ErrorInvalidHeaderValue, Name: `HTTP_INVALID_HEADER_VALUE`, Message: `Invalid header value.`},
			{Code: ErrorInvalidMethod, Name: `HTTP_INVALID_METHOD`, Message: `Method is invalid.`},
			{Code: ErrorInvalidPath, Name: `HTTP_INVALID_PATH`, Message: `Path is invalid.`},
			{Code: ErrorInvalidStatusCode, Name: `HTTP_INVALID_STATUS_CODE`, Message: `Status code is invalid.`},
			{Code: ErrorMissingBodyStream, Name: `HTTP_MISSING_BODY_STREAM`, Message: `Given the provided headers (ex: Content-Length), a body is expected.`},
			{Code: ErrorConnectionClosed, Name: `HTTP_CONNECTION_CLOSED`, Message: `The connection has closed or is closing.`},
			{Code: ErrorSwitchedProtocols, Name: `HTTP_SWITCHED_PROTOCOLS`, Message: `The connection has switched protocols.`},
			{Code: ErrorUnsupportedProtocol, Name: `HTTP_UNSUPPORTED_PROTOCOL`, Message: `An unsupported protocol was encountered.`},
			{Code: ErrorConnectionManagerShuttingDown, Name: `HTTP_CONNECTION_MANAGER_SHUTTING_DOWN`, Message: `Connection acquisition failed because connection manager is shutting down.`},
			{Code: ErrorProtocolError, Name: `HTTP_PROTOCOL_ERROR`, Message: `Protocol rules violated by peer.`},
			{Code: ErrorStreamIDsExhausted, Name: `HTTP_STREAM_IDS_EXHAUSTED`, Message: `Connection exhausted all possible stream IDs. Establish a new connection for new streams.`},
			{Code: ErrorProxyConnectFailed, Name: `HTTP_PROXY_CONNECT_FAILED`, Message: `Failed to establish http proxy connection.`},
		},
	}

	Subjects = &logging.SubjectList{
		Infos: []logging.SubjectInfo{
			{Subject: SubjectGeneral, Name: `http`, Description: `Misc HTTP logging`},
			{Subject: SubjectConnection, Name: `http-connection`, Description: `HTTP client or server connection`},
			{Subject: SubjectEncoder, Name: `http-encoder`, Description: `HTTP data encoder`},
			{Subject: SubjectDecoder, Name: `http-decoder`, Description: `HTTP data decoder`},
			{Subject: SubjectServer, Name: `http-server`, Description: `HTTP server socket listening for incoming connections`},
			{Subject: SubjectStream, Name: `http-stream`, Description: `HTTP request-response exchange`},
			{Subject: SubjectConnectionManager, Name: `connection-manager`, Description: `HTTP connection manager`},
			{Subject: SubjectProxyNegotiation, Name: `http-proxy-negotiation`, Description: `HTTP proxy negotiation`},
		},
	}

	lib = library.New(library.Config{
		Name:     `crt-http`,
		Errors:   Errors,
		Subjects: Subjects,
		Depends:  crtio.LibraryInit,
		Release:  crtio.LibraryCleanUp,
	})
)

// LibraryInit initializes the HTTP library, and the IO library it depends
// on, using alloc, or the process allocator, if nil. Calls are reference
// counted, and each successful call must be paired with LibraryCleanUp.
func LibraryInit(alloc allocator.Allocator) error { return lib.Init(alloc) }

// LibraryCleanUp releases a reference obtained by LibraryInit.
func LibraryCleanUp() { lib.CleanUp() }

// LibraryAllocator returns the allocator the library was initialized with,
// or nil.
func LibraryAllocator() allocator.Allocator { return lib.Allocator() }
