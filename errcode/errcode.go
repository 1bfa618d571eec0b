package errcode

import (
	"errors"
	"fmt"
	"sync"
)

// PackageSize is the number of codes reserved for each [PackageID].
const PackageSize = 1 << 10

const (
	PackageCommon PackageID = 0
	PackageIO     PackageID = 1
	PackageHTTP   PackageID = 2
	PackageMQTT   PackageID = 5
	PackageAuth   PackageID = 6
)

// Codes owned by the common package. These are always registered.
const (
	Success Code = iota
	OOM
	NoSpace
	Unknown
	ShortBuffer
	Overflow
	UnsupportedOperation
	InvalidArgument
	InvalidState
	FileInvalidPath
	NoPermission
	SysCallFailure
	ThreadInsufficientResource
)

type (
	// Code is an error code. The zero value is Success.
	Code int32

	// PackageID identifies the code range owned by a library.
	PackageID uint16

	// Info describes a single code.
	Info struct {
		Name    string
		Message string
		Code    Code
	}

	// List is the table of codes registered by a single library. The Infos
	// must be contiguous, starting at the first code, and must fall within
	// a single package range.
	List struct {
		Library string
		Infos   []Info
	}

	// Error adapts a Code to the error interface.
	Error struct {
		Code Code
	}
)

var (
	registryMu sync.RWMutex
	registry   = map[PackageID]*List{}

	commonList = &List{
		Library: `crt-common`,
		Infos: []Info{
			{Code: Success, Name: `ERROR_SUCCESS`, Message: `Success.`},
			{Code: OOM, Name: `ERROR_OOM`, Message: `Out of memory.`},
			{Code: NoSpace, Name: `ERROR_NO_SPACE`, Message: `Out of space on disk.`},
			{Code: Unknown, Name: `ERROR_UNKNOWN`, Message: `Unknown error.`},
			{Code: ShortBuffer, Name: `ERROR_SHORT_BUFFER`, Message: `Buffer is not large enough to hold result.`},
			{Code: Overflow, Name: `ERROR_OVERFLOW_DETECTED`, Message: `Fixed size value overflow was detected.`},
			{Code: UnsupportedOperation, Name: `ERROR_UNSUPPORTED_OPERATION`, Message: `Unsupported operation.`},
			{Code: InvalidArgument, Name: `ERROR_INVALID_ARGUMENT`, Message: `An invalid argument was passed to a function.`},
			{Code: InvalidState, Name: `ERROR_INVALID_STATE`, Message: `An invalid state was encountered.`},
			{Code: FileInvalidPath, Name: `ERROR_FILE_INVALID_PATH`, Message: `Invalid file path.`},
			{Code: NoPermission, Name: `ERROR_NO_PERMISSION`, Message: `User does not have permission to perform the requested action.`},
			{Code: SysCallFailure, Name: `ERROR_SYS_CALL_FAILURE`, Message: `System call failure.`},
			{Code: ThreadInsufficientResource, Name: `ERROR_THREAD_INSUFFICIENT_RESOURCE`, Message: `Insufficient resources for thread.`},
		},
	}
)

func init() {
	if err := Register(commonList); err != nil {
		panic(err)
	}
}

// Begin returns the first code in the package range.
func (x PackageID) Begin() Code { return Code(x) * PackageSize }

// Package returns the PackageID whose range contains the code.
func (x Code) Package() PackageID { return PackageID(x / PackageSize) }

// String returns the registered name of the code, or a numeric fallback.
func (x Code) String() string {
	if info, ok := lookup(x); ok {
		return info.Name
	}
	return fmt.Sprintf(`ERROR_CODE(%d)`, int32(x))
}

// Register installs a List, making its codes resolvable via DebugString,
// Name and Message. Registering the same list twice is a no-op.
func Register(list *List) error {
	if list == nil || len(list.Infos) == 0 {
		return errors.New(`errcode: empty list`)
	}
	begin := list.Infos[0].Code
	if begin < 0 {
		return fmt.Errorf(`errcode: %s: negative code %d`, list.Library, begin)
	}
	for i, info := range list.Infos {
		if info.Code != begin+Code(i) {
			return fmt.Errorf(`errcode: %s: non-contiguous code %d at index %d`, list.Library, info.Code, i)
		}
		if info.Code.Package() != begin.Package() {
			return fmt.Errorf(`errcode: %s: code %d outside package %d`, list.Library, info.Code, begin.Package())
		}
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if existing := registry[begin.Package()]; existing != nil && existing != list {
		return fmt.Errorf(`errcode: %s: package %d already registered by %s`, list.Library, begin.Package(), existing.Library)
	}
	registry[begin.Package()] = list
	return nil
}

// Unregister removes a List previously passed to Register. The common list
// cannot be removed.
func Unregister(list *List) {
	if list == nil || len(list.Infos) == 0 || list == commonList {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	pkg := list.Infos[0].Code.Package()
	if registry[pkg] == list {
		delete(registry, pkg)
	}
}

// DebugString renders a code as "<library>: <NAME>, <message>".
func DebugString(code Code) string {
	registryMu.RLock()
	list := registry[code.Package()]
	registryMu.RUnlock()
	if list == nil {
		return `Unknown Error Code`
	}
	index := int(code - list.Infos[0].Code)
	if index < 0 || index >= len(list.Infos) {
		return `Unknown Error Code`
	}
	info := list.Infos[index]
	return list.Library + `: ` + info.Name + `, ` + info.Message
}

// Name returns the registered name of the code, or an empty string.
func Name(code Code) string {
	info, _ := lookup(code)
	return info.Name
}

// Message returns the registered message of the code, or an empty string.
func Message(code Code) string {
	info, _ := lookup(code)
	return info.Message
}

func lookup(code Code) (Info, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	list := registry[code.Package()]
	if list == nil {
		return Info{}, false
	}
	index := int(code - list.Infos[0].Code)
	if index < 0 || index >= len(list.Infos) {
		return Info{}, false
	}
	return list.Infos[index], true
}

func (x *Error) Error() string { return DebugString(x.Code) }

// Is matches any *Error with the same code.
func (x *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Code == x.Code
	}
	return false
}

// Of extracts the code carried by err. A nil error maps to Success, and an
// error that carries no code maps to Unknown.
func Of(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}
