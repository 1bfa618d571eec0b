package group

import (
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/logging"
)

const (
	ErrorEventLoopGroupCreationFailed = errcode.Code(errcode.PackageIO)*errcode.PackageSize + iota
	ErrorEventLoopShutdown
	ErrorEventLoopGroupReleased
)

const (
	SubjectEventLoop = logging.Subject(errcode.PackageIO)*errcode.PackageSize + iota
	SubjectEventLoopGroup
)

var (
	// Errors is the IO library's error table.
	Errors = &errcode.List{
		Library: `crt-io`,
		Infos: []errcode.Info{
			{Code: ErrorEventLoopGroupCreationFailed, Name: `IO_EVENT_LOOP_GROUP_CREATION_FAILED`, Message: `Failed to create an event loop for the event loop group.`},
			{Code: ErrorEventLoopShutdown, Name: `IO_EVENT_LOOP_SHUTDOWN`, Message: `Event loop has shutdown and a resource was still using it.`},
			{Code: ErrorEventLoopGroupReleased, Name: `IO_EVENT_LOOP_GROUP_RELEASED`, Message: `Event loop group was used after its final release.`},
		},
	}

	// Subjects is the IO library's log subject table.
	Subjects = &logging.SubjectList{
		Infos: []logging.SubjectInfo{
			{Subject: SubjectEventLoop, Name: `event-loop`, Description: `Subject for event loop lifecycle and task execution`},
			{Subject: SubjectEventLoopGroup, Name: `event-loop-group`, Description: `Subject for event loop group lifecycle`},
		},
	}
)
