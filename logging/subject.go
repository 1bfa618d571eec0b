package logging

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joeycumines/go-crt/errcode"
)

// Subjects owned by the common package.
const (
	SubjectGeneral Subject = iota
	SubjectMemTrace
	SubjectThread
	SubjectJSON
)

type (
	// Subject tags a log message with the component that emitted it. Like
	// error codes, each library owns a range of errcode.PackageSize ids.
	Subject uint32

	SubjectInfo struct {
		Name        string
		Description string
		Subject     Subject
	}

	// SubjectList is the table of subjects registered by a single library.
	// It follows the same contiguity rules as errcode.List.
	SubjectList struct {
		Infos []SubjectInfo
	}
)

var (
	subjectsMu sync.RWMutex
	subjects   = map[errcode.PackageID]*SubjectList{}

	commonSubjects = &SubjectList{
		Infos: []SubjectInfo{
			{Subject: SubjectGeneral, Name: `crt-common`, Description: `Subject for common logging that doesn't belong to any particular category`},
			{Subject: SubjectMemTrace, Name: `memtrace`, Description: `Output from the memory tracing allocator`},
			{Subject: SubjectThread, Name: `thread`, Description: `Subject for managed thread lifecycle`},
			{Subject: SubjectJSON, Name: `json`, Description: `Subject for the bundled json utility`},
		},
	}
)

func init() {
	if err := RegisterSubjects(commonSubjects); err != nil {
		panic(err)
	}
}

// SubjectBegin returns the first subject in the package range.
func SubjectBegin(pkg errcode.PackageID) Subject {
	return Subject(pkg) * errcode.PackageSize
}

// Package returns the PackageID whose range contains the subject.
func (x Subject) Package() errcode.PackageID {
	return errcode.PackageID(x / errcode.PackageSize)
}

// String returns the registered subject name, or a numeric fallback.
func (x Subject) String() string {
	subjectsMu.RLock()
	defer subjectsMu.RUnlock()
	if list := subjects[x.Package()]; list != nil {
		if index := int(x - list.Infos[0].Subject); index >= 0 && index < len(list.Infos) {
			return list.Infos[index].Name
		}
	}
	return fmt.Sprintf(`subject-%d`, uint32(x))
}

// RegisterSubjects installs a SubjectList. Registering the same list twice
// is a no-op.
func RegisterSubjects(list *SubjectList) error {
	if list == nil || len(list.Infos) == 0 {
		return errors.New(`logging: empty subject list`)
	}
	begin := list.Infos[0].Subject
	for i, info := range list.Infos {
		if info.Subject != begin+Subject(i) || info.Subject.Package() != begin.Package() {
			return fmt.Errorf(`logging: invalid subject %d at index %d`, info.Subject, i)
		}
	}

	subjectsMu.Lock()
	defer subjectsMu.Unlock()

	if existing := subjects[begin.Package()]; existing != nil && existing != list {
		return fmt.Errorf(`logging: subject package %d already registered`, begin.Package())
	}
	subjects[begin.Package()] = list
	return nil
}

// UnregisterSubjects removes a SubjectList. The common list cannot be
// removed.
func UnregisterSubjects(list *SubjectList) {
	if list == nil || len(list.Infos) == 0 || list == commonSubjects {
		return
	}
	subjectsMu.Lock()
	defer subjectsMu.Unlock()
	pkg := list.Infos[0].Subject.Package()
	if subjects[pkg] == list {
		delete(subjects, pkg)
	}
}
