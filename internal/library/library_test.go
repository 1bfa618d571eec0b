package library

import (
	"errors"
	"testing"

	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPackage errcode.PackageID = 60

var (
	testErrors = &errcode.List{
		Library: `crt-test`,
		Infos:   []errcode.Info{{Code: testPackage.Begin(), Name: `TEST_FAILED`, Message: `Test failed.`}},
	}
	testSubjects = &logging.SubjectList{
		Infos: []logging.SubjectInfo{{Subject: logging.SubjectBegin(testPackage), Name: `test`}},
	}
)

func TestLibrary_refCounting(t *testing.T) {
	var depends, releases int
	lib := New(Config{
		Name:     `test`,
		Errors:   testErrors,
		Subjects: testSubjects,
		Depends: func(allocator.Allocator) error {
			depends++
			return nil
		},
		Release: func() { releases++ },
	})

	tracer := allocator.NewTracer(nil)
	require.NoError(t, lib.Init(tracer))
	require.NoError(t, lib.Init(nil))
	assert.True(t, lib.Initialized())
	assert.Equal(t, allocator.Allocator(tracer), lib.Allocator())
	assert.Equal(t, 1, depends)
	assert.Equal(t, `crt-test: TEST_FAILED, Test failed.`, errcode.DebugString(testPackage.Begin()))
	assert.Equal(t, `test`, logging.SubjectBegin(testPackage).String())

	lib.CleanUp()
	assert.True(t, lib.Initialized())
	assert.Equal(t, 0, releases)

	lib.CleanUp()
	assert.False(t, lib.Initialized())
	assert.Nil(t, lib.Allocator())
	assert.Equal(t, 1, releases)
	assert.Equal(t, `Unknown Error Code`, errcode.DebugString(testPackage.Begin()))

	lib.CleanUp()
	assert.Equal(t, 1, releases)
}

func TestLibrary_Init_dependencyFailure(t *testing.T) {
	want := errors.New(`dependency failed`)
	lib := New(Config{
		Name:    `test`,
		Depends: func(allocator.Allocator) error { return want },
	})
	assert.ErrorIs(t, lib.Init(nil), want)
	assert.False(t, lib.Initialized())
}

func TestLibrary_Init_registrationFailure(t *testing.T) {
	conflict := &errcode.List{
		Library: `crt-conflict`,
		Infos:   []errcode.Info{{Code: testPackage.Begin(), Name: `CONFLICT`}},
	}
	require.NoError(t, errcode.Register(conflict))
	defer errcode.Unregister(conflict)

	var releases int
	lib := New(Config{
		Name:    `test`,
		Errors:  testErrors,
		Depends: func(allocator.Allocator) error { return nil },
		Release: func() { releases++ },
	})
	assert.Error(t, lib.Init(nil))
	assert.False(t, lib.Initialized())
	assert.Equal(t, 1, releases)
}

func TestNew_missingName(t *testing.T) {
	assert.Panics(t, func() { New(Config{}) })
}
