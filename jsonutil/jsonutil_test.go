package jsonutil

import (
	"errors"
	"math"
	"testing"

	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_WriteCompact(t *testing.T) {
	o := NewObject().
		WithString(`name`, "crt \"json\"\n").
		WithInt64(`count`, -42).
		WithDouble(`ratio`, 0.5).
		WithBool(`enabled`, true).
		WithNull(`missing`).
		WithObject(`nested`, NewObject().WithArray(`values`, Int64(1), String(`two`), Double(math.Inf(1)))).
		WithArray(`empty`)

	s, err := o.WriteCompact()
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"crt \"json\"\n","count":-42,"ratio":0.5,"enabled":true,"missing":null,"nested":{"values":[1,"two","Infinity"]},"empty":[]}`,
		s,
	)
}

func TestObject_With_replacesInPlace(t *testing.T) {
	o := NewObject().WithInt64(`a`, 1).WithInt64(`b`, 2).WithString(`a`, `x`)
	assert.Equal(t, []string{`a`, `b`}, o.Keys())
	assert.Equal(t, `x`, o.GetString(`a`))
	s, err := o.WriteCompact()
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":2}`, s)
}

func TestObject_getters(t *testing.T) {
	o := NewObject().
		WithDouble(`pi`, 3.25).
		WithNull(`nil`).
		WithObject(`child`, NewObject().WithBool(`ok`, true))

	assert.Equal(t, 3.25, o.GetDouble(`pi`))
	assert.Equal(t, int64(3), o.GetInt64(`pi`))
	assert.Equal(t, ``, o.GetString(`pi`))
	assert.True(t, o.KeyExists(`nil`))
	assert.False(t, o.ValueExists(`nil`))
	assert.False(t, o.KeyExists(`absent`))
	assert.True(t, o.GetObject(`child`).GetBool(`ok`))
	assert.Nil(t, o.GetObject(`absent`))
	assert.Nil(t, o.GetArray(`pi`))
	assert.Equal(t, 3, o.Len())

	var nilObject *Object
	assert.Zero(t, nilObject.Len())
	assert.False(t, nilObject.KeyExists(`x`))
	assert.Nil(t, nilObject.Keys())
}

func TestParse(t *testing.T) {
	o, err := Parse([]byte(`{"z":1,"a":[true,null,2.5,"s",{"k":"v"}],"m":{"n":-7},"z":"last"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{`z`, `a`, `m`}, o.Keys())
	assert.Equal(t, `last`, o.GetString(`z`))
	assert.Equal(t, int64(-7), o.GetObject(`m`).GetInt64(`n`))

	a := o.GetArray(`a`)
	require.Len(t, a, 5)
	assert.Equal(t, KindBool, a[0].Kind())
	assert.True(t, a[1].IsNull())
	assert.Equal(t, 2.5, a[2].AsDouble())
	assert.Equal(t, `s`, a[3].AsString())
	assert.Equal(t, `v`, a[4].AsObject().GetString(`k`))

	s, err := o.WriteCompact()
	require.NoError(t, err)
	assert.Equal(t, `{"z":"last","a":[true,null,2.5,"s",{"k":"v"}],"m":{"n":-7}}`, s)
}

func TestParse_invalid(t *testing.T) {
	for _, input := range []string{``, `{`, `[1,2]`, `"string"`, `{"a":}`} {
		errcode.Reset()
		o, err := Parse([]byte(input))
		assert.Nil(t, o, input)
		assert.ErrorIs(t, err, &errcode.Error{Code: errcode.InvalidArgument}, input)
		assert.Equal(t, errcode.InvalidArgument, errcode.Last(), input)
	}
	errcode.Reset()
}

func TestInitHooks(t *testing.T) {
	defer InitHooks(nil)

	tracer := allocator.NewTracer(nil)
	InitHooks(AllocatorHooks(tracer))

	o := NewObject()
	for i := range 100 {
		o.WithInt64(string(rune('a'+i%26))+string(rune('a'+i/26)), int64(i))
	}
	s, err := o.WriteCompact()
	require.NoError(t, err)
	assert.Greater(t, len(s), minBufferSize)
	assert.Greater(t, tracer.Acquisitions(), int64(1), `expected the buffer to grow`)
	assert.Zero(t, tracer.Count(), `every block must be freed`)
}

func TestInitHooks_failure(t *testing.T) {
	defer InitHooks(nil)

	want := errors.New(`malloc failed`)
	var frees int
	InitHooks(&Hooks{
		Malloc: func(size int) ([]byte, error) { return nil, want },
		Free:   func([]byte) { frees++ },
	})

	s, err := NewObject().WithString(`k`, `v`).WriteCompact()
	assert.Empty(t, s)
	assert.ErrorIs(t, err, want)
	assert.ErrorIs(t, err, &errcode.Error{Code: errcode.OOM})
	assert.Zero(t, frees)
	errcode.Reset()
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, `object`, KindObject.String())
	assert.Equal(t, `kind(99)`, Kind(99).String())
}
