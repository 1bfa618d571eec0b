package mqtt

import (
	"testing"

	"github.com/joeycumines/go-crt/crtio"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryInit(t *testing.T) {
	require.NoError(t, LibraryInit(nil))
	assert.NotNil(t, http.LibraryAllocator())
	assert.NotNil(t, crtio.LibraryAllocator())
	assert.Equal(t, `crt-mqtt: MQTT_TIMEOUT, Time limit between request and response has been exceeded.`, errcode.DebugString(ErrorTimeout))
	assert.Equal(t, `mqtt-topic-tree`, SubjectTopicTree.String())
	assert.Equal(t, errcode.PackageMQTT, ErrorQueueFull.Package())

	LibraryCleanUp()
	assert.Nil(t, LibraryAllocator())
	assert.Nil(t, http.LibraryAllocator())
	assert.Nil(t, crtio.LibraryAllocator())
}
