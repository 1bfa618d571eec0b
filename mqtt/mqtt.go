// Package mqtt is the MQTT library of the runtime.
package mqtt

import (
	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/http"
	"github.com/joeycumines/go-crt/internal/library"
	"github.com/joeycumines/go-crt/logging"
)

const (
	ErrorInvalidReservedBits = errcode.Code(errcode.PackageMQTT)*errcode.PackageSize + iota
	ErrorBufferTooBig
	ErrorInvalidRemainingLength
	ErrorUnsupportedProtocolName
	ErrorUnsupportedProtocolLevel
	ErrorInvalidCredentials
	ErrorInvalidQoS
	ErrorInvalidPacketType
	ErrorInvalidTopic
	ErrorTimeout
	ErrorProtocolError
	ErrorNotConnected
	ErrorAlreadyConnected
	ErrorBuiltWithoutWebsockets
	ErrorUnexpectedHangup
	ErrorConnectionShutdown
	ErrorConnectionDestroyed
	ErrorConnectionDisconnecting
	ErrorCancelledForCleanSession
	ErrorQueueFull
)

const (
	SubjectClient = logging.Subject(errcode.PackageMQTT)*errcode.PackageSize + iota
	SubjectTopicTree
	SubjectGeneral
)

var (
	Errors = &errcode.List{
		Library: `crt-mqtt`,
		Infos: []errcode.Info{
			{Code: ErrorInvalidReservedBits, Name: `MQTT_INVALID_RESERVED_BITS`, Message: `Bits marked as reserved by the MQTT protocol were incorrectly set.`},
			{Code: ErrorBufferTooBig, Name: `MQTT_BUFFER_TOO_BIG`, Message: `[MQTT-1.5.3] Encoded UTF-8 buffers may be no bigger than 65535 bytes.`},
			{Code: ErrorInvalidRemainingLength, Name: `MQTT_INVALID_REMAINING_LENGTH`, Message: `[MQTT-2.2.3] Encoded remaining length field is malformed.`},
			{Code: ErrorUnsupportedProtocolName, Name: `MQTT_UNSUPPORTED_PROTOCOL_NAME`, Message: `[MQTT-3.1.2-1] Protocol name specified is unsupported.`},
			{Code: ErrorUnsupportedProtocolLevel, Name: `MQTT_UNSUPPORTED_PROTOCOL_LEVEL`, Message: `[MQTT-3.1.2-2] Protocol level specified is unsupported.`},
			{Code: ErrorInvalidCredentials, Name: `MQTT_INVALID_CREDENTIALS`, Message: `[MQTT-3.1.2-21] Connect packet may not include password when no username is present.`},
			{Code: ErrorInvalidQoS, Name: `MQTT_INVALID_QOS`, Message: `Both bits in a QoS field must not be set.`},
			{Code: ErrorInvalidPacketType, Name: `MQTT_INVALID_PACKET_TYPE`, Message: `Packet type in packet fixed header is invalid.`},
			{Code: ErrorInvalidTopic, Name: `MQTT_INVALID_TOPIC`, Message: `Topic or filter is invalid.`},
			{Code: ErrorTimeout, Name: `MQTT_TIMEOUT`, Message: `Time limit between request and response has been exceeded.`},
			{Code: ErrorProtocolError, Name: `MQTT_PROTOCOL_ERROR`, Message: `Protocol error occurred.`},
			{Code: ErrorNotConnected, Name: `MQTT_NOT_CONNECTED`, Message: `The requested operation is invalid as the connection is not open.`},
			{Code: ErrorAlreadyConnected, Name: `MQTT_ALREADY_CONNECTED`, Message: `The requested operation is invalid as the connection is already open.`},
			{Code: ErrorBuiltWithoutWebsockets, Name: `MQTT_BUILT_WITHOUT_WEBSOCKETS`, Message: `Library built without MQTT_WITH_WEBSOCKETS option.`},
			{Code: ErrorUnexpectedHangup, Name: `MQTT_UNEXPECTED_HANGUP`, Message: `The connection was closed unexpectedly.`},
			{Code: ErrorConnectionShutdown, Name: `MQTT_CONNECTION_SHUTDOWN`, Message: `MQTT operation interrupted by connection shutdown.`},
			{Code: ErrorConnectionDestroyed, Name: `MQTT_CONNECTION_DESTROYED`, Message: `Connection has started destroying process, all uncompleted requests will fail.`},
			{Code: ErrorConnectionDisconnecting, Name: `MQTT_CONNECTION_DISCONNECTING`, Message: `Connection is disconnecting, it's not safe to do this operation until the connection finishes shutdown.`},
			{Code: ErrorCancelledForCleanSession, Name: `MQTT_CANCELLED_FOR_CLEAN_SESSION`, Message: `Old requests from the previous session are cancelled, and offline request will not be accept.`},
			{Code: ErrorQueueFull, Name: `MQTT_QUEUE_FULL`, Message: `MQTT request queue is full.`},
		},
	}

	Subjects = &logging.SubjectList{
		Infos: []logging.SubjectInfo{
			{Subject: SubjectClient, Name: `mqtt-client`, Description: `MQTT client and connections`},
			{Subject: SubjectTopicTree, Name: `mqtt-topic-tree`, Description: `MQTT subscription tree`},
			{Subject: SubjectGeneral, Name: `mqtt-general`, Description: `Misc MQTT logging`},
		},
	}

	lib = library.New(library.Config{
		Name:     `crt-mqtt`,
		Errors:   Errors,
		Subjects: Subjects,
		Depends:  http.LibraryInit,
		Release:  http.LibraryCleanUp,
	})
)

// LibraryInit initializes the MQTT library, and the HTTP library (for
// websockets), using alloc, or the process allocator, if nil.
func LibraryInit(alloc allocator.Allocator) error { return lib.Init(alloc) }

func LibraryCleanUp() { lib.CleanUp() }

func LibraryAllocator() allocator.Allocator { return lib.Allocator() }
