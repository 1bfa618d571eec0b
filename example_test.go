package crt_test

import (
	"fmt"
	"os"

	"github.com/joeycumines/go-crt"
	"github.com/joeycumines/go-crt/crtio"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/logging"
)

func ExampleNew() {
	api, err := crt.New()
	if err != nil {
		panic(err)
	}
	defer api.Close()

	api.EnableLoggingWriter(logging.Warn, os.Stdout)

	done := make(chan struct{})
	elg := crtio.NewEventLoopGroup(1, nil, &crtio.ShutdownOptions{
		Callback: func(userData any) {
			fmt.Println(`shut down:`, userData)
			close(done)
		},
		UserData: `example`,
	})
	if !elg.Valid() {
		panic(crt.ErrorDebugString(elg.LastError()))
	}

	result := make(chan string, 1)
	if err := elg.UnderlyingHandle().Submit(func() { result <- `ran on a loop` }); err != nil {
		panic(err)
	}
	fmt.Println(<-result)

	elg.Close()
	<-done

	//output:
	//ran on a loop
	//shut down: example
}

func ExampleLastErrorOrUnknown() {
	errcode.Reset()
	fmt.Println(crt.ErrorDebugString(crt.LastErrorOrUnknown()))

	elg := crtio.NewEventLoopGroup(1, nil, nil)
	elg.Close()
	fmt.Println(elg.Valid(), crt.ErrorDebugString(elg.LastError()))

	//output:
	//crt-common: ERROR_UNKNOWN, Unknown error.
	//false crt-common: ERROR_UNKNOWN, Unknown error.
}
