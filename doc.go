// Package crt bootstraps the common runtime: the process-wide allocator,
// the HTTP, MQTT and auth libraries (and, transitively, IO), the memory
// hooks of the bundled JSON utility, and the process-wide logger.
//
// A single APIHandle should be live at a time, for the lifetime of the
// application's use of the runtime:
//
//	api, err := crt.New()
//	if err != nil {
//		return err
//	}
//	defer api.Close()
//	api.EnableLoggingWriter(logging.Info, os.Stderr)
//
// Event loop groups are created using crtio.NewEventLoopGroup.
package crt
