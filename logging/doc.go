// Package logging implements the runtime's leveled, subject-tagged logging,
// backed by [logiface] and its [stumpy] JSON implementation.
//
// A single process-wide [Logger] may be installed via [Set]. Every library
// logs through [Build] or [Logf], which are no-ops while nothing is
// installed, or when the installed logger's level excludes the message.
//
// [logiface]: https://github.com/joeycumines/logiface
// [stumpy]: https://github.com/joeycumines/stumpy
package logging
