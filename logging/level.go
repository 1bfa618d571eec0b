package logging

import (
	"strings"

	"github.com/joeycumines/logiface"
)

const (
	None Level = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

// Level is the verbosity of a logger, or the severity of a message. None
// disables logging.
type Level int

var levelNames = [...]string{
	None:  `NONE`,
	Fatal: `FATAL`,
	Error: `ERROR`,
	Warn:  `WARN`,
	Info:  `INFO`,
	Debug: `DEBUG`,
	Trace: `TRACE`,
}

func (x Level) String() string {
	if x >= None && int(x) < len(levelNames) {
		return levelNames[x]
	}
	return `UNKNOWN`
}

// ParseLevel converts a level name (case-insensitive) back to a Level.
func ParseLevel(s string) (Level, bool) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), true
		}
	}
	return None, false
}

// Logiface maps the level onto the syslog-style levels used by logiface.
func (x Level) Logiface() logiface.Level {
	switch x {
	case Fatal:
		return logiface.LevelCritical
	case Error:
		return logiface.LevelError
	case Warn:
		return logiface.LevelWarning
	case Info:
		return logiface.LevelInformational
	case Debug:
		return logiface.LevelDebug
	case Trace:
		return logiface.LevelTrace
	default:
		return logiface.LevelDisabled
	}
}
