package progress

import "fmt"

// Level indicates the severity/type of a progress message.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lower-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Event represents a single progress update.
type Event struct {
	Message string
	Level   Level
}

// Func receives progress events. It must be safe for concurrent use when
// handed to a service that works in parallel.
type Func func(Event)

// Emit sends an event if f is not nil.
func (f Func) Emit(level Level, message string) {
	if f != nil {
		f(Event{Message: message, Level: level})
	}
}

// Emitf formats and sends an event if f is not nil.
func (f Func) Emitf(level Level, format string, args ...any) {
	if f != nil {
		f(Event{Message: fmt.Sprintf(format, args...), Level: level})
	}
}
