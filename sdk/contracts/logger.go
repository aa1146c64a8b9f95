package contracts

import "time"

// LogLevel represents the severity threshold for logging. The zero value is
// InfoLevel, so an unconfigured listener logs at informational level.
type LogLevel int

const (
	// DebugLevel enables per-event decode traces; very chatty.
	DebugLevel LogLevel = iota - 1
	// InfoLevel is the normal operating level, including the event report lines.
	InfoLevel
	// WarnLevel indicates recoverable conditions such as dropped events.
	WarnLevel
	// ErrorLevel indicates failures that stop a capture loop.
	ErrorLevel
	// FatalLevel indicates errors the process cannot continue past.
	FatalLevel
)

// Field builds a typed structured log field.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Int32(key string, val int32) Field
	Int64(key string, val int64) Field
	Uint8(key string, val uint8) Field
	Uint32(key string, val uint32) Field
	Uint64(key string, val uint64) Field
	Float64(key string, val float64) Field
	String(key string, val string) Field
	Time(key string, val time.Time) Field
	Error(key string, val error) Field
}

// Logger provides leveled, structured logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
}
