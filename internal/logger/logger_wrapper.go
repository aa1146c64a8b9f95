package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// ZapLogger implements the contracts.Logger interface on top of Uber's zap.
type ZapLogger struct {
	logger *zap.Logger
	level  contracts.LogLevel
}

// NewZapLogger creates a production logger: JSON-encoded, written to stderr.
func NewZapLogger() contracts.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)
	return NewWithCore(core)
}

// NewDevelopmentLogger creates a console-encoded logger for interactive use.
func NewDevelopmentLogger() contracts.Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)
	return NewWithCore(core)
}

// NewWithCore wraps an arbitrary zap core. Level filtering happens in the
// wrapper, so the core should accept everything; tests pass an observer
// core here.
func NewWithCore(core zapcore.Core) contracts.Logger {
	return &ZapLogger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)),
		level:  contracts.InfoLevel,
	}
}

// Debug logs a message at the DEBUG level.
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Info logs a message at the INFO level.
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Warn logs a message at the WARN level.
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Error logs a message at the ERROR level.
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application.
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.logger.Fatal(msg, zapFields(fields...)...)
}

// Field returns a new field builder.
func (z *ZapLogger) Field() contracts.Field {
	return zapField{}
}

// SetLevel sets the minimum level the wrapper emits.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level = level
}

// log is the internal gate: messages below the configured level never reach
// the zap core. Fatal bypasses it.
func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	if contractLevel(level) < z.level {
		return
	}

	switch level {
	case zapcore.DebugLevel:
		z.logger.Debug(msg, zapFields(fields...)...)
	case zapcore.InfoLevel:
		z.logger.Info(msg, zapFields(fields...)...)
	case zapcore.WarnLevel:
		z.logger.Warn(msg, zapFields(fields...)...)
	case zapcore.ErrorLevel:
		z.logger.Error(msg, zapFields(fields...)...)
	}
}

// contractLevel maps a zap level onto the contract's level scale.
func contractLevel(level zapcore.Level) contracts.LogLevel {
	switch level {
	case zapcore.DebugLevel:
		return contracts.DebugLevel
	case zapcore.InfoLevel:
		return contracts.InfoLevel
	case zapcore.WarnLevel:
		return contracts.WarnLevel
	case zapcore.ErrorLevel:
		return contracts.ErrorLevel
	default:
		return contracts.FatalLevel
	}
}

// zapFields converts contract fields into zap fields, skipping any foreign
// Field implementation.
func zapFields(fields ...contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	converted := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(zapField); ok {
			converted = append(converted, f.field)
		}
	}
	return converted
}

// zapField implements contracts.Field by wrapping a concrete zap.Field.
type zapField struct {
	field zap.Field
}

func (zapField) Bool(key string, val bool) contracts.Field {
	return zapField{zap.Bool(key, val)}
}

func (zapField) Int(key string, val int) contracts.Field {
	return zapField{zap.Int(key, val)}
}

func (zapField) Int32(key string, val int32) contracts.Field {
	return zapField{zap.Int32(key, val)}
}

func (zapField) Int64(key string, val int64) contracts.Field {
	return zapField{zap.Int64(key, val)}
}

func (zapField) Uint8(key string, val uint8) contracts.Field {
	return zapField{zap.Uint8(key, val)}
}

func (zapField) Uint32(key string, val uint32) contracts.Field {
	return zapField{zap.Uint32(key, val)}
}

func (zapField) Uint64(key string, val uint64) contracts.Field {
	return zapField{zap.Uint64(key, val)}
}

func (zapField) Float64(key string, val float64) contracts.Field {
	return zapField{zap.Float64(key, val)}
}

func (zapField) String(key string, val string) contracts.Field {
	return zapField{zap.String(key, val)}
}

func (zapField) Time(key string, val time.Time) contracts.Field {
	return zapField{zap.Time(key, val)}
}

func (zapField) Error(key string, val error) contracts.Field {
	return zapField{zap.NamedError(key, val)}
}
