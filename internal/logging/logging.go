// Package logging configures the process-wide zap logger. Diagnostics go to
// stderr so stdout stays reserved for report output.
package logging

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Component names used with For.
const (
	ComponentCLI          = "Cli"
	ComponentLoader       = "SnapshotLoader"
	ComponentSchema       = "SchemaCheck"
	ComponentHobValidator = "HobValidator"
	ComponentFvValidator  = "FvValidator"
)

var initOnce sync.Once

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05"))
}

// New builds a console logger writing to stderr at the given level.
func New(level zapcore.Level) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "component",
		CallerKey:        zapcore.OmitKey,
		FunctionKey:      zapcore.OmitKey,
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeTime:       timeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " | ",
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

// Init installs the global logger. Verbose lowers the threshold to debug.
// Only the first call takes effect.
func Init(verbose bool) {
	initOnce.Do(func() {
		level := zapcore.InfoLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		zap.ReplaceGlobals(New(level))
	})
}

// For returns a named logger for a component.
func For(component string) *zap.SugaredLogger {
	return zap.S().Named(component)
}

// Sync flushes buffered entries. Stderr sync failures are ignored.
func Sync() {
	_ = zap.L().Sync()
}
