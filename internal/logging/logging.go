// Package logging configures the zap loggers used by bugyi programs: a
// human-readable console log plus a verbose per-program log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bbugyi200/bugyi/internal/inspect"
)

// DefaultLogDir holds log files unless overridden by Config.LogDir or the
// BUGYI_LOG_DIR environment variable.
const DefaultLogDir = "/var/tmp"

// Config controls New.
type Config struct {
	// Name of the program; the log file is <LogDir>/<Name>.log. Defaults to
	// the running program's name.
	Name    string
	LogDir  string
	Debug   bool
	Verbose int
	// Console receives console output. Defaults to os.Stderr.
	Console io.Writer
}

// ConsoleLevel is the minimum level written to the console.
func (c Config) ConsoleLevel() zapcore.Level {
	if c.Debug || c.Verbose > 0 {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// LogFile returns the path of the log file New writes to.
func (c Config) LogFile() string {
	dir := c.LogDir
	if dir == "" {
		dir = os.Getenv("BUGYI_LOG_DIR")
	}
	if dir == "" {
		dir = DefaultLogDir
	}

	name := c.Name
	if name == "" {
		name = inspect.ScriptName()
	}
	return filepath.Join(dir, name+".log")
}

// New builds a logger that writes to the console at ConsoleLevel and to
// LogFile at debug level. The returned func flushes and closes the log file.
func New(cfg Config) (*zap.Logger, func(), error) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	path := cfg.LogFile()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.AddSync(console),
		cfg.ConsoleLevel(),
	)
	fileCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(fileEncoderConfig()),
		zapcore.AddSync(f),
		zapcore.DebugLevel,
	).With([]zap.Field{zap.Int("pid", os.Getpid())})

	logger := zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller())
	cleanup := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, cleanup, nil
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		LevelKey:         "level",
		CallerKey:        "caller",
		FunctionKey:      "func",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := consoleEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.StacktraceKey = "stacktrace"
	return cfg
}

var (
	current atomic.Pointer[zap.Logger]
	nop     *zap.Logger
	nopOnce sync.Once
)

// L returns the process logger. It is a no-op logger until Set is called.
func L() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	nopOnce.Do(func() {
		nop = zap.NewNop()
	})
	return nop
}

// Set installs l as the process logger and returns a func that restores the
// previous one.
func Set(l *zap.Logger) func() {
	prev := current.Swap(l)
	return func() {
		current.Store(prev)
	}
}

// Catch runs fn. A panic escaping fn is logged at error level under the
// panic value's type name and then re-raised.
func Catch(log *zap.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(inspect.TypeName(r), zap.Any("panic", r), zap.StackSkip("stack", 2))
			panic(r)
		}
	}()
	fn()
}
