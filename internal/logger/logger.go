// Package logger prints leveled, ANSI-colored lines tagged with the calling
// function and line:
//
//	\033[1m\033[32m[*] discord.(*Bot).onReady:57 \033[2mlogged on as <bot#0001>\033[0m
//
// An unknown level tag produces a magenta "[@] ... Bad log level" diagnostic
// for the caller instead of the message.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a log level tag.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

const (
	ansiCritical = "\033[35m"
	ansiBold     = "\033[1m"
	ansiUnbold   = "\033[2m"
	ansiClear    = "\033[0m"
)

// BadLevelMarker starts the diagnostic printed for an unknown level tag.
const BadLevelMarker = "[@]"

type style struct {
	color  string
	symbol string
}

// styles is keyed by zerolog's level strings, which is what ConsoleWriter
// hands to FormatLevel.
var styles = map[string]style{
	zerolog.LevelDebugValue: {"\033[34m", "-"},
	zerolog.LevelInfoValue:  {"\033[32m", "*"},
	zerolog.LevelWarnValue:  {"\033[33m", "?"},
	zerolog.LevelErrorValue: {"\033[31m", "!"},
}

var levels = map[Level]zerolog.Level{
	LevelDebug:   zerolog.DebugLevel,
	LevelInfo:    zerolog.InfoLevel,
	LevelWarning: zerolog.WarnLevel,
	LevelError:   zerolog.ErrorLevel,
}

// Logger writes leveled lines. The zero value is not usable; use New.
type Logger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// Options configures the default logger.
type Options struct {
	// File, when set, receives a JSON copy of every record, rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a Logger printing colored lines to w.
func New(w io.Writer) *Logger {
	return &Logger{zl: zerolog.New(consoleWriter(w)).Level(zerolog.DebugLevel)}
}

// NewWithOptions returns a Logger printing to stdout and, if opts.File is set,
// to a rotated JSON log file.
func NewWithOptions(opts Options) *Logger {
	console := consoleWriter(colorable.NewColorableStdout())
	if opts.File == "" {
		return &Logger{zl: zerolog.New(console).Level(zerolog.DebugLevel)}
	}

	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	zl := zerolog.New(zerolog.MultiLevelWriter(console, file)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
	return &Logger{zl: zl, closer: file}
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.CallerFieldName, zerolog.MessageFieldName},
		FieldsExclude: []string{
			zerolog.TimestampFieldName,
		},
		FormatLevel: func(i interface{}) string {
			lvl, _ := i.(string)
			st, ok := styles[lvl]
			if !ok {
				return ansiCritical + ansiBold + BadLevelMarker
			}
			return ansiBold + st.color + "[" + st.symbol + "]"
		},
		FormatCaller: func(i interface{}) string {
			s, _ := i.(string)
			return s
		},
		FormatMessage: func(i interface{}) string {
			s, _ := i.(string)
			return ansiUnbold + s + ansiClear
		},
	}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Log prints msg at level. An unknown level prints a bad-level diagnostic
// naming the caller and the tag, and msg is dropped.
func (l *Logger) Log(msg string, level Level) { l.output(2, msg, level) }

func (l *Logger) Debugf(format string, args ...any) {
	l.output(2, fmt.Sprintf(format, args...), LevelDebug)
}

func (l *Logger) Infof(format string, args ...any) {
	l.output(2, fmt.Sprintf(format, args...), LevelInfo)
}

func (l *Logger) Warningf(format string, args ...any) {
	l.output(2, fmt.Sprintf(format, args...), LevelWarning)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.output(2, fmt.Sprintf(format, args...), LevelError)
}

// Slog returns a slog.Logger writing through l, for libraries that log via
// slog. component stands in for the caller.
func (l *Logger) Slog(component string) *slog.Logger {
	zl := l.zl.With().Str(zerolog.CallerFieldName, component).Logger()
	return slog.New(zerolog.NewSlogHandler(zl))
}

// output logs on behalf of the function skip frames above it.
func (l *Logger) output(skip int, msg string, level Level) {
	site := caller(skip + 1)
	zlvl, ok := levels[level]
	if !ok {
		l.zl.Log().
			Str(zerolog.CallerFieldName, site).
			Msgf("Bad log level: %q", string(level))
		return
	}
	l.zl.WithLevel(zlvl).
		Str(zerolog.CallerFieldName, site).
		Msg(msg)
}

// caller renders "<func>:<line>" for the frame skip levels above it, with the
// import path trimmed from the function name.
func caller(skip int) string {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok {
		return "???:0"
	}
	name := "???"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	return name + ":" + strconv.Itoa(line)
}

var std atomic.Pointer[Logger]

func init() {
	std.Store(NewWithOptions(Options{}))
}

// Default returns the process-wide logger.
func Default() *Logger { return std.Load() }

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) { std.Store(l) }

// Slog returns a slog.Logger writing through the default logger.
func Slog(component string) *slog.Logger { return Default().Slog(component) }

// Log prints msg at level through the default logger.
func Log(msg string, level Level) { Default().output(2, msg, level) }

func Debugf(format string, args ...any) {
	Default().output(2, fmt.Sprintf(format, args...), LevelDebug)
}

func Infof(format string, args ...any) {
	Default().output(2, fmt.Sprintf(format, args...), LevelInfo)
}

func Warningf(format string, args ...any) {
	Default().output(2, fmt.Sprintf(format, args...), LevelWarning)
}

func Errorf(format string, args ...any) {
	Default().output(2, fmt.Sprintf(format, args...), LevelError)
}
