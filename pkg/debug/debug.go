// Package debug builds the console logger used by the command line tools.
package debug

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

const modulePrefix = "github.com/walteh/gabcls/"

// NewLogger returns a console logger at level with the time and caller hooks
// installed.
func NewLogger(w io.Writer, level zerolog.Level, colorize bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !colorize,
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.CallerFieldName, zerolog.MessageFieldName},
		FormatTimestamp: func(i any) string {
			return fmt.Sprint(i)
		},
	}
	return zerolog.New(out).
		Level(level).
		Hook(CustomTimeHook{WithColor: colorize}).
		Hook(CustomCallerHook{WithColor: colorize})
}

// skipFrames reads the event's unexported frame skip so the caller hook
// reports the logging call site rather than a helper.
func skipFrames(e *zerolog.Event) int {
	v := reflect.ValueOf(e).Elem()
	field := v.FieldByName("skipFrame")
	if field.IsValid() && field.CanAddr() {
		return int(field.Int())
	}
	return 0
}

type CustomTimeHook struct {
	WithColor bool
	Format    string
}

func (t CustomTimeHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	format := t.Format
	if format == "" {
		// millisecond precision, no zone
		format = "2006-01-02T15:04:05.000"
	}
	str := time.Now().Format(format)
	if t.WithColor {
		str = color.New(color.Faint).Sprint(str)
	}
	e.Str(zerolog.TimestampFieldName, str)
}

type CustomCallerHook struct {
	WithColor bool
}

func (c CustomCallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	pc, file, line, ok := runtime.Caller(skipFrames(e) + 3)
	if !ok {
		return
	}

	pkg := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		pkg, _ = SplitFuncName(fn.Name())
	}

	e.Str(zerolog.CallerFieldName, FormatCaller(pkg, file, line, c.WithColor))
}

// SplitFuncName splits a fully qualified function name into its package path,
// relative to this module when inside it, and the function name.
func SplitFuncName(name string) (pkg, function string) {
	lastSlash := max(strings.LastIndexByte(name, '/'), 0)

	firstDot := strings.IndexByte(name[lastSlash:], '.')
	if firstDot < 0 {
		return strings.TrimPrefix(name, modulePrefix), ""
	}
	firstDot += lastSlash

	pkg = name[:firstDot]
	function = name[firstDot+1:]

	if before, after, ok := strings.Cut(pkg, ".("); ok {
		pkg = before
		function = "(" + after + "." + function
	}

	return strings.TrimPrefix(pkg, modulePrefix), function
}

func FormatCaller(pkg, path string, number int, colorize bool) string {
	p := FileNameOfPath(path)
	if colorize {
		p = color.New(color.Bold).Sprint(p)
		num := color.New(color.FgHiRed, color.Bold).Sprintf("%d", number)
		sep := color.New(color.Faint).Sprint(":")
		return pkg + sep + p + sep + num
	}

	return fmt.Sprintf("%s:%s:%d", pkg, p, number)
}

func FileNameOfPath(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
