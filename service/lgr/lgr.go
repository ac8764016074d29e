package lgr

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Logger is the process-wide structured logger. All packages log through
// it so that error attributes get stack traces attached uniformly.
var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level(),
		ReplaceAttr: replaceAttr,
	}))
}

func level() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type stackFrame struct {
	Func   string `json:"func"`
	Source string `json:"source"`
	Line   int    `json:"line"`
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindAny {
		if err, ok := attr.Value.Any().(error); ok {
			attr.Value = fmtErr(err)
		}
	}
	return attr
}

// fmtErr renders an error as a group value with the trace of the deepest
// error in the chain that carries one (go-xerrors and x/xerrors both do).
func fmtErr(err error) slog.Value {
	groupValues := []slog.Attr{
		slog.String("msg", err.Error()),
	}

	type stackTracer interface {
		StackTrace() []uintptr
	}

	var st stackTracer
	for e := err; e != nil; e = errors.Unwrap(e) {
		if x, ok := e.(stackTracer); ok {
			st = x
		}
	}

	if st != nil {
		groupValues = append(groupValues, slog.Any("trace", traceLines(st.StackTrace())))
	}

	return slog.GroupValue(groupValues...)
}

func traceLines(frames []uintptr) []stackFrame {
	lines := make([]stackFrame, 0, len(frames))

	cf := runtime.CallersFrames(frames)
	for {
		frame, more := cf.Next()
		lines = append(lines, stackFrame{
			Func:   filepath.Base(frame.Function),
			Source: filepath.Join(filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)),
			Line:   frame.Line,
		})
		if !more {
			break
		}
	}

	return lines
}
