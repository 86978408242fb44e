// Package rtlogiface adapts github.com/joeycumines/logiface — this
// author's own structured-logging library, used the same way
// logiface-zerolog/logiface-slog adapt it to a third-party backend — as
// a [rtlocal.Logger] backend, so a host application already using
// logiface gets rtlocal's scheduler events in its existing log stream
// instead of a second, unrelated logging path.
package rtlogiface

import (
	"fmt"
	"io"

	"github.com/joeycumines/logiface"

	"github.com/joeycumines/rtlocal-core"
)

// event is the minimal logiface.Event this adapter needs: a level, a
// message, an error and a flat set of fields. Grounded on the package's
// own test pattern of embedding UnimplementedEvent and implementing
// only the two mandatory methods plus whichever optional ones are used.
type event struct {
	logiface.UnimplementedEvent
	level  logiface.Level
	msg    string
	err    error
	fields []field
}

type field struct {
	key string
	val any
}

func (e *event) Level() logiface.Level { return e.level }

func (e *event) AddField(key string, val any) {
	e.fields = append(e.fields, field{key, val})
}

func (e *event) AddMessage(msg string) bool {
	e.msg = msg
	return true
}

func (e *event) AddError(err error) bool {
	e.err = err
	return true
}

// NewLogger builds a [rtlocal.Logger] backed by a fresh
// [logiface.Logger], writing one line per event to out.
func NewLogger(out io.Writer, minLevel LogLevel) rtlocal.Logger {
	lg := logiface.New[*event](
		logiface.WithEventFactory[*event](logiface.NewEventFactoryFunc(func(level logiface.Level) *event {
			return &event{level: level}
		})),
		logiface.WithLevel[*event](toLogifaceLevel(minLevel)),
		logiface.WithWriter[*event](logiface.NewWriterFunc(func(e *event) error {
			return writeEvent(out, e)
		})),
	)
	return &adapter{lg: lg}
}

// LogLevel is an alias of rtlocal.LogLevel, so the constructor takes
// rtlocal's own LevelDebug..LevelError values directly.
type LogLevel = rtlocal.LogLevel

func toLogifaceLevel(l LogLevel) logiface.Level {
	switch l {
	case rtlocal.LevelDebug:
		return logiface.LevelDebug
	case rtlocal.LevelInfo:
		return logiface.LevelInformational
	case rtlocal.LevelWarn:
		return logiface.LevelWarning
	case rtlocal.LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}

type adapter struct {
	lg *logiface.Logger[*event]
}

func (a *adapter) IsEnabled(level rtlocal.LogLevel) bool {
	return a.lg.Level() >= toLogifaceLevel(level)
}

func (a *adapter) Log(entry rtlocal.LogEntry) {
	b := a.lg.Build(toLogifaceLevel(entry.Level))
	b.Str("category", entry.Category)
	b.Uint64("task_id", entry.TaskID)
	if entry.Err != nil {
		b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func writeEvent(out io.Writer, e *event) error {
	_, err := io.WriteString(out, formatEvent(e))
	return err
}

func formatEvent(e *event) string {
	s := "[" + e.level.String() + "] " + e.msg
	for _, f := range e.fields {
		s += fmt.Sprintf(" %s=%v", f.key, f.val)
	}
	if e.err != nil {
		s += " error=" + e.err.Error()
	}
	return s + "\n"
}
