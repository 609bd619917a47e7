package sink

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/secmon-lab/greetr/pkg/domain/interfaces"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
	"github.com/secmon-lab/greetr/pkg/utils/safe"
)

// Writer writes each line followed by a newline to w.
type Writer struct {
	w io.Writer
}

var _ interfaces.LogSink = &Writer{}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (x *Writer) WriteLine(ctx context.Context, line string) {
	safe.Write(ctx, x.w, []byte(line+"\n"))
}

// Console prints lines in bold cyan. Colors are dropped when stdout is not a
// terminal.
type Console struct {
	w     io.Writer
	color *color.Color
}

var _ interfaces.LogSink = &Console{}

func NewConsole(w io.Writer) *Console {
	return &Console{
		w:     w,
		color: color.New(color.FgCyan, color.Bold),
	}
}

func (x *Console) WriteLine(ctx context.Context, line string) {
	safe.Write(ctx, x.w, []byte(x.color.Sprint(line)+"\n"))
}

// Slog records each line as an info message of the context logger.
type Slog struct{}

var _ interfaces.LogSink = &Slog{}

func NewSlog() *Slog {
	return &Slog{}
}

func (x *Slog) WriteLine(ctx context.Context, line string) {
	logging.From(ctx).Info(line)
}

// Multi forwards every line to all sinks in order.
type Multi struct {
	sinks []interfaces.LogSink
}

var _ interfaces.LogSink = &Multi{}

// NewMulti drops nil sinks.
func NewMulti(sinks ...interfaces.LogSink) *Multi {
	m := &Multi{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

func (x *Multi) WriteLine(ctx context.Context, line string) {
	for _, s := range x.sinks {
		s.WriteLine(ctx, line)
	}
}
