package sink_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/greetr/pkg/adapter/sink"
	"github.com/secmon-lab/greetr/pkg/domain/interfaces"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewWriter(&buf)
	s.WriteLine(context.Background(), "Hello John!")
	s.WriteLine(context.Background(), "Logged in: John Smith")

	gt.Equal(t, buf.String(), "Hello John!\nLogged in: John Smith\n")
}

func TestSlog(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)
	ctx := logging.With(context.Background(), logger)

	sink.NewSlog().WriteLine(ctx, "Hola John!")
	gt.S(t, buf.String()).Contains(`"msg":"Hola John!"`)
}

func TestMulti(t *testing.T) {
	var a, b bytes.Buffer
	var nilSink interfaces.LogSink
	m := sink.NewMulti(sink.NewWriter(&a), nil, nilSink, sink.NewWriter(&b))
	m.WriteLine(context.Background(), "Greetings John Smith.")

	gt.Equal(t, a.String(), "Greetings John Smith.\n")
	gt.Equal(t, b.String(), "Greetings John Smith.\n")
}

func TestMultiEmpty(t *testing.T) {
	// Should not panic
	sink.NewMulti().WriteLine(context.Background(), "Hello John!")
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	sink.NewConsole(&buf).WriteLine(context.Background(), "Hello John!")
	gt.S(t, buf.String()).Contains("Hello John!")
}
