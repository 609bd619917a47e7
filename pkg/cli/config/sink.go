package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/adapter/sink"
	"github.com/secmon-lab/greetr/pkg/domain/interfaces"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/urfave/cli/v3"
)

// Sink selects where greetings and login lines are written.
type Sink struct {
	kind string
}

const (
	SinkStdout = "stdout"
	SinkStderr = "stderr"
	SinkLog    = "log"
	SinkNone   = "none"
)

func (x *Sink) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sink",
			Usage:       "Where greetings are written [stdout|stderr|log|none]",
			Sources:     cli.EnvVars("GREETR_SINK"),
			Value:       SinkStdout,
			Destination: &x.kind,
		},
	}
}

func (x Sink) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", x.kind),
	)
}

// Configure builds the sink. The "stdout" sink writes to stdout, which lets a
// command move it off the real stdout when that stream carries other output.
// It returns nil for "none", which leaves the greeter without a sink.
func (x *Sink) Configure(stdout io.Writer) (interfaces.LogSink, error) {
	switch x.kind {
	case SinkStdout, "":
		return sink.NewConsole(stdout), nil
	case SinkStderr:
		return sink.NewWriter(os.Stderr), nil
	case SinkLog:
		return sink.NewSlog(), nil
	case SinkNone:
		return nil, nil
	default:
		return nil, goerr.New("invalid sink",
			goerr.V("sink", x.kind),
			goerr.V("supported", []string{SinkStdout, SinkStderr, SinkLog, SinkNone}),
			goerr.T(errs.TagInvalidRequest))
	}
}
