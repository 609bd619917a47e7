package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
	"github.com/secmon-lab/greetr/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// Logger configures the process-wide logger. Logs go to stderr by default so
// that stdout only carries greetings and rendered pages.
type Logger struct {
	level      string
	format     string
	output     string
	quiet      bool
	stacktrace bool
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var logFormats = map[string]logging.Format{
	"console": logging.FormatConsole,
	"json":    logging.FormatJSON,
}

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Category:    "logging",
			Aliases:     []string{"l"},
			Sources:     cli.EnvVars("GREETR_LOG_LEVEL"),
			Usage:       "Set log level [debug|info|warn|error]",
			Value:       "info",
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Category:    "logging",
			Aliases:     []string{"f"},
			Sources:     cli.EnvVars("GREETR_LOG_FORMAT"),
			Usage:       "Set log format [console|json] (default: console on color terminals, json otherwise)",
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Category:    "logging",
			Aliases:     []string{"o"},
			Sources:     cli.EnvVars("GREETR_LOG_OUTPUT"),
			Usage:       "Set log output [stdout|stderr|<file path>]",
			Value:       "stderr",
			Destination: &x.output,
		},
		&cli.BoolFlag{
			Name:        "log-quiet",
			Category:    "logging",
			Aliases:     []string{"q"},
			Usage:       "Quiet mode (no log output)",
			Sources:     cli.EnvVars("GREETR_LOG_QUIET"),
			Destination: &x.quiet,
		},
		&cli.BoolFlag{
			Name:        "log-stacktrace",
			Category:    "logging",
			Aliases:     []string{"s"},
			Usage:       "Show stacktrace (only for console format)",
			Sources:     cli.EnvVars("GREETR_LOG_STACKTRACE"),
			Destination: &x.stacktrace,
			Value:       true,
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

// Configure replaces the default logger. The returned closer is never nil and
// releases the log file, if any.
func (x *Logger) Configure() (func(), error) {
	noop := func() {}
	if x.quiet {
		logging.Quiet()
		return noop, nil
	}

	level, ok := logLevels[x.level]
	if !ok {
		return noop, goerr.New("invalid log level",
			goerr.V("level", x.level),
			goerr.T(errs.TagInvalidRequest))
	}

	format, err := x.resolveFormat(os.Getenv("TERM"))
	if err != nil {
		return noop, err
	}

	output, closer, err := x.openOutput()
	if err != nil {
		return noop, err
	}

	logging.SetDefault(logging.New(output, level, format, x.stacktrace))
	return closer, nil
}

// resolveFormat picks console output for color-capable terminals when no
// format is given.
func (x *Logger) resolveFormat(term string) (logging.Format, error) {
	if x.format == "" {
		if strings.Contains(term, "color") || strings.Contains(term, "xterm") {
			return logging.FormatConsole, nil
		}
		return logging.FormatJSON, nil
	}

	format, ok := logFormats[x.format]
	if !ok {
		return 0, goerr.New("invalid log format",
			goerr.V("format", x.format),
			goerr.T(errs.TagInvalidRequest))
	}
	return format, nil
}

func (x *Logger) openOutput() (io.Writer, func(), error) {
	switch x.output {
	case "stderr", "":
		return os.Stderr, func() {}, nil
	case "stdout", "-":
		return os.Stdout, func() {}, nil
	}

	f, err := os.OpenFile(filepath.Clean(x.output), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, func() {}, goerr.Wrap(err, "failed to open log file", goerr.V("path", x.output))
	}
	return f, func() { safe.Close(context.Background(), f) }, nil
}
