package config

import "github.com/secmon-lab/greetr/pkg/utils/logging"

func NewSinkForTest(kind string) *Sink {
	return &Sink{kind: kind}
}

func NewSentryForTest(dsn, env string) *Sentry {
	return &Sentry{dsn: dsn, env: env}
}

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func (x *Logger) ResolveFormatForTest(term string) (logging.Format, error) {
	return x.resolveFormat(term)
}
