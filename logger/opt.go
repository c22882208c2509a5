package logger

import (
	"log"

	"github.com/xy-planning-network/roadtrip"
)

// An OptFn is a functional option configuring a DefaultLogger when constructing a new one.
type OptFn func(*DefaultLogger)

// WithEnv sets the environment DefaultLogger is operating in.
func WithEnv(env roadtrip.Environment) OptFn {
	return func(l *DefaultLogger) {
		l.env = env
	}
}

// WithLevel sets the log level DefaultLogger uses.
func WithLevel(level LogLevel) OptFn {
	return func(l *DefaultLogger) {
		if level == LogLevelUnk {
			return
		}

		l.ll = level
	}
}

// WithLogger sets the log.Logger DefaultLogger uses.
func WithLogger(log *log.Logger) OptFn {
	return func(l *DefaultLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) OptFn {
	return func(l *DefaultLogger) {
		l.skip = skip
	}
}
