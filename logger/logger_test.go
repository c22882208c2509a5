package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	require.Equal(t, logger.LogLevelDebug, logger.NewLogLevel("DEBUG"))
	require.Equal(t, logger.LogLevelInfo, logger.NewLogLevel("INFO"))
	require.Equal(t, logger.LogLevelWarn, logger.NewLogLevel("WARN"))
	require.Equal(t, logger.LogLevelError, logger.NewLogLevel("ERROR"))
	require.Equal(t, logger.LogLevelFatal, logger.NewLogLevel("FATAL"))
	require.Equal(t, logger.LogLevelUnk, logger.NewLogLevel("debug"))
	require.Equal(t, "[WARN]", logger.LogLevelWarn.String())
}

func TestDefaultLoggerLevels(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	for _, tc := range []struct {
		name  string
		level logger.LogLevel
		fn    func(logger.Logger, string)
		want  string
	}{
		{"Debug-At-Debug", logger.LogLevelDebug, func(l logger.Logger, m string) { l.Debug(m, nil) }, "[DEBUG]"},
		{"Debug-At-Info", logger.LogLevelInfo, func(l logger.Logger, m string) { l.Debug(m, nil) }, ""},
		{"Info-At-Info", logger.LogLevelInfo, func(l logger.Logger, m string) { l.Info(m, nil) }, "[INFO]"},
		{"Info-At-Warn", logger.LogLevelWarn, func(l logger.Logger, m string) { l.Info(m, nil) }, ""},
		{"Warn-At-Warn", logger.LogLevelWarn, func(l logger.Logger, m string) { l.Warn(m, nil) }, "[WARN]"},
		{"Warn-At-Error", logger.LogLevelError, func(l logger.Logger, m string) { l.Warn(m, nil) }, ""},
		{"Error-At-Error", logger.LogLevelError, func(l logger.Logger, m string) { l.Error(m, nil) }, "[ERROR]"},
		{"Error-At-Fatal", logger.LogLevelFatal, func(l logger.Logger, m string) { l.Error(m, nil) }, ""},
		{"Fatal-At-Fatal", logger.LogLevelFatal, func(l logger.Logger, m string) { l.Fatal(m, nil) }, "[FATAL]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.level))

			// Act
			tc.fn(l, "such fun!")

			// Assert
			if tc.want == "" {
				require.Empty(t, b.String())
				return
			}

			require.Equal(t, tc.want, logLevelRegexp.FindString(b.String()))
			require.Regexp(t, fpRegexp, b.String())
			require.Equal(t, "such fun!", msgRegexp.FindStringSubmatch(b.String())[1])
		})
	}
}

func TestDefaultLoggerContext(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Error("oops", &logger.LogContext{Error: errors.New("boom"), User: testUser{}})

	// Assert
	require.Contains(t, b.String(), `log_context: {"error":"boom","user":{"displayName":"Ada Lovelace","id":"1234"}}`)

	// Arrange
	b.Reset()

	// Act
	l.Warn("from elsewhere", &logger.LogContext{Caller: "somewhere/else.go:12"})

	// Assert
	require.Contains(t, b.String(), "[WARN] somewhere/else.go:12 'from elsewhere'")
}

func TestDefaultLoggerSkip(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b))).(logger.SkipLogger)

	// Act
	l = l.AddSkip(l.Skip() + 1)
	logHelper(l)

	// Assert
	require.Equal(t, 1, l.Skip())
	require.Regexp(t, fpRegexp, b.String())
}

func logHelper(l logger.Logger) { l.Info("from a helper", nil) }
