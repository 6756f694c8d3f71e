package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	// CorrelationID is the log field carrying the request correlation id
	CorrelationID = "correlation_id"

	correlationKey contextKey = "correlation_id"
)

var log = newLogger(os.Stdout, "info", false)

func newLogger(out io.Writer, level string, development bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(parseLevel(level))
	if development {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}

// Configure replaces the package logger. Development mode uses a text formatter.
func Configure(level string, development bool) {
	log = newLogger(os.Stdout, level, development)
}

// SetOutput redirects log output, mostly useful in tests
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// WithCorrelationID stores the correlation id in ctx
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey, id)
}

// CorrelationIDFromContext returns the correlation id stored in ctx, or ""
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationKey).(string); ok {
		return id
	}
	return ""
}

// Entry returns a log entry carrying the correlation id from ctx
func Entry(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(log)
	if id := CorrelationIDFromContext(ctx); id != "" {
		entry = entry.WithField(CorrelationID, id)
	}
	return entry
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	Entry(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	Entry(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	Entry(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	Entry(ctx).Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	Entry(ctx).Fatalf(format, args...)
}
