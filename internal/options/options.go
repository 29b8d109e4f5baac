package options

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

var discard = func() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}()

// WithLogger stores the provided logger inside the context.
func WithLogger(ctx context.Context, log *logrus.Entry) context.Context {
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, log)
}

// Logger retrieves the logger from context, or a logger that discards
// everything.
func Logger(ctx context.Context) *logrus.Entry {
	if v := ctx.Value(loggerKey{}); v != nil {
		if log, ok := v.(*logrus.Entry); ok {
			return log
		}
	}
	return discard
}

// ParseLevel converts a level name into a logrus level. An empty name
// selects info.
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(name)
}
