package log

import "context"

// Fields is a bag of structured log attributes.
type Fields map[string]any

// Logger is the application-facing logging interface. The context carries
// trace information which adapters attach to every event.
type Logger interface {
	Debug(ctx context.Context, msg string, fields Fields)
	Info(ctx context.Context, msg string, fields Fields)
	Warn(ctx context.Context, msg string, fields Fields)
	Error(ctx context.Context, msg string, err error, fields Fields)
	Fatal(ctx context.Context, msg string, err error, fields Fields)
	With(fields Fields) Logger
}
