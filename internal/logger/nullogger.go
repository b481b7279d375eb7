package logger

// NullLogger discards everything. Used by tests and the CLI.
type NullLogger struct{}

var _ Logger = (*NullLogger)(nil)

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Info(_ string, _ Fields) {}

func (l *NullLogger) Warn(_ string, _ Fields) {}

func (l *NullLogger) Error(_ error, _ Fields) {}

func (l *NullLogger) Fatal(_ error, _ Fields) {}

func (l *NullLogger) Debug(_ string, _ Fields) {}

func (l *NullLogger) SetLevel(_ Level) {}
