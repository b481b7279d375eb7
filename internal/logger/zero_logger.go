package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// ZeroLogger writes structured JSON lines through zerolog.
type ZeroLogger struct {
	mu            sync.RWMutex
	writer        io.Writer
	level         Level
	defaultFields Fields
	zl            zerolog.Logger
	exit          func(int)
}

var _ Logger = (*ZeroLogger)(nil)

// NewZeroLogger return a configured instance of ZeroLogger
func NewZeroLogger(writer io.Writer, level Level, defaultFields Fields) *ZeroLogger {
	if defaultFields == nil {
		defaultFields = Fields{}
	}
	l := &ZeroLogger{writer: writer, level: level, defaultFields: defaultFields, exit: os.Exit}
	l.configure()
	return l
}

// NewConsoleLogger is the human readable variant used in development.
func NewConsoleLogger(writer io.Writer, level Level, defaultFields Fields) *ZeroLogger {
	return NewZeroLogger(zerolog.ConsoleWriter{Out: writer, TimeFormat: "15:04:05"}, level, defaultFields)
}

func (l *ZeroLogger) configure() {
	props := make(map[string]interface{}, len(l.defaultFields))
	for k, v := range l.defaultFields {
		props[k] = v
	}
	l.zl = zerolog.New(l.writer).With().Fields(props).Timestamp().Logger().Level(toZeroLevel(l.level))
}

func toZeroLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	case LevelOff:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZeroLogger) logger() *zerolog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	zl := l.zl
	return &zl
}

func (l *ZeroLogger) Info(message string, properties Fields) {
	l.logger().Info().Fields(map[string]interface{}(properties)).Msg(message)
}

func (l *ZeroLogger) Warn(message string, properties Fields) {
	l.logger().Warn().Fields(map[string]interface{}(properties)).Msg(message)
}

func (l *ZeroLogger) Error(err error, properties Fields) {
	l.logger().Error().Fields(map[string]interface{}(properties)).Err(err).Msg(err.Error())
}

// Fatal writes the entry and stops the process.
func (l *ZeroLogger) Fatal(err error, properties Fields) {
	// WithLevel keeps zerolog from calling os.Exit itself so the exit hook stays testable.
	l.logger().WithLevel(zerolog.FatalLevel).Fields(map[string]interface{}(properties)).Err(err).Msg(err.Error())
	l.exit(1)
}

func (l *ZeroLogger) Debug(message string, properties Fields) {
	l.logger().Debug().Fields(map[string]interface{}(properties)).Msg(message)
}

func (l *ZeroLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.configure()
}
