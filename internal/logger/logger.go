package logger

import "strings"

type Fields map[string]interface{}

type Logger interface {
	Info(message string, properties Fields)
	Warn(message string, properties Fields)
	Error(err error, properties Fields)
	Fatal(err error, properties Fields)
	Debug(message string, properties Fields)
	SetLevel(level Level)
}

type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	case LevelOff:
		return "OFF"
	default:
		return ""
	}
}

// ParseLevel maps a config value such as "debug" or "WARN" to a Level.
// Unknown values fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	case "off", "none":
		return LevelOff
	default:
		return LevelInfo
	}
}
