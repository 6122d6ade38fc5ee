package logger

import (
	"strings"

	"github.com/rs/zerolog"
)

type LoggerConfigJson struct {
	LogLevel string `json:"log_level"`
}

type LoggerConfig struct {
	LogLevel zerolog.Level
}

// ConvertToDomain maps the textual level ("debug", "info", ...) onto zerolog.
// Unknown or empty levels fall back to info.
func (lcj LoggerConfigJson) ConvertToDomain() LoggerConfig {
	return LoggerConfig{LogLevel: ParseLevel(lcj.LogLevel)}
}

func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
