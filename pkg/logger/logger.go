package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

func New() *Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount+1).
		Logger()

	return &Logger{zl: logger}
}

func NewFromConfig(cfg LoggerConfig) *Logger {
	if cfg.LogLevel == zerolog.NoLevel {
		cfg.LogLevel = zerolog.InfoLevel
	}

	return New().WithLevel(cfg.LogLevel)
}

// Nop discards everything; handy for tests and disabled components.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) WithOutput(w io.Writer) *Logger {
	l.zl = l.zl.Output(w)
	return l
}

func (l *Logger) WithLevel(level zerolog.Level) *Logger {
	l.zl = l.zl.Level(level)
	return l
}

// WithFields returns a child logger carrying the given key/value pairs.
func (l *Logger) WithFields(fields map[string]string) *Logger {
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = ctx.Str(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}

func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctxLogger := zerolog.Ctx(ctx); ctxLogger != nil && ctxLogger.GetLevel() != zerolog.Disabled {
		return &Logger{zl: *ctxLogger}
	}
	return l
}

func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog exposes the underlying logger for code that wants event builders.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

func (l *Logger) Errorf(err error, format string, v ...interface{}) {
	l.zl.Error().Err(err).Msgf(format, v...)
}

func (l *Logger) Fatal(err error, msg string) {
	l.zl.Fatal().Err(err).Msg(msg)
}

func (l *Logger) Fatalf(err error, format string, v ...interface{}) {
	l.zl.Fatal().Err(err).Msgf(format, v...)
}

func (l *Logger) Log(level zerolog.Level, msg string) {
	l.zl.WithLevel(level).Msg(msg)
}

func (l *Logger) Logf(level zerolog.Level, format string, v ...interface{}) {
	l.zl.WithLevel(level).Msgf(format, v...)
}

// Printf satisfies gorm's logger.Writer so SQL traces end up in the same stream.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.zl.Debug().Str("component", "gorm").Msgf(format, v...)
}
