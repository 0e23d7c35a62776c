// Package middleware provides the logging plumbing around a terminal session.
package middleware

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/go-petr/pet-atm/pkg/configpkg"
	"github.com/go-petr/pet-atm/pkg/errorspkg"
)

// SessionIDKey is the log field carrying the session id.
const SessionIDKey = "session_id"

// consoleLevel keeps the terminal free of everything below warnings.
const consoleLevel = zerolog.WarnLevel

// levelFilter drops events below min before they reach w.
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < f.min {
		return len(p), nil
	}

	return f.w.Write(p)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// GetLogger builds the application logger.
//
// Warnings and errors always reach console in human readable form. When
// config.LogFile is set, events at config.LogLevel and above are also written
// there as JSON with size based rotation. The returned closer releases the
// log file.
func GetLogger(config configpkg.Config, console io.Writer) (zerolog.Logger, io.Closer) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	fileLevel, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil || fileLevel == zerolog.NoLevel {
		fileLevel = zerolog.InfoLevel // default to INFO
	}

	minConsole := consoleLevel
	if config.Environement == "development" {
		minConsole = zerolog.TraceLevel
	}

	writers := []io.Writer{
		levelFilter{
			w:   zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen},
			min: minConsole,
		},
	}

	var closer io.Closer = nopCloser{}

	logLevel := minConsole

	if config.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}

		writers = append(writers, levelFilter{w: file, min: fileLevel})
		closer = file

		if fileLevel < logLevel {
			logLevel = fileLevel
		}
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(logLevel).
		With().
		Timestamp().
		Logger()

	if config.Environement == "development" {
		log = log.With().Caller().Logger()
	}

	return log, closer
}

// SessionContext tags logger with a fresh session id and attaches it to ctx.
func SessionContext(ctx context.Context, logger zerolog.Logger) (context.Context, string) {
	sessionID := uuid.NewString()

	logger = logger.With().Str(SessionIDKey, sessionID).Logger()

	return logger.WithContext(ctx), sessionID
}

// Action is one unit of work triggered from the menu.
type Action func(ctx context.Context) error

// ActionLogger logs the outcome and latency of next under name.
// A panic inside next is logged and turned into errorspkg.ErrInternal.
func ActionLogger(name string, next Action) Action {
	return func(ctx context.Context) (err error) {
		l := zerolog.Ctx(ctx)
		start := time.Now()

		defer func() {
			if panicVal := recover(); panicVal != nil {
				l.Error().Str("action", name).Msgf("panic message: %v", panicVal)
				err = errorspkg.ErrInternal
			}

			var logEvent *zerolog.Event
			if err == errorspkg.ErrInternal {
				logEvent = l.Error()
			} else {
				logEvent = l.Info()
			}

			logEvent.
				Str("action", name).
				Str("latency", time.Since(start).String()).
				Err(err).
				Msg("action finished")
		}()

		return next(ctx)
	}
}
