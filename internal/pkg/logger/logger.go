package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/xtding233/cogtrain-backend/internal/config"
)

// Configure sets up the global logger. Dev mode logs everything to a console
// writer; otherwise JSON lines at debug level go to stdout. With LogFile set,
// JSON lines are also written to a rotated file.
func Configure(conf *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var (
		out   io.Writer = os.Stdout
		level           = zerolog.DebugLevel
	)
	if conf.DevMode {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339Nano,
		}
		level = zerolog.TraceLevel
	}

	if conf.LogFile != "" {
		out = zerolog.MultiLevelWriter(
			out,
			&lumberjack.Logger{
				Filename:   conf.LogFile,
				MaxSize:    100, // MB
				MaxBackups: 7,
				MaxAge:     30, // days
				Compress:   true,
			},
		)
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(level)
}
