package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger used by every package through
// github.com/rs/zerolog/log. An unparsable level falls back to info; format "json" writes
// structured lines, anything else a human-readable console format. Output goes to stderr.
func InitLogger(level, format string) {
	initLogger(os.Stderr, level, format)
}

func initLogger(out io.Writer, level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	w := out
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
