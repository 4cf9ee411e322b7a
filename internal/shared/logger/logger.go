package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New initializes a new zerolog.Logger.
// 'devMode' enables human-readable console logging.
func New(devMode bool) zerolog.Logger {
	if devMode {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		return zerolog.New(consoleWriter).With().Timestamp().Logger()
	}

	// Efficient JSON output for production
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
