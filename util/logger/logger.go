package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var once sync.Once
var root zerolog.Logger

func configure() {
	timeFormat := "2006-01-02T15:04:05.000Z07:00"
	zerolog.TimeFieldFormat = timeFormat

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: timeFormat,
	}

	root = zerolog.New(output).With().Timestamp().Logger()
}

// Get returns the shared process logger, configuring it on first use.
func Get() *zerolog.Logger {
	once.Do(configure)
	return &root
}

// GetConfigured returns the shared logger after pinning the global level.
func GetConfigured(level zerolog.Level) *zerolog.Logger {
	once.Do(func() {
		configure()
		zerolog.SetGlobalLevel(level)
	})
	return &root
}

// Component returns a child logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}
