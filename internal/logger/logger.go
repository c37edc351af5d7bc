package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Toston-App/lake-sub000/config"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init configures the package logger from the application config.
func Init(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.App.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	SetLogger(zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Logger())
}

// SetLogger replaces the package logger; tests use it to silence output.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug() *zerolog.Event {
	l := Get()
	return l.Debug()
}

func Info() *zerolog.Event {
	l := Get()
	return l.Info()
}

func Warn() *zerolog.Event {
	l := Get()
	return l.Warn()
}

func Error() *zerolog.Event {
	l := Get()
	return l.Error()
}

func Fatal() *zerolog.Event {
	l := Get()
	return l.Fatal()
}
