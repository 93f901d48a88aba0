package logging

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type LoggerFactory interface {
	CreateLogger(ctx context.Context) Logger
}

var (
	loggerFactoryMu sync.RWMutex
	loggerFactory   LoggerFactory
)

func SetLoggerFactory(factory LoggerFactory) {
	loggerFactoryMu.Lock()
	defer loggerFactoryMu.Unlock()

	loggerFactory = factory
}

func GetLoggerFactory() LoggerFactory {
	loggerFactoryMu.RLock()
	defer loggerFactoryMu.RUnlock()

	return loggerFactory
}

// standardFactory hands out loggers backed by one shared, pre-configured
// logrus instance. Binaries install it so every NewLogger call in the module
// honors the configured level and format.
type standardFactory struct {
	logger *logrus.Logger
}

func (f *standardFactory) CreateLogger(ctx context.Context) Logger {
	return &logrusLogger{entry: f.logger.WithContext(ctx)}
}

// NewStandardFactory builds a LoggerFactory from a level name ("debug",
// "info", "warn", "error") and a format name ("text" or "json"). Unknown
// values fall back to info-level text logging.
func NewStandardFactory(level, format string) LoggerFactory {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(strings.TrimSpace(strings.ToLower(level)))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &standardFactory{logger: logger}
}
