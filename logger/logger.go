// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ------------------- shared logger -------------------

// Log is the shared logrus instance used throughout the application.
var Log = logrus.New()

// InitLogger configures the shared logger. It:
// - Emits JSON in production, plain text everywhere else.
// - Reads the level from LOG_LEVEL (debug/info/warn), defaulting to info.
// - Writes to stdout.
func InitLogger(environment string) {
	if environment == "production" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	Log.SetOutput(os.Stdout)

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "warn":
		Log.SetLevel(logrus.WarnLevel)
	default:
		Log.SetLevel(logrus.InfoLevel)
	}
}

// ------------------- level helpers -------------------

// thin wrappers so call sites don't import logrus directly

// Infof logs at info level.
func Infof(format string, args ...interface{}) { Log.Infof(format, args...) }

// Warnf logs at warn level.
func Warnf(format string, args ...interface{}) { Log.Warnf(format, args...) }

// Errorf logs at error level.
func Errorf(format string, args ...interface{}) { Log.Errorf(format, args...) }

// Debugf logs at debug level.
func Debugf(format string, args ...interface{}) { Log.Debugf(format, args...) }
