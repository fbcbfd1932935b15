package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger initializes the structured logger. An empty or unknown level
// falls back to info; format "json" selects the JSON formatter.
func InitLogger(level, format string) *logrus.Logger {
	log := logrus.New()

	if level == "" {
		level = "info"
	}

	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(parsed)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", level).Warn("Invalid LOG_LEVEL, using INFO")
	}

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetOutput(os.Stdout)

	Logger = log

	return log
}

// GetLogger returns the global logger instance, initializing it from
// LOG_LEVEL and LOG_FORMAT when nothing has called InitLogger yet.
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	}
	return Logger
}

// WithComponent creates a logger scoped to a named component
func WithComponent(component string) *logrus.Entry {
	return GetLogger().WithField("component", component)
}

// WithBuildContext creates a logger with lineup build context
func WithBuildContext(buildID, strategy string, salaryCap int) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"build_id":   buildID,
		"strategy":   strategy,
		"salary_cap": salaryCap,
	})
}

// WithRequestContext creates a logger with request context
func WithRequestContext(requestID string) *logrus.Entry {
	return GetLogger().WithField("request_id", requestID)
}
