package logger

import (
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with additional functionality
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a new structured logger instance
func NewLogger(cfg *config.Config) *Logger {
	log := logrus.New()

	// Set log level
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &Logger{Logger: log}
}

// WithProfile adds connection profile context to log entries
func (l *Logger) WithProfile(profileID string) *logrus.Entry {
	return l.WithField("profile_id", profileID)
}

// WithMapping adds mapping context to log entries
func (l *Logger) WithMapping(mappingID string) *logrus.Entry {
	return l.WithField("mapping_id", mappingID)
}

// WithSchema adds schema snapshot context to log entries
func (l *Logger) WithSchema(schemaID string) *logrus.Entry {
	return l.WithField("schema_id", schemaID)
}

// WithRequest adds request context to log entries
func (l *Logger) WithRequest(requestID string) *logrus.Entry {
	return l.WithField("request_id", requestID)
}
