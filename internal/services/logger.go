// File: internal/services/logger.go
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Logger is the common structured logging interface used by all services.
// Key/value pairs follow the message.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// LogLevel represents logging severity.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StdLogger writes structured log lines to stdout: JSON in production,
// human-readable otherwise.
type StdLogger struct {
	out        *log.Logger
	level      LogLevel
	service    string
	structured bool
}

// NewStdLogger creates a logger for the named service.
func NewStdLogger(service string, level LogLevel, structured bool) *StdLogger {
	return &StdLogger{
		out:        log.New(os.Stdout, "", 0),
		level:      level,
		service:    service,
		structured: structured,
	}
}

func (s *StdLogger) Info(msg string, kv ...interface{})  { s.log(LogLevelInfo, msg, kv...) }
func (s *StdLogger) Warn(msg string, kv ...interface{})  { s.log(LogLevelWarn, msg, kv...) }
func (s *StdLogger) Error(msg string, kv ...interface{}) { s.log(LogLevelError, msg, kv...) }
func (s *StdLogger) Debug(msg string, kv ...interface{}) { s.log(LogLevelDebug, msg, kv...) }

func (s *StdLogger) log(level LogLevel, msg string, kv ...interface{}) {
	if level < s.level {
		return
	}
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if s.structured {
		entry := map[string]interface{}{
			"timestamp": timestamp,
			"level":     level.String(),
			"service":   s.service,
			"message":   msg,
		}
		if len(kv) > 1 {
			fields := make(map[string]interface{}, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				if key, ok := kv[i].(string); ok {
					fields[key] = kv[i+1]
				}
			}
			if len(fields) > 0 {
				entry["fields"] = fields
			}
		}
		raw, _ := json.Marshal(entry)
		s.out.Println(string(raw))
		return
	}

	var sb strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		sb.WriteString(fmt.Sprintf(" %v=%v", kv[i], kv[i+1]))
	}
	s.out.Printf("[%s] %s [%s] %s%s", timestamp, level.String(), s.service, msg, sb.String())
}

// NoOpLogger discards everything; used in tests.
type NoOpLogger struct{}

func (NoOpLogger) Info(msg string, kv ...interface{})  {}
func (NoOpLogger) Warn(msg string, kv ...interface{})  {}
func (NoOpLogger) Error(msg string, kv ...interface{}) {}
func (NoOpLogger) Debug(msg string, kv ...interface{}) {}

// NewLogger builds a Logger from the environment: no-op under test, JSON in
// production, human-readable with the configured level otherwise.
func NewLogger(service string) Logger {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "test" {
		return NoOpLogger{}
	}

	level := LogLevelInfo
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		level = LogLevelDebug
	case "WARN":
		level = LogLevelWarn
	case "ERROR":
		level = LogLevelError
	}

	return NewStdLogger(service, level, env == "production")
}
