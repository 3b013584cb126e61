package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// Component represents the logging component
type Component string

const (
	ComponentApp       Component = "app"
	ComponentClient    Component = "client"
	ComponentInnerTube Component = "innertube"
	ComponentCaptions  Component = "captions"
	ComponentTitle     Component = "title"
	ComponentOutput    Component = "output"
)

// Format represents the log output format
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Config holds logger configuration
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer
	Components map[Component]bool
	Timestamp  bool
}

// DefaultConfig returns default logger configuration. Diagnostics go to
// stderr so transcript summaries on stdout stay clean.
func DefaultConfig() *Config {
	return &Config{
		Level:  WARN,
		Format: FormatText,
		Output: os.Stderr,
		Components: map[Component]bool{
			ComponentApp:       true,
			ComponentClient:    true,
			ComponentInnerTube: true,
			ComponentCaptions:  true,
			ComponentTitle:     true,
			ComponentOutput:    true,
		},
		Timestamp: false,
	}
}

// Entry represents a single log entry
type Entry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Component Component              `json:"component"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger provides structured logging functionality
type Logger struct {
	config *Config
	mu     sync.RWMutex
}

// New creates a new logger instance
func New(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	return &Logger{config: config}
}

// WithComponent creates a new logger instance for a specific component
func (l *Logger) WithComponent(component Component) *ComponentLogger {
	return &ComponentLogger{logger: l, component: component}
}

// SetLevel changes the logging level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config.Level = level
}

// SetFormat changes the log format
func (l *Logger) SetFormat(format Format) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config.Format = format
}

// SetOutput changes the log output
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config.Output = w
}

func (l *Logger) log(level Level, component Component, message string, fields map[string]interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if level < l.config.Level {
		return
	}
	if !l.config.Components[component] {
		return
	}

	entry := Entry{
		Timestamp: time.Now(),
		Level:     level,
		Component: component,
		Message:   message,
		Fields:    fields,
	}

	var output string
	switch l.config.Format {
	case FormatJSON:
		data, _ := json.Marshal(entry)
		output = string(data)
	default:
		output = l.formatText(entry)
	}
	fmt.Fprintln(l.config.Output, output)
}

func (l *Logger) formatText(entry Entry) string {
	var parts []string

	if l.config.Timestamp {
		parts = append(parts, entry.Timestamp.Format("2006-01-02 15:04:05"))
	}

	parts = append(parts, fmt.Sprintf("[%s]", levelNames[entry.Level]))
	parts = append(parts, fmt.Sprintf("[%s]", entry.Component))
	parts = append(parts, entry.Message)

	if len(entry.Fields) > 0 {
		var fieldParts []string
		for k, v := range entry.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, strings.Join(fieldParts, " "))
	}

	return strings.Join(parts, " ")
}

// ComponentLogger provides component-specific logging
type ComponentLogger struct {
	logger    *Logger
	component Component
}

// Debug logs a debug message
func (cl *ComponentLogger) Debug(message string, fields ...map[string]interface{}) {
	cl.log(DEBUG, message, fields...)
}

// Info logs an info message
func (cl *ComponentLogger) Info(message string, fields ...map[string]interface{}) {
	cl.log(INFO, message, fields...)
}

// Warn logs a warning message
func (cl *ComponentLogger) Warn(message string, fields ...map[string]interface{}) {
	cl.log(WARN, message, fields...)
}

// Error logs an error message
func (cl *ComponentLogger) Error(message string, fields ...map[string]interface{}) {
	cl.log(ERROR, message, fields...)
}

func (cl *ComponentLogger) log(level Level, message string, fields ...map[string]interface{}) {
	var mergedFields map[string]interface{}
	if len(fields) > 0 {
		mergedFields = fields[0]
	}
	cl.logger.log(level, cl.component, message, mergedFields)
}

// Global logger instance
var globalLogger = New(DefaultConfig())

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger
}

// WithComponent returns a component logger from the global logger
func WithComponent(component Component) *ComponentLogger {
	return globalLogger.WithComponent(component)
}
