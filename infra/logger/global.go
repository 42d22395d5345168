package logger

import (
	"sync"

	"github.com/mstgnz/interkassa/infra/config"
	"github.com/mstgnz/interkassa/infra/opensearch"
)

const (
	serviceName    = "interkassa"
	serviceVersion = "1.0.0"
)

var (
	globalLogger *SystemLogger
	globalMu     sync.RWMutex
	once         sync.Once
)

// InitGlobalLogger initializes the global system logger; osLogger may be nil
func InitGlobalLogger(osLogger *opensearch.Logger) {
	once.Do(func() {
		cfg := config.GetAppConfig()
		loggerConfig := SystemLoggerConfig{
			EnableConsole:    true,
			EnableOpenSearch: osLogger != nil,
			MinLevel:         ParseLevel(cfg.LoggingLevel),
			Service:          serviceName,
			Version:          serviceVersion,
			Environment:      cfg.Environment,
		}

		if loggerConfig.Environment == "development" {
			loggerConfig.MinLevel = LevelDebug
		}

		SetGlobalLogger(NewSystemLogger(osLogger, loggerConfig))
	})
}

// SetGlobalLogger replaces the global logger
func SetGlobalLogger(l *SystemLogger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *SystemLogger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	// Fallback to console-only logger if not initialized
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewSystemLogger(nil, SystemLoggerConfig{
			EnableConsole: true,
			MinLevel:      LevelInfo,
			Service:       serviceName,
			Version:       serviceVersion,
			Environment:   "development",
		})
	}
	return globalLogger
}

// Debug logs a debug message using the global logger
func Debug(message string, ctx ...LogContext) {
	GetGlobalLogger().Debug(message, ctx...)
}

// Info logs an info message using the global logger
func Info(message string, ctx ...LogContext) {
	GetGlobalLogger().Info(message, ctx...)
}

// Warn logs a warning message using the global logger
func Warn(message string, ctx ...LogContext) {
	GetGlobalLogger().Warn(message, ctx...)
}

// Error logs an error message using the global logger
func Error(message string, err error, ctx ...LogContext) {
	GetGlobalLogger().Error(message, err, ctx...)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, ctx ...LogContext) {
	GetGlobalLogger().Fatal(message, err, ctx...)
}

// WithProvider creates a context logger with provider
func WithProvider(provider string) *ContextLogger {
	return GetGlobalLogger().WithContext(LogContext{Provider: provider})
}
