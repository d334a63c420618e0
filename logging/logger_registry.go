package logging

import (
	"regexp"
	"sync"

	"github.com/pkg/errors"
)

// Registry tracks named loggers so that level patterns can be applied to them.
type Registry struct {
	mu        sync.RWMutex
	loggers   map[string]Logger
	logConfig []LoggerPatternConfig
}

var globalLoggerRegistry = newRegistry()

func newRegistry() *Registry {
	return &Registry{
		loggers: make(map[string]Logger),
	}
}

// register records a named logger and applies any matching pattern to it.
func register(logger Logger) Logger {
	if logger.Name() == "" {
		return logger
	}
	globalLoggerRegistry.registerLogger(logger)
	return logger
}

func (lr *Registry) registerLogger(logger Logger) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.loggers[logger.Name()] = logger
	for _, lpc := range lr.logConfig {
		level, matches := matchPattern(lpc, logger.Name())
		if matches {
			logger.SetLevel(level)
		}
	}
}

func matchPattern(lpc LoggerPatternConfig, name string) (Level, bool) {
	r, err := regexp.Compile(buildRegexFromPattern(lpc.Pattern))
	if err != nil || !r.MatchString(name) {
		return INFO, false
	}
	level, err := LevelFromString(lpc.Level)
	if err != nil {
		return INFO, false
	}
	return level, true
}

func (lr *Registry) loggerNamed(name string) (logger Logger, ok bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok = lr.loggers[name]
	return
}

// UpdateConfig replaces the level patterns and re-applies them to every registered logger.
// Later patterns win over earlier ones. Invalid patterns are skipped with a warning.
func (lr *Registry) UpdateConfig(logConfig []LoggerPatternConfig, errorLogger Logger) error {
	valid := make([]LoggerPatternConfig, 0, len(logConfig))
	for _, lpc := range logConfig {
		if !ValidatePattern(lpc.Pattern) {
			errorLogger.Warnw("failed to validate a pattern", "pattern", lpc.Pattern)
			continue
		}
		if _, err := LevelFromString(lpc.Level); err != nil {
			return errors.Wrapf(err, "pattern %q", lpc.Pattern)
		}
		valid = append(valid, lpc)
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.logConfig = valid
	for name, logger := range lr.loggers {
		for _, lpc := range valid {
			if level, matches := matchPattern(lpc, name); matches {
				logger.SetLevel(level)
			}
		}
	}
	return nil
}

// UpdateLoggerConfig applies patterns to the global registry.
func UpdateLoggerConfig(logConfig []LoggerPatternConfig, errorLogger Logger) error {
	return globalLoggerRegistry.UpdateConfig(logConfig, errorLogger)
}
