// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu    sync.Mutex
	sugar *zap.SugaredLogger
)

// Init initializes the global logger for the given environment.
// "production" uses a JSON encoder, "test" discards everything, and all other
// environments use a human-readable console encoder on stderr.
// Calling Init again replaces the previous logger.
func Init(env string) {
	var base *zap.Logger
	var err error

	switch env {
	case "production":
		base, err = zap.NewProduction()
	case "test":
		base = zap.NewNop()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.DisableStacktrace = true
		base, err = cfg.Build()
	}
	if err != nil {
		// Fallback to nop logger if initialization fails.
		base = zap.NewNop()
	}

	mu.Lock()
	defer mu.Unlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
	sugar = base.Sugar()
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	mu.Lock()
	l := sugar
	mu.Unlock()
	if l == nil {
		Init("development")
		return Get()
	}
	return l
}

// Named returns the global logger scoped to a component.
func Named(component string) *zap.SugaredLogger {
	return Get().Named(component)
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
}
