package logging

import "go.uber.org/zap"

// New creates a zap logger for the given environment. "production" gets JSON
// output at info level, "local" the example logger, anything else the
// development logger.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "local":
		return zap.NewExample(), nil
	default:
		return zap.NewDevelopment()
	}
}

// Sugared returns a sugared logger for env, falling back to the global logger
// if construction fails.
func Sugared(env string) *zap.SugaredLogger {
	logger, err := New(env)
	if err != nil {
		return zap.S()
	}
	return logger.Sugar()
}
