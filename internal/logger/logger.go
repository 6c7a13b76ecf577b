package logger

import (
	"log/slog"
	"os"

	"github.com/jwebster45206/gift-hunt/internal/config"
)

const serviceName = "gift-hunt"

// Setup installs the process-wide logger. Production gets JSON lines; every
// other environment gets the text handler.
func Setup(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With("service", serviceName)
	slog.SetDefault(logger)
	return logger
}

// WithRequestID adds request ID to logger context
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With("request_id", requestID)
}

// WithError attaches err as "error". A nil error returns the logger unchanged.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With("error", err.Error())
}
