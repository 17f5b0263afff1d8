// Package logger provides the structured, levelled logger used across the
// client, built on log/slog.
//
// Screens tag their lines with a scope so a session transcript reads cleanly:
//
//	log := logger.With("screen", "kitchen")
//	log.Info("orders reloaded", "count", len(orders))
package logger

import (
	"log/slog"
	"os"

	"github.com/marespinozac/comanda/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// With returns a logger pre-tagged with the given attributes.
func With(args ...any) *slog.Logger { return L.With(args...) }

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
