// Package logging wires log/slog for the whole application: one global
// handler, per-component child loggers, runtime-adjustable level.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// Init configures the global slog logger from config values. Call once
// at startup. level: "debug", "info", "warn", "error" (default "info");
// format: "text" or "json" (default "text").
func Init(levelStr, format string) {
	level.Set(parseLevel(levelStr))

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// For returns a logger tagged with a component name. The logger
// delegates to slog.Default() on every call, so package-level logger
// variables pick up later Init or capture installs.
func For(component string) *slog.Logger {
	return slog.New(&componentHandler{component: component})
}

// SetLevel changes the log level at runtime.
func SetLevel(l slog.Level) {
	level.Set(l)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// componentHandler forwards records to the current default handler with
// a "component" attribute prepended.
type componentHandler struct {
	component string
}

func (h *componentHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return slog.Default().Handler().Enabled(ctx, l)
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("component", h.component))
	return slog.Default().Handler().Handle(ctx, r)
}

func (h *componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *componentHandler) WithGroup(name string) slog.Handler {
	return h
}
