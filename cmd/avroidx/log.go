package main

import (
	"log/slog"
	"os"
)

// logLevel is read from AVROIDX_LOG_LEVEL (debug, info, warn, error).
var logLevel = func() *slog.LevelVar {
	lv := &slog.LevelVar{}
	if v := os.Getenv("AVROIDX_LOG_LEVEL"); v != "" {
		_ = lv.UnmarshalText([]byte(v))
	}
	return lv
}()

var (
	theLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				if a.Value.String() == "INFO" {
					return slog.Attr{}
				}
			}
			return a
		},
	}))
)

// fileLog returns a logger whose records name the input being processed.
func fileLog(file string) *slog.Logger {
	return theLog.With("file", file)
}
