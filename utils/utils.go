package utils

import (
	"context"
	"log/slog"
)

// logAt logs e at level under the "error" key. nil errors are ignored.
func logAt(level slog.Level, e error) {
	if e != nil {
		slog.Log(context.Background(), level, "", "error", e)
	}
}

func Loge(e error)  { logAt(slog.LevelError, e) }
func Logwe(e error) { logAt(slog.LevelWarn, e) }
func Logie(e error) { logAt(slog.LevelInfo, e) }
func Logde(e error) { logAt(slog.LevelDebug, e) }
