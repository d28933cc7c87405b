package middleware

import (
	"io"
	"log/slog"
)

func newTestDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
