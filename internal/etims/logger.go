package etims

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// NewLogger opens the diagnostic log under the user cache directory. Remote
// failure detail goes here and is never printed to the terminal. Falls back
// to a discard logger when the file cannot be opened.
func NewLogger() *slog.Logger {
	dir, err := os.UserCacheDir()
	if err != nil {
		return discardLogger()
	}

	logDir := filepath.Join(dir, "etims-cli")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return discardLogger()
	}

	f, err := os.OpenFile(filepath.Join(logDir, "etims-cli.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discardLogger()
	}

	return slog.New(slog.NewJSONHandler(f, nil))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
