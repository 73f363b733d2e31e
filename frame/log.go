package frame

import "log/slog"

var logger *slog.Logger

// SetLogger replaces the logger used for debug traces of sort, merge and group
// operations. A nil logger falls back to slog.Default().
func SetLogger(l *slog.Logger) {
	logger = l
}

func log() *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
