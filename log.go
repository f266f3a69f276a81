package svgbundle

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slog"
)

// NewLogger returns a text or JSON logger writing to w at cfg.LogLevel.
func NewLogger(w io.Writer, cfg Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
}

// LogSummary reports the outcome of a run.
func LogSummary(log *slog.Logger, st Stats) {
	saved := 0.0
	if st.OriginalBytes > 0 {
		saved = float64(st.OriginalBytes-st.OptimizedBytes) / float64(st.OriginalBytes) * 100
	}
	log.Info("done",
		"files", st.Files,
		"processed", st.Processed,
		"failed", st.Errors,
		"collisions", st.Collisions,
		"original_bytes", st.OriginalBytes,
		"optimized_bytes", st.OptimizedBytes,
		"saved", fmt.Sprintf("%.1f%%", saved),
	)
}
