package telemetry

import (
	"fmt"
	"io"
	"log/slog"
)

// SlogAPI implements API using the log/slog package.
type SlogAPI struct {
	logger *slog.Logger
}

// NewSlogAPI wraps a logger, a nil logger falls back to slog.Default().
func NewSlogAPI(logger *slog.Logger) SlogAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogAPI{logger: logger}
}

// NewTextLogger creates the text handler used by the cli, debug output is only
// shown when verbose is set.
func NewTextLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (SlogAPI) formatParams(out *[]any, params []any) {
	for i, p := range params {
		*out = append(
			*out,
			fmt.Sprintf("params.%d", i),
			p,
		)
	}
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	s.logger.Error("broken component", remainingPairs...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	s.logger.Warn("warning", remainingPairs...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	remainingPairs := []any{}
	s.formatParams(&remainingPairs, params)
	s.logger.Debug(message, remainingPairs...)
}

func (s SlogAPI) ReportInfo(message string, params ...any) {
	remainingPairs := []any{}
	s.formatParams(&remainingPairs, params)
	s.logger.Info(message, remainingPairs...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.logger.Info("count", "id", id, "n", count)
}
