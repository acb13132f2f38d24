package llm

import (
	"log/slog"

	"cinemood/internal/metrics"
)

// Fallback reasons.
const (
	ReasonUnconfigured   = "unconfigured"
	ReasonUpstream       = "upstream_error"
	ReasonParse          = "parse_error"
	ReasonEmpty          = "empty_reply"
	ReasonLengthMismatch = "length_mismatch"
)

// Result is the outcome of an assistant operation. Value is always usable;
// Degraded is set when all or part of it is the operation's fallback.
type Result[T any] struct {
	Value    T
	Degraded bool
	Reason   string
}

func succeeded[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func fallback[T any](op string, v T, reason string, err error) Result[T] {
	metrics.LLMFallbacks.WithLabelValues(op, reason).Inc()
	if err != nil {
		slog.Warn("language model fallback used", "operation", op, "reason", reason, "error", err)
	} else {
		slog.Warn("language model fallback used", "operation", op, "reason", reason)
	}
	return Result[T]{Value: v, Degraded: true, Reason: reason}
}
