package usecase

import (
	"context"
	"log/slog"

	"github.com/V4T54L/cloudburst/internal/adapter/metrics"
	"github.com/V4T54L/cloudburst/internal/domain"
)

// Boundary is the single place remote failures are reported before they
// reach callers. It logs and counts a failure and hands back the same error
// value it received.
type Boundary struct {
	logger  *slog.Logger
	metrics *metrics.RelayMetrics
}

// NewBoundary creates a Boundary. m may be nil.
func NewBoundary(m *metrics.RelayMetrics, logger *slog.Logger) *Boundary {
	return &Boundary{
		logger:  logger.With("component", "boundary"),
		metrics: m,
	}
}

// Guard runs fn as the named operation.
func Guard[T any](ctx context.Context, b *Boundary, operation string, fn func(context.Context) (T, error)) (T, error) {
	result, err := fn(ctx)
	if err != nil {
		b.report(operation, err)
		var zero T
		return zero, err
	}
	return result, nil
}

func (b *Boundary) report(operation string, err error) {
	b.logger.Error("remote operation failed",
		"operation", operation,
		"error", err,
		"on_premise_unavailable", domain.IsOnPremiseUnavailable(err),
	)
	if b.metrics != nil {
		b.metrics.OperationFailures.WithLabelValues(operation).Inc()
	}
}
