package repo

import (
	"time"

	"github.com/2beens/liftlog/internal/workout"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// storedTime normalizes timestamps before they hit a store: UTC, microsecond
// precision (what postgres keeps), and "now" when unset.
func storedTime(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Microsecond)
}

func setParamsAttributes(span trace.Span, params workout.HistoryParams) {
	span.SetAttributes(
		attribute.String("exercise.name", params.ExerciseName),
		attribute.String("order", params.Order.String()),
	)
	if params.Range != nil {
		span.SetAttributes(attribute.String("range", params.Range.String()))
	}
	if params.Since != nil {
		span.SetAttributes(attribute.String("since", params.Since.String()))
	}
}
