package repository

import (
	"context"

	"KIndex/internal/domain/models"
)

// IndexSource fetches one index's minute series for a basis date.
// An empty series is a valid outcome ("no data for this basis date").
type IndexSource interface {
	FetchSeries(ctx context.Context, index, basisDate string) (models.Series, *models.IndexQuote, error)
}

// FuturesSource fetches and resolves the nearest-month contract row for a
// basis date. A nil row with nil error means nothing matched the filter.
type FuturesSource interface {
	ResolveContract(ctx context.Context, basisDate string) (*models.ContractRow, error)
}

// Metrics abstracts the recorder so use cases stay test-friendly.
type Metrics interface {
	RecordFetchAttempt(profile, outcome string)
	RecordFallback(outcome string)
	RecordCache(op, result string)
	RecordLastValue(index string, value float64)
	RecordFetchLatency(endpoint string, seconds float64)
}
