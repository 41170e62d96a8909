package services

import (
	"strings"

	"github.com/agentos/backend/internal/domain"
)

// AggregateResults merges per-agent payloads into one aggregate, preserving
// input order. A single result passes through unchanged. Confidence is the
// arithmetic mean of the inputs' confidence values; the historical
// max-then-divide behavior of the system this replaces was a bug and is not
// preserved.
func AggregateResults(results []*domain.ResultPayload) (*domain.ResultPayload, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	if len(results) == 1 {
		return results[0], nil
	}

	var summary strings.Builder
	aggregated := &domain.ResultPayload{}
	for _, result := range results {
		if result.Summary != "" {
			summary.WriteString(result.Summary)
			summary.WriteString("\n\n")
		}
		aggregated.Details = append(aggregated.Details, result.Details...)
		aggregated.Sources = append(aggregated.Sources, result.Sources...)
		aggregated.Confidence += result.Confidence
	}
	aggregated.Summary = summary.String()
	aggregated.Confidence /= float64(len(results))

	return aggregated, nil
}
