package services

import (
	"testing"

	"github.com/agentos/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateResultsEmpty(t *testing.T) {
	_, err := AggregateResults(nil)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestAggregateResultsSinglePassThrough(t *testing.T) {
	payload := &domain.ResultPayload{
		Summary:    "only one",
		Details:    []string{"detail"},
		Sources:    []string{"source"},
		Confidence: 0.9,
	}

	out, err := AggregateResults([]*domain.ResultPayload{payload})
	require.NoError(t, err)
	assert.Same(t, payload, out)
}

func TestAggregateResultsMergesInOrder(t *testing.T) {
	first := &domain.ResultPayload{
		Summary:    "first summary",
		Details:    []string{"d1", "d2"},
		Sources:    []string{"s1"},
		Confidence: 0.4,
	}
	second := &domain.ResultPayload{
		Summary:    "second summary",
		Details:    []string{"d3"},
		Sources:    []string{"s2", "s3"},
		Confidence: 0.8,
	}

	out, err := AggregateResults([]*domain.ResultPayload{first, second})
	require.NoError(t, err)

	assert.Equal(t, "first summary\n\nsecond summary\n\n", out.Summary)
	assert.Equal(t, []string{"d1", "d2", "d3"}, out.Details)
	assert.Equal(t, []string{"s1", "s2", "s3"}, out.Sources)
	assert.InDelta(t, 0.6, out.Confidence, 1e-9)
}

func TestAggregateResultsConfidenceIsMean(t *testing.T) {
	results := []*domain.ResultPayload{
		{Confidence: 0.3},
		{Confidence: 0.6},
		{Confidence: 0.9},
	}
	out, err := AggregateResults(results)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, out.Confidence, 1e-9)
}

func TestAggregateResultsSkipsEmptySummaries(t *testing.T) {
	results := []*domain.ResultPayload{
		{Summary: "", Confidence: 0.5},
		{Summary: "present", Confidence: 0.5},
	}
	out, err := AggregateResults(results)
	require.NoError(t, err)
	assert.Equal(t, "present\n\n", out.Summary)
}
