package services

import (
	"strings"
	"testing"

	"github.com/agentos/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestAnalyzeComplexityBuckets(t *testing.T) {
	cases := []struct {
		wordCount int
		level     domain.ComplexityLevel
		agents    int
	}{
		{0, domain.ComplexitySimple, 1},
		{1, domain.ComplexitySimple, 1},
		{19, domain.ComplexitySimple, 1},
		{20, domain.ComplexityMedium, 2},
		{99, domain.ComplexityMedium, 2},
		{100, domain.ComplexityComplex, 3},
		{500, domain.ComplexityComplex, 3},
	}

	for _, tc := range cases {
		got := AnalyzeComplexity(words(tc.wordCount))
		assert.Equalf(t, tc.level, got.Level, "%d words", tc.wordCount)
		assert.Equalf(t, tc.agents, got.AgentsNeeded, "%d words", tc.wordCount)
	}
}

func TestAnalyzeComplexityCountsFieldsNotBytes(t *testing.T) {
	// one very long word is still simple
	got := AnalyzeComplexity(strings.Repeat("a", 2000))
	assert.Equal(t, domain.ComplexitySimple, got.Level)

	// whitespace runs do not inflate the count
	got = AnalyzeComplexity("one    two\t\tthree\n\nfour")
	assert.Equal(t, domain.ComplexitySimple, got.Level)
}

func TestAnalyzeComplexityIsPure(t *testing.T) {
	text := words(42)
	first := AnalyzeComplexity(text)
	second := AnalyzeComplexity(text)
	assert.Equal(t, first, second)
}
