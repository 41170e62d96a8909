package services

import (
	"strings"

	"github.com/agentos/backend/internal/domain"
)

// Complexity classifies an input text and bounds how many agents may work on
// it.
type Complexity struct {
	Level        domain.ComplexityLevel
	AgentsNeeded int
}

// AnalyzeComplexity buckets the input by word count. Pure: same text, same
// result, no failure mode.
func AnalyzeComplexity(text string) Complexity {
	wordCount := len(strings.Fields(text))

	switch {
	case wordCount < 20:
		return Complexity{Level: domain.ComplexitySimple, AgentsNeeded: 1}
	case wordCount < 100:
		return Complexity{Level: domain.ComplexityMedium, AgentsNeeded: 2}
	default:
		return Complexity{Level: domain.ComplexityComplex, AgentsNeeded: 3}
	}
}
