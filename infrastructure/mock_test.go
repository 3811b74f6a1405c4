package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire/domain"
)

func TestMockAnalyzerContract(t *testing.T) {
	m := NewMockAnalyzer()

	// Every result must satisfy the same shape/range contract as live mode.
	for i := 0; i < 50; i++ {
		result, err := m.Analyze(context.Background(), "job", "resume")
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
		assert.Contains(t, mockScores, result.Score)
		assert.Equal(t, domain.TierForScore(result.Score), result.MatchSize)
		assert.NotEmpty(t, result.Summary)
		assert.Len(t, result.InterviewQuestions, 5)
		assert.Equal(t, mockMissingKeywords, result.MissingKeywords)
		assert.True(t, result.Mocked)
	}
}

func TestMockAnalyzerSeededDeterminism(t *testing.T) {
	a := NewSeededMockAnalyzer(7)
	b := NewSeededMockAnalyzer(7)

	for i := 0; i < 10; i++ {
		ra, _ := a.Analyze(context.Background(), "", "")
		rb, _ := b.Analyze(context.Background(), "", "")
		assert.Equal(t, ra.Score, rb.Score)
	}
}

func TestMockAnalyzerSummaryReferencesTier(t *testing.T) {
	m := NewSeededMockAnalyzer(1)

	result, err := m.Analyze(context.Background(), "", "")
	require.NoError(t, err)

	switch result.MatchSize {
	case domain.MatchHigh:
		assert.Contains(t, result.Summary, "high alignment")
	case domain.MatchMedium:
		assert.Contains(t, result.Summary, "medium alignment")
	case domain.MatchLow:
		assert.Contains(t, result.Summary, "low alignment")
	}
}
