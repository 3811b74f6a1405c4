package infrastructure

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"smarthire/domain"
)

// The mock scorer keeps the system usable and testable without any
// external dependency. Scores come from a small fixed set; everything else
// derives deterministically from the chosen score.
var mockScores = []int{45, 65, 78, 82, 55, 91, 72}

var mockMissingKeywords = []string{"Docker", "Kubernetes", "CI/CD", "Agile"}

var mockInterviewQuestions = []string{
	"Can you describe your experience with containerization and orchestration tools?",
	"Tell us about a challenging project you led and how you overcame obstacles.",
	"How do you approach learning new technologies and frameworks?",
	"Describe your experience with agile development methodologies.",
	"What are your career goals and how does this role fit into your growth path?",
}

// MockAnalyzer produces placeholder match results that satisfy the same
// shape and range contract as live analysis.
type MockAnalyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockAnalyzer() *MockAnalyzer {
	return NewSeededMockAnalyzer(time.Now().UnixNano())
}

// NewSeededMockAnalyzer fixes the score sequence, for tests.
func NewSeededMockAnalyzer(seed int64) *MockAnalyzer {
	return &MockAnalyzer{rng: rand.New(rand.NewSource(seed))}
}

func (m *MockAnalyzer) Analyze(_ context.Context, _ string, _ string) (*domain.MatchResult, error) {
	m.mu.Lock()
	score := mockScores[m.rng.Intn(len(mockScores))]
	m.mu.Unlock()

	tier := domain.TierForScore(score)
	summary := fmt.Sprintf(
		"The candidate shows %s alignment with the job requirements. Their background demonstrates relevant experience, though some skill gaps were identified that could be addressed through training or mentoring.",
		strings.ToLower(tier),
	)

	return &domain.MatchResult{
		Score:              score,
		MatchSize:          tier,
		Summary:            summary,
		MissingKeywords:    append([]string(nil), mockMissingKeywords...),
		InterviewQuestions: append([]string(nil), mockInterviewQuestions...),
		Mocked:             true,
	}, nil
}
