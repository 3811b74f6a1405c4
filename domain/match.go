package domain

// Match tiers shared by the live and mock analyzers and all consumers.
const (
	MatchHigh   = "High"
	MatchMedium = "Medium"
	MatchLow    = "Low"
)

// Tier score floors. Single threshold table for both analysis modes.
const (
	highScoreFloor   = 75
	mediumScoreFloor = 50
)

// MatchResult is the transient analysis output; it becomes the Candidate's
// AI fields on persist. Mock results aim for five interview questions, but
// consumers must tolerate any count.
type MatchResult struct {
	Score              int      `json:"score"`
	MatchSize          string   `json:"matchSize"`
	Summary            string   `json:"summary"`
	MissingKeywords    []string `json:"missingKeywords"`
	InterviewQuestions []string `json:"interviewQuestions"`

	// Mocked marks results produced by the mock scorer, either because no
	// live credential is configured or because the live call failed. It is
	// surfaced in logs and events, never in API responses.
	Mocked bool `json:"-"`
}

// TierForScore maps a numeric score to its match tier.
func TierForScore(score int) string {
	switch {
	case score >= highScoreFloor:
		return MatchHigh
	case score >= mediumScoreFloor:
		return MatchMedium
	default:
		return MatchLow
	}
}

// ClampScore bounds a score into [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ValidTier reports whether size is one of the three known tiers.
func ValidTier(size string) bool {
	return size == MatchHigh || size == MatchMedium || size == MatchLow
}
