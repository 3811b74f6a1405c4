package domain

// CandidateScored is published after a candidate row is persisted so that
// downstream consumers (dashboards, notifiers) can react without polling.
type CandidateScored struct {
	CandidateID uint   `json:"candidate_id"`
	JobID       uint   `json:"job_id"`
	Score       int    `json:"score"`
	MatchSize   string `json:"match_size"`
	Mocked      bool   `json:"mocked"`
}
