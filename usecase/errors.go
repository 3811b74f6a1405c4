package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFile  = errors.New("resume file is required")
	ErrMissingJobID = errors.New("job id is required")
	ErrJobNotFound  = errors.New("job not found")
)

// DuplicateError reports that the same resume fingerprint was already
// submitted for the job. It carries the prior candidate's identity so
// callers can render a specific "already submitted by X" message.
type DuplicateError struct {
	CandidateID   uint   `json:"existingCandidateId"`
	CandidateName string `json:"candidateName"`
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("resume already submitted for this job by candidate %d (%s)", e.CandidateID, e.CandidateName)
}
