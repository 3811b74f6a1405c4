package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Candidate is one analyzed submission. Rows are created exactly once per
// successful analysis and never mutated afterwards. The composite unique
// index on (job_id, resume_hash) enforces the duplicate-submission
// invariant even when two identical uploads race past the guard check.
type Candidate struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	JobID              uint                        `gorm:"not null;uniqueIndex:idx_job_resume" json:"jobId"`
	Name               string                      `gorm:"size:255;not null" json:"name"`
	Email              string                      `gorm:"size:255" json:"email"`
	ResumeText         string                      `gorm:"type:longtext" json:"resumeText"`
	ResumeHash         string                      `gorm:"size:64;not null;uniqueIndex:idx_job_resume" json:"-"`
	AIScore            int                         `json:"aiScore"`
	AIMatchSize        string                      `gorm:"size:16" json:"aiMatchSize"`
	AISummary          string                      `gorm:"type:text" json:"aiSummary"`
	InterviewQuestions datatypes.JSONSlice[string] `json:"interviewQuestions"`
	MissingKeywords    datatypes.JSONSlice[string] `json:"missingKeywords"`
	CreatedAt          time.Time                   `json:"createdAt"`
}
