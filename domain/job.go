package domain

import "time"

// Job is a posted position. Its description is the matching corpus the
// analyzer scores resumes against. Jobs are immutable after creation.
type Job struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Requirements string    `gorm:"type:text;not null" json:"requirements"`
	CreatedAt    time.Time `json:"createdAt"`
}
