package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smarthire/domain"
)

// JobStore is the gorm-backed job repository.
type JobStore struct {
	db *gorm.DB
}

func NewJobStore(db *gorm.DB) *JobStore {
	return &JobStore{db: db}
}

func (s *JobStore) Create(ctx context.Context, job *domain.Job) error {
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *JobStore) FindByID(ctx context.Context, id uint) (*domain.Job, error) {
	var job domain.Job
	err := s.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job %d: %w", id, err)
	}
	return &job, nil
}

func (s *JobStore) ListAll(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// CandidateStore is the gorm-backed candidate repository.
type CandidateStore struct {
	db *gorm.DB
}

func NewCandidateStore(db *gorm.DB) *CandidateStore {
	return &CandidateStore{db: db}
}

// Create inserts the candidate in a single statement. The unique index on
// (job_id, resume_hash) rejects concurrent duplicates; with TranslateError
// enabled the violation comes back as gorm.ErrDuplicatedKey.
func (s *CandidateStore) Create(ctx context.Context, candidate *domain.Candidate) error {
	return s.db.WithContext(ctx).Create(candidate).Error
}

func (s *CandidateStore) FindByFingerprint(ctx context.Context, jobID uint, hash string) (*domain.Candidate, error) {
	var candidate domain.Candidate
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND resume_hash = ?", jobID, hash).
		First(&candidate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find candidate by fingerprint: %w", err)
	}
	return &candidate, nil
}

func (s *CandidateStore) ListByJob(ctx context.Context, jobID uint) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("ai_score DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("list candidates for job %d: %w", jobID, err)
	}
	return candidates, nil
}
