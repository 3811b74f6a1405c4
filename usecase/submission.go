package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"smarthire/domain"
)

// Defaults applied when the uploader does not identify the candidate,
// matching what the dashboard expects to display.
const (
	DefaultCandidateName  = "Unknown Candidate"
	DefaultCandidateEmail = "not-provided@example.com"
)

const bulkConcurrency = 4

// JobStore is the persistence surface the pipeline needs for jobs.
type JobStore interface {
	Create(ctx context.Context, job *domain.Job) error
	// FindByID returns (nil, nil) when the job does not exist.
	FindByID(ctx context.Context, id uint) (*domain.Job, error)
	ListAll(ctx context.Context) ([]domain.Job, error)
}

// CandidateStore is the persistence surface the pipeline needs for
// candidates. Create must be atomic and surface gorm.ErrDuplicatedKey when
// the (job, fingerprint) uniqueness constraint is violated.
type CandidateStore interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	// FindByFingerprint returns (nil, nil) when no candidate matches.
	FindByFingerprint(ctx context.Context, jobID uint, hash string) (*domain.Candidate, error)
	ListByJob(ctx context.Context, jobID uint) ([]domain.Candidate, error)
}

// Extractor converts an uploaded document into plain text. It never fails:
// degraded reports that structured extraction fell back to raw bytes.
type Extractor interface {
	Extract(data []byte, filename string) (text string, degraded bool)
}

// MatchAnalyzer is the never-failing analysis contract the pipeline
// consumes, satisfied by FallbackAnalyzer.
type MatchAnalyzer interface {
	Analyze(ctx context.Context, jobDescription, resumeText string) *domain.MatchResult
}

// Publisher emits candidate-scored events after persist.
type Publisher interface {
	PublishCandidateScored(ctx context.Context, event domain.CandidateScored) error
}

// Submission states, logged per transition.
const (
	stateReceived         = "received"
	stateExtracted        = "extracted"
	stateFingerprinted    = "fingerprinted"
	stateDuplicateChecked = "duplicate_checked"
	stateAnalyzed         = "analyzed"
	statePersisted        = "persisted"
	stateDone             = "done"
)

// SubmissionInput is one resume upload for one job.
type SubmissionInput struct {
	JobID          uint
	FileName       string
	FileData       []byte
	CandidateName  string
	CandidateEmail string
}

// Pipeline sequences extraction, fingerprinting, the duplicate guard,
// analysis and the atomic persist for each submission. Submissions are
// independent units of work; the only shared resource is the store.
type Pipeline struct {
	jobs       JobStore
	candidates CandidateStore
	extractor  Extractor
	analyzer   MatchAnalyzer
	publisher  Publisher // optional
	log        *logrus.Logger
}

func NewPipeline(jobs JobStore, candidates CandidateStore, extractor Extractor, analyzer MatchAnalyzer, publisher Publisher, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		jobs:       jobs,
		candidates: candidates,
		extractor:  extractor,
		analyzer:   analyzer,
		publisher:  publisher,
		log:        log,
	}
}

// Submit runs the full pipeline for one upload. It returns the persisted
// candidate, a *DuplicateError, ErrMissingFile/ErrMissingJobID/ErrJobNotFound,
// or a wrapped storage error.
func (p *Pipeline) Submit(ctx context.Context, in SubmissionInput) (*domain.Candidate, error) {
	entry := p.log.WithFields(logrus.Fields{"job_id": in.JobID, "file": in.FileName})
	entry.WithField("state", stateReceived).Debug("submission")

	if len(in.FileData) == 0 {
		return nil, ErrMissingFile
	}
	if in.JobID == 0 {
		return nil, ErrMissingJobID
	}

	text, degraded := p.extractor.Extract(in.FileData, in.FileName)
	if degraded {
		entry.Warn("pdf extraction failed, using raw file contents; analysis quality may degrade")
	}
	entry.WithField("state", stateExtracted).Debug("submission")

	hash := domain.Fingerprint(text)
	entry.WithField("state", stateFingerprinted).Debug("submission")

	existing, err := p.candidates.FindByFingerprint(ctx, in.JobID, hash)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateError{CandidateID: existing.ID, CandidateName: existing.Name}
	}
	entry.WithField("state", stateDuplicateChecked).Debug("submission")

	job, err := p.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	result := p.analyzer.Analyze(ctx, job.Description, text)
	entry.WithFields(logrus.Fields{
		"state":  stateAnalyzed,
		"score":  result.Score,
		"tier":   result.MatchSize,
		"mocked": result.Mocked,
	}).Debug("submission")

	name := strings.TrimSpace(in.CandidateName)
	if name == "" {
		name = DefaultCandidateName
	}
	email := strings.TrimSpace(in.CandidateEmail)
	if email == "" {
		email = DefaultCandidateEmail
	}

	candidate := &domain.Candidate{
		JobID:              in.JobID,
		Name:               name,
		Email:              email,
		ResumeText:         text,
		ResumeHash:         hash,
		AIScore:            result.Score,
		AIMatchSize:        result.MatchSize,
		AISummary:          result.Summary,
		InterviewQuestions: result.InterviewQuestions,
		MissingKeywords:    result.MissingKeywords,
	}

	if err := p.candidates.Create(ctx, candidate); err != nil {
		// Lost the insert race against a concurrent identical upload:
		// report it the same way the guard would have.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if winner, ferr := p.candidates.FindByFingerprint(ctx, in.JobID, hash); ferr == nil && winner != nil {
				return nil, &DuplicateError{CandidateID: winner.ID, CandidateName: winner.Name}
			}
			return nil, &DuplicateError{}
		}
		return nil, fmt.Errorf("persist candidate: %w", err)
	}
	entry.WithField("state", statePersisted).Debug("submission")

	if p.publisher != nil {
		event := domain.CandidateScored{
			CandidateID: candidate.ID,
			JobID:       candidate.JobID,
			Score:       candidate.AIScore,
			MatchSize:   candidate.AIMatchSize,
			Mocked:      result.Mocked,
		}
		if err := p.publisher.PublishCandidateScored(ctx, event); err != nil {
			entry.WithError(err).Warn("failed to publish candidate-scored event")
		}
	}

	entry.WithFields(logrus.Fields{
		"state":        stateDone,
		"candidate_id": candidate.ID,
		"score":        candidate.AIScore,
	}).Info("resume analyzed")

	return candidate, nil
}

// BulkItem is one file within a bulk submission.
type BulkItem struct {
	FileName       string
	Data           []byte
	CandidateName  string
	CandidateEmail string
}

// BulkResult reports the outcome of one item. Exactly one of Candidate,
// Duplicate or Error is set.
type BulkResult struct {
	FileName  string            `json:"fileName"`
	Candidate *domain.Candidate `json:"candidate,omitempty"`
	Duplicate *DuplicateError   `json:"duplicate,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// SubmitBulk dispatches one independent submission per item with bounded
// concurrency. Partial failure is expected and reported per item; the
// batch itself never fails.
func (p *Pipeline) SubmitBulk(ctx context.Context, jobID uint, items []BulkItem) []BulkResult {
	results := make([]BulkResult, len(items))

	var g errgroup.Group
	g.SetLimit(bulkConcurrency)

	for i, item := range items {
		g.Go(func() error {
			name := item.CandidateName
			if name == "" {
				name = strings.TrimSuffix(item.FileName, filepath.Ext(item.FileName))
			}

			candidate, err := p.Submit(ctx, SubmissionInput{
				JobID:          jobID,
				FileName:       item.FileName,
				FileData:       item.Data,
				CandidateName:  name,
				CandidateEmail: item.CandidateEmail,
			})

			res := BulkResult{FileName: item.FileName}
			var dup *DuplicateError
			switch {
			case err == nil:
				res.Candidate = candidate
			case errors.As(err, &dup):
				res.Duplicate = dup
			default:
				res.Error = err.Error()
			}
			results[i] = res
			return nil
		})
	}

	_ = g.Wait()
	return results
}
