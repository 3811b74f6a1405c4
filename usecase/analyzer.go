package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"smarthire/domain"
)

// Analyzer produces a match result for a job description and resume text.
// Implementations may fail; FallbackAnalyzer absorbs those failures.
type Analyzer interface {
	Analyze(ctx context.Context, jobDescription, resumeText string) (*domain.MatchResult, error)
}

const defaultAnalysisTimeout = 45 * time.Second

// FallbackAnalyzer runs the live analyzer under a bounded timeout and falls
// back to the mock scorer on any failure. A best-effort score beats no
// score, so Analyze never reports an error to the orchestrator.
type FallbackAnalyzer struct {
	live    Analyzer // nil in mock mode
	mock    Analyzer
	timeout time.Duration
	log     *logrus.Logger
}

func NewFallbackAnalyzer(live, mock Analyzer, timeout time.Duration, log *logrus.Logger) *FallbackAnalyzer {
	if timeout <= 0 {
		timeout = defaultAnalysisTimeout
	}
	return &FallbackAnalyzer{live: live, mock: mock, timeout: timeout, log: log}
}

func (a *FallbackAnalyzer) Analyze(ctx context.Context, jobDescription, resumeText string) *domain.MatchResult {
	if a.live != nil {
		liveCtx, cancel := context.WithTimeout(ctx, a.timeout)
		result, err := a.live.Analyze(liveCtx, jobDescription, resumeText)
		cancel()
		if err == nil {
			return result
		}
		a.log.WithError(err).Warn("live analysis unavailable, falling back to mock scorer")
	}

	result, _ := a.mock.Analyze(ctx, jobDescription, resumeText)
	return result
}
