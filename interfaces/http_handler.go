package interfaces

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"smarthire/domain"
	"smarthire/usecase"
)

// HTTPHandler exposes the pipeline and the job/candidate reads to the
// dashboard and job-CRUD collaborators.
type HTTPHandler struct {
	Pipeline   *usecase.Pipeline
	Jobs       usecase.JobStore
	Candidates usecase.CandidateStore
}

func NewHTTPHandler(router *gin.Engine, pipeline *usecase.Pipeline, jobs usecase.JobStore, candidates usecase.CandidateStore) {
	h := &HTTPHandler{Pipeline: pipeline, Jobs: jobs, Candidates: candidates}

	router.POST("/api/jobs", h.CreateJob)
	router.GET("/api/jobs", h.ListJobs)
	router.GET("/api/jobs/:id", h.GetJob)
	router.POST("/api/analyze", h.Analyze)
	router.POST("/api/analyze/bulk", h.AnalyzeBulk)
	router.GET("/api/jobs/:id/candidates", h.ListCandidates)
}

type createJobRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Requirements string `json:"requirements" binding:"required"`
}

// CreateJob stores a new job posting.
func (h *HTTPHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := &domain.Job{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
	}
	if err := h.Jobs.Create(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// ListJobs returns all jobs, newest first.
func (h *HTTPHandler) ListJobs(c *gin.Context) {
	jobs, err := h.Jobs.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob returns one job by id.
func (h *HTTPHandler) GetJob(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	job, err := h.Jobs.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// Analyze accepts one resume upload, runs the full submission pipeline and
// returns the persisted candidate with all AI fields.
func (h *HTTPHandler) Analyze(c *gin.Context) {
	jobIDStr := strings.TrimSpace(c.PostForm("jobId"))
	fileHeader, fileErr := c.FormFile("resume")
	if fileErr != nil || jobIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume file and Job ID are required."})
		return
	}

	jobID, err := strconv.ParseUint(jobIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open resume file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read resume file"})
		return
	}

	candidate, err := h.Pipeline.Submit(c.Request.Context(), usecase.SubmissionInput{
		JobID:          uint(jobID),
		FileName:       fileHeader.Filename,
		FileData:       data,
		CandidateName:  c.PostForm("candidateName"),
		CandidateEmail: c.PostForm("candidateEmail"),
	})
	if err != nil {
		h.renderSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 candidate.ID,
		"name":               candidate.Name,
		"email":              candidate.Email,
		"aiScore":            candidate.AIScore,
		"aiMatchSize":        candidate.AIMatchSize,
		"aiSummary":          candidate.AISummary,
		"interviewQuestions": candidate.InterviewQuestions,
		"missingKeywords":    candidate.MissingKeywords,
		"resumeText":         candidate.ResumeText,
	})
}

// AnalyzeBulk accepts several resumes for one job and reports per-item
// outcomes; a failed item never fails the batch.
func (h *HTTPHandler) AnalyzeBulk(c *gin.Context) {
	jobIDStr := strings.TrimSpace(c.PostForm("jobId"))
	if jobIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job ID is required."})
		return
	}
	jobID, err := strconv.ParseUint(jobIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart payload"})
		return
	}
	files := form.File["resumes"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one resume file is required"})
		return
	}

	items := make([]usecase.BulkItem, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			items = append(items, usecase.BulkItem{FileName: fh.Filename})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			items = append(items, usecase.BulkItem{FileName: fh.Filename})
			continue
		}
		items = append(items, usecase.BulkItem{FileName: fh.Filename, Data: data})
	}

	results := h.Pipeline.SubmitBulk(c.Request.Context(), uint(jobID), items)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ListCandidates returns a job's candidates ordered by score descending.
func (h *HTTPHandler) ListCandidates(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	candidates, err := h.Candidates.ListByJob(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list candidates"})
		return
	}
	c.JSON(http.StatusOK, candidates)
}

func (h *HTTPHandler) renderSubmitError(c *gin.Context, err error) {
	var dup *usecase.DuplicateError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{
			"error":               "This resume has already been submitted for this job.",
			"existingCandidateId": dup.CandidateID,
			"candidateName":       dup.CandidateName,
		})
	case errors.Is(err, usecase.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found."})
	case errors.Is(err, usecase.ErrMissingFile), errors.Is(err, usecase.ErrMissingJobID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume file and Job ID are required."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	idStr := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
