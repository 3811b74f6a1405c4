package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"smarthire/domain"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// Resumes are truncated before prompting to bound request size and cost.
	maxResumeChars = 30000
)

// GeminiClient performs live match analysis against the generativelanguage
// REST API. Generation parameters are pinned for maximum determinism:
// temperature 0, topP 1, topK 1, and a capped output token count.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewGeminiClient(apiKey, model string, log *logrus.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiBaseURL,
		httpClient: &http.Client{},
		log:        log,
	}
}

// Analyze sends job description and resume text to Gemini and parses the
// response into a MatchResult. Any transport, API or parse failure is
// returned as an error; the caller decides how to degrade.
func (g *GeminiClient) Analyze(ctx context.Context, jobDescription, resumeText string) (*domain.MatchResult, error) {
	if len(resumeText) > maxResumeChars {
		resumeText = resumeText[:maxResumeChars]
	}
	resumeText = strings.ToValidUTF8(resumeText, "�")

	prompt := buildMatchPrompt(jobDescription, resumeText)

	raw, err := g.generateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	g.log.WithFields(logrus.Fields{
		"model":           g.model,
		"response_length": len(raw),
	}).Debug("gemini response received")

	return parseMatchResult(raw)
}

func buildMatchPrompt(jobDescription, resumeText string) string {
	return fmt.Sprintf(`You are an expert HR Recruitment AI. Analyze this resume against the job description OBJECTIVELY and CONSISTENTLY.

Job Description:
"%s"

Candidate Resume:
"%s"

Provide ONLY valid JSON (no markdown blocks). Be consistent and objective. Use this exact structure:
{
  "score": number (0-100, based on skill match percentage),
  "matchSize": "High" (75-100) or "Medium" (50-74) or "Low" (0-49),
  "summary": "2-3 sentences about fit",
  "missingKeywords": ["skill1", "skill2", "skill3"],
  "interviewQuestions": ["question1", "question2", "question3", "question4", "question5"]
}`, jobDescription, resumeText)
}

func (g *GeminiClient) generateContent(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0,
			"topP":            1,
			"topK":            1,
			"maxOutputTokens": 1000,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var apiResponse geminiResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", fmt.Errorf("parse api response: %w", err)
	}

	return apiResponse.firstText()
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r *geminiResponse) firstText() (string, error) {
	for _, candidate := range r.Candidates {
		for _, part := range candidate.Content.Parts {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text, nil
			}
		}
	}
	return "", fmt.Errorf("no text in response candidates")
}

// parseMatchResult validates model output into a well-formed MatchResult:
// the score is clamped, the tier defaulted to Medium, the summary given a
// placeholder, and non-list keyword/question fields coerced to empty.
func parseMatchResult(raw string) (*domain.MatchResult, error) {
	cleaned := cleanModelJSON(raw)

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("malformed model response: %w", err)
	}

	result := &domain.MatchResult{
		Score:              domain.ClampScore(coerceInt(data["score"])),
		MatchSize:          coerceTier(data["matchSize"]),
		Summary:            coerceString(data["summary"]),
		MissingKeywords:    coerceStringSlice(data["missingKeywords"]),
		InterviewQuestions: coerceStringSlice(data["interviewQuestions"]),
	}
	if result.Summary == "" {
		result.Summary = "Analysis completed"
	}
	return result, nil
}

// cleanModelJSON strips markdown code fences and one layer of surrounding
// quote-escaping, then narrows to the outermost JSON object.
func cleanModelJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	if len(content) >= 2 && strings.HasPrefix(content, `"`) && strings.HasSuffix(content, `"`) {
		content = strings.ReplaceAll(content[1:len(content)-1], `\"`, `"`)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		content = content[start : end+1]
	}

	return strings.TrimSpace(content)
}

func coerceInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return int(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

func coerceTier(v interface{}) string {
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	if domain.ValidTier(s) {
		return s
	}
	return domain.MatchMedium
}

func coerceString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func coerceStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
