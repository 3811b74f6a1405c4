package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire/domain"
)

func TestParseMatchResultPlainJSON(t *testing.T) {
	raw := `{"score": 82, "matchSize": "High", "summary": "Strong fit.", "missingKeywords": ["Docker"], "interviewQuestions": ["Q1", "Q2"]}`

	result, err := parseMatchResult(raw)
	require.NoError(t, err)

	assert.Equal(t, 82, result.Score)
	assert.Equal(t, domain.MatchHigh, result.MatchSize)
	assert.Equal(t, "Strong fit.", result.Summary)
	assert.Equal(t, []string{"Docker"}, result.MissingKeywords)
	assert.Equal(t, []string{"Q1", "Q2"}, result.InterviewQuestions)
	assert.False(t, result.Mocked)
}

func TestParseMatchResultStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"score\": 60, \"matchSize\": \"Medium\", \"summary\": \"Ok\", \"missingKeywords\": [], \"interviewQuestions\": []}\n```"

	result, err := parseMatchResult(raw)
	require.NoError(t, err)

	assert.Equal(t, 60, result.Score)
	assert.Equal(t, domain.MatchMedium, result.MatchSize)
}

func TestParseMatchResultUnwrapsQuotedPayload(t *testing.T) {
	raw := `"{\"score\": 40, \"matchSize\": \"Low\", \"summary\": \"Weak\", \"missingKeywords\": [], \"interviewQuestions\": []}"`

	result, err := parseMatchResult(raw)
	require.NoError(t, err)

	assert.Equal(t, 40, result.Score)
	assert.Equal(t, domain.MatchLow, result.MatchSize)
}

func TestParseMatchResultClampsAndDefaults(t *testing.T) {
	raw := `{"score": 250, "matchSize": "Amazing", "missingKeywords": "none", "interviewQuestions": {"q": 1}}`

	result, err := parseMatchResult(raw)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, domain.MatchMedium, result.MatchSize)
	assert.Equal(t, "Analysis completed", result.Summary)
	assert.Empty(t, result.MissingKeywords)
	assert.Empty(t, result.InterviewQuestions)
}

func TestParseMatchResultNegativeAndStringScore(t *testing.T) {
	result, err := parseMatchResult(`{"score": -5}`)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)

	result, err = parseMatchResult(`{"score": "77"}`)
	require.NoError(t, err)
	assert.Equal(t, 77, result.Score)
}

func TestParseMatchResultMalformed(t *testing.T) {
	_, err := parseMatchResult("I cannot analyze this resume, sorry!")
	assert.Error(t, err)
}

func newGeminiTestServer(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewGeminiClient("AIzaFakeKey", "gemini-2.0-flash", logrus.New())
	client.baseURL = server.URL
	return client, server
}

func geminiEnvelope(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
			},
		},
	}
}

func TestGeminiAnalyze(t *testing.T) {
	var gotBody map[string]interface{}
	client, _ := newGeminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(geminiEnvelope(
			`{"score": 85, "matchSize": "High", "summary": "Great match", "missingKeywords": ["Node.js"], "interviewQuestions": ["Q1"]}`,
		))
	})

	result, err := client.Analyze(context.Background(), "React developer role", "React, Redux, Git")
	require.NoError(t, err)

	assert.Equal(t, 85, result.Score)
	assert.Equal(t, domain.MatchHigh, result.MatchSize)
	assert.Equal(t, []string{"Node.js"}, result.MissingKeywords)

	// Deterministic generation parameters must always be sent.
	genCfg, ok := gotBody["generationConfig"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 0, genCfg["temperature"])
	assert.EqualValues(t, 1, genCfg["topP"])
	assert.EqualValues(t, 1, genCfg["topK"])
	assert.EqualValues(t, 1000, genCfg["maxOutputTokens"])
}

func TestGeminiAnalyzeTruncatesResume(t *testing.T) {
	client, _ := newGeminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		assert.Less(t, len(body.Contents[0].Parts[0].Text), maxResumeChars+2000)
		json.NewEncoder(w).Encode(geminiEnvelope(`{"score": 50}`))
	})

	huge := make([]byte, maxResumeChars*2)
	for i := range huge {
		huge[i] = 'a'
	}

	_, err := client.Analyze(context.Background(), "", string(huge))
	require.NoError(t, err)
}

func TestGeminiAnalyzeServerError(t *testing.T) {
	client, _ := newGeminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.Analyze(context.Background(), "desc", "resume")
	assert.Error(t, err)
}

func TestGeminiAnalyzeEmptyCandidates(t *testing.T) {
	client, _ := newGeminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	})

	_, err := client.Analyze(context.Background(), "desc", "resume")
	assert.Error(t, err)
}
