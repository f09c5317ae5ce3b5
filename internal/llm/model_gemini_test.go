package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiChatModel_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiChatModel("  ", "", "")
	assert.Error(t, err)
}

func TestGeminiChatModel_Generate(t *testing.T) {
	var captured geminiGenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		resp := geminiGenerateResponse{
			Candidates: []geminiCandidate{{
				Content: geminiContent{
					Role:  "model",
					Parts: []geminiPart{{Text: "part one "}, {Text: "part two"}},
				},
				FinishReason: "STOP",
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	m, err := NewGeminiChatModel("test-key", "gemini-1.5-flash", server.URL)
	require.NoError(t, err)

	messages := []*schema.Message{
		schema.SystemMessage("you are a recruiter"),
		schema.UserMessage("analyze this resume"),
	}
	result, err := m.Generate(context.Background(), messages)
	require.NoError(t, err)

	// 多个part拼接成单条响应
	assert.Equal(t, "part one part two", result.Content)
	assert.Equal(t, schema.Assistant, result.Role)

	// system消息映射到systemInstruction，user消息进contents
	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "you are a recruiter", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "analyze this resume", captured.Contents[0].Parts[0].Text)
}

func TestGeminiChatModel_GenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	m, err := NewGeminiChatModel("test-key", "", server.URL)
	require.NoError(t, err)

	_, err = m.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGeminiChatModel_GenerateNoMessages(t *testing.T) {
	m, err := NewGeminiChatModel("test-key", "", "http://localhost:1")
	require.NoError(t, err)

	_, err = m.Generate(context.Background(), nil)
	assert.Error(t, err)
}
