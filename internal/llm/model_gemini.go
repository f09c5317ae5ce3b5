// Package llm 提供生成式模型的客户端实现。
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/logger"
)

const (
	defaultGeminiAPIURL    = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModelName = "gemini-1.5-flash"
)

// --- Gemini generateContent API 结构 ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"` // user 或 model
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiGenerateRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiGenerateResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// GeminiChatModel 通过REST API与Google Gemini交互，
// 实现 model.ToolCallingChatModel 接口。本服务不使用工具调用，
// WithTools只为满足接口而存在。
type GeminiChatModel struct {
	apiKey          string
	modelName       string
	apiURL          string
	temperature     *float32
	maxOutputTokens int
	httpClient      *http.Client
	logger          zerolog.Logger
}

// GeminiOption Gemini客户端的配置选项
type GeminiOption func(*GeminiChatModel)

// WithTemperature 设置采样温度
func WithTemperature(t float32) GeminiOption {
	return func(g *GeminiChatModel) {
		g.temperature = &t
	}
}

// WithMaxOutputTokens 设置输出token上限
func WithMaxOutputTokens(n int) GeminiOption {
	return func(g *GeminiChatModel) {
		g.maxOutputTokens = n
	}
}

// WithHTTPTimeout 设置单次请求的超时时间
func WithHTTPTimeout(d time.Duration) GeminiOption {
	return func(g *GeminiChatModel) {
		g.httpClient.Timeout = d
	}
}

// NewGeminiChatModel 创建Gemini客户端
func NewGeminiChatModel(apiKey, modelName, apiURL string, options ...GeminiOption) (*GeminiChatModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultGeminiModelName
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultGeminiAPIURL
	}

	g := &GeminiChatModel{
		apiKey:          apiKey,
		modelName:       modelName,
		apiURL:          strings.TrimSuffix(apiURL, "/"),
		maxOutputTokens: 2048,
		httpClient:      &http.Client{Timeout: 60 * time.Second},
		logger:          logger.Logger.With().Str("component", "gemini_model").Logger(),
	}
	for _, option := range options {
		option(g)
	}
	return g, nil
}

// ModelName 返回配置的模型名，用于写入分析元数据
func (g *GeminiChatModel) ModelName() string {
	return g.modelName
}

// Generate 实现 model.BaseChatModel 接口。
// system消息映射到systemInstruction，其余按Gemini的user/model角色传递。
func (g *GeminiChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	reqPayload := geminiGenerateRequest{
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     g.temperature,
			MaxOutputTokens: g.maxOutputTokens,
		},
	}

	for _, msg := range messages {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			reqPayload.SystemInstruction = &geminiContent{
				Parts: []geminiPart{{Text: msg.Content}},
			}
		case schema.Assistant:
			reqPayload.Contents = append(reqPayload.Contents, geminiContent{
				Role:  "model",
				Parts: []geminiPart{{Text: msg.Content}},
			})
		default:
			reqPayload.Contents = append(reqPayload.Contents, geminiContent{
				Role:  "user",
				Parts: []geminiPart{{Text: msg.Content}},
			})
		}
	}
	if len(reqPayload.Contents) == 0 {
		return nil, fmt.Errorf("没有可发送的消息")
	}

	jsonData, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.apiURL, g.modelName, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	httpResp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	g.logger.Debug().
		Str("model", g.modelName).
		Int("status", httpResp.StatusCode).
		Dur("duration", time.Since(startTime)).
		Int("response_bytes", len(bodyBytes)).
		Msg("Gemini请求完成")

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Gemini API请求失败，状态 %s: %s", httpResp.Status, string(bodyBytes))
	}

	var geminiResp geminiGenerateResponse
	if err := json.Unmarshal(bodyBytes, &geminiResp); err != nil {
		return nil, fmt.Errorf("反序列化API响应失败: %w", err)
	}
	if geminiResp.Error != nil {
		return nil, fmt.Errorf("Gemini API错误 %d (%s): %s",
			geminiResp.Error.Code, geminiResp.Error.Status, geminiResp.Error.Message)
	}
	if len(geminiResp.Candidates) == 0 {
		return nil, fmt.Errorf("Gemini返回空候选: %s", string(bodyBytes))
	}

	var sb strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return &schema.Message{
		Role:    schema.Assistant,
		Content: sb.String(),
	}, nil
}

// Stream 实现 model.BaseChatModel 接口。本服务不使用流式输出。
func (g *GeminiChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("GeminiChatModel的Stream方法未实现")
}

// WithTools 实现 model.ToolCallingChatModel 接口。
// 本服务的提示词不依赖工具调用，直接返回自身。
func (g *GeminiChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return g, nil
}

var _ model.ToolCallingChatModel = (*GeminiChatModel)(nil)
