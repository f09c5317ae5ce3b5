package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	einoschema "github.com/cloudwego/eino/schema"
)

// Chat 基于用户最近一次分析回答自由提问。
// 纯模板插值：把已保存的分析字段插入提示词，没有独立的算法内容。
// 前置条件是至少存在一条已保存的分析记录。
func (e *Engine) Chat(ctx context.Context, userID, question string) (string, error) {
	if userID == "" {
		return "", NewValidationError("userID")
	}
	if strings.TrimSpace(question) == "" {
		return "", NewValidationError("question")
	}

	latest, err := e.repo.LatestAnalysis(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("读取最近分析失败: %w", err)
	}
	if latest == nil {
		return "", ErrNoAnalyses
	}

	ctx, span := tracer.Start(ctx, "ChatWithAnalysis")
	defer span.End()

	messages := []*einoschema.Message{
		einoschema.SystemMessage(chatSystemMessage),
		einoschema.UserMessage(buildChatPrompt(latest, question)),
	}

	response, err := e.model.Generate(ctx, messages)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("模型调用失败: %w", err)
	}
	if response == nil || response.Content == "" {
		return "", fmt.Errorf("模型返回空响应")
	}
	return response.Content, nil
}

// SuggestionRequest 区块内容优化请求
type SuggestionRequest struct {
	Data        string `json:"data"`
	Format      string `json:"format"` // points 或 paras
	SectionType string `json:"sectionType"`
	NumPoints   int    `json:"numPoints"`
}

var markdownArtifactsRe = regexp.MustCompile(`\*\*|\*|_{2,}|#{1,6}\s`)

// SuggestContent 为简历的某个区块生成ATS友好的改写内容。
// 输出会清理掉模型偶尔带出的Markdown标记。
func (e *Engine) SuggestContent(ctx context.Context, req SuggestionRequest) (string, error) {
	if strings.TrimSpace(req.Data) == "" {
		return "", NewValidationError("data")
	}
	if req.Format != "points" && req.Format != "paras" {
		return "", NewValidationError("format")
	}

	ctx, span := tracer.Start(ctx, "SuggestSectionContent")
	defer span.End()

	messages := []*einoschema.Message{
		einoschema.UserMessage(buildSuggestionPrompt(req.Data, req.Format, req.SectionType, req.NumPoints)),
	}

	response, err := e.model.Generate(ctx, messages)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("模型调用失败: %w", err)
	}
	if response == nil || response.Content == "" {
		return "", fmt.Errorf("模型返回空响应")
	}

	return markdownArtifactsRe.ReplaceAllString(response.Content, ""), nil
}
