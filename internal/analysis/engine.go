package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/logger"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

var tracer = otel.Tracer("analysis")

// Repository 分析记录持久化的抽象。所有操作都按用户隔离：
// 不属于该用户的ID一律按不存在处理。
type Repository interface {
	// CreateAnalysisAndCharge 写入分析记录并为用户记一次用量，
	// 两个写操作必须在同一事务内完成：要么都生效，要么都不生效。
	CreateAnalysisAndCharge(ctx context.Context, userID string, analysis *types.JobFitAnalysis) error
	ListAnalyses(ctx context.Context, userID string) ([]types.JobFitAnalysis, error)
	GetAnalysis(ctx context.Context, userID, analysisID string) (*types.JobFitAnalysis, error)
	DeleteAnalysis(ctx context.Context, userID, analysisID string) (bool, error)
	// LatestAnalysis 返回最近一条分析，没有时返回 (nil, nil)
	LatestAnalysis(ctx context.Context, userID string) (*types.JobFitAnalysis, error)
	// CountAnalysesToday 返回用户当日已完成的分析次数
	CountAnalysesToday(ctx context.Context, userID string) (int, error)
}

// Engine 岗位匹配分析引擎。
// 模型被视为不可信的外部服务：输出必须通过完整的结构校验才会被使用，
// 校验失败整体拒绝，不修复、不重试（重试是调用方的策略）。
type Engine struct {
	model        model.ToolCallingChatModel
	repo         Repository
	policy       ScorePolicy
	modelVersion string
	dailyLimit   int // 0表示不限制
	logger       zerolog.Logger
}

// EngineOption 分析引擎的配置选项
type EngineOption func(*Engine)

// WithScorePolicy 设置置信度扣分策略
func WithScorePolicy(policy ScorePolicy) EngineOption {
	return func(e *Engine) {
		e.policy = policy
	}
}

// WithDailyLimit 设置每用户每日分析次数上限（0为不限制）
func WithDailyLimit(limit int) EngineOption {
	return func(e *Engine) {
		e.dailyLimit = limit
	}
}

// WithModelVersion 设置写入元数据的模型版本号
func WithModelVersion(version string) EngineOption {
	return func(e *Engine) {
		e.modelVersion = version
	}
}

// WithEngineLogger 设置自定义日志记录器
func WithEngineLogger(l zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine 创建分析引擎
func NewEngine(chatModel model.ToolCallingChatModel, repo Repository, options ...EngineOption) *Engine {
	engine := &Engine{
		model:        chatModel,
		repo:         repo,
		policy:       DefaultScorePolicy(),
		modelVersion: "unknown",
		logger:       logger.Logger.With().Str("component", "analysis_engine").Logger(),
	}
	for _, option := range options {
		option(engine)
	}
	return engine
}

// Analyze 对简历文本和岗位描述做一次完整的匹配分析。
// 流程：输入校验 → 用量预检 → 构建提示词 → 调用模型 → 结构校验 →
// 置信度推导 → 原子写入（分析记录+用量计数）。
func (e *Engine) Analyze(ctx context.Context, userID, resumeText, jobDescription string) (*types.JobFitAnalysis, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, NewValidationError("resumeText")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, NewValidationError("jobDescription")
	}
	if userID == "" {
		return nil, NewValidationError("userID")
	}

	ctx, span := tracer.Start(ctx, "AnalyzeJobFit")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("resume.chars", len(resumeText)),
		attribute.Int("job_description.chars", len(jobDescription)),
	)

	// 用量预检是前置条件检查，不是锁；并发请求间允许少量超卖
	if e.dailyLimit > 0 {
		count, err := e.repo.CountAnalysesToday(ctx, userID)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("查询当日用量失败: %w", err)
		}
		if count >= e.dailyLimit {
			return nil, ErrDailyLimitExceeded
		}
	}

	messages := []*einoschema.Message{
		einoschema.SystemMessage(analysisSystemMessage),
		einoschema.UserMessage(buildAnalysisPrompt(resumeText, jobDescription)),
	}

	startTime := time.Now()
	response, err := e.model.Generate(ctx, messages)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("模型调用失败: %w", err)
	}
	if response == nil || response.Content == "" {
		return nil, NewSchemaValidationError("模型返回空响应", "")
	}
	e.logger.Debug().
		Dur("duration", time.Since(startTime)).
		Int("response_chars", len(response.Content)).
		Msg("模型调用完成")

	result, err := e.parseAnalysisResponse(response.Content)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	confidence := e.policy.Score(result)
	span.SetAttributes(
		attribute.Int("analysis.job_fit", result.JobFitPercentage),
		attribute.Int("analysis.confidence", confidence),
	)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成分析ID失败: %w", err)
	}
	result.ID = id.String()
	result.Metadata = types.AnalysisMetadata{
		AnalysisTimestamp: time.Now().UTC(),
		ModelVersion:      e.modelVersion,
		ConfidenceScore:   confidence,
	}

	if err := e.repo.CreateAnalysisAndCharge(ctx, userID, result); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("保存分析记录失败: %w", err)
	}

	e.logger.Info().
		Str("user_id", userID).
		Str("analysis_id", result.ID).
		Int("job_fit", result.JobFitPercentage).
		Int("confidence", confidence).
		Msg("岗位匹配分析完成")
	return result, nil
}

// parseAnalysisResponse 从模型响应中定位JSON并做结构校验。
// 校验失败整体拒绝，绝不部分接受或修复后重试。
func (e *Engine) parseAnalysisResponse(content string) (*types.JobFitAnalysis, error) {
	processed := strings.TrimPrefix(content, "\uFEFF")

	jsonStr := extractJSON(processed)
	if jsonStr == "" {
		return nil, NewSchemaValidationError("响应中找不到JSON对象", truncate(processed, 2000))
	}
	if !utf8.ValidString(jsonStr) {
		jsonStr = strings.ToValidUTF8(jsonStr, "")
	}

	var result types.JobFitAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, NewSchemaValidationError(fmt.Sprintf("JSON反序列化失败: %v", err), truncate(jsonStr, 2000))
	}
	if err := ValidateAnalysis(&result); err != nil {
		return nil, NewSchemaValidationError(err.Error(), truncate(jsonStr, 2000))
	}
	return &result, nil
}

// List 按时间倒序返回用户的全部分析记录
func (e *Engine) List(ctx context.Context, userID string) ([]types.JobFitAnalysis, error) {
	if userID == "" {
		return nil, NewValidationError("userID")
	}
	return e.repo.ListAnalyses(ctx, userID)
}

// Get 按ID读取用户的一条分析记录
func (e *Engine) Get(ctx context.Context, userID, analysisID string) (*types.JobFitAnalysis, error) {
	if userID == "" {
		return nil, NewValidationError("userID")
	}
	if analysisID == "" {
		return nil, NewValidationError("analysisID")
	}
	return e.repo.GetAnalysis(ctx, userID, analysisID)
}

// Delete 删除用户的一条分析记录，返回是否真的删除了
func (e *Engine) Delete(ctx context.Context, userID, analysisID string) (bool, error) {
	if userID == "" {
		return false, NewValidationError("userID")
	}
	if analysisID == "" {
		return false, NewValidationError("analysisID")
	}
	return e.repo.DeleteAnalysis(ctx, userID, analysisID)
}

// extractJSON 用花括号配对从文本中提取第一个完整的JSON对象
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}
	level := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			level++
		case '}':
			level--
			if level == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
