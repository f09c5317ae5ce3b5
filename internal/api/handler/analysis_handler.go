package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/analysis"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/logger"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/storage"
)

// AnalysisHandler 岗位匹配分析的HTTP入口
type AnalysisHandler struct {
	engine *analysis.Engine
}

// NewAnalysisHandler 创建分析处理器
func NewAnalysisHandler(engine *analysis.Engine) *AnalysisHandler {
	return &AnalysisHandler{engine: engine}
}

// AnalyzeRequest 岗位匹配分析请求
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// HandleAnalyze 执行一次简历与岗位描述的匹配分析
// POST /api/v1/analysis
func (h *AnalysisHandler) HandleAnalyze(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(consts.StatusUnauthorized, map[string]string{"error": "未认证的请求"})
		return
	}

	var req AnalyzeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
		return
	}

	result, err := h.engine.Analyze(ctx, userID, req.ResumeText, req.JobDescription)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	c.JSON(consts.StatusOK, result)
}

// HandleListAnalyses 列出当前用户的历史分析，按创建时间倒序
// GET /api/v1/analysis
func (h *AnalysisHandler) HandleListAnalyses(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(consts.StatusUnauthorized, map[string]string{"error": "未认证的请求"})
		return
	}

	results, err := h.engine.List(ctx, userID)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{"analyses": results})
}

// HandleGetAnalysis 读取单条分析记录
// GET /api/v1/analysis/:analysis_id
func (h *AnalysisHandler) HandleGetAnalysis(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(consts.StatusUnauthorized, map[string]string{"error": "未认证的请求"})
		return
	}

	result, err := h.engine.Get(ctx, userID, c.Param("analysis_id"))
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	c.JSON(consts.StatusOK, result)
}

// HandleDeleteAnalysis 删除单条分析记录
// DELETE /api/v1/analysis/:analysis_id
func (h *AnalysisHandler) HandleDeleteAnalysis(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(consts.StatusUnauthorized, map[string]string{"error": "未认证的请求"})
		return
	}

	deleted, err := h.engine.Delete(ctx, userID, c.Param("analysis_id"))
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	if !deleted {
		c.JSON(consts.StatusNotFound, map[string]string{"error": "分析记录不存在"})
		return
	}
	c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

// ChatRequest 针对最近一次分析的追问
type ChatRequest struct {
	Question string `json:"question"`
}

// HandleChat 基于最近一次分析结果回答追问
// POST /api/v1/analysis/chat
func (h *AnalysisHandler) HandleChat(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(consts.StatusUnauthorized, map[string]string{"error": "未认证的请求"})
		return
	}

	var req ChatRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
		return
	}

	answer, err := h.engine.Chat(ctx, userID, req.Question)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]string{"answer": answer})
}

// SuggestContentRequest 简历段落生成请求
type SuggestContentRequest struct {
	Data        string `json:"data"`
	Format      string `json:"format"`
	SectionType string `json:"sectionType"`
	NumPoints   int    `json:"numPoints"`
}

// HandleSuggestContent 根据用户提供的素材生成简历段落内容
// POST /api/v1/analysis/suggest
func (h *AnalysisHandler) HandleSuggestContent(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(consts.StatusUnauthorized, map[string]string{"error": "未认证的请求"})
		return
	}

	var req SuggestContentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
		return
	}

	content, err := h.engine.SuggestContent(ctx, analysis.SuggestionRequest{
		Data:        req.Data,
		Format:      req.Format,
		SectionType: req.SectionType,
		NumPoints:   req.NumPoints,
	})
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]string{"content": content})
}

// writeAnalysisError 把引擎错误映射成HTTP状态码。
// 校验错误400，模型输出不合规422，超出当日限额429，记录不存在404，其余一律500。
func writeAnalysisError(c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, analysis.ErrValidation):
		c.JSON(consts.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, analysis.ErrSchemaValidation):
		c.JSON(consts.StatusUnprocessableEntity, map[string]string{"error": "模型返回的分析结果不完整，请重试"})
	case errors.Is(err, analysis.ErrDailyLimitExceeded):
		c.JSON(consts.StatusTooManyRequests, map[string]string{"error": "已达到当日分析次数上限"})
	case errors.Is(err, analysis.ErrNoAnalyses):
		c.JSON(consts.StatusNotFound, map[string]string{"error": "暂无分析记录，请先执行一次分析"})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(consts.StatusNotFound, map[string]string{"error": "分析记录不存在"})
	default:
		logger.Error().Err(err).Msg("分析请求处理失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "内部错误"})
	}
}
