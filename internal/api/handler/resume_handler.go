package handler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gofrs/uuid/v5"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/ats"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/config"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/constants"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/logger"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/parser"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/resume"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/storage"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// ResumeHandler 简历处理器，负责上传解析和编辑会话的HTTP入口
type ResumeHandler struct {
	cfg          *config.Config
	storage      *storage.Storage
	pdfExtractor *parser.EinoPDFTextExtractor
	sessions     *resume.SessionManager
}

// NewResumeHandler 创建一个新的简历处理器
func NewResumeHandler(
	cfg *config.Config,
	storage *storage.Storage,
	pdfExtractor *parser.EinoPDFTextExtractor,
	sessions *resume.SessionManager,
) *ResumeHandler {
	return &ResumeHandler{
		cfg:          cfg,
		storage:      storage,
		pdfExtractor: pdfExtractor,
		sessions:     sessions,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	SessionID string           `json:"sessionId"`
	Resume    types.ResumeData `json:"resume"`
	PageCount int              `json:"pageCount"`
	ObjectKey string           `json:"objectKey,omitempty"`
}

// HandleResumeUpload 处理简历PDF上传：保存原始文件、抽取文本和结构化字段，
// 再把抽取结果合并进编辑会话。未携带session_id时创建新会话。
// POST /api/v1/resume/upload
func (h *ResumeHandler) HandleResumeUpload(ctx context.Context, c *app.RequestContext) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "文件未找到"})
		return
	}
	sessionID := string(c.FormValue("session_id"))

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "打开文件失败"})
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "读取上传文件内容失败"})
		return
	}

	// 原始文件落对象存储；MinIO未配置时跳过，不影响解析
	var objectKey string
	if h.storage.MinIO != nil {
		objectKey, err = h.storage.MinIO.StoreResume(ctx, fileBytes, fileHeader.Filename)
		if err != nil {
			logger.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("保存原始简历文件失败，继续解析")
			objectKey = ""
		}
	}

	doc, err := h.pdfExtractor.ExtractFromBytes(ctx, fileBytes, fileHeader.Filename)
	if err != nil {
		var parseErr *parser.DocumentParseError
		if errors.As(err, &parseErr) {
			c.JSON(consts.StatusUnprocessableEntity, map[string]string{"error": fmt.Sprintf("PDF解析失败: %v", err)})
			return
		}
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "提取PDF文本失败"})
		return
	}

	extracted := parser.ExtractResumeFields(doc.Text)

	mergedID, merged, err := h.sessions.ApplyExtraction(ctx, sessionID, extracted)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "合并抽取结果失败"})
		return
	}

	// 抽取结果另存一份，作为会话的恢复点
	if err := h.storage.Redis.CacheExtracted(ctx, mergedID, extracted); err != nil {
		logger.Warn().Err(err).Str("session_id", mergedID).Msg("缓存抽取结果失败")
	}

	logger.Info().
		Str("session_id", mergedID).
		Str("filename", fileHeader.Filename).
		Int("page_count", doc.PageCount).
		Msg("简历上传解析完成")

	c.JSON(consts.StatusOK, ResumeUploadResponse{
		SessionID: mergedID,
		Resume:    merged,
		PageCount: doc.PageCount,
		ObjectKey: objectKey,
	})
}

// HandleCreateSession 创建空白编辑会话
// POST /api/v1/resume/sessions
func (h *ResumeHandler) HandleCreateSession(ctx context.Context, c *app.RequestContext) {
	sessionID, data, err := h.sessions.Create(ctx)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "创建会话失败"})
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{
		"sessionId": sessionID,
		"resume":    data,
	})
}

// HandleGetSession 读取编辑会话中的简历
// GET /api/v1/resume/sessions/:session_id
func (h *ResumeHandler) HandleGetSession(ctx context.Context, c *app.RequestContext) {
	sessionID := c.Param("session_id")
	data, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, resume.ErrSessionNotFound) {
			c.JSON(consts.StatusNotFound, map[string]string{"error": "会话不存在或已过期"})
			return
		}
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "读取会话失败"})
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{"resume": data})
}

// HandleUpdateSession 部分更新编辑会话中的简历，缺失字段保持原值
// PUT /api/v1/resume/sessions/:session_id
func (h *ResumeHandler) HandleUpdateSession(ctx context.Context, c *app.RequestContext) {
	sessionID := c.Param("session_id")

	var update types.ResumeDataUpdate
	if err := c.BindJSON(&update); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
		return
	}

	data, err := h.sessions.Update(ctx, sessionID, update)
	if err != nil {
		if errors.Is(err, resume.ErrSessionNotFound) {
			c.JSON(consts.StatusNotFound, map[string]string{"error": "会话不存在或已过期"})
			return
		}
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "更新会话失败"})
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{"resume": data})
}

// HandleDeleteSession 删除编辑会话
// DELETE /api/v1/resume/sessions/:session_id
func (h *ResumeHandler) HandleDeleteSession(ctx context.Context, c *app.RequestContext) {
	sessionID := c.Param("session_id")
	if err := h.sessions.Delete(ctx, sessionID); err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "删除会话失败"})
		return
	}
	c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

// OptimizeTextRequest ATS文本优化请求
type OptimizeTextRequest struct {
	Text string `json:"text"`
}

// HandleOptimizeText 规范化简历文本以适配ATS关键词匹配
// POST /api/v1/resume/optimize
func (h *ResumeHandler) HandleOptimizeText(ctx context.Context, c *app.RequestContext) {
	var req OptimizeTextRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
		return
	}
	c.JSON(consts.StatusOK, map[string]string{"optimized": ats.OptimizeForATS(req.Text)})
}

// SaveTemplateRequest 模板保存请求；ID为空时新建
type SaveTemplateRequest struct {
	ID   string           `json:"id"`
	Name string           `json:"name"`
	Data types.ResumeData `json:"data"`
}

// HandleSaveTemplate 保存命名简历模板
// POST /api/v1/resume/templates
func (h *ResumeHandler) HandleSaveTemplate(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(consts.StatusUnauthorized, map[string]string{"error": "未认证的请求"})
		return
	}

	var req SaveTemplateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体格式错误"})
		return
	}
	if req.Name == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "模板名称不能为空"})
		return
	}

	templateID := req.ID
	if templateID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			c.JSON(consts.StatusInternalServerError, map[string]string{"error": "生成模板ID失败"})
			return
		}
		templateID = id.String()
	}

	if err := h.storage.MySQL.SaveTemplate(ctx, userID, templateID, req.Name, req.Data); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(consts.StatusNotFound, map[string]string{"error": "模板不存在"})
			return
		}
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "保存模板失败"})
		return
	}
	c.JSON(consts.StatusOK, map[string]string{"id": templateID})
}

// HandleListTemplates 列出当前用户的简历模板
// GET /api/v1/resume/templates
func (h *ResumeHandler) HandleListTemplates(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(consts.StatusUnauthorized, map[string]string{"error": "未认证的请求"})
		return
	}

	templates, err := h.storage.MySQL.ListTemplates(ctx, userID)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "查询模板失败"})
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{"templates": templates})
}

// currentUserID 从认证中间件取当前用户ID
func currentUserID(c *app.RequestContext) string {
	value, exists := c.Get(constants.UserIDContextKey)
	if !exists {
		return ""
	}
	userID, _ := value.(string)
	return userID
}
