package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/api/handler"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/config"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/constants"
)

// RegisterRoutes 注册 API 路由。
// 除健康检查外的所有路由走API Key认证，认证通过后把用户ID写入请求上下文。
func RegisterRoutes(h *server.Hertz, cfg *config.Config,
	resumeHandler *handler.ResumeHandler, analysisHandler *handler.AnalysisHandler) {

	h.GET("/api/v1/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := h.Group("/api/v1")
	api.Use(keyauth.New(
		keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
		keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
			userID, ok := cfg.APIKeys[key]
			if !ok {
				return false, nil
			}
			ctx.Set(constants.UserIDContextKey, userID)
			return true, nil
		}),
		keyauth.WithErrorHandler(func(c context.Context, ctx *app.RequestContext, err error) {
			ctx.AbortWithStatusJSON(consts.StatusUnauthorized, utils.H{"error": "无效的API Key"})
		}),
	))

	// 简历上传与编辑会话
	api.POST("/resume/upload", resumeHandler.HandleResumeUpload)
	api.POST("/resume/sessions", resumeHandler.HandleCreateSession)
	api.GET("/resume/sessions/:session_id", resumeHandler.HandleGetSession)
	api.PUT("/resume/sessions/:session_id", resumeHandler.HandleUpdateSession)
	api.DELETE("/resume/sessions/:session_id", resumeHandler.HandleDeleteSession)

	// ATS文本优化
	api.POST("/resume/optimize", resumeHandler.HandleOptimizeText)

	// 简历模板
	api.POST("/resume/templates", resumeHandler.HandleSaveTemplate)
	api.GET("/resume/templates", resumeHandler.HandleListTemplates)

	// 岗位匹配分析
	api.POST("/analysis", analysisHandler.HandleAnalyze)
	api.GET("/analysis", analysisHandler.HandleListAnalyses)
	api.GET("/analysis/:analysis_id", analysisHandler.HandleGetAnalysis)
	api.DELETE("/analysis/:analysis_id", analysisHandler.HandleDeleteAnalysis)
	api.POST("/analysis/chat", analysisHandler.HandleChat)
	api.POST("/analysis/suggest", analysisHandler.HandleSuggestContent)
}
