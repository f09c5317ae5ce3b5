package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/analysis"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/api/handler"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/api/router"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/config"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/llm"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/logger"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/parser"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/resume"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/storage"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/tracing"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		TimeFormat: cfg.Logger.TimeFormat,
		FilePath:   cfg.Logger.FilePath,
	}); err != nil {
		glog.Fatalf("初始化日志失败: %v", err)
	}
	// Hertz的内部日志走同一个zerolog实例
	glog.SetLogger(hertzadapter.From(logger.Logger))
	logger.Info().Str("config", configPath).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, &cfg.Tracing)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer storageManager.Close()
	logger.Info().Msg("存储服务初始化成功")

	chatModel, err := llm.NewGeminiChatModel(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.APIURL,
		llm.WithTemperature(float32(cfg.Gemini.Temperature)),
		llm.WithMaxOutputTokens(cfg.Gemini.MaxOutputTokens),
		llm.WithHTTPTimeout(time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化Gemini模型失败")
	}
	logger.Info().Str("model", chatModel.ModelName()).Msg("Gemini模型初始化成功")

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx,
		parser.WithEinoLogger(logger.Logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("创建PDF提取器失败")
	}

	engine := analysis.NewEngine(chatModel, storageManager.MySQL,
		analysis.WithScorePolicy(buildScorePolicy(&cfg.Analysis.Score)),
		analysis.WithDailyLimit(cfg.Analysis.DailyLimit),
		analysis.WithModelVersion(cfg.Analysis.ModelVersion),
		analysis.WithEngineLogger(logger.Logger),
	)

	sessions := resume.NewSessionManager(storageManager.Redis)

	resumeHandler := handler.NewResumeHandler(cfg, storageManager, pdfExtractor, sessions)
	analysisHandler := handler.NewAnalysisHandler(engine)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})
	router.RegisterRoutes(h, cfg, resumeHandler, analysisHandler)
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("关闭链路追踪失败")
	}
	logger.Info().Msg("优雅退出完成")
}

// buildScorePolicy 配置中任一扣分项非零则整体覆盖默认策略，
// 否则使用内置默认值。
func buildScorePolicy(cfg *config.ScorePolicyConfig) analysis.ScorePolicy {
	if *cfg == (config.ScorePolicyConfig{}) {
		return analysis.DefaultScorePolicy()
	}
	return analysis.ScorePolicy{
		EmptyStrengths:           cfg.EmptyStrengths,
		EmptyAreasForImprovement: cfg.EmptyImprovements,
		EmptyRecommendations:     cfg.EmptyRecommendations,
		EmptyTechnicalSkills:     cfg.EmptyTechnicalSkills,
		EmptySoftSkills:          cfg.EmptySoftSkills,
		EmptyExperienceAnalysis:  cfg.EmptyExperienceAnalysis,
		EmptyProjectAnalysis:     cfg.EmptyProjectAnalysis,
		EmptyRelevantExperiences: cfg.EmptyRelevantExperiences,
		EmptyATSImprovements:     cfg.EmptyATSImprovements,
		ZeroEducationFitScore:    cfg.ZeroEducationFit,
		ZeroCultureFitScore:      cfg.ZeroCultureFit,
	}
}
