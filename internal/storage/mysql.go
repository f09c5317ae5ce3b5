package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/config"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/storage/models"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

type gormSpanKey struct{}

// GormTracingPlugin GORM插件，为数据库操作创建OpenTelemetry追踪点
type GormTracingPlugin struct {
	tracer trace.Tracer
	dbName string
}

// NewGormTracingPlugin 创建GORM追踪插件
func NewGormTracingPlugin(dbName string) *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer: otel.Tracer("ai-resume-builder/storage/mysql"),
		dbName: dbName,
	}
}

// Name 返回插件名称
func (p *GormTracingPlugin) Name() string {
	return "GormOpenTelemetryPlugin"
}

// Initialize 注册GORM回调以启用追踪
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before("CREATE")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after()); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before("SELECT")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after()); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before("UPDATE")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after()); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("DELETE")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after()); err != nil {
		return err
	}
	return nil
}

func (p *GormTracingPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		tableName := db.Statement.Table
		if tableName == "" {
			tableName = "unknown"
		}

		newCtx, span := p.tracer.Start(ctx, fmt.Sprintf("%s %s", operation, tableName),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				semconv.DBSystemMySQL,
				attribute.String("db.name", p.dbName),
				attribute.String("db.operation", operation),
				attribute.String("db.sql.table", tableName),
			),
		)
		db.Statement.Context = context.WithValue(newCtx, gormSpanKey{}, span)
	}
}

func (p *GormTracingPlugin) after() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		span, ok := db.Statement.Context.Value(gormSpanKey{}).(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		if db.Error != nil {
			if errors.Is(db.Error, gorm.ErrRecordNotFound) {
				// 查不到记录是业务正常分支，不算错误
				span.SetStatus(codes.Ok, "record not found")
			} else {
				span.RecordError(db.Error)
				span.SetStatus(codes.Error, db.Error.Error())
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}
}

// MySQL 关系型存储，持有分析记录、用量计数和简历模板
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL存储
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds)

	var logLevel gormlogger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = gormlogger.Silent
	case 2:
		logLevel = gormlogger.Error
	case 3:
		logLevel = gormlogger.Warn
	case 4:
		logLevel = gormlogger.Info
	default:
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	if err := db.Use(NewGormTracingPlugin(cfg.Database)); err != nil {
		return nil, fmt.Errorf("注册追踪插件失败: %w", err)
	}

	m := &MySQL{db: db, cfg: cfg}
	if err := m.autoMigrateSchema(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}
	return m, nil
}

func (m *MySQL) autoMigrateSchema() error {
	return m.db.AutoMigrate(
		&models.UserAnalysis{},
		&models.UserUsage{},
		&models.ResumeTemplate{},
	)
}

// DB 返回底层GORM实例，供集成测试使用
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func usageDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// CreateAnalysisAndCharge 在同一事务中写入分析记录并累加当日用量计数。
// 任何一步失败整个事务回滚：分析记录绝不会在未计费的情况下可见，反之亦然。
func (m *MySQL) CreateAnalysisAndCharge(ctx context.Context, userID string, analysis *types.JobFitAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("序列化分析结果失败: %w", err)
	}

	record := models.UserAnalysis{
		ID:                analysis.ID,
		UserID:            userID,
		JobFitPercentage:  analysis.JobFitPercentage,
		OverallAssessment: analysis.OverallAssessment,
		ConfidenceScore:   analysis.Metadata.ConfidenceScore,
		ModelVersion:      analysis.Metadata.ModelVersion,
		AnalysisTimestamp: analysis.Metadata.AnalysisTimestamp,
		Payload:           datatypes.JSON(payload),
	}

	usage := models.UserUsage{
		UserID:        userID,
		UsageDate:     usageDate(time.Now()),
		AnalysisCount: 1,
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("写入分析记录失败: %w", err)
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "usage_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"analysis_count": gorm.Expr("analysis_count + 1"),
				"updated_at":     time.Now(),
			}),
		}).Create(&usage).Error; err != nil {
			return fmt.Errorf("累加用量计数失败: %w", err)
		}
		return nil
	})
}

// ListAnalyses 按创建时间倒序返回用户的全部分析记录
func (m *MySQL) ListAnalyses(ctx context.Context, userID string) ([]types.JobFitAnalysis, error) {
	var records []models.UserAnalysis
	err := m.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询分析记录失败: %w", err)
	}

	result := make([]types.JobFitAnalysis, 0, len(records))
	for _, record := range records {
		analysis, err := decodeAnalysis(&record)
		if err != nil {
			return nil, err
		}
		result = append(result, *analysis)
	}
	return result, nil
}

// GetAnalysis 按ID读取用户的一条分析记录；不存在或不属于该用户返回ErrNotFound
func (m *MySQL) GetAnalysis(ctx context.Context, userID, analysisID string) (*types.JobFitAnalysis, error) {
	var record models.UserAnalysis
	err := m.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", analysisID, userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询分析记录失败: %w", err)
	}
	return decodeAnalysis(&record)
}

// DeleteAnalysis 删除用户的一条分析记录，返回是否真的删除了
func (m *MySQL) DeleteAnalysis(ctx context.Context, userID, analysisID string) (bool, error) {
	result := m.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", analysisID, userID).
		Delete(&models.UserAnalysis{})
	if result.Error != nil {
		return false, fmt.Errorf("删除分析记录失败: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// LatestAnalysis 返回用户最近一条分析记录，没有时返回 (nil, nil)
func (m *MySQL) LatestAnalysis(ctx context.Context, userID string) (*types.JobFitAnalysis, error) {
	var record models.UserAnalysis
	err := m.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询最近分析记录失败: %w", err)
	}
	return decodeAnalysis(&record)
}

// CountAnalysesToday 返回用户当日（UTC）已完成的分析次数
func (m *MySQL) CountAnalysesToday(ctx context.Context, userID string) (int, error) {
	var usage models.UserUsage
	err := m.db.WithContext(ctx).
		Where("user_id = ? AND usage_date = ?", userID, usageDate(time.Now())).
		First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("查询用量计数失败: %w", err)
	}
	return usage.AnalysisCount, nil
}

// SaveTemplate 新建或更新一份命名模板。
// 模板ID由调用方提供，更新前必须核对归属：
// 他人的模板ID表现为不存在，绝不能就地改写他人的数据。
func (m *MySQL) SaveTemplate(ctx context.Context, userID, templateID, name string, data types.ResumeData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化模板数据失败: %w", err)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ResumeTemplate
		err := tx.Select("id", "user_id").
			Where("id = ?", templateID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record := models.ResumeTemplate{
				ID:     templateID,
				UserID: userID,
				Name:   name,
				Data:   datatypes.JSON(raw),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("保存模板失败: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("查询模板失败: %w", err)
		}
		if existing.UserID != userID {
			return ErrNotFound
		}

		err = tx.Model(&models.ResumeTemplate{}).
			Where("id = ? AND user_id = ?", templateID, userID).
			Updates(map[string]interface{}{
				"name":       name,
				"data":       datatypes.JSON(raw),
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("更新模板失败: %w", err)
		}
		return nil
	})
}

// ListTemplates 返回用户的全部模板
func (m *MySQL) ListTemplates(ctx context.Context, userID string) ([]types.Template, error) {
	var records []models.ResumeTemplate
	err := m.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询模板失败: %w", err)
	}

	result := make([]types.Template, 0, len(records))
	for _, record := range records {
		var data types.ResumeData
		if err := json.Unmarshal(record.Data, &data); err != nil {
			return nil, fmt.Errorf("反序列化模板 %s 失败: %w", record.ID, err)
		}
		result = append(result, types.Template{
			ID:   record.ID,
			Name: record.Name,
			Data: data,
		})
	}
	return result, nil
}

func decodeAnalysis(record *models.UserAnalysis) (*types.JobFitAnalysis, error) {
	var analysis types.JobFitAnalysis
	if err := json.Unmarshal(record.Payload, &analysis); err != nil {
		return nil, fmt.Errorf("反序列化分析记录 %s 失败: %w", record.ID, err)
	}
	analysis.ID = record.ID
	return &analysis, nil
}
