package storage

import (
	"context"
	"fmt"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/config"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/logger"
)

// Storage 存储管理器，聚合所有存储相关依赖
type Storage struct {
	// 关系型数据库：分析记录、用量、模板
	MySQL *MySQL

	// 键值存储：简历编辑会话
	Redis *Redis

	// 对象存储：原始简历文件
	MinIO *MinIO
}

// NewStorage 创建存储管理器。
// MySQL和Redis是必需依赖，初始化失败直接返回错误；
// MinIO未配置时跳过，上传接口会拒绝保存原始文件。
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	storage := &Storage{}
	var err error

	storage.MySQL, err = NewMySQL(&cfg.MySQL)
	if err != nil {
		return nil, fmt.Errorf("初始化MySQL失败: %w", err)
	}
	logger.Info().Str("database", cfg.MySQL.Database).Msg("MySQL初始化成功")

	storage.Redis, err = NewRedis(&cfg.Redis)
	if err != nil {
		_ = storage.MySQL.Close()
		return nil, fmt.Errorf("初始化Redis失败: %w", err)
	}
	logger.Info().Str("address", cfg.Redis.Address).Msg("Redis初始化成功")

	if cfg.MinIO.Endpoint != "" {
		storage.MinIO, err = NewMinIO(&cfg.MinIO)
		if err != nil {
			_ = storage.Close()
			return nil, fmt.Errorf("初始化MinIO失败: %w", err)
		}
		logger.Info().Str("bucket", cfg.MinIO.BucketName).Msg("MinIO初始化成功")
	} else {
		logger.Warn().Msg("未配置MinIO，原始简历文件不会被保存")
	}

	return storage, nil
}

// Close 关闭所有存储连接
func (s *Storage) Close() error {
	var firstErr error
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
