package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/config"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/constants"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// Redis 键值存储：简历编辑会话和抽取结果恢复点
type Redis struct {
	Client        *redis.Client
	sessionExpire time.Duration
}

// NewRedis 创建Redis存储并验证连通性
func NewRedis(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil || cfg.Address == "" {
		return nil, fmt.Errorf("redis地址不能为空")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	// OpenTelemetry钩子记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("为Redis注册追踪钩子失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("连接Redis %s 失败: %w", cfg.Address, err)
	}

	return &Redis{
		Client:        client,
		sessionExpire: time.Duration(cfg.SessionExpireHours) * time.Hour,
	}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// SaveResumeSession 保存编辑会话中的简历，写入时刷新过期时间
func (r *Redis) SaveResumeSession(ctx context.Context, sessionID string, data types.ResumeData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化会话简历失败: %w", err)
	}
	key := constants.ResumeSessionKeyPrefix + sessionID
	if err := r.Client.Set(ctx, key, raw, r.sessionExpire).Err(); err != nil {
		return fmt.Errorf("写入会话 %s 失败: %w", sessionID, err)
	}
	return nil
}

// GetResumeSession 读取编辑会话中的简历；会话不存在返回 (nil, nil)
func (r *Redis) GetResumeSession(ctx context.Context, sessionID string) (*types.ResumeData, error) {
	key := constants.ResumeSessionKeyPrefix + sessionID
	raw, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取会话 %s 失败: %w", sessionID, err)
	}

	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("反序列化会话 %s 失败: %w", sessionID, err)
	}
	return &data, nil
}

// DeleteResumeSession 删除编辑会话
func (r *Redis) DeleteResumeSession(ctx context.Context, sessionID string) error {
	key := constants.ResumeSessionKeyPrefix + sessionID
	if err := r.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("删除会话 %s 失败: %w", sessionID, err)
	}
	return nil
}

// CacheExtracted 缓存一次上传的抽取结果，作为会话的恢复点
func (r *Redis) CacheExtracted(ctx context.Context, sessionID string, data *types.ExtractedResumeData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化抽取结果失败: %w", err)
	}
	key := constants.ExtractedCacheKeyPrefix + sessionID
	if err := r.Client.Set(ctx, key, raw, r.sessionExpire).Err(); err != nil {
		return fmt.Errorf("缓存抽取结果 %s 失败: %w", sessionID, err)
	}
	return nil
}

// GetExtracted 读取缓存的抽取结果；不存在返回 (nil, nil)
func (r *Redis) GetExtracted(ctx context.Context, sessionID string) (*types.ExtractedResumeData, error) {
	key := constants.ExtractedCacheKeyPrefix + sessionID
	raw, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取抽取结果 %s 失败: %w", sessionID, err)
	}

	var data types.ExtractedResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("反序列化抽取结果 %s 失败: %w", sessionID, err)
	}
	return &data, nil
}
