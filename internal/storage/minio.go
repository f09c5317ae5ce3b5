package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/config"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/constants"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/logger"
)

// MinIO 对象存储，保存上传的原始简历文件
type MinIO struct {
	client *minio.Client
	bucket string
	logger zerolog.Logger
}

// NewMinIO 创建MinIO客户端并确保存储桶存在
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client: client,
		bucket: cfg.BucketName,
		logger: logger.Logger.With().Str("component", "minio_storage").Logger(),
	}
	if err := m.ensureBucketExists(cfg.BucketName, cfg.Location); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 失败: %w", bucketName, err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
		m.logger.Info().Str("bucket", bucketName).Msg("创建存储桶")
	}
	return nil
}

// StoreResume 保存上传的简历文件，返回对象键。
// 对象键带UUID前缀，同名文件互不覆盖。
func (m *MinIO) StoreResume(ctx context.Context, data []byte, originalFilename string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("生成对象键失败: %w", err)
	}
	objectName := constants.ResumeObjectPrefix + id.String() + path.Ext(originalFilename)

	_, err = m.client.PutObject(ctx, m.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", fmt.Errorf("上传对象 %s 失败: %w", objectName, err)
	}

	m.logger.Debug().
		Str("object", objectName).
		Int("bytes", len(data)).
		Msg("简历文件已保存")
	return objectName, nil
}

// PresignedURL 生成对象的限时下载链接
func (m *MinIO) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成下载链接失败: %w", err)
	}
	return u.String(), nil
}
