package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644), "无法写入临时配置文件")
	return configPath
}

// TestLoadConfig 验证完整配置能被正确加载
func TestLoadConfig(t *testing.T) {
	configPath := writeTempConfig(t, `
server:
  address: ":9090"
mysql:
  host: "db.internal"
  port: 3306
  database: "resume_builder"
redis:
  address: "localhost:6379"
  session_expire_hours: 48
gemini:
  api_key: "test-key"
  model: "gemini-1.5-pro"
  temperature: 0.2
analysis:
  daily_limit: 10
  score:
    empty_strengths: 20
api_keys:
  "sk-abc": "user-1"
`)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, 48, cfg.Redis.SessionExpireHours)
	assert.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 10, cfg.Analysis.DailyLimit)
	assert.Equal(t, 20, cfg.Analysis.Score.EmptyStrengths)
	assert.Equal(t, map[string]string{"sk-abc": "user-1"}, cfg.APIKeys)
}

// TestLoadConfigDefaults 验证未配置项取默认值
func TestLoadConfigDefaults(t *testing.T) {
	configPath := writeTempConfig(t, `
gemini:
  api_key: "test-key"
`)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 2048, cfg.Gemini.MaxOutputTokens)
	assert.Equal(t, 24*7, cfg.Redis.SessionExpireHours)
	// model_version未配置时跟随模型名
	assert.Equal(t, "gemini-1.5-flash", cfg.Analysis.ModelVersion)
	assert.Equal(t, "ai-resume-builder", cfg.Tracing.ServiceName)
}

// TestLoadConfigMissingAPIKey 验证缺少必填项时报错
func TestLoadConfigMissingAPIKey(t *testing.T) {
	configPath := writeTempConfig(t, `
server:
  address: ":8080"
`)

	cfg, err := LoadConfig(configPath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "gemini.api_key")
}

// TestLoadConfigEnvOverride 验证环境变量覆盖文件中的敏感配置
func TestLoadConfigEnvOverride(t *testing.T) {
	configPath := writeTempConfig(t, `
gemini:
  api_key: "file-key"
mysql:
  password: "file-password"
`)

	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("MYSQL_PASSWORD", "env-password")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, "env-password", cfg.MySQL.Password)
}

// TestLoadConfigMissingFile 验证配置文件不存在时报错
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
