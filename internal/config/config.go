package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080"
}

// MySQLConfig MySQL配置结构
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// 连接池设置
	MaxIdleConns int `yaml:"max_idle_conns"` // 最大空闲连接数
	MaxOpenConns int `yaml:"max_open_conns"` // 最大打开连接数
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"`
	// 超时设置
	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"`
	ReadTimeoutSeconds    int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds   int `yaml:"write_timeout_seconds"`
	// GORM日志级别(1-4)
	LogLevel int `yaml:"log_level"`
}

// RedisConfig Redis配置结构
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
	// 编辑会话的过期时间(小时)，0表示不过期
	SessionExpireHours int `yaml:"session_expire_hours"`
}

// MinIOConfig MinIO配置结构
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	BucketName      string `yaml:"bucketName"` // 原始简历存储桶
	Location        string `yaml:"location"`   // 可选，存储桶区域
}

// GeminiConfig 生成式模型配置
type GeminiConfig struct {
	APIKey          string  `yaml:"api_key"`
	APIURL          string  `yaml:"api_url"`
	Model           string  `yaml:"model"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	TimeoutSeconds  int     `yaml:"timeout_seconds"` // 单次调用超时
}

// ScorePolicyConfig 置信度评分的扣分策略表。
// 这些扣分值是经验选择的策略参数，不是领域定律，因此做成可配置项。
type ScorePolicyConfig struct {
	EmptyStrengths           int `yaml:"empty_strengths"`
	EmptyImprovements        int `yaml:"empty_improvements"`
	EmptyRecommendations     int `yaml:"empty_recommendations"`
	EmptyTechnicalSkills     int `yaml:"empty_technical_skills"`
	EmptySoftSkills          int `yaml:"empty_soft_skills"`
	EmptyExperienceAnalysis  int `yaml:"empty_experience_analysis"`
	EmptyProjectAnalysis     int `yaml:"empty_project_analysis"`
	EmptyRelevantExperiences int `yaml:"empty_relevant_experiences"`
	EmptyATSImprovements     int `yaml:"empty_ats_improvements"`
	ZeroEducationFit         int `yaml:"zero_education_fit"`
	ZeroCultureFit           int `yaml:"zero_culture_fit"`
}

// AnalysisConfig 岗位匹配分析引擎配置
type AnalysisConfig struct {
	ModelVersion string `yaml:"model_version"` // 写入metadata的模型版本标签
	// 每用户每日分析次数上限，0表示不限制；作为调用前的准入检查，不是锁
	DailyLimit int               `yaml:"daily_limit"`
	Score      ScorePolicyConfig `yaml:"score"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // json 或 pretty
	TimeFormat string `yaml:"time_format"` // 时间戳格式
	FilePath   string `yaml:"file_path"`   // 为空则只输出到控制台
}

// TracingConfig OpenTelemetry追踪配置
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"` // OTLP gRPC endpoint，为空则禁用
	ServiceName string `yaml:"service_name"`
}

// Config 应用程序配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Redis    RedisConfig    `yaml:"redis"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logger   LoggerConfig   `yaml:"logger"`
	Tracing  TracingConfig  `yaml:"tracing"`
	// API密钥到用户ID的映射，鉴权本身是外部协作方，这里只做身份解析
	APIKeys map[string]string `yaml:"api_keys"`
}

// LoadConfig 从YAML文件加载配置；path为空时使用默认路径。
// 敏感项允许通过环境变量覆盖文件中的值。
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = filepath.Join("internal", "config", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 环境变量覆盖文件中的敏感配置
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("MYSQL_PASSWORD"); v != "" {
		cfg.MySQL.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretAccessKey = v
	}
}

// applyDefaults 填充未配置项的默认值
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.TimeFormat == "" {
		cfg.Logger.TimeFormat = "15:04:05"
	}

	if cfg.MySQL.MaxIdleConns == 0 {
		cfg.MySQL.MaxIdleConns = 5
	}
	if cfg.MySQL.MaxOpenConns == 0 {
		cfg.MySQL.MaxOpenConns = 50
	}
	if cfg.MySQL.ConnMaxLifetimeMinutes == 0 {
		cfg.MySQL.ConnMaxLifetimeMinutes = 60
	}
	if cfg.MySQL.ConnMaxIdleTimeMinutes == 0 {
		cfg.MySQL.ConnMaxIdleTimeMinutes = 30
	}
	if cfg.MySQL.ConnectTimeoutSeconds == 0 {
		cfg.MySQL.ConnectTimeoutSeconds = 10
	}
	if cfg.MySQL.ReadTimeoutSeconds == 0 {
		cfg.MySQL.ReadTimeoutSeconds = 30
	}
	if cfg.MySQL.WriteTimeoutSeconds == 0 {
		cfg.MySQL.WriteTimeoutSeconds = 30
	}

	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.MinIdleConns == 0 {
		cfg.Redis.MinIdleConns = 2
	}
	if cfg.Redis.DialTimeoutSeconds == 0 {
		cfg.Redis.DialTimeoutSeconds = 5
	}
	if cfg.Redis.ReadTimeoutSeconds == 0 {
		cfg.Redis.ReadTimeoutSeconds = 3
	}
	if cfg.Redis.WriteTimeoutSeconds == 0 {
		cfg.Redis.WriteTimeoutSeconds = 3
	}
	if cfg.Redis.SessionExpireHours == 0 {
		cfg.Redis.SessionExpireHours = 24 * 7
	}

	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-1.5-flash"
	}
	if cfg.Gemini.MaxOutputTokens == 0 {
		cfg.Gemini.MaxOutputTokens = 2048
	}
	if cfg.Gemini.TimeoutSeconds == 0 {
		cfg.Gemini.TimeoutSeconds = 60
	}

	if cfg.Analysis.ModelVersion == "" {
		cfg.Analysis.ModelVersion = cfg.Gemini.Model
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "ai-resume-builder"
	}
}

// Validate 检查必填项
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key 未配置（也可通过 GEMINI_API_KEY 环境变量设置）")
	}
	return nil
}
