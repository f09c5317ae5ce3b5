// Package models 定义GORM数据模型。
// 分析结果的完整结构保存在JSON列中，少数高频查询字段冗余成标量列。
package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserAnalysis 一次岗位匹配分析的持久化记录
type UserAnalysis struct {
	ID                string         `gorm:"column:id;type:varchar(36);primaryKey"`
	UserID            string         `gorm:"column:user_id;type:varchar(64);not null;index:idx_user_created,priority:1"`
	JobFitPercentage  int            `gorm:"column:job_fit_percentage;not null"`
	OverallAssessment string         `gorm:"column:overall_assessment;type:text"`
	ConfidenceScore   int            `gorm:"column:confidence_score;not null"`
	ModelVersion      string         `gorm:"column:model_version;type:varchar(64)"`
	AnalysisTimestamp time.Time      `gorm:"column:analysis_timestamp;not null"`
	Payload           datatypes.JSON `gorm:"column:payload;type:json;not null"` // 完整分析结果
	CreatedAt         time.Time      `gorm:"column:created_at;index:idx_user_created,priority:2"`
}

// TableName 指定表名
func (UserAnalysis) TableName() string {
	return "user_analyses"
}

// UserUsage 按天累计的用量计数，(user_id, usage_date)唯一
type UserUsage struct {
	UserID        string    `gorm:"column:user_id;type:varchar(64);primaryKey"`
	UsageDate     string    `gorm:"column:usage_date;type:varchar(10);primaryKey"` // YYYY-MM-DD
	AnalysisCount int       `gorm:"column:analysis_count;not null;default:0"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName 指定表名
func (UserUsage) TableName() string {
	return "user_usage"
}

// ResumeTemplate 命名保存的简历快照
type ResumeTemplate struct {
	ID        string         `gorm:"column:id;type:varchar(36);primaryKey"`
	UserID    string         `gorm:"column:user_id;type:varchar(64);not null;index"`
	Name      string         `gorm:"column:name;type:varchar(255);not null"`
	Data      datatypes.JSON `gorm:"column:data;type:json;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

// TableName 指定表名
func (ResumeTemplate) TableName() string {
	return "resume_templates"
}
