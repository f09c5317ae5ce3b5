// Package analysis 实现岗位匹配分析引擎：提示词构建、模型输出的
// 结构校验、置信度推导和结果持久化。
package analysis

import (
	"errors"
	"fmt"
)

// ErrValidation 调用方缺少必需的输入（简历文本、岗位描述、分析ID等）。
// 在任何I/O之前检查。
var ErrValidation = errors.New("缺少必需的输入")

// ErrSchemaValidation 模型输出不符合要求的结构。
// 整体拒绝，不做部分接受，也不尝试修复或重试。
var ErrSchemaValidation = errors.New("模型输出结构校验失败")

// ErrNoAnalyses 用户还没有任何已保存的分析记录
var ErrNoAnalyses = errors.New("没有可用的分析记录")

// ErrDailyLimitExceeded 超出当日分析次数限制
var ErrDailyLimitExceeded = errors.New("超出当日分析次数限制")

// ValidationError 带字段名的输入校验错误
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError 构造输入校验错误
func NewValidationError(field string) error {
	return &ValidationError{Field: field}
}

// SchemaValidationError 带细节的模型输出校验错误。
// Raw保留模型的原始输出（截断前），方便排查。
type SchemaValidationError struct {
	Detail string
	Raw    string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchemaValidation, e.Detail)
}

func (e *SchemaValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// NewSchemaValidationError 构造模型输出校验错误
func NewSchemaValidationError(detail, raw string) error {
	return &SchemaValidationError{Detail: detail, Raw: raw}
}
