package parser

import (
	"errors"
	"fmt"
)

// ErrDocumentParse 源文件不是可读的PDF文档。
// 不可重试：调用方应提示用户重新上传或回退到手工录入。
var ErrDocumentParse = errors.New("无法解析PDF文档")

// DocumentParseError 带来源信息的文档解析错误
type DocumentParseError struct {
	URI    string
	Detail string
	Cause  error
}

func (e *DocumentParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (来源:%s): %s", ErrDocumentParse, e.URI, e.Detail)
	}
	return fmt.Sprintf("%s (来源:%s)", ErrDocumentParse, e.URI)
}

func (e *DocumentParseError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrDocumentParse
}

// Is 支持 errors.Is(err, ErrDocumentParse) 比较
func (e *DocumentParseError) Is(target error) bool {
	return target == ErrDocumentParse
}

// NewDocumentParseError 构造文档解析错误
func NewDocumentParseError(uri, detail string, cause error) error {
	return &DocumentParseError{URI: uri, Detail: detail, Cause: cause}
}
