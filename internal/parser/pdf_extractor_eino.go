package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/logger"
)

// DocumentText 文本获取的结果：按页序拼接的全文和页数
type DocumentText struct {
	Text      string
	PageCount int
}

// EinoPDFTextExtractor 使用 Eino PDF Parser 提取简历文本。
// 按页解析后以换行符拼接，保证页序1..N。任意一页不可读则整个文档失败
// （不做部分页恢复），调用方应回退到手工录入。
type EinoPDFTextExtractor struct {
	parser  *pdf.PDFParser
	timeout time.Duration
	logger  zerolog.Logger
}

// EinoPDFOption PDF提取器的配置选项
type EinoPDFOption func(*EinoPDFTextExtractor)

// WithExtractTimeout 设置单次提取的超时时间
func WithExtractTimeout(d time.Duration) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		e.timeout = d
	}
}

// WithEinoLogger 设置自定义日志记录器
func WithEinoLogger(l zerolog.Logger) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		e.logger = l
	}
}

// NewEinoPDFTextExtractor 初始化 Eino PDF 文本提取器。
// 配置为按页分割（ToPages: true），以便统计页数并保持页序。
func NewEinoPDFTextExtractor(ctx context.Context, options ...EinoPDFOption) (*EinoPDFTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true, // 每页一个文档，拼接时保留页边界
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	extractor := &EinoPDFTextExtractor{
		parser:  p,
		timeout: 30 * time.Second,
		logger:  logger.Logger,
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor, nil
}

// ExtractFromBytes 从PDF二进制内容提取全文
func (e *EinoPDFTextExtractor) ExtractFromBytes(ctx context.Context, data []byte, uri string) (*DocumentText, error) {
	return e.ExtractFromReader(ctx, bytes.NewReader(data), uri)
}

// ExtractFromReader 从 io.Reader 提取全文。
// 返回的文本是所有页文本按页序以换行符拼接的结果。
func (e *EinoPDFTextExtractor) ExtractFromReader(ctx context.Context, reader io.Reader, uri string) (*DocumentText, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader, einoParser.WithURI(uri))
	duration := time.Since(startTime)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("uri", uri).
			Dur("duration", duration).
			Msg("PDF解析失败")
		return nil, NewDocumentParseError(uri, "eino PDF parser failed", err)
	}
	if len(docs) == 0 {
		return nil, NewDocumentParseError(uri, "parser returned no pages", nil)
	}

	// 按页序拼接，页之间以换行符分隔
	var sb strings.Builder
	for i, doc := range docs {
		sb.WriteString(doc.Content)
		if i < len(docs)-1 {
			sb.WriteString("\n")
		}
	}
	text := sb.String()

	e.logger.Debug().
		Str("uri", uri).
		Int("pages", len(docs)).
		Int("chars", len(text)).
		Dur("duration", duration).
		Msg("PDF文本提取完成")

	return &DocumentText{Text: text, PageCount: len(docs)}, nil
}
