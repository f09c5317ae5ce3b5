// Package ats 提供面向ATS（申请人跟踪系统）关键词匹配的文本规范化。
package ats

import (
	"regexp"
	"strings"
)

// 缩写展开表，按固定顺序执行。所有展开产物中都不再出现独立的缩写token
// （如reactjs里的js不在词边界上），因此整个变换是幂等的。
var abbreviations = []struct {
	re   *regexp.Regexp
	full string
}{
	{regexp.MustCompile(`\bjs\b`), "javascript"},
	{regexp.MustCompile(`\bts\b`), "typescript"},
	{regexp.MustCompile(`\breact\b`), "reactjs"},
	{regexp.MustCompile(`\bvue\b`), "vuejs"},
	{regexp.MustCompile(`\baws\b`), "amazon web services"},
	{regexp.MustCompile(`\bui\b`), "user interface"},
	{regexp.MustCompile(`\bux\b`), "user experience"},
	{regexp.MustCompile(`\bapi\b`), "application programming interface"},
	{regexp.MustCompile(`\bdb\b`), "database"},
	{regexp.MustCompile(`\boop\b`), "object oriented programming"},
	{regexp.MustCompile(`\bci\b`), "continuous integration"},
	{regexp.MustCompile(`\bcd\b`), "continuous deployment"},
	{regexp.MustCompile(`\bml\b`), "machine learning"},
	{regexp.MustCompile(`\bai\b`), "artificial intelligence"},
	{regexp.MustCompile(`\bqa\b`), "quality assurance"},
	{regexp.MustCompile(`\bseo\b`), "search engine optimization"},
}

// 保留单词字符和空白，其余（标点、emoji等）全部去除
var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// OptimizeForATS 把自由文本规范化成ATS友好的形式：
// 去掉特殊字符，转小写，再按词边界展开常见技术缩写。
// 纯文本变换，幂等，不依赖外部状态。
func OptimizeForATS(text string) string {
	text = nonWordRe.ReplaceAllString(text, "")
	text = strings.ToLower(text)
	for _, a := range abbreviations {
		text = a.re.ReplaceAllString(text, a.full)
	}
	return text
}
