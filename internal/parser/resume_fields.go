package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// 字段抽取用到的模式。简历没有固定文法，这里全部是行级/区块级的
// 启发式匹配：每一步都是尽力而为，匹配不到只会让对应字段缺失。
var (
	// 连续两个及以上首字母大写的单词，限定在同一行内
	nameRe = regexp.MustCompile(`[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)+`)
	// RFC5322风格的邮箱token
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// http(s)链接，按文档序收集，保留重复
	linkRe = regexp.MustCompile(`https?://[^\s]+`)
	// 教育经历第二行：逗号或连续两个以上空白分隔 (学位, 年份区间)
	degreeSplitRe = regexp.MustCompile(`,|\s{2,}`)
	// 工作经历首行：连续两个以上空白做位置切分
	columnSplitRe = regexp.MustCompile(`\s{2,}`)

	// 技能区块内的四个带标签子列表
	skillLanguagesRe    = regexp.MustCompile(`(?i)Languages:?[ \t]*([^\n]+)`)
	skillTechnologiesRe = regexp.MustCompile(`(?i)Technologies:?[ \t]*([^\n]+)`)
	skillDatabasesRe    = regexp.MustCompile(`(?i)Databases:?[ \t]*([^\n]+)`)
	skillToolsRe        = regexp.MustCompile(`(?i)Tools:?[ \t]*([^\n]+)`)
)

// ExtractResumeFields 对原始文本应用全部抽取规则。
// 对任意输入（包括空串和非简历文本）都返回一个记录，从不报错；
// "找不到"通过字段缺失表达，这是抽取层唯一的失败信号。
func ExtractResumeFields(text string) *types.ExtractedResumeData {
	data := &types.ExtractedResumeData{}
	if text == "" {
		return data
	}

	data.Name = extractName(text)
	data.Email = emailRe.FindString(text)
	data.Links = linkRe.FindAllString(text, -1)

	if block, ok := captureSection(text, "EDUCATION", "SKILLS", "EXPERIENCE", "PROJECTS"); ok {
		data.Education = extractEducation(block)
	}
	if block, ok := captureSection(text, "SKILLS", "EXPERIENCE", "PROJECTS"); ok {
		data.Skills = extractSkills(block)
	}
	if block, ok := captureSection(text, "EXPERIENCE", "PROJECTS"); ok {
		data.Experience = extractExperience(block)
	}
	if block, ok := captureSection(text, "PROJECTS"); ok {
		data.Projects = extractProjects(block)
	}

	return data
}

// extractName 返回首个行内匹配；后续的伪命中（如标题式的小节名）不做过滤，
// 这是已知的精度上限。
func extractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if m := nameRe.FindString(line); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// captureSection 定位大小写不敏感的区块头，捕获到下一个已识别区块头或文档尾。
// 返回的内容不含区块头本身。
func captureSection(text, header string, boundaries ...string) (string, bool) {
	upper := strings.ToUpper(text)
	start := strings.Index(upper, strings.ToUpper(header))
	if start < 0 {
		return "", false
	}
	bodyStart := start + len(header)
	body := text[bodyStart:]
	upperBody := upper[bodyStart:]

	end := len(body)
	for _, b := range boundaries {
		if idx := strings.Index(upperBody, strings.ToUpper(b)); idx >= 0 && idx < end {
			end = idx
		}
	}
	return body[:end], true
}

// splitBlockEntries 把区块切分成条目：空行之后以大写字母开头的行视为新条目的开始。
// 返回每个条目的非空行序列。
func splitBlockEntries(block string) [][]string {
	var entries [][]string
	var current []string
	prevBlank := true

	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			prevBlank = true
			continue
		}
		first, _ := utf8.DecodeRuneInString(line)
		startsUpper := unicode.IsUpper(first)
		if prevBlank && startsUpper && len(current) > 0 {
			entries = append(entries, current)
			current = nil
		}
		current = append(current, line)
		prevBlank = false
	}
	if len(current) > 0 {
		entries = append(entries, current)
	}
	return entries
}

// extractEducation 解析教育区块。
// 每条的首行按逗号切成 (院校, 地点)，第二行按逗号或双空格切成 (学位, 年份区间)。
// 院校和学位都缺失的条目丢弃。
func extractEducation(block string) []types.ExtractedEducation {
	var result []types.ExtractedEducation
	for _, lines := range splitBlockEntries(block) {
		var edu types.ExtractedEducation
		parts := strings.SplitN(lines[0], ",", 2)
		edu.University = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			edu.Location = strings.TrimSpace(parts[1])
		}
		if len(lines) > 1 {
			degreeParts := degreeSplitRe.Split(lines[1], -1)
			edu.Degree = strings.TrimSpace(degreeParts[0])
			if len(degreeParts) > 1 {
				edu.Year = strings.TrimSpace(degreeParts[1])
			}
		}
		if edu.University == "" && edu.Degree == "" {
			continue
		}
		result = append(result, edu)
	}
	return result
}

// extractSkills 解析技能区块的四个带标签子列表；缺失的标签保持nil
func extractSkills(block string) types.ExtractedSkills {
	return types.ExtractedSkills{
		Languages:    labeledList(skillLanguagesRe, block),
		Technologies: labeledList(skillTechnologiesRe, block),
		Databases:    labeledList(skillDatabasesRe, block),
		Tools:        labeledList(skillToolsRe, block),
	}
}

// labeledList 取标签后同一行的逗号分隔token
func labeledList(re *regexp.Regexp, block string) []string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return nil
	}
	var items []string
	for _, part := range strings.Split(m[1], ",") {
		if s := strings.TrimSpace(part); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// extractExperience 解析工作经历区块：条目以空行对分隔；
// 首行按连续空白位置切成 (公司, 时间段, 职位, 地点)，其余行为职责描述。
func extractExperience(block string) []types.ExtractedExperience {
	var result []types.ExtractedExperience
	for _, entry := range strings.Split(strings.TrimSpace(block), "\n\n") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		lines := strings.Split(entry, "\n")
		var exp types.ExtractedExperience
		cols := columnSplitRe.Split(strings.TrimSpace(lines[0]), -1)
		for i, col := range cols {
			col = strings.TrimSpace(col)
			switch i {
			case 0:
				exp.Company = col
			case 1:
				exp.Duration = col
			case 2:
				exp.Position = col
			case 3:
				exp.Location = col
			}
		}
		for _, line := range lines[1:] {
			if s := strings.TrimSpace(line); s != "" {
				exp.Responsibilities = append(exp.Responsibilities, s)
			}
		}
		result = append(result, exp)
	}
	return result
}

// extractProjects 解析项目区块：条目以空行对分隔；
// 首行以字面的 "   |   " 切成 (标题, 技术栈与链接)，右侧再按三空格位置
// 切成 (技术栈, 演示链接, 仓库链接)，其余行为要点。
func extractProjects(block string) []types.ExtractedProject {
	var result []types.ExtractedProject
	for _, entry := range strings.Split(strings.TrimSpace(block), "\n\n") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		lines := strings.Split(entry, "\n")
		var proj types.ExtractedProject

		head := strings.SplitN(strings.TrimSpace(lines[0]), "   |   ", 2)
		proj.Title = strings.TrimSpace(head[0])
		if len(head) > 1 {
			meta := strings.Split(head[1], "   ")
			for i, col := range meta {
				col = strings.TrimSpace(col)
				switch i {
				case 0:
					proj.TechStack = col
				case 1:
					proj.DemoLink = col
				case 2:
					proj.GithubLink = col
				}
			}
		}
		for _, line := range lines[1:] {
			if s := strings.TrimSpace(line); s != "" {
				proj.Points = append(proj.Points, s)
			}
		}
		result = append(result, proj)
	}
	return result
}
