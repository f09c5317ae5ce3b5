// Package resume 负责把字段抽取结果合并进规范化简历记录，并管理编辑会话。
package resume

import (
	"strings"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// Normalize 把抽取结果合并进已有的规范化简历。
// 合并规则：抽取中出现的字段整体替换对应区块；抽取中缺失的字段保留
// 已有数据，绝不用空值覆盖。摘要、证书、语言、兴趣不来自抽取，始终保留。
// 对同一份抽取结果重复归一化是幂等的。
func Normalize(extracted *types.ExtractedResumeData, canonical types.ResumeData) types.ResumeData {
	result := withDefaults(canonical)
	if extracted == nil {
		return result
	}

	if extracted.Name != "" {
		result.PersonalInfo.FullName = extracted.Name
	}
	if extracted.Email != "" {
		result.PersonalInfo.Email = extracted.Email
	}
	applyLinks(extracted.Links, &result.PersonalInfo)

	if extracted.Education != nil {
		result.Education = normalizeEducation(extracted.Education)
	}
	if extracted.Experience != nil {
		result.Experience = normalizeExperience(extracted.Experience)
	}
	if extracted.Projects != nil {
		result.Projects = normalizeProjects(extracted.Projects)
	}
	if !extracted.Skills.IsEmpty() {
		skills := make([]string, 0,
			len(extracted.Skills.Languages)+len(extracted.Skills.Technologies)+
				len(extracted.Skills.Databases)+len(extracted.Skills.Tools))
		skills = append(skills, extracted.Skills.Languages...)
		skills = append(skills, extracted.Skills.Technologies...)
		skills = append(skills, extracted.Skills.Databases...)
		skills = append(skills, extracted.Skills.Tools...)
		result.AdditionalSkills = skills
	}

	return result
}

// applyLinks 链接分类：第一个含linkedin.com的归入LinkedIn，
// 第一个含github.com的归入GitHub，第一个两者都不含的归入作品集。
// 没有命中的类别保留原值。
func applyLinks(links []string, info *types.PersonalInfo) {
	// 每个类别取文档序中的第一个命中
	for _, link := range links {
		if strings.Contains(link, "linkedin.com") {
			info.LinkedIn = link
			break
		}
	}
	for _, link := range links {
		if strings.Contains(link, "github.com") {
			info.GitHub = link
			break
		}
	}
	for _, link := range links {
		if !strings.Contains(link, "linkedin.com") && !strings.Contains(link, "github.com") {
			info.Portfolio = link
			break
		}
	}
}

// splitDateRange 把 "start-end" 形式的区间按第一个'-'切开；
// 没有分隔符时结束日期为空。
func splitDateRange(s string) (start, end string) {
	parts := strings.SplitN(s, "-", 2)
	start = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}

func normalizeEducation(entries []types.ExtractedEducation) []types.Education {
	result := make([]types.Education, 0, len(entries))
	for _, e := range entries {
		start, end := splitDateRange(e.Year)
		result = append(result, types.Education{
			Institution: e.University,
			Degree:      e.Degree,
			Location:    e.Location,
			StartDate:   start,
			EndDate:     end,
		})
	}
	return result
}

func normalizeExperience(entries []types.ExtractedExperience) []types.Experience {
	result := make([]types.Experience, 0, len(entries))
	for _, e := range entries {
		start, end := splitDateRange(e.Duration)
		responsibilities := e.Responsibilities
		if responsibilities == nil {
			responsibilities = []string{}
		}
		result = append(result, types.Experience{
			Company:          e.Company,
			Role:             e.Position,
			Location:         e.Location,
			StartDate:        start,
			EndDate:          end,
			Responsibilities: responsibilities,
		})
	}
	return result
}

func normalizeProjects(entries []types.ExtractedProject) []types.Project {
	result := make([]types.Project, 0, len(entries))
	for _, p := range entries {
		points := p.Points
		if points == nil {
			points = []string{}
		}
		result = append(result, types.Project{
			Name:        p.Title,
			Description: p.TechStack,
			Points:      points,
			Link:        p.DemoLink,
			GitLink:     p.GithubLink,
		})
	}
	return result
}

// withDefaults 补齐nil切片，保证输出记录所有叶子字段可直接渲染
func withDefaults(data types.ResumeData) types.ResumeData {
	if data.Education == nil {
		data.Education = []types.Education{}
	}
	if data.Experience == nil {
		data.Experience = []types.Experience{}
	}
	if data.Projects == nil {
		data.Projects = []types.Project{}
	}
	if data.Certifications == nil {
		data.Certifications = []types.Certification{}
	}
	if data.AdditionalSkills == nil {
		data.AdditionalSkills = []string{}
	}
	if data.Languages == nil {
		data.Languages = []types.Language{}
	}
	if data.Interests == nil {
		data.Interests = []string{}
	}
	return data
}
