package analysis

import (
	"fmt"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// formatDirective 提示词中嵌入的输出格式规范，与ValidateAnalysis的
// 校验规则一一对应。模型被视为不可信的外部文本源：凡是这里要求的
// 字段，校验时都必须出现。
const formatDirective = `The output must be a single valid JSON object, with no additional text, explanation or Markdown fences before or after it. The JSON object must contain ALL of the following fields (arrays may be empty but must be present):

{
  "jobFitPercentage": <integer 0-100>,
  "overallAssessment": <string>,
  "strengths": [{"skill": <string>, "description": <string>}],
  "areasForImprovement": [{"area": <string>, "suggestion": <string>}],
  "recommendations": [<string>],
  "skillsMatch": {
    "technical": [{"skill": <string>, "matchLevel": "high"|"medium"|"low"|"missing", "comment": <string>}],
    "soft": [{"skill": <string>, "matchLevel": "high"|"medium"|"low"|"missing", "comment": <string>}]
  },
  "experienceAnalysis": [{"company": <string>, "position": <string>, "duration": <string>, "keyPoints": [<string>], "relevance": <string>}],
  "projectAnalysis": [{"name": <string>, "description": <string>, "keyPoints": [<string>], "relevance": <string>}],
  "experienceRelevance": {
    "score": <integer 0-100>,
    "relevantExperiences": [{"experience": <string>, "relevance": <string>}],
    "missingExperiences": [<string>]
  },
  "educationFit": {"score": <integer 0-100>, "comment": <string>},
  "cultureFit": {"score": <integer 0-100>, "comment": <string>},
  "atsImprovements": [{"section": <string>, "suggestion": <string>}]
}`

// ValidateAnalysis 对模型输出做整体结构校验。
// 任何一处不符合都拒绝整个结果（fail closed），从不部分接受。
// nil切片意味着JSON中缺少该键（空数组反序列化后非nil），按缺失处理。
func ValidateAnalysis(a *types.JobFitAnalysis) error {
	if a.JobFitPercentage < 0 || a.JobFitPercentage > 100 {
		return fmt.Errorf("jobFitPercentage超出[0,100]: %d", a.JobFitPercentage)
	}
	if a.OverallAssessment == "" {
		return fmt.Errorf("overallAssessment缺失或为空")
	}

	if a.Strengths == nil {
		return fmt.Errorf("strengths缺失")
	}
	if a.AreasForImprovement == nil {
		return fmt.Errorf("areasForImprovement缺失")
	}
	if a.Recommendations == nil {
		return fmt.Errorf("recommendations缺失")
	}
	if a.SkillsMatch.Technical == nil {
		return fmt.Errorf("skillsMatch.technical缺失")
	}
	if a.SkillsMatch.Soft == nil {
		return fmt.Errorf("skillsMatch.soft缺失")
	}
	for i, m := range a.SkillsMatch.Technical {
		if !m.MatchLevel.Valid() {
			return fmt.Errorf("skillsMatch.technical[%d].matchLevel非法: %q", i, m.MatchLevel)
		}
	}
	for i, m := range a.SkillsMatch.Soft {
		if !m.MatchLevel.Valid() {
			return fmt.Errorf("skillsMatch.soft[%d].matchLevel非法: %q", i, m.MatchLevel)
		}
	}

	if a.ExperienceAnalysis == nil {
		return fmt.Errorf("experienceAnalysis缺失")
	}
	for i, e := range a.ExperienceAnalysis {
		if e.KeyPoints == nil {
			return fmt.Errorf("experienceAnalysis[%d].keyPoints缺失", i)
		}
	}
	if a.ProjectAnalysis == nil {
		return fmt.Errorf("projectAnalysis缺失")
	}
	for i, p := range a.ProjectAnalysis {
		if p.KeyPoints == nil {
			return fmt.Errorf("projectAnalysis[%d].keyPoints缺失", i)
		}
	}

	if a.ExperienceRelevance.Score < 0 || a.ExperienceRelevance.Score > 100 {
		return fmt.Errorf("experienceRelevance.score超出[0,100]: %d", a.ExperienceRelevance.Score)
	}
	if a.ExperienceRelevance.RelevantExperiences == nil {
		return fmt.Errorf("experienceRelevance.relevantExperiences缺失")
	}
	if a.ExperienceRelevance.MissingExperiences == nil {
		return fmt.Errorf("experienceRelevance.missingExperiences缺失")
	}

	if a.EducationFit.Score < 0 || a.EducationFit.Score > 100 {
		return fmt.Errorf("educationFit.score超出[0,100]: %d", a.EducationFit.Score)
	}
	if a.CultureFit.Score < 0 || a.CultureFit.Score > 100 {
		return fmt.Errorf("cultureFit.score超出[0,100]: %d", a.CultureFit.Score)
	}

	if a.ATSImprovements == nil {
		return fmt.Errorf("atsImprovements缺失")
	}

	return nil
}
