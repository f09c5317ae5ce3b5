package types

import "time"

// MatchLevel 技能匹配等级枚举
type MatchLevel string

const (
	MatchHigh    MatchLevel = "high"
	MatchMedium  MatchLevel = "medium"
	MatchLow     MatchLevel = "low"
	MatchMissing MatchLevel = "missing"
)

// Valid 判断是否是四个合法等级之一
func (m MatchLevel) Valid() bool {
	switch m {
	case MatchHigh, MatchMedium, MatchLow, MatchMissing:
		return true
	}
	return false
}

// Strength 与岗位高度相关的优势点
type Strength struct {
	Skill       string `json:"skill"`
	Description string `json:"description"`
}

// Improvement 待提升点及具体建议
type Improvement struct {
	Area       string `json:"area"`
	Suggestion string `json:"suggestion"`
}

// SkillMatch 单项技能与岗位要求的匹配评估
type SkillMatch struct {
	Skill      string     `json:"skill"`
	MatchLevel MatchLevel `json:"matchLevel"`
	Comment    string     `json:"comment"`
}

// SkillsMatch 技术技能与软技能两组匹配评估
type SkillsMatch struct {
	Technical []SkillMatch `json:"technical"`
	Soft      []SkillMatch `json:"soft"`
}

// ExperienceReview 单条工作经历的深入分析
type ExperienceReview struct {
	Company   string   `json:"company"`
	Position  string   `json:"position"`
	Duration  string   `json:"duration"`
	KeyPoints []string `json:"keyPoints"`
	Relevance string   `json:"relevance"`
}

// ProjectReview 单个项目的深入分析
type ProjectReview struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	KeyPoints   []string `json:"keyPoints"`
	Relevance   string   `json:"relevance"`
}

// RelevantExperience 与岗位相关的一条经历摘要
type RelevantExperience struct {
	Experience string `json:"experience"`
	Relevance  string `json:"relevance"`
}

// ExperienceRelevance 经历整体相关性评估
type ExperienceRelevance struct {
	Score               int                  `json:"score"`
	RelevantExperiences []RelevantExperience `json:"relevantExperiences"`
	MissingExperiences  []string             `json:"missingExperiences"`
}

// ScoredComment 带分数的单段评语（教育背景/文化契合度共用）
type ScoredComment struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// ATSImprovement 针对某一简历区块的ATS优化建议
type ATSImprovement struct {
	Section    string `json:"section"`
	Suggestion string `json:"suggestion"`
}

// AnalysisMetadata 分析元数据。ConfidenceScore由完整性启发式推导，
// 从不采用模型的自我报告。
type AnalysisMetadata struct {
	AnalysisTimestamp time.Time `json:"analysisTimestamp"`
	ModelVersion      string    `json:"modelVersion"`
	ConfidenceScore   int       `json:"confidenceScore"`
}

// JobFitAnalysis 一次岗位匹配分析的完整结果记录。
// 所有数值分数都被钳制到[0,100]；创建后除删除外不可变；按用户归属。
type JobFitAnalysis struct {
	ID                  string              `json:"id,omitempty"`
	JobFitPercentage    int                 `json:"jobFitPercentage"`
	OverallAssessment   string              `json:"overallAssessment"`
	Strengths           []Strength          `json:"strengths"`
	AreasForImprovement []Improvement       `json:"areasForImprovement"`
	Recommendations     []string            `json:"recommendations"`
	SkillsMatch         SkillsMatch         `json:"skillsMatch"`
	ExperienceAnalysis  []ExperienceReview  `json:"experienceAnalysis"`
	ProjectAnalysis     []ProjectReview     `json:"projectAnalysis"`
	ExperienceRelevance ExperienceRelevance `json:"experienceRelevance"`
	EducationFit        ScoredComment       `json:"educationFit"`
	CultureFit          ScoredComment       `json:"cultureFit"`
	ATSImprovements     []ATSImprovement    `json:"atsImprovements"`
	Metadata            AnalysisMetadata    `json:"metadata"`
}
