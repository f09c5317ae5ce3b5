package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

func TestValidateAnalysis_FullResultPasses(t *testing.T) {
	assert.NoError(t, ValidateAnalysis(fullAnalysis()))
}

func TestValidateAnalysis_EmptyArraysAreValid(t *testing.T) {
	// 空数组合法（只影响置信度），缺失的键才非法
	a := fullAnalysis()
	a.Strengths = []types.Strength{}
	a.ATSImprovements = []types.ATSImprovement{}
	assert.NoError(t, ValidateAnalysis(a))
}

func TestValidateAnalysis_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *types.JobFitAnalysis)
	}{
		{"strengths为nil", func(a *types.JobFitAnalysis) { a.Strengths = nil }},
		{"areasForImprovement为nil", func(a *types.JobFitAnalysis) { a.AreasForImprovement = nil }},
		{"recommendations为nil", func(a *types.JobFitAnalysis) { a.Recommendations = nil }},
		{"skillsMatch.technical为nil", func(a *types.JobFitAnalysis) { a.SkillsMatch.Technical = nil }},
		{"skillsMatch.soft为nil", func(a *types.JobFitAnalysis) { a.SkillsMatch.Soft = nil }},
		{"experienceAnalysis为nil", func(a *types.JobFitAnalysis) { a.ExperienceAnalysis = nil }},
		{"projectAnalysis为nil", func(a *types.JobFitAnalysis) { a.ProjectAnalysis = nil }},
		{"relevantExperiences为nil", func(a *types.JobFitAnalysis) { a.ExperienceRelevance.RelevantExperiences = nil }},
		{"missingExperiences为nil", func(a *types.JobFitAnalysis) { a.ExperienceRelevance.MissingExperiences = nil }},
		{"atsImprovements为nil", func(a *types.JobFitAnalysis) { a.ATSImprovements = nil }},
		{"overallAssessment为空", func(a *types.JobFitAnalysis) { a.OverallAssessment = "" }},
		{"jobFitPercentage越界", func(a *types.JobFitAnalysis) { a.JobFitPercentage = 101 }},
		{"jobFitPercentage为负", func(a *types.JobFitAnalysis) { a.JobFitPercentage = -1 }},
		{"experienceRelevance.score越界", func(a *types.JobFitAnalysis) { a.ExperienceRelevance.Score = 150 }},
		{"educationFit.score越界", func(a *types.JobFitAnalysis) { a.EducationFit.Score = -5 }},
		{"matchLevel非法", func(a *types.JobFitAnalysis) { a.SkillsMatch.Technical[0].MatchLevel = "great" }},
		{"experienceAnalysis.keyPoints为nil", func(a *types.JobFitAnalysis) { a.ExperienceAnalysis[0].KeyPoints = nil }},
		{"projectAnalysis.keyPoints为nil", func(a *types.JobFitAnalysis) { a.ProjectAnalysis[0].KeyPoints = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fullAnalysis()
			tt.mutate(a)
			assert.Error(t, ValidateAnalysis(a))
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"纯JSON", `{"a": 1}`, `{"a": 1}`},
		{"前后有文字", `sure! {"a": {"b": 2}} done`, `{"a": {"b": 2}}`},
		{"没有JSON", "no braces here", ""},
		{"未闭合", `{"a": 1`, ""},
		{"空输入", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.input))
		})
	}
}
