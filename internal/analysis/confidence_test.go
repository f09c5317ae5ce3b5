package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// fullAnalysis 所有集合都有内容、分项分数非零的结果
func fullAnalysis() *types.JobFitAnalysis {
	return &types.JobFitAnalysis{
		JobFitPercentage:    78,
		OverallAssessment:   "solid",
		Strengths:           []types.Strength{{Skill: "Go", Description: "d"}},
		AreasForImprovement: []types.Improvement{{Area: "K8s", Suggestion: "s"}},
		Recommendations:     []string{"r"},
		SkillsMatch: types.SkillsMatch{
			Technical: []types.SkillMatch{{Skill: "Go", MatchLevel: types.MatchHigh, Comment: "c"}},
			Soft:      []types.SkillMatch{{Skill: "Communication", MatchLevel: types.MatchMedium, Comment: "c"}},
		},
		ExperienceAnalysis: []types.ExperienceReview{{Company: "Acme", KeyPoints: []string{"k"}}},
		ProjectAnalysis:    []types.ProjectReview{{Name: "Foo", KeyPoints: []string{"k"}}},
		ExperienceRelevance: types.ExperienceRelevance{
			Score:               75,
			RelevantExperiences: []types.RelevantExperience{{Experience: "e", Relevance: "r"}},
			MissingExperiences:  []string{},
		},
		EducationFit:    types.ScoredComment{Score: 70, Comment: "c"},
		CultureFit:      types.ScoredComment{Score: 65, Comment: "c"},
		ATSImprovements: []types.ATSImprovement{{Section: "skills", Suggestion: "s"}},
	}
}

func TestScorePolicy_FullAnalysisScoresHundred(t *testing.T) {
	policy := DefaultScorePolicy()
	assert.Equal(t, 100, policy.Score(fullAnalysis()))
}

func TestScorePolicy_AllEmptyClampsToZero(t *testing.T) {
	policy := DefaultScorePolicy()
	empty := &types.JobFitAnalysis{
		Strengths:           []types.Strength{},
		AreasForImprovement: []types.Improvement{},
		Recommendations:     []string{},
		SkillsMatch:         types.SkillsMatch{Technical: []types.SkillMatch{}, Soft: []types.SkillMatch{}},
		ExperienceAnalysis:  []types.ExperienceReview{},
		ProjectAnalysis:     []types.ProjectReview{},
		ExperienceRelevance: types.ExperienceRelevance{
			RelevantExperiences: []types.RelevantExperience{},
			MissingExperiences:  []string{},
		},
		ATSImprovements: []types.ATSImprovement{},
	}
	assert.Equal(t, 0, policy.Score(empty))
}

func TestScorePolicy_PerSectionPenalties(t *testing.T) {
	policy := DefaultScorePolicy()

	tests := []struct {
		name   string
		mutate func(a *types.JobFitAnalysis)
		want   int
	}{
		{"空strengths", func(a *types.JobFitAnalysis) { a.Strengths = []types.Strength{} }, 90},
		{"空experienceAnalysis扣15", func(a *types.JobFitAnalysis) { a.ExperienceAnalysis = []types.ExperienceReview{} }, 85},
		{"educationFit为零扣5", func(a *types.JobFitAnalysis) { a.EducationFit.Score = 0 }, 95},
		{"cultureFit为零扣5", func(a *types.JobFitAnalysis) { a.CultureFit.Score = 0 }, 95},
		{"空atsImprovements", func(a *types.JobFitAnalysis) { a.ATSImprovements = []types.ATSImprovement{} }, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fullAnalysis()
			tt.mutate(a)
			assert.Equal(t, tt.want, policy.Score(a))
		})
	}
}

func TestScorePolicy_ResultAlwaysInRange(t *testing.T) {
	// 极端策略下结果仍被钳制到[0,100]
	heavy := ScorePolicy{
		EmptyStrengths:           200,
		EmptyAreasForImprovement: 200,
	}
	empty := &types.JobFitAnalysis{}
	score := heavy.Score(empty)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}
