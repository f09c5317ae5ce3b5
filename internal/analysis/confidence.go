package analysis

import (
	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// ScorePolicy 置信度扣分策略表。
// 置信度从100起算，校验通过的结果中每有一个可选集合为空就按表扣分，
// 最终钳制到[0,100]。这些数值是经验值而非领域定律，因此做成可配置策略。
type ScorePolicy struct {
	EmptyStrengths           int
	EmptyAreasForImprovement int
	EmptyRecommendations     int
	EmptyTechnicalSkills     int
	EmptySoftSkills          int
	EmptyExperienceAnalysis  int
	EmptyProjectAnalysis     int
	EmptyRelevantExperiences int
	ZeroEducationFitScore    int
	ZeroCultureFitScore      int
	EmptyATSImprovements     int
}

// DefaultScorePolicy 默认扣分策略
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{
		EmptyStrengths:           10,
		EmptyAreasForImprovement: 10,
		EmptyRecommendations:     10,
		EmptyTechnicalSkills:     10,
		EmptySoftSkills:          10,
		EmptyExperienceAnalysis:  15,
		EmptyProjectAnalysis:     10,
		EmptyRelevantExperiences: 10,
		ZeroEducationFitScore:    5,
		ZeroCultureFitScore:      5,
		EmptyATSImprovements:     10,
	}
}

// Score 从已校验结果的"形状"推导置信度：完整性越高分数越高。
// 从不采用模型的自我报告。
func (p ScorePolicy) Score(a *types.JobFitAnalysis) int {
	score := 100

	if len(a.Strengths) == 0 {
		score -= p.EmptyStrengths
	}
	if len(a.AreasForImprovement) == 0 {
		score -= p.EmptyAreasForImprovement
	}
	if len(a.Recommendations) == 0 {
		score -= p.EmptyRecommendations
	}
	if len(a.SkillsMatch.Technical) == 0 {
		score -= p.EmptyTechnicalSkills
	}
	if len(a.SkillsMatch.Soft) == 0 {
		score -= p.EmptySoftSkills
	}
	if len(a.ExperienceAnalysis) == 0 {
		score -= p.EmptyExperienceAnalysis
	}
	if len(a.ProjectAnalysis) == 0 {
		score -= p.EmptyProjectAnalysis
	}
	if len(a.ExperienceRelevance.RelevantExperiences) == 0 {
		score -= p.EmptyRelevantExperiences
	}
	if a.EducationFit.Score == 0 {
		score -= p.ZeroEducationFitScore
	}
	if a.CultureFit.Score == 0 {
		score -= p.ZeroCultureFitScore
	}
	if len(a.ATSImprovements) == 0 {
		score -= p.EmptyATSImprovements
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
