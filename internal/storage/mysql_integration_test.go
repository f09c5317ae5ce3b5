package storage

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/config"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// 需要真实MySQL的集成测试。设置以下环境变量后运行：
//
//	RESUME_TEST_MYSQL_HOST / RESUME_TEST_MYSQL_PORT /
//	RESUME_TEST_MYSQL_USER / RESUME_TEST_MYSQL_PASSWORD /
//	RESUME_TEST_MYSQL_DATABASE
func newTestMySQL(t *testing.T) *MySQL {
	t.Helper()
	host := os.Getenv("RESUME_TEST_MYSQL_HOST")
	if host == "" {
		t.Skip("未配置 RESUME_TEST_MYSQL_HOST，跳过MySQL集成测试")
	}
	port := 3306
	if v := os.Getenv("RESUME_TEST_MYSQL_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		require.NoError(t, err, "RESUME_TEST_MYSQL_PORT 不是合法端口")
		port = p
	}

	m, err := NewMySQL(&config.MySQLConfig{
		Host:                  host,
		Port:                  port,
		Username:              os.Getenv("RESUME_TEST_MYSQL_USER"),
		Password:              os.Getenv("RESUME_TEST_MYSQL_PASSWORD"),
		Database:              os.Getenv("RESUME_TEST_MYSQL_DATABASE"),
		MaxIdleConns:          2,
		MaxOpenConns:          5,
		ConnectTimeoutSeconds: 5,
		ReadTimeoutSeconds:    10,
		WriteTimeoutSeconds:   10,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func testAnalysis(id string) *types.JobFitAnalysis {
	return &types.JobFitAnalysis{
		ID:                id,
		JobFitPercentage:  72,
		OverallAssessment: "integration fixture",
		Strengths: []types.Strength{
			{Skill: "Go", Description: "backend services"},
		},
		AreasForImprovement: []types.Improvement{},
		Recommendations:     []string{},
		SkillsMatch: types.SkillsMatch{
			Technical: []types.SkillMatch{},
			Soft:      []types.SkillMatch{},
		},
		ExperienceAnalysis: []types.ExperienceReview{},
		ProjectAnalysis:    []types.ProjectReview{},
		ExperienceRelevance: types.ExperienceRelevance{
			Score:               60,
			RelevantExperiences: []types.RelevantExperience{},
			MissingExperiences:  []string{},
		},
		ATSImprovements: []types.ATSImprovement{},
		Metadata: types.AnalysisMetadata{
			AnalysisTimestamp: time.Now().UTC(),
			ModelVersion:      "integration-test",
			ConfidenceScore:   50,
		},
	}
}

func TestMySQLAnalysisLifecycle(t *testing.T) {
	m := newTestMySQL(t)
	ctx := context.Background()
	userID := "it-user-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	before, err := m.CountAnalysesToday(ctx, userID)
	require.NoError(t, err)

	analysis := testAnalysis("it-" + strconv.FormatInt(time.Now().UnixNano(), 10))
	require.NoError(t, m.CreateAnalysisAndCharge(ctx, userID, analysis))

	// 写入和计费在同一事务里生效
	after, err := m.CountAnalysesToday(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	got, err := m.GetAnalysis(ctx, userID, analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, analysis.JobFitPercentage, got.JobFitPercentage)
	assert.Equal(t, analysis.OverallAssessment, got.OverallAssessment)
	assert.Equal(t, "integration-test", got.Metadata.ModelVersion)

	// 其他用户看不到这条记录
	_, err = m.GetAnalysis(ctx, "someone-else", analysis.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	latest, err := m.LatestAnalysis(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, analysis.ID, latest.ID)

	list, err := m.ListAnalyses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	deleted, err := m.DeleteAnalysis(ctx, userID, analysis.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = m.DeleteAnalysis(ctx, userID, analysis.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMySQLChargeRollsBackOnDuplicateID(t *testing.T) {
	m := newTestMySQL(t)
	ctx := context.Background()
	userID := "it-user-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	analysis := testAnalysis("it-dup-" + strconv.FormatInt(time.Now().UnixNano(), 10))
	require.NoError(t, m.CreateAnalysisAndCharge(ctx, userID, analysis))

	count, err := m.CountAnalysesToday(ctx, userID)
	require.NoError(t, err)

	// 主键冲突导致整个事务回滚：用量计数不变
	err = m.CreateAnalysisAndCharge(ctx, userID, analysis)
	require.Error(t, err)

	countAfter, err := m.CountAnalysesToday(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, count, countAfter)

	_, err = m.DeleteAnalysis(ctx, userID, analysis.ID)
	require.NoError(t, err)
}

func TestMySQLTemplates(t *testing.T) {
	m := newTestMySQL(t)
	ctx := context.Background()
	userID := "it-user-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	data := types.NewResumeData()
	data.PersonalInfo.FullName = "Integration Tester"

	templateID := "it-tpl-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	require.NoError(t, m.SaveTemplate(ctx, userID, templateID, "v1", data))

	// 同ID重复保存是更新而不是新建
	data.Summary = "updated"
	require.NoError(t, m.SaveTemplate(ctx, userID, templateID, "v2", data))

	templates, err := m.ListTemplates(ctx, userID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "v2", templates[0].Name)
	assert.Equal(t, "updated", templates[0].Data.Summary)
	assert.Equal(t, "Integration Tester", templates[0].Data.PersonalInfo.FullName)

	// 其他用户用同一个模板ID保存：表现为不存在，原模板不被改写
	err = m.SaveTemplate(ctx, "someone-else", templateID, "hijacked", types.NewResumeData())
	assert.ErrorIs(t, err, ErrNotFound)

	templates, err = m.ListTemplates(ctx, userID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "v2", templates[0].Name)
	assert.Equal(t, "updated", templates[0].Data.Summary)

	foreign, err := m.ListTemplates(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, foreign)
}
