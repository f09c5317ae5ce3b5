package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

func TestExtractResumeFields_Total(t *testing.T) {
	// 抽取器对任意输入都必须返回记录而不是报错
	inputs := []string{
		"",
		"   \n\n\t  ",
		"完全不是简历的文本",
		"EDUCATION",
		"EDUCATION\nSKILLS\nEXPERIENCE\nPROJECTS",
		strings.Repeat("x", 100000),
		"\x00\x01binary garbage\xff",
	}
	for _, input := range inputs {
		data := ExtractResumeFields(input)
		require.NotNil(t, data)
	}
}

func TestExtractResumeFields_HeaderFields(t *testing.T) {
	text := "John Smith\njohn.smith@example.com | +1 555 0100\n" +
		"https://linkedin.com/in/jsmith\nhttps://github.com/jsmith\nhttps://jsmith.dev\n"

	data := ExtractResumeFields(text)
	assert.Equal(t, "John Smith", data.Name)
	assert.Equal(t, "john.smith@example.com", data.Email)
	// 链接按文档序收集
	assert.Equal(t, []string{
		"https://linkedin.com/in/jsmith",
		"https://github.com/jsmith",
		"https://jsmith.dev",
	}, data.Links)
}

func TestExtractResumeFields_NameFirstMatchWins(t *testing.T) {
	text := "Jane Doe\nWork History\nAcme Corp things\n"
	data := ExtractResumeFields(text)
	assert.Equal(t, "Jane Doe", data.Name)
}

func TestExtractResumeFields_FullDocument(t *testing.T) {
	text := "EDUCATION\n" +
		"MIT, Cambridge\n" +
		"BS, 2018-2022\n" +
		"SKILLS\n" +
		"Languages: Python, Go\n" +
		"EXPERIENCE\n" +
		"Acme   2020-2022   Engineer   Remote\n" +
		"Built things\n" +
		"\n" +
		"PROJECTS\n" +
		"Foo   |   React   demo.com   github.com/x\n" +
		"Did things"

	data := ExtractResumeFields(text)

	require.Len(t, data.Education, 1)
	assert.Equal(t, types.ExtractedEducation{
		University: "MIT",
		Location:   "Cambridge",
		Degree:     "BS",
		Year:       "2018-2022",
	}, data.Education[0])

	assert.Equal(t, []string{"Python", "Go"}, data.Skills.Languages)
	assert.Nil(t, data.Skills.Technologies)
	assert.Nil(t, data.Skills.Databases)
	assert.Nil(t, data.Skills.Tools)

	require.Len(t, data.Experience, 1)
	assert.Equal(t, types.ExtractedExperience{
		Company:          "Acme",
		Duration:         "2020-2022",
		Position:         "Engineer",
		Location:         "Remote",
		Responsibilities: []string{"Built things"},
	}, data.Experience[0])

	require.Len(t, data.Projects, 1)
	assert.Equal(t, types.ExtractedProject{
		Title:      "Foo",
		TechStack:  "React",
		DemoLink:   "demo.com",
		GithubLink: "github.com/x",
		Points:     []string{"Did things"},
	}, data.Projects[0])
}

func TestExtractEducation_EntrySplitOnBlankLine(t *testing.T) {
	block := "\nStanford University, Palo Alto\nMS Computer Science, 2020-2022\n" +
		"\nState College, Springfield\nBA, 2014-2018\n"

	entries := extractEducation(block)
	require.Len(t, entries, 2)
	assert.Equal(t, "Stanford University", entries[0].University)
	assert.Equal(t, "Palo Alto", entries[0].Location)
	assert.Equal(t, "MS Computer Science", entries[0].Degree)
	assert.Equal(t, "2020-2022", entries[0].Year)
	assert.Equal(t, "State College", entries[1].University)
	assert.Equal(t, "2014-2018", entries[1].Year)
}

func TestExtractEducation_NonASCIIContinuationLine(t *testing.T) {
	// 首字符是多字节小写字母（如é）的行不是新条目的开始；
	// 按首字节判断会把0xC3误判成大写的Ã
	block := "\nécole Polytechnique, Paris\nMSc, 2022-2024\n"
	entries := extractEducation(block)
	require.Len(t, entries, 1)
	assert.Equal(t, "école Polytechnique", entries[0].University)
	assert.Equal(t, "Paris", entries[0].Location)
	assert.Equal(t, "MSc", entries[0].Degree)
	assert.Equal(t, "2022-2024", entries[0].Year)
}

func TestSplitBlockEntries_LowercaseRuneDoesNotSplit(t *testing.T) {
	block := "\nMIT, Cambridge\nBS, 2018-2022\n\nélan Labs fellowship notes\n"
	entries := splitBlockEntries(block)
	// 空行后的小写开头行并入前一个条目
	require.Len(t, entries, 1)
	assert.Equal(t, []string{
		"MIT, Cambridge",
		"BS, 2018-2022",
		"élan Labs fellowship notes",
	}, entries[0])
}

func TestExtractEducation_DiscardsEmptyEntries(t *testing.T) {
	// 院校和学位都缺失的条目必须被丢弃
	entries := extractEducation("\n,\n,\n")
	assert.Empty(t, entries)
}

func TestExtractSkills_CaseInsensitiveLabels(t *testing.T) {
	block := "\nLANGUAGES: Go, Rust\ntechnologies: Docker , Kubernetes\nDatabases MySQL, Redis\n"
	skills := extractSkills(block)
	assert.Equal(t, []string{"Go", "Rust"}, skills.Languages)
	assert.Equal(t, []string{"Docker", "Kubernetes"}, skills.Technologies)
	// 冒号可选
	assert.Equal(t, []string{"MySQL", "Redis"}, skills.Databases)
	assert.Nil(t, skills.Tools)
}

func TestExtractExperience_ShortFirstLine(t *testing.T) {
	// 首行不足四列时缺失的列保持空
	block := "\nAcme   2020-2022\nShipped the thing\nKept it running\n"
	entries := extractExperience(block)
	require.Len(t, entries, 1)
	assert.Equal(t, "Acme", entries[0].Company)
	assert.Equal(t, "2020-2022", entries[0].Duration)
	assert.Empty(t, entries[0].Position)
	assert.Empty(t, entries[0].Location)
	assert.Equal(t, []string{"Shipped the thing", "Kept it running"}, entries[0].Responsibilities)
}

func TestExtractProjects_NoDelimiter(t *testing.T) {
	// 缺少 " | " 分隔符时整行作为标题
	block := "\nSide Project\nWrote it over a weekend\n"
	projects := extractProjects(block)
	require.Len(t, projects, 1)
	assert.Equal(t, "Side Project", projects[0].Title)
	assert.Empty(t, projects[0].TechStack)
	assert.Equal(t, []string{"Wrote it over a weekend"}, projects[0].Points)
}

func TestCaptureSection_MissingHeader(t *testing.T) {
	_, ok := captureSection("no sections here", "EDUCATION", "SKILLS")
	assert.False(t, ok)
}
