package analysis

import (
	"fmt"
	"strings"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

const analysisSystemMessage = `You are an advanced AI recruiter specializing in comprehensive job fit analysis. Your task is to provide an in-depth, nuanced, and actionable analysis of a candidate's resume against a specific job description.`

const analysisPromptTemplate = `Input Resume: %s

Job Description: %s

Instructions: Conduct a thorough analysis of the resume against the job description. Your assessment should be detailed, objective, and provide actionable insights for both the candidate and potential employers.

Required Output Format:
%s

Guidelines for Analysis:
1. Overall Assessment: Provide a comprehensive summary of the candidate's fit for the role, considering all aspects of their profile.
2. Strengths: Identify key strengths relevant to the job, explaining their value and direct relevance to the position.
3. Areas for Improvement: Highlight areas where the candidate could enhance their profile, with specific, actionable suggestions and potential impact.
4. Skills Match: Evaluate both technical and soft skills, providing detailed comments on the match level and suggestions for improvement where applicable.
5. Experience Analysis: Analyze each work experience in depth, highlighting key points, relevance to the job, skills demonstrated, and overall impact on job fit.
6. Project Analysis: Provide a detailed analysis of each project, noting key points, relevance, skills demonstrated, and how it enhances the candidate's fit for the role.
7. Experience Relevance: Assess how well the candidate's overall experience aligns with the job requirements, identifying key alignments and any missing experiences.
8. Education Fit: Evaluate the relevance and adequacy of the candidate's educational background, including specific courses and suggestions for further education if applicable.
9. Culture Fit: Assess potential cultural fit based on available information, identifying alignment points and potential challenges.
10. ATS Improvements: Provide detailed suggestions to enhance the resume's ATS-friendliness, explaining the reasoning behind each suggestion.
11. Recommendations: Offer prioritized, actionable advice for the candidate to improve their fit for this or similar roles, with clear rationale for each recommendation.

Remember:
- Maintain objectivity and balance in your assessment, supporting your analysis with specific examples from both the resume and job description.
- Consider both explicit and implicit requirements of the job description, as well as industry standards and trends.
- Provide recommendations that are practical, achievable, and tailored to the specific candidate and role.
- Quantify your assessments where possible to provide clear metrics for evaluation.`

// buildAnalysisPrompt 构建岗位匹配分析的用户消息，内嵌输出格式规范
func buildAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(analysisPromptTemplate, resumeText, jobDescription, formatDirective)
}

const chatSystemMessage = `You are an expert job analysis assistant with years of experience in HR and career counseling. Your task is to provide detailed, actionable advice based on the comprehensive job analysis data provided. Always maintain a professional, encouraging tone while being honest about areas for improvement.`

// buildChatPrompt 把最近一次分析的关键字段插入追问模板
func buildChatPrompt(a *types.JobFitAnalysis, question string) string {
	var sb strings.Builder

	sb.WriteString("Candidate Analysis:\n")
	fmt.Fprintf(&sb, "1. Job Fit: %d%%\n", a.JobFitPercentage)
	fmt.Fprintf(&sb, "2. Overall Assessment: %s\n", a.OverallAssessment)

	sb.WriteString("3. Key Strengths:\n")
	for _, s := range a.Strengths {
		fmt.Fprintf(&sb, "   - %s: %s\n", s.Skill, s.Description)
	}
	sb.WriteString("4. Areas for Improvement:\n")
	for _, imp := range a.AreasForImprovement {
		fmt.Fprintf(&sb, "   - %s: %s\n", imp.Area, imp.Suggestion)
	}
	sb.WriteString("5. Tailored Recommendations:\n")
	for _, r := range a.Recommendations {
		fmt.Fprintf(&sb, "   - %s\n", r)
	}
	sb.WriteString("6. Skills Match Analysis:\n")
	for _, m := range a.SkillsMatch.Technical {
		fmt.Fprintf(&sb, "   - [technical] %s (%s): %s\n", m.Skill, m.MatchLevel, m.Comment)
	}
	for _, m := range a.SkillsMatch.Soft {
		fmt.Fprintf(&sb, "   - [soft] %s (%s): %s\n", m.Skill, m.MatchLevel, m.Comment)
	}
	sb.WriteString("7. Experience Evaluation:\n")
	for _, e := range a.ExperienceAnalysis {
		fmt.Fprintf(&sb, "   - %s, %s (%s): %s\n", e.Company, e.Position, e.Duration, e.Relevance)
	}
	sb.WriteString("8. Project Portfolio Review:\n")
	for _, p := range a.ProjectAnalysis {
		fmt.Fprintf(&sb, "   - %s: %s\n", p.Name, p.Relevance)
	}

	fmt.Fprintf(&sb, "\nBased on this analysis, please address the following user query:\n%q\n", question)

	sb.WriteString(`
In your response:
1. Directly answer the user's question, referencing specific points from the analysis.
2. Provide context on how this relates to their overall job fit and career prospects.
3. Offer 2-3 actionable steps the candidate can take to improve in this area.
4. If relevant, suggest how they can leverage their strengths to overcome any weaknesses.
5. Conclude with an encouraging statement that motivates the candidate to take action.

Remember to be specific, use examples where possible, and tailor your advice to the individual's unique profile. Your goal is to provide clear, practical guidance that the candidate can immediately apply to enhance their career prospects.`)

	return sb.String()
}

const suggestionPromptTemplate = `You are an expert ATS-optimized content writer. Your task is to optimize the provided content for a specific section type of a resume (e.g., summary, experience, skills). You will:

1. Focus exclusively on the specific section's content.
2. Optimize the content for ATS requirements, using strategic keywords and formatting relevant to the section type.
3. Ensure the content is clear, concise, and easily parsed by Applicant Tracking Systems.
4. Preserve the original meaning, context, and key achievements of the content without altering the intent or introducing fictional information.
5. Tailor the optimization to the section's requirements while maintaining the exact number of %d points in your response.
6. DO NOT use any markdown formatting (no asterisks, no bold markers).

Important guidelines:
- Only generate the optimized content for the specified section type.
- Do not modify or distort the original meaning or intent of the provided data.
- Ensure maximum ATS compatibility while maintaining authenticity and clarity.
- Your response MUST contain exactly %d distinct points.
- Do not include any asterisks (*) or other markdown formatting in the response.

Input Details:
Data: %s
Format: %s
Section Type: %s
Number of Points: %d

Generate the optimized content directly, tailored specifically for the provided section type, while strictly maintaining %d distinct points and preserving the original meaning.`

// buildSuggestionPrompt 构建区块内容优化的提示词
func buildSuggestionPrompt(data, format, sectionType string, numPoints int) string {
	return fmt.Sprintf(suggestionPromptTemplate,
		numPoints, numPoints, data, format, sectionType, numPoints, numPoints)
}
