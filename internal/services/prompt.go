package services

import (
	"fmt"
	"strings"

	"resumate/backend/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the prompt for resume-vs-role analysis.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, role, jdText string, customSkills []string, quick bool) string {
	jdSection := jdText
	if jdSection == "" {
		jdSection = "No job description provided. Infer typical requirements for the role."
	}

	skillsSection := "Derive the required skills from the role and job description."
	if len(customSkills) > 0 {
		skillsSection = "Required skills to check: " + strings.Join(customSkills, ", ")
	}

	depth := "Be thorough: justify every score with evidence from the resume."
	if quick {
		depth = "Be brief: a quick pass is requested, keep feedback short."
	}

	return fmt.Sprintf(`You are an expert HR recruiter analyzing a candidate's resume for a %s position.

JOB DESCRIPTION:
%s

%s

CANDIDATE RESUME:
%s

Evaluate how well the resume matches the role. %s

Return your response in the following JSON format:
{
  "overall_score": <0-100>,
  "matching_skills": ["<skill>", ...],
  "missing_skills": ["<skill>", ...],
  "skill_scores": {"<skill>": <0-100>, ...},
  "strengths": ["<strength>", ...],
  "weaknesses": ["<weakness>", ...],
  "recommendations": ["<actionable recommendation>", ...]
}

Be objective. Provide specific examples from the resume to justify your scores.`,
		role, jdSection, skillsSection, resumeText, depth)
}

// BuildImprovementPrompt creates the prompt for resume improvement
// suggestions.
func (pb *PromptBuilder) BuildImprovementPrompt(resumeText string, focusAreas []string, analysis *models.AnalysisResult) string {
	focus := "all sections"
	if len(focusAreas) > 0 {
		focus = strings.Join(focusAreas, ", ")
	}

	analysisSection := "No prior analysis available."
	if analysis != nil {
		analysisSection = fmt.Sprintf(
			"A prior analysis scored this resume %.0f/100. Identified weaknesses: %s. Missing skills: %s.",
			analysis.OverallScore,
			strings.Join(analysis.Weaknesses, "; "),
			strings.Join(analysis.MissingSkills, ", "),
		)
	}

	return fmt.Sprintf(`You are an expert resume coach. Improve the following resume, focusing on: %s.

PRIOR ANALYSIS:
%s

RESUME:
%s

Return your response in the following JSON format:
{
  "improved_sections": {"<section name>": "<rewritten section text>", ...},
  "suggestions": ["<specific suggestion>", ...],
  "overall_improvements": "<2-4 sentence summary of the most impactful changes>"
}

Keep rewritten sections truthful to the original content. Do not invent experience.`,
		focus, analysisSection, resumeText)
}

// BuildAskPrompt creates the prompt for free-form questions about a resume,
// optionally grounded in retrieved chunks.
func (pb *PromptBuilder) BuildAskPrompt(resumeContext, question string, history []models.ChatMessage) string {
	var historySection strings.Builder
	for _, msg := range history {
		historySection.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
	}
	if historySection.Len() == 0 {
		historySection.WriteString("(no prior messages)\n")
	}

	return fmt.Sprintf(`You are a career assistant answering questions about a candidate's resume.

RESUME CONTEXT:
%s

CONVERSATION SO FAR:
%s
QUESTION:
%s

Answer directly and concisely using only information from the resume context. If the resume does not contain the answer, say so.`,
		resumeContext, historySection.String(), question)
}

// BuildQuestionsPrompt creates the prompt for interview question generation.
func (pb *PromptBuilder) BuildQuestionsPrompt(resumeText string, questionTypes []string, difficulty string, count int) string {
	types := "Technical"
	if len(questionTypes) > 0 {
		types = strings.Join(questionTypes, ", ")
	}

	return fmt.Sprintf(`You are an experienced interviewer preparing a mock interview.

CANDIDATE RESUME:
%s

Generate exactly %d interview questions tailored to this candidate.
Question types to cover: %s.
Difficulty level: %s.

Return your response as a JSON array of question strings:
["<question 1>", "<question 2>", ...]

Questions must be answerable verbally in 2-3 minutes each and reference the candidate's actual background where possible.`,
		resumeText, count, types, difficulty)
}

// BuildScoringPrompt creates the prompt for scoring one interview answer.
func (pb *PromptBuilder) BuildScoringPrompt(question, answer string) string {
	return fmt.Sprintf(`You are an expert interviewer scoring a candidate's answer.

QUESTION:
%s

CANDIDATE ANSWER:
%s

Score the answer on a 0-10 scale for each dimension.

Return your response in the following JSON format:
{
  "communication": <0-10>,
  "technical_knowledge": <0-10>,
  "problem_solving": <0-10>,
  "overall": <0-10>,
  "feedback": "<2-3 sentences of constructive feedback>"
}

Be fair but rigorous. An empty or off-topic answer scores below 3.`,
		question, answer)
}

// FormatRAGContext joins retrieved resume chunks into a prompt section.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
