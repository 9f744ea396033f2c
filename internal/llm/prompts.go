package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/analysis.txt
	analysisPrompt string
	//go:embed prompts/enhance.txt
	enhancePrompt string
	//go:embed prompts/cover_letter.txt
	coverLetterPrompt string
)

// AnalysisPrompt asks for the ten-key scoring JSON, against jobDescription when one is given.
func AnalysisPrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(analysisPrompt))
	b.WriteString("\n\n")
	if jd := strings.TrimSpace(jobDescription); jd != "" {
		b.WriteString("Analyze the resume specifically against this JOB DESCRIPTION:\n")
		b.WriteString(jd)
		b.WriteString("\n\nBe extremely diligent in identifying 'missingKeywords' from the Job Description that do not appear in the Resume.\n\n")
	} else {
		b.WriteString("Since no job description was provided, evaluate it against general best practices for a modern Software Engineering or Tech role.\n\n")
	}
	b.WriteString("RESUME TEXT TO EVALUATE:\n")
	b.WriteString(resumeText)
	return b.String()
}

// EnhancePrompt asks for a single rewritten bullet point.
func EnhancePrompt(bulletPoint, targetJob string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(enhancePrompt))
	b.WriteString(" ")
	if job := strings.TrimSpace(targetJob); job != "" {
		b.WriteString("Tailor it specifically to highlight skills relevant to this role: ")
		b.WriteString(job)
		b.WriteString(". ")
	}
	b.WriteString("Original Bullet point: '")
	b.WriteString(bulletPoint)
	b.WriteString("'\n\nReturn EXACTLY AND ONLY the rewritten bullet point text. Do not include introductory phrases like 'Here is the rewritten bullet point:'.")
	return b.String()
}

// CoverLetterPrompt asks for the body of a cover letter.
func CoverLetterPrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(coverLetterPrompt))
	b.WriteString("\n\n")
	if jd := strings.TrimSpace(jobDescription); jd != "" {
		b.WriteString("TARGET JOB DESCRIPTION:\n")
		b.WriteString(jd)
		b.WriteString("\n\n")
	}
	b.WriteString("CANDIDATE RESUME:\n")
	b.WriteString(resumeText)
	b.WriteString("\n\nReturn EXACTLY AND ONLY the text of the cover letter.")
	return b.String()
}
