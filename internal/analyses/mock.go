package analyses

import "elevate-backend/internal/tier"

const (
	mockSummary      = "A strong resume with good technical skills but lacks some soft skills keywords and quantifiable impact."
	mockStrengths    = "- Strong programming languages (Java, React)\n- Concise and easy to read"
	mockWeaknesses   = "- Missing keywords related to teamwork\n- Lacks numerical metrics to prove impact\n- Uses weak verbs like 'helped' and 'worked on'"
	mockFound        = "Java, React, SQL, Spring Boot"
	mockMissing      = "AWS, Docker, CI/CD, Agile"
	mockImprovement1 = "Expand on the impact of your projects using specific action verbs and percentages."
	mockImprovement2 = "Add a 'Soft Skills' section."
)

// MockRecord is the fixed record served when the model is unavailable.
func MockRecord(t tier.Tier) Record {
	r := Record{
		ATSScore:        85,
		ImpactScore:     65,
		BrevityScore:    90,
		ActionVerbScore: 70,
		Summary:         mockSummary,
		Strengths:       mockStrengths,
		Weaknesses:      mockWeaknesses,
		FoundKeywords:   mockFound,
	}
	if t.IsPrivileged() {
		r.MissingKeywords = mockMissing
		r.SuggestedImprovements = mockImprovement1 + "\n" + mockImprovement2
		return r
	}
	r.PartialAnalysis = true
	r.MissingKeywords = UpsellMissingKeywords
	r.SuggestedImprovements = mockImprovement1 + "\n" + LockedImprovement
	return r
}
