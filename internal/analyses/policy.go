package analyses

import (
	"strings"

	"elevate-backend/internal/tier"
)

const (
	// UpsellMissingKeywords replaces the keyword gap for Standard callers.
	UpsellMissingKeywords = "Upgrade to Pro to reveal exactly which keywords you are missing from this job description."
	// LockedImprovement is appended after the visible improvements for Standard callers.
	LockedImprovement = "- [Locked] Upgrade to Pro to see all critical improvements."

	visibleImprovements = 2
)

// ApplyTierPolicy redacts r for t. Privileged records pass through untouched.
// Applying it more than once gives the same result as applying it once.
func ApplyTierPolicy(r Record, t tier.Tier) Record {
	if t.IsPrivileged() {
		return r
	}
	r.PartialAnalysis = true
	r.MissingKeywords = UpsellMissingKeywords
	r.SuggestedImprovements = lockImprovements(r.SuggestedImprovements)
	return r
}

func lockImprovements(s string) string {
	s = strings.TrimRight(s, "\r\n")
	if strings.TrimSpace(s) == "" {
		return LockedImprovement
	}

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimRight(line, "\r") == LockedImprovement {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) > visibleImprovements {
		kept = kept[:visibleImprovements]
	}
	if len(kept) == 0 {
		return LockedImprovement
	}
	return strings.Join(kept, "\n") + "\n" + LockedImprovement
}
