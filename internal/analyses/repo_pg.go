package analyses

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, a Analysis) error {
	const query = `
INSERT INTO analyses (
	id, resume_id, user_id,
	ats_score, impact_score, brevity_score, action_verb_score,
	summary, strengths, weaknesses, suggested_improvements, found_keywords, missing_keywords,
	partial_analysis, source, degraded_reason, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.ResumeID,
		nullableString(a.UserID),
		a.ATSScore,
		a.ImpactScore,
		a.BrevityScore,
		a.ActionVerbScore,
		a.Summary,
		a.Strengths,
		a.Weaknesses,
		a.SuggestedImprovements,
		a.FoundKeywords,
		a.MissingKeywords,
		a.PartialAnalysis,
		string(a.Source),
		nullableString(string(a.DegradedReason)),
		a.CreatedAt,
	)
	return err
}

func (r *PGRepo) LatestByResume(ctx context.Context, resumeID string) (Analysis, error) {
	const query = `
SELECT id, resume_id, user_id,
	ats_score, impact_score, brevity_score, action_verb_score,
	summary, strengths, weaknesses, suggested_improvements, found_keywords, missing_keywords,
	partial_analysis, source, degraded_reason, created_at
FROM analyses
WHERE resume_id = $1
ORDER BY created_at DESC
LIMIT 1`
	var a Analysis
	var userID, reason sql.NullString
	var source string
	err := r.DB.QueryRowContext(ctx, query, resumeID).Scan(
		&a.ID,
		&a.ResumeID,
		&userID,
		&a.ATSScore,
		&a.ImpactScore,
		&a.BrevityScore,
		&a.ActionVerbScore,
		&a.Summary,
		&a.Strengths,
		&a.Weaknesses,
		&a.SuggestedImprovements,
		&a.FoundKeywords,
		&a.MissingKeywords,
		&a.PartialAnalysis,
		&source,
		&reason,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	a.UserID = userID.String
	a.Source = Source(source)
	a.DegradedReason = Reason(reason.String)
	return a, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
