package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectResume = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_text, created_at
FROM resumes`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_text, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		nullableString(resume.UserID),
		resume.FileName,
		resume.MimeType,
		resume.SizeBytes,
		nullableString(resume.StorageKey),
		resume.ExtractedText,
		resume.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	return scanResume(r.DB.QueryRowContext(ctx, selectResume+` WHERE id = $1`, resumeID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx, selectResume+` WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM resumes WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var userID, storageKey sql.NullString
	err := row.Scan(
		&resume.ID,
		&userID,
		&resume.FileName,
		&resume.MimeType,
		&resume.SizeBytes,
		&storageKey,
		&resume.ExtractedText,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	resume.UserID = userID.String
	resume.StorageKey = storageKey.String
	return resume, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
