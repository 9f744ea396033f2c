package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const selectUser = `
SELECT id, name, email, picture_url, provider, provider_id, is_pro, scans_used, created_at, updated_at
FROM users`

func (r *PGRepo) Upsert(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, name, email, picture_url, provider, provider_id, created_at, updated_at)
VALUES ($1, $2, lower($3), $4, $5, $6, now(), now())
ON CONFLICT (email) DO UPDATE SET
  name = EXCLUDED.name,
  picture_url = EXCLUDED.picture_url,
  provider = EXCLUDED.provider,
  provider_id = EXCLUDED.provider_id,
  updated_at = now()
RETURNING id, name, email, picture_url, provider, provider_id, is_pro, scans_used, created_at, updated_at`
	row := r.DB.QueryRowContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		nullableString(user.PictureURL),
		user.Provider,
		nullableString(user.ProviderID),
	)
	return scanUser(row)
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, selectUser+` WHERE id = $1 LIMIT 1`, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, selectUser+` WHERE email = lower($1) LIMIT 1`, email))
}

func (r *PGRepo) SetPro(ctx context.Context, email string, isPro bool) error {
	const query = `UPDATE users SET is_pro = $2, updated_at = now() WHERE email = lower($1)`
	res, err := r.DB.ExecContext(ctx, query, email, isPro)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) IncrementScans(ctx context.Context, userID string) error {
	const query = `UPDATE users SET scans_used = scans_used + 1 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var pictureURL, providerID sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&pictureURL,
		&user.Provider,
		&providerID,
		&user.IsPro,
		&user.ScansUsed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.PictureURL = pictureURL.String
	user.ProviderID = providerID.String
	return user, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
