package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repo persists users. Email is the natural key for upserts.
type Repo interface {
	Upsert(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	SetPro(ctx context.Context, email string, isPro bool) error
	IncrementScans(ctx context.Context, userID string) error
}
