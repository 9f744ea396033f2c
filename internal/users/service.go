package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"elevate-backend/internal/tier"
)

var ErrValidation = errors.New("validation error")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth records an OAuth login. Returning users keep their id, plan and scan count.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if strings.TrimSpace(user.Provider) == "" {
		return User{}, fmt.Errorf("%w: provider is required", ErrValidation)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	if strings.TrimSpace(email) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByEmail(ctx, email)
}

// SetPro flips the subscription flag for the account owning email.
func (s *Service) SetPro(ctx context.Context, email string, isPro bool) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	return s.Repo.SetPro(ctx, email, isPro)
}

// RecordScan bumps the scan counter shown on the profile.
func (s *Service) RecordScan(ctx context.Context, userID string) error {
	return s.Repo.IncrementScans(ctx, userID)
}

// LookupSubscription reports the subscription flag for userID.
func (s *Service) LookupSubscription(ctx context.Context, userID string) (tier.Subscription, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return tier.Subscription{}, tier.ErrNoSubscriber
		}
		return tier.Subscription{}, err
	}
	return tier.Subscription{Privileged: user.IsPro}, nil
}
