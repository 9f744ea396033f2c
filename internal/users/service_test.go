package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/tier"
)

func TestUpsertFromAuthKeepsIdentityAcrossLogins(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	first, err := svc.UpsertFromAuth(ctx, User{Email: "Ann@Example.com", Name: "Ann", Provider: "google"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	require.NoError(t, svc.SetPro(ctx, "ann@example.com", true))
	require.NoError(t, svc.RecordScan(ctx, first.ID))

	second, err := svc.UpsertFromAuth(ctx, User{Email: "ann@example.com", Name: "Ann B", Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ann B", second.Name)
	assert.True(t, second.IsPro)
	assert.Equal(t, 1, second.ScansUsed)
}

func TestUpsertFromAuthValidates(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.UpsertFromAuth(context.Background(), User{Provider: "google"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.UpsertFromAuth(context.Background(), User{Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetProUnknownEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	assert.ErrorIs(t, svc.SetPro(context.Background(), "nobody@example.com", true), ErrNotFound)
}

func TestLookupSubscription(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	u, err := svc.UpsertFromAuth(ctx, User{Email: "pro@example.com", Provider: "google"})
	require.NoError(t, err)

	sub, err := svc.LookupSubscription(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, sub.Privileged)

	require.NoError(t, svc.SetPro(ctx, "pro@example.com", true))
	sub, err = svc.LookupSubscription(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, sub.Privileged)

	_, err = svc.LookupSubscription(ctx, "missing")
	assert.True(t, errors.Is(err, tier.ErrNoSubscriber))
}
