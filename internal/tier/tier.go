// Package tier decides how much analysis content a caller may see.
package tier

import (
	"context"
	"errors"

	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/telemetry"
)

// Tier is the caller's access class.
type Tier int

const (
	// Standard is the default for anonymous callers, unknown users and lookup failures.
	Standard Tier = iota
	Privileged
)

func (t Tier) String() string {
	if t == Privileged {
		return "privileged"
	}
	return "standard"
}

// IsPrivileged reports whether t unlocks full content.
func (t Tier) IsPrivileged() bool {
	return t == Privileged
}

// ErrNoSubscriber is returned by lookups that have no record for the user.
var ErrNoSubscriber = errors.New("no subscriber record")

// Subscription is what a lookup knows about a user's plan.
type Subscription struct {
	Privileged bool
}

// SubscriptionLookup finds the subscription of a user id.
type SubscriptionLookup interface {
	LookupSubscription(ctx context.Context, userID string) (Subscription, error)
}

// Resolver maps a caller identity to a Tier.
type Resolver struct {
	Lookup SubscriptionLookup
}

// NewResolver builds a Resolver over lookup.
func NewResolver(lookup SubscriptionLookup) *Resolver {
	return &Resolver{Lookup: lookup}
}

// Resolve never fails; anything short of a confirmed active subscription is Standard.
func (r *Resolver) Resolve(ctx context.Context, id auth.Identity) Tier {
	if r == nil || r.Lookup == nil || id.Anonymous() {
		return Standard
	}
	sub, err := r.Lookup.LookupSubscription(ctx, id.UserID)
	if err != nil {
		if !errors.Is(err, ErrNoSubscriber) {
			telemetry.Warn("tier.lookup_failed", map[string]any{"user_id": id.UserID, "err": err})
		}
		return Standard
	}
	if sub.Privileged {
		return Privileged
	}
	return Standard
}
