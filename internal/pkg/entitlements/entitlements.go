package entitlements

import (
	"strings"
	"time"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/billing"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	StatusExpired Status = "expired"
	StatusNone    Status = "none"
)

// Membership is the member-facing summary of a user's plan.
type Membership struct {
	Status    Status     `json:"status"`
	Plan      string     `json:"plan"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// ExpiresAt returns the stored subscription end, or derives one from the
// subscription start (or account creation) for rows that never stored it.
func ExpiresAt(u *models.User) *time.Time {
	if u.SubscriptionEnd != nil {
		return u.SubscriptionEnd
	}
	plan := u.PlanName()
	if plan == "" || billing.IsPending(plan) {
		return nil
	}
	start := u.CreatedAt
	if u.SubscriptionStart != nil {
		start = *u.SubscriptionStart
	}
	if start.IsZero() {
		return nil
	}
	end := billing.ComputeExpiry(plan, start)
	return &end
}

// MembershipStatus classifies u at now.
func MembershipStatus(u *models.User, now time.Time) Membership {
	plan := strings.TrimSpace(u.PlanName())
	m := Membership{Status: StatusNone, Plan: plan}
	switch {
	case plan == "":
		return m
	case billing.IsPending(plan):
		m.Status = StatusPending
		return m
	}

	m.ExpiresAt = ExpiresAt(u)
	if m.ExpiresAt != nil && now.Before(*m.ExpiresAt) {
		m.Status = StatusActive
	} else {
		m.Status = StatusExpired
	}
	return m
}

// CanBrew reports whether u may use the recipe generator.
func CanBrew(u *models.User, now time.Time) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || MembershipStatus(u, now).Status == StatusActive
}
