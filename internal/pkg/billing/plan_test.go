package billing

import (
	"testing"
	"time"

	"github.com/brewlogic/BrewLogic/app/models"
)

func TestComputeExpiry(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		plan string
		want time.Time
	}{
		{plan: "Pro Brewer Plan", want: now.AddDate(0, 6, 0)},
		{plan: "PENDING_Starter Brew", want: now.AddDate(0, 1, 0)},
		{plan: "", want: now.AddDate(0, 1, 0)},
		{plan: "Lifetime Access", want: now.AddDate(100, 0, 0)},
		{plan: "Home Barista", want: now.AddDate(0, 3, 0)},
		{plan: "MASTER ROASTER", want: now.AddDate(1, 0, 0)},
		{plan: "Gold", want: now.AddDate(0, 1, 0)},
	}

	for _, tt := range tests {
		if got := ComputeExpiry(tt.plan, now); !got.Equal(tt.want) {
			t.Fatalf("ComputeExpiry(%q) = %s, want %s", tt.plan, got, tt.want)
		}
	}
}

func TestComputeExpiryFirstMatchWins(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	// "starter" is checked before "pro".
	got := ComputeExpiry("Starter Pro", now)
	if want := now.AddDate(0, 1, 0); !got.Equal(want) {
		t.Fatalf("ComputeExpiry = %s, want %s", got, want)
	}
}

func TestComputeExpiryMonthRollover(t *testing.T) {
	start := time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC)
	got := ComputeExpiry("Starter", start)
	want := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ComputeExpiry rollover = %s, want %s", got, want)
	}
}

func TestPendingHelpers(t *testing.T) {
	if !IsPending("PENDING_Pro") {
		t.Fatalf("expected PENDING_Pro to be pending")
	}
	if IsPending("Pro") {
		t.Fatalf("expected Pro to be active")
	}
	if got := StripPending("PENDING_Pro"); got != "Pro" {
		t.Fatalf("StripPending = %q", got)
	}
	if got := PendingPlan("PENDING_Pro"); got != "PENDING_Pro" {
		t.Fatalf("PendingPlan should not double the prefix, got %q", got)
	}
}

func TestApplyPlan(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	u := &models.User{}
	ApplyPlan(u, "Home Brewer", now)
	if u.SubscriptionStart == nil || !u.SubscriptionStart.Equal(now) {
		t.Fatalf("expected start %s, got %v", now, u.SubscriptionStart)
	}
	if u.SubscriptionEnd == nil || !u.SubscriptionEnd.Equal(now.AddDate(0, 3, 0)) {
		t.Fatalf("unexpected end %v", u.SubscriptionEnd)
	}

	pending := &models.User{}
	ApplyPlan(pending, "PENDING_Home Brewer", now)
	if pending.SubscriptionStart != nil || pending.SubscriptionEnd != nil {
		t.Fatalf("pending plan must not set dates")
	}
	if pending.PlanName() != "PENDING_Home Brewer" {
		t.Fatalf("unexpected plan %q", pending.PlanName())
	}

	cleared := &models.User{}
	cleared.SetPlan("Pro")
	ApplyPlan(cleared, "  ", now)
	if cleared.Plan != nil {
		t.Fatalf("blank plan should clear to NULL")
	}
}
