package billing

import (
	"strings"
	"time"

	"github.com/brewlogic/BrewLogic/app/models"
)

// PendingPrefix marks a plan that waits for manual payment verification.
const PendingPrefix = "PENDING_"

// DefaultGrantPlan is granted when a confirmed transaction names no package
// and the buyer has no plan on record.
const DefaultGrantPlan = "Starter Plan"

type planDuration struct {
	match  string
	years  int
	months int
}

// First match wins.
var planDurations = []planDuration{
	{match: "starter", months: 1},
	{match: "home", months: 3},
	{match: "pro", months: 6},
	{match: "master", years: 1},
	{match: "lifetime", years: 100},
}

// ComputeExpiry returns the subscription end for plan starting at start.
// Months roll over like a plain calendar addition, so Jan 31 plus one month
// lands in early March.
func ComputeExpiry(plan string, start time.Time) time.Time {
	p := strings.ToLower(plan)
	for _, d := range planDurations {
		if strings.Contains(p, d.match) {
			return start.AddDate(d.years, d.months, 0)
		}
	}
	return start.AddDate(0, 1, 0)
}

func IsPending(plan string) bool {
	return strings.HasPrefix(plan, PendingPrefix)
}

func StripPending(plan string) string {
	return strings.TrimPrefix(plan, PendingPrefix)
}

// PendingPlan tags plan as awaiting verification.
func PendingPlan(plan string) string {
	if IsPending(plan) {
		return plan
	}
	return PendingPrefix + plan
}

// ApplyPlan sets plan on u. Active plans get fresh subscription dates
// starting at now; pending or empty plans leave the dates untouched.
func ApplyPlan(u *models.User, plan string, now time.Time) {
	u.SetPlan(plan)
	p := u.PlanName()
	if p == "" || IsPending(p) {
		return
	}
	start := now
	end := ComputeExpiry(p, start)
	u.SubscriptionStart = &start
	u.SubscriptionEnd = &end
}
