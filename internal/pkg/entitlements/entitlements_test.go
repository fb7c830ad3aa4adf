package entitlements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlogic/BrewLogic/app/models"
)

func TestMembershipStatus(t *testing.T) {
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	withPlan := func(plan string, end *time.Time) *models.User {
		u := &models.User{SubscriptionEnd: end}
		u.SetPlan(plan)
		return u
	}

	tests := []struct {
		name string
		user *models.User
		want Status
	}{
		{name: "no plan", user: withPlan("", nil), want: StatusNone},
		{name: "pending", user: withPlan("PENDING_Pro", nil), want: StatusPending},
		{name: "active", user: withPlan("Pro", &future), want: StatusActive},
		{name: "expired", user: withPlan("Pro", &past), want: StatusExpired},
		{name: "no dates at all", user: withPlan("Pro", nil), want: StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MembershipStatus(tt.user, now).Status)
		})
	}
}

func TestExpiresAtDerivesFromStart(t *testing.T) {
	start := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	u := &models.User{SubscriptionStart: &start, CreatedAt: start.AddDate(-1, 0, 0)}
	u.SetPlan("Home Brewer")

	got := ExpiresAt(u)
	require.NotNil(t, got)
	assert.True(t, got.Equal(start.AddDate(0, 3, 0)))
}

func TestExpiresAtDerivesFromCreatedAt(t *testing.T) {
	created := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	u := &models.User{CreatedAt: created}
	u.SetPlan("Master")

	got := ExpiresAt(u)
	require.NotNil(t, got)
	assert.True(t, got.Equal(created.AddDate(1, 0, 0)))
}

func TestCanBrew(t *testing.T) {
	now := time.Now()
	assert.False(t, CanBrew(nil, now))
	assert.True(t, CanBrew(&models.User{Role: models.ROLE_ADMIN}, now))
	assert.False(t, CanBrew(&models.User{Role: models.ROLE_MEMBER}, now))
}
