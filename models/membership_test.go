package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanOffsetDays_Table(t *testing.T) {
	cases := map[string]int{
		PlanMonthly:    30,
		PlanTwoMonth:   60,
		PlanQuarterly:  90,
		PlanFourMonth:  120,
		PlanHalfYearly: 180,
		PlanYearly:     360,
	}
	for planType, want := range cases {
		got, err := PlanOffsetDays(planType)
		require.NoError(t, err, planType)
		assert.Equal(t, want, got, planType)
	}
}

func TestPlanOffsetDays_Unknown(t *testing.T) {
	_, err := PlanOffsetDays("WEEKLY")
	assert.ErrorIs(t, err, ErrUnknownPlanType)
}

func TestMembershipEndDate_ExactOffset(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for planType := range planOffsetDays {
		end, err := MembershipEndDate(planType, start)
		require.NoError(t, err)

		days, _ := PlanOffsetDays(planType)
		assert.Equal(t, start.AddDate(0, 0, days), end, planType)
	}
}

func TestMembershipExpiredAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	active := MembershipDetails{Status: MembershipActive, EndDate: &future}
	assert.False(t, active.ExpiredAt(now))

	stale := MembershipDetails{Status: MembershipActive, EndDate: &past}
	assert.True(t, stale.ExpiredAt(now))

	// Already expired records are not touched again: the sweep predicate only
	// matches Active rows, so a second run is a no-op.
	expired := MembershipDetails{Status: MembershipExpired, EndDate: &past}
	assert.False(t, expired.ExpiredAt(now))

	none := MembershipDetails{}
	assert.False(t, none.ExpiredAt(now))
}
