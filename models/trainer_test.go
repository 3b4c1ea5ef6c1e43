package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_HappyPath(t *testing.T) {
	assert.True(t, CanTransition(ActionPending, false, ActionRequestToPay))
	assert.True(t, CanTransition(ActionRequestToPay, true, ActionAssigned))
}

func TestCanTransition_NoPendingToAssignedShortcut(t *testing.T) {
	assert.False(t, CanTransition(ActionPending, false, ActionAssigned))
	assert.False(t, CanTransition(ActionPending, true, ActionAssigned))
}

func TestCanTransition_AssignedRequiresPayment(t *testing.T) {
	assert.False(t, CanTransition(ActionRequestToPay, false, ActionAssigned))
}

func TestCanTransition_ExitFromAnyState(t *testing.T) {
	for _, from := range []AdminAction{ActionPending, ActionRequestToPay, ActionAssigned} {
		assert.True(t, CanTransition(from, false, ActionNotAssigned), string(from))
	}
}

func TestCanTransition_NoBackwardsMoves(t *testing.T) {
	assert.False(t, CanTransition(ActionAssigned, true, ActionRequestToPay))
	assert.False(t, CanTransition(ActionAssigned, true, ActionPending))
	assert.False(t, CanTransition(ActionRequestToPay, true, ActionPending))
}

func TestAssignmentTransition_FullLifecycle(t *testing.T) {
	a := TrainerAssignment{AdminActions: ActionPending}

	require.NoError(t, a.Transition(ActionRequestToPay))

	// Approval before payment is rejected.
	require.Error(t, a.Transition(ActionAssigned))

	a.PaidByUser = true
	require.NoError(t, a.Transition(ActionAssigned))
	assert.Equal(t, ActionAssigned, a.AdminActions)
}

func TestParseAdminAction(t *testing.T) {
	got, err := ParseAdminAction("request-to-pay")
	require.NoError(t, err)
	assert.Equal(t, ActionRequestToPay, got)

	_, err = ParseAdminAction("APPROVED")
	assert.Error(t, err)
}

func TestAssignmentElapsed(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, (&TrainerAssignment{EndDate: &past}).Elapsed(now))
	assert.False(t, (&TrainerAssignment{EndDate: &future}).Elapsed(now))
	assert.False(t, (&TrainerAssignment{}).Elapsed(now))
}
