package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPending, StatusNoShow, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusPending, StatusInProgress, false},
		{StatusInProgress, StatusCancelled, false},
		{StatusInProgress, StatusPending, false},
		{StatusConfirmed, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReservationStatus_TerminalStatesRejectEverything(t *testing.T) {
	all := []ReservationStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow}

	for _, terminal := range []ReservationStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, terminal.IsTerminal())
		for _, next := range all {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}
}

func TestUserRole_Can(t *testing.T) {
	assert.True(t, RoleCTAdmin.Can(CapManageCatalog))
	assert.False(t, RoleEmployee.Can(CapManageCatalog))
	assert.True(t, RoleEmployee.Can(CapRecordResults))
	assert.False(t, RoleClient.Can(CapManageSchedule))
	assert.True(t, RoleClient.Can(CapBookOwn))
	assert.True(t, RoleSuperAdmin.Can(CapAnyTenant))
	assert.False(t, UserRole("GUEST").Can(CapReadSchedule))

	_, err := ParseUserRole("GUEST")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
