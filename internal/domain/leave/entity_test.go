package leave

import (
	"testing"
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialStatus(t *testing.T) {
	cases := []struct {
		role worker.Role
		want Status
	}{
		{worker.RoleWorker, StatusPendingSupervisor},
		{worker.RoleSupervisor, StatusPendingManager},
		{worker.RoleManager, StatusPendingDirector},
	}
	for _, c := range cases {
		got, err := InitialStatus(c.role)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "role %s", c.role)
	}

	_, err := InitialStatus(worker.RoleDirector)
	assert.ErrorIs(t, err, ErrRoleCannotSubmit)
}

func TestNextStatus_Approvals(t *testing.T) {
	cases := []struct {
		approver worker.Role
		from     Status
		want     Status
	}{
		{worker.RoleSupervisor, StatusPendingSupervisor, StatusApprovedBySupervisor},
		{worker.RoleManager, StatusApprovedBySupervisor, StatusApproved},
		{worker.RoleManager, StatusPendingManager, StatusApproved},
		{worker.RoleDirector, StatusPendingDirector, StatusApproved},
	}
	for _, c := range cases {
		got, err := NextStatus(c.approver, c.from, DecisionApproved)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s approving %s", c.approver, c.from)
	}
}

func TestNextStatus_RejectionFromAnyDecidableState(t *testing.T) {
	cases := []struct {
		approver worker.Role
		from     Status
	}{
		{worker.RoleSupervisor, StatusPendingSupervisor},
		{worker.RoleManager, StatusApprovedBySupervisor},
		{worker.RoleManager, StatusPendingManager},
		{worker.RoleDirector, StatusPendingDirector},
	}
	for _, c := range cases {
		got, err := NextStatus(c.approver, c.from, DecisionRejected)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, got, "%s rejecting %s", c.approver, c.from)
	}
}

func TestNextStatus_UnauthorizedPairs(t *testing.T) {
	cases := []struct {
		approver worker.Role
		from     Status
	}{
		{worker.RoleWorker, StatusPendingSupervisor},
		{worker.RoleSupervisor, StatusPendingManager},
		{worker.RoleSupervisor, StatusApprovedBySupervisor},
		{worker.RoleManager, StatusPendingSupervisor},
		{worker.RoleManager, StatusPendingDirector},
		{worker.RoleDirector, StatusPendingSupervisor},
		{worker.RoleDirector, StatusPendingManager},
		{worker.RoleDirector, StatusApprovedBySupervisor},
	}
	for _, c := range cases {
		for _, decision := range []Decision{DecisionApproved, DecisionRejected} {
			_, err := NextStatus(c.approver, c.from, decision)
			assert.ErrorIs(t, err, ErrNotAuthorizedForState, "%s deciding %s (%s)", c.approver, c.from, decision)
		}
	}
}

func TestNextStatus_TerminalStatesAreFinal(t *testing.T) {
	roles := []worker.Role{worker.RoleSupervisor, worker.RoleManager, worker.RoleDirector}
	for _, terminal := range []Status{StatusApproved, StatusRejected} {
		for _, role := range roles {
			_, err := NextStatus(role, terminal, DecisionApproved)
			assert.ErrorIs(t, err, ErrNotAuthorizedForState, "%s deciding %s", role, terminal)
		}
	}
}

func TestPendingStatusesFor(t *testing.T) {
	assert.Equal(t, []Status{StatusPendingSupervisor}, PendingStatusesFor(worker.RoleSupervisor))
	assert.Equal(t, []Status{StatusApprovedBySupervisor, StatusPendingManager}, PendingStatusesFor(worker.RoleManager))
	assert.Equal(t, []Status{StatusPendingDirector}, PendingStatusesFor(worker.RoleDirector))
	assert.Nil(t, PendingStatusesFor(worker.RoleWorker))
}

func TestDatesIn(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
	}

	single := LeaveRequest{StartDate: day(10), EndDate: day(10)}
	assert.Equal(t, []time.Time{day(10)}, single.DatesIn())

	span := LeaveRequest{StartDate: day(10), EndDate: day(12)}
	assert.Equal(t, []time.Time{day(10), day(11), day(12)}, span.DatesIn())

	inverted := LeaveRequest{StartDate: day(12), EndDate: day(10)}
	assert.Empty(t, inverted.DatesIn())
}

func TestSubmitRequestValidate(t *testing.T) {
	valid := SubmitRequest{
		WorkerID:      "w-1",
		StartDate:     "2025-03-10",
		EndDate:       "2025-03-12",
		LeaveType:     "sick",
		Justification: "flu",
	}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.StartDate = "2025-03-13"
	assert.Error(t, inverted.Validate())

	badDate := valid
	badDate.StartDate = "10-03-2025"
	assert.Error(t, badDate.Validate())

	missing := SubmitRequest{}
	assert.Error(t, missing.Validate())
}
