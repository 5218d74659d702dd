package leave

import (
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
)

type Status string

const (
	StatusPendingSupervisor    Status = "pending_supervisor"
	StatusApprovedBySupervisor Status = "approved_by_supervisor"
	StatusPendingManager       Status = "pending_manager"
	StatusPendingDirector      Status = "pending_director"
	StatusApproved             Status = "approved"
	StatusRejected             Status = "rejected"
)

// Terminal reports whether no further decisions are accepted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// LeaveRequest climbs a fixed approval chain. Its date range is
// inclusive on both ends.
type LeaveRequest struct {
	ID            string
	WorkerID      string
	StartDate     time.Time
	EndDate       time.Time
	LeaveType     string
	Justification string
	EvidenceRef   *string
	SubmitterRole worker.Role
	Status        Status
	SubmittedAt   time.Time
	UpdatedAt     time.Time

	// Joined for responses
	WorkerName *string
	Log        []ApprovalLogEntry
}

// ApprovalLogEntry records one decision. Entries are append-only and
// never deleted.
type ApprovalLogEntry struct {
	ID             string
	LeaveRequestID string
	ApproverID     string
	Decision       Decision
	Note           string
	DecidedAt      time.Time

	ApproverName *string
}

// InitialStatus derives the first state of a request from the
// submitter's role. Directors have no approver above them and cannot
// submit through this path.
func InitialStatus(submitter worker.Role) (Status, error) {
	switch submitter {
	case worker.RoleWorker:
		return StatusPendingSupervisor, nil
	case worker.RoleSupervisor:
		return StatusPendingManager, nil
	case worker.RoleManager:
		return StatusPendingDirector, nil
	default:
		return "", ErrRoleCannotSubmit
	}
}

type transitionKey struct {
	role worker.Role
	from Status
}

// approvalTransitions is the closed transition table. A (role, state)
// pair absent from this map is not authorized to decide, approval or
// rejection alike. approved_by_supervisor and pending_manager are both
// "awaiting manager".
var approvalTransitions = map[transitionKey]Status{
	{worker.RoleSupervisor, StatusPendingSupervisor}: StatusApprovedBySupervisor,
	{worker.RoleManager, StatusApprovedBySupervisor}: StatusApproved,
	{worker.RoleManager, StatusPendingManager}:       StatusApproved,
	{worker.RoleDirector, StatusPendingDirector}:     StatusApproved,
}

// NextStatus resolves one decision against the transition table.
// Terminal states and unlisted (role, state) pairs fail with
// ErrNotAuthorizedForState; the error never reveals which combinations
// would have worked.
func NextStatus(approver worker.Role, from Status, decision Decision) (Status, error) {
	if from.Terminal() {
		return "", ErrNotAuthorizedForState
	}
	to, ok := approvalTransitions[transitionKey{approver, from}]
	if !ok {
		return "", ErrNotAuthorizedForState
	}
	if decision == DecisionRejected {
		return StatusRejected, nil
	}
	return to, nil
}

// PendingStatusesFor lists the states a given approver role is waiting
// on, for the validation queue.
func PendingStatusesFor(approver worker.Role) []Status {
	switch approver {
	case worker.RoleSupervisor:
		return []Status{StatusPendingSupervisor}
	case worker.RoleManager:
		return []Status{StatusApprovedBySupervisor, StatusPendingManager}
	case worker.RoleDirector:
		return []Status{StatusPendingDirector}
	default:
		return nil
	}
}

// DatesIn expands the inclusive range into individual days.
func (r LeaveRequest) DatesIn() []time.Time {
	var dates []time.Time
	for d := r.StartDate; !d.After(r.EndDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
