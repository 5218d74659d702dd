package worker

import "time"

// Role is the position a person holds in the approval chain. The chain
// depth is fixed: worker -> supervisor -> manager -> director.
type Role string

const (
	RoleWorker     Role = "worker"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
	RoleDirector   Role = "director"
)

func (r Role) Valid() bool {
	switch r {
	case RoleWorker, RoleSupervisor, RoleManager, RoleDirector:
		return true
	}
	return false
}

// Worker is a roster entry. The roster itself is owned by the worker
// management system; this service only reads it.
type Worker struct {
	ID         string
	Name       string
	Role       Role
	Active     bool
	LocationID *string
	QRCode     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
