package db

import (
	"context"

	"github.com/mentorlink/mentorlink/pkg/domain"
)

// ProvisioningEvent describes a provisioning side effect that must run
// after the assignment transaction committed (best-effort, never rolled
// back into the transaction's outcome).
type ProvisioningEvent struct {
	StudentId string

	// mentor of the assignment that triggered the event.
	MentorId string
	Role     domain.MentorRole

	// the freshly created group room.
	GroupRoomId string
}

// PostCommitHook runs after a successful commit, in its own goroutine.
// Implementations log their own failures; nothing is retried and nothing
// propagates back to the caller of Assign.
type PostCommitHook func(ctx context.Context, ev ProvisioningEvent)

type AssignmentInterface interface {
	// Assign binds a mentor to a student for an advisory role,
	// provisioning chat rooms in the same transaction.
	//
	// Args:
	//     - ctx: context
	//     - studentId, mentorId: must reference existing users of the
	//       matching kinds
	//     - role: the advisory role; must equal the mentor's specialization
	//
	// When the role is free, a new ACTIVE assignment is inserted, the
	// private room is provisioned (with its welcome message), and the
	// group room is created when this assignment completes the team.
	//
	// When the role is held by another mentor, the assignment is updated
	// in place (reassignment) and the outgoing mentor's private room is
	// closed. The new mentor's private room is NOT provisioned implicitly:
	// callers invoke RoomInterface.EnsurePrivateRoom as an explicit
	// follow-up.
	//
	// Returns:
	//     - AssignmentResult: the written assignment plus flags telling
	//       which rooms this call created
	//     - error: ErrStudentNotFound, ErrMentorNotFound,
	//       ErrSpecializationMismatch, or ErrAlreadyAssigned when the same
	//       mentor already holds the role. Any error means no state change.
	Assign(ctx context.Context, studentId string, mentorId string, role domain.MentorRole) (domain.AssignmentResult, error)

	// Unassign cancels the ACTIVE assignment of (studentId, role) and
	// closes the private room of the removed mentor. The group room is
	// left untouched even if the team becomes incomplete.
	//
	// Idempotent: no ACTIVE assignment is not an error.
	Unassign(ctx context.Context, studentId string, role domain.MentorRole) error

	// Offboard cancels every ACTIVE assignment of the student, closes and
	// soft-deletes all of the student's rooms, in one transaction.
	Offboard(ctx context.Context, studentId string) error

	// ActiveFor lists the student's ACTIVE assignments, keyed by role.
	ActiveFor(ctx context.Context, studentId string) (map[domain.MentorRole]domain.MentorAssignment, error)
}
