package errors

import "errors"

// requested record does not exist.
var ErrMissing = errors.New("missing")

// validation failures of assignMentor. Surfaced to callers as-is;
// any of them aborts the whole transaction.
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrMentorNotFound         = errors.New("mentor not found")
	ErrSpecializationMismatch = errors.New("mentor's specialization does not match requested role")

	// the same mentor already holds the role for the student.
	// Not a state change; the existing assignment stays untouched.
	ErrAlreadyAssigned = errors.New("mentor already assigned for this role")
)

// validation failures of the message store.
var (
	ErrNotAParticipant = errors.New("sender is not an active participant of the room")
	ErrRoomClosed      = errors.New("room is closed")

	// only the original sender may edit a message.
	ErrNotSender = errors.New("only the sender can edit a message")
)
