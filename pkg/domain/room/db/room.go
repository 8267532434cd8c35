package db

import (
	"context"

	"github.com/mentorlink/mentorlink/pkg/domain"
)

type RoomInterface interface {
	// EnsurePrivateRoom provisions (idempotently) the private room between
	// the student and the mentor currently holding the given role.
	//
	// This is the explicit follow-up to a reassignment: the assignment
	// update itself only closes the outgoing mentor's room.
	//
	// Returns:
	//     - string: room id (existing or new)
	//     - bool: true when this call created the room
	//     - error: ErrMissing when the student has no ACTIVE assignment
	//       for the role.
	EnsurePrivateRoom(ctx context.Context, studentId string, role domain.MentorRole) (string, bool, error)

	// Get fetches a room with its participants.
	Get(ctx context.Context, roomId string) (domain.RoomSummary, error)

	// ListForUser lists the rooms where the user is an active participant
	// and the room is not soft-deleted, newest first, each with its
	// participants and the user's unread message count.
	ListForUser(ctx context.Context, userId string) ([]domain.RoomSummary, error)

	// Leave deactivates the user's membership in a room. Messages the
	// user sent stay. Idempotent.
	Leave(ctx context.Context, roomId string, userId string) error
}
