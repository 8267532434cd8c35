package domain

import (
	"fmt"
	"time"
)

type RoomKind string

const (
	// a two-participant conversation between a student and one mentor.
	RoomPrivate RoomKind = "private"

	// the conversation of the whole advisory team:
	// the student and all three role-mentors.
	RoomGroup RoomKind = "group"
)

func (rk RoomKind) String() string {
	return string(rk)
}

func AsRoomKind(s string) (RoomKind, error) {
	switch s {
	case string(RoomPrivate):
		return RoomPrivate, nil
	case string(RoomGroup):
		return RoomGroup, nil
	default:
		return "", fmt.Errorf("'%s' is not RoomKind", s)
	}
}

type RoomStatus string

const (
	RoomActive RoomStatus = "active"

	// closed rooms keep their history but accept no new messages.
	RoomClosed RoomStatus = "closed"
)

func (rs RoomStatus) String() string {
	return string(rs)
}

func AsRoomStatus(s string) (RoomStatus, error) {
	switch s {
	case string(RoomActive):
		return RoomActive, nil
	case string(RoomClosed):
		return RoomClosed, nil
	default:
		return "", fmt.Errorf("'%s' is not RoomStatus", s)
	}
}

// ChatRoom is a conversation.
//
// Invariants: at most one ACTIVE PRIVATE room per (StudentId, Role);
// at most one GROUP room per StudentId, ever.
type ChatRoom struct {
	Id        string
	Kind      RoomKind
	StudentId string

	// advisory role the room is scoped to. Set only for private rooms.
	Role *MentorRole

	Status    RoomStatus
	CreatedAt time.Time

	// soft-delete mark, set on student offboarding.
	DeletedAt *time.Time
}

// Participant is a membership of a user in a room, carrying the read cursor.
type Participant struct {
	RoomId string
	UserId string

	// false after the user left the room. History stays visible to others.
	IsActive bool

	// read cursor. Advances monotonically via MarkAsRead.
	LastReadAt time.Time
}

// RoomSummary is a room as shown on a dashboard: the room, who is in it,
// and how much of it the asking user has not read yet.
type RoomSummary struct {
	Room         ChatRoom
	Participants []Participant
	UnreadCount  int
}
