package db

import (
	"context"

	"github.com/mentorlink/mentorlink/pkg/domain"
)

type MessageInterface interface {
	// Create appends a message to a room's log.
	//
	// The room must be ACTIVE and the sender an active participant; the
	// checks and the append run in one transaction, so a message can never
	// land in a room that was closed before the commit.
	//
	// Returns:
	//     - ChatMessage: the durable record, with server-assigned id, seq
	//       and timestamp. Callers publish THIS record to subscribers,
	//       never the request they sent.
	//     - error: ErrRoomClosed, ErrNotAParticipant, or ErrMissing when
	//       the room does not exist.
	Create(ctx context.Context, spec domain.MessageSpec) (domain.ChatMessage, error)

	// List fetches messages of a room in (created_at, seq) ascending order.
	//
	// afterSeq = 0 means "from the beginning"; otherwise only messages
	// with seq > afterSeq are returned (the re-sync query of reconnecting
	// clients). limit <= 0 means no limit.
	List(ctx context.Context, roomId string, afterSeq int64, limit int) ([]domain.ChatMessage, error)

	// MarkAsRead advances the user's read cursor of a room to now.
	// The cursor never moves backwards.
	MarkAsRead(ctx context.Context, roomId string, userId string) (domain.ReadStatus, error)

	// Edit replaces the content of a message and marks it edited.
	//
	// Returns ErrNotSender unless editorId sent the message, ErrMissing
	// when the message does not exist.
	Edit(ctx context.Context, messageId string, editorId string, content string) (domain.ChatMessage, error)
}
