package postgres

import (
	"context"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
	"github.com/mentorlink/mentorlink/pkg/domain"
	domerr "github.com/mentorlink/mentorlink/pkg/domain/errors"
	kpgerr "github.com/mentorlink/mentorlink/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/mentorlink/mentorlink/pkg/domain/internal/db/postgres"
	kdbmessage "github.com/mentorlink/mentorlink/pkg/domain/message/db"
	"github.com/mentorlink/mentorlink/pkg/utils/slices"
)

type messagePG struct {
	pool kpool.Pool
}

var _ kdbmessage.MessageInterface = &messagePG{}

func New(pool kpool.Pool) *messagePG {
	return &messagePG{pool: pool}
}

func (m *messagePG) Create(
	ctx context.Context, spec domain.MessageSpec,
) (domain.ChatMessage, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	defer tx.Rollback(ctx)

	room, err := kpgintr.GetRoom(ctx, tx, spec.RoomId)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	if room.Status != domain.RoomActive || room.DeletedAt != nil {
		return domain.ChatMessage{}, domerr.ErrRoomClosed
	}

	var active bool
	if err := tx.QueryRow(
		ctx,
		`
		select "is_active" from "chat_participant"
		where "room_id" = $1 and "user_id" = $2
		`,
		spec.RoomId, spec.SenderId,
	).Scan(&active); err != nil {
		if kpgintr.IsNoRows(err) {
			return domain.ChatMessage{}, domerr.ErrNotAParticipant
		}
		return domain.ChatMessage{}, err
	}
	if !active {
		return domain.ChatMessage{}, domerr.ErrNotAParticipant
	}

	msg, err := kpgintr.InsertMessage(ctx, tx, spec)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

func (m *messagePG) List(
	ctx context.Context, roomId string, afterSeq int64, limit int,
) ([]domain.ChatMessage, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query := `
	select "id", "room_id", "sender_id", "content", "kind",
		"created_at", "seq", "is_edited"
	from "chat_message"
	where "room_id" = $1 and "seq" > $2
	order by "created_at", "seq"
	`
	args := []interface{}{roomId, afterSeq}
	if 0 < limit {
		query += ` limit $3`
		args = append(args, limit)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var msg domain.ChatMessage
		var kind string
		if err := rows.Scan(
			&msg.Id, &msg.RoomId, &msg.SenderId, &msg.Content, &kind,
			&msg.CreatedAt, &msg.Seq, &msg.IsEdited,
		); err != nil {
			return nil, err
		}
		if msg.Kind, err = domain.AsMessageKind(kind); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	rows.Close()

	if len(messages) == 0 {
		return messages, nil
	}

	attachments, err := kpgintr.GetAttachments(
		ctx, conn,
		slices.Map(messages, func(m domain.ChatMessage) string { return m.Id }),
	)
	if err != nil {
		return nil, err
	}
	for i := range messages {
		messages[i].Attachments = attachments[messages[i].Id]
	}
	return messages, nil
}

func (m *messagePG) MarkAsRead(
	ctx context.Context, roomId string, userId string,
) (domain.ReadStatus, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return domain.ReadStatus{}, err
	}
	defer conn.Release()

	status := domain.ReadStatus{RoomId: roomId, UserId: userId}
	if err := conn.QueryRow(
		ctx,
		`
		update "chat_participant"
		set "last_read_at" = greatest("last_read_at", now())
		where "room_id" = $1 and "user_id" = $2
		returning "last_read_at"
		`,
		roomId, userId,
	).Scan(&status.LastReadAt); err != nil {
		if kpgintr.IsNoRows(err) {
			return domain.ReadStatus{}, domerr.ErrNotAParticipant
		}
		return domain.ReadStatus{}, err
	}
	return status, nil
}

func (m *messagePG) Edit(
	ctx context.Context, messageId string, editorId string, content string,
) (domain.ChatMessage, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	defer tx.Rollback(ctx)

	var senderId string
	if err := tx.QueryRow(
		ctx,
		`select "sender_id" from "chat_message" where "id" = $1 for update`,
		messageId,
	).Scan(&senderId); err != nil {
		if kpgintr.IsNoRows(err) {
			return domain.ChatMessage{}, kpgerr.Missing{
				Table: "chat_message", Identity: messageId,
			}
		}
		return domain.ChatMessage{}, err
	}
	if senderId != editorId {
		return domain.ChatMessage{}, domerr.ErrNotSender
	}

	var msg domain.ChatMessage
	var kind string
	if err := tx.QueryRow(
		ctx,
		`
		update "chat_message"
		set "content" = $1, "is_edited" = true
		where "id" = $2
		returning "id", "room_id", "sender_id", "content", "kind",
			"created_at", "seq", "is_edited"
		`,
		content, messageId,
	).Scan(
		&msg.Id, &msg.RoomId, &msg.SenderId, &msg.Content, &kind,
		&msg.CreatedAt, &msg.Seq, &msg.IsEdited,
	); err != nil {
		return domain.ChatMessage{}, err
	}
	if msg.Kind, err = domain.AsMessageKind(kind); err != nil {
		return domain.ChatMessage{}, err
	}

	attachments, err := kpgintr.GetAttachments(ctx, tx, []string{msg.Id})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	msg.Attachments = attachments[msg.Id]

	if err := tx.Commit(ctx); err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}
