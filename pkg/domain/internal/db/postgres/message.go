package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
	"github.com/mentorlink/mentorlink/pkg/domain"
)

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// InsertMessage appends a message (and its attachments) to a room's log
// on the caller's queryer. It performs no participant or room-status
// checks; those belong to the message repository. The server assigns
// id, seq and created_at; the returned record is the durable truth.
func InsertMessage(
	ctx context.Context, conn kpool.Queryer, spec domain.MessageSpec,
) (domain.ChatMessage, error) {
	msg := domain.ChatMessage{
		Id:       uuid.NewString(),
		RoomId:   spec.RoomId,
		SenderId: spec.SenderId,
		Content:  spec.Content,
		Kind:     spec.Kind,
	}

	if err := conn.QueryRow(
		ctx,
		`
		insert into "chat_message" ("id", "room_id", "sender_id", "content", "kind")
		values ($1, $2, $3, $4, $5)
		returning "seq", "created_at"
		`,
		msg.Id, msg.RoomId, msg.SenderId, msg.Content, msg.Kind.String(),
	).Scan(&msg.Seq, &msg.CreatedAt); err != nil {
		return domain.ChatMessage{}, err
	}

	for _, a := range spec.Attachments {
		att := domain.Attachment{
			Id:           uuid.NewString(),
			MessageId:    msg.Id,
			FileUrl:      a.FileUrl,
			FileName:     a.FileName,
			FileType:     a.FileType,
			ThumbnailUrl: a.ThumbnailUrl,
		}
		if _, err := conn.Exec(
			ctx,
			`
			insert into "chat_attachment"
				("id", "message_id", "file_url", "file_name", "file_type", "thumbnail_url")
			values ($1, $2, $3, $4, $5, $6)
			`,
			att.Id, att.MessageId, att.FileUrl, att.FileName, att.FileType, att.ThumbnailUrl,
		); err != nil {
			return domain.ChatMessage{}, err
		}
		msg.Attachments = append(msg.Attachments, att)
	}

	return msg, nil
}

// GetAttachments fetches attachments of messages, keyed by message id.
func GetAttachments(
	ctx context.Context, conn kpool.Queryer, messageIds []string,
) (map[string][]domain.Attachment, error) {
	rows, err := conn.Query(
		ctx,
		`
		select "id", "message_id", "file_url", "file_name", "file_type", "thumbnail_url"
		from "chat_attachment"
		where "message_id" = any($1::varchar[])
		order by "id"
		`,
		messageIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string][]domain.Attachment{}
	for rows.Next() {
		var a domain.Attachment
		if err := rows.Scan(
			&a.Id, &a.MessageId, &a.FileUrl, &a.FileName, &a.FileType, &a.ThumbnailUrl,
		); err != nil {
			return nil, err
		}
		result[a.MessageId] = append(result[a.MessageId], a)
	}
	return result, nil
}
