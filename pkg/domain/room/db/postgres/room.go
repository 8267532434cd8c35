package postgres

import (
	"context"
	"fmt"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
	"github.com/mentorlink/mentorlink/pkg/domain"
	kpgerr "github.com/mentorlink/mentorlink/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/mentorlink/mentorlink/pkg/domain/internal/db/postgres"
	kdbroom "github.com/mentorlink/mentorlink/pkg/domain/room/db"
)

type roomPG struct {
	pool kpool.Pool
}

var _ kdbroom.RoomInterface = &roomPG{}

func New(pool kpool.Pool) *roomPG {
	return &roomPG{pool: pool}
}

func (r *roomPG) EnsurePrivateRoom(
	ctx context.Context, studentId string, role domain.MentorRole,
) (string, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", false, err
	}
	defer tx.Rollback(ctx)

	if err := kpgintr.LockStudent(ctx, tx, studentId); err != nil {
		return "", false, err
	}

	assignments, err := kpgintr.GetActiveAssignments(ctx, tx, studentId)
	if err != nil {
		return "", false, err
	}
	assignment, ok := assignments[role]
	if !ok {
		return "", false, kpgerr.Missing{
			Table:    "mentor_assignment",
			Identity: fmt.Sprintf("student %s / role %s (active)", studentId, role),
		}
	}

	roomId, created, err := kpgintr.EnsurePrivateRoom(
		ctx, tx, studentId, assignment.MentorId, role,
	)
	if err != nil {
		return "", false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", false, err
	}
	return roomId, created, nil
}

func (r *roomPG) Get(ctx context.Context, roomId string) (domain.RoomSummary, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return domain.RoomSummary{}, err
	}
	defer conn.Release()

	room, err := kpgintr.GetRoom(ctx, conn, roomId)
	if err != nil {
		return domain.RoomSummary{}, err
	}
	participants, err := kpgintr.GetParticipants(ctx, conn, roomId)
	if err != nil {
		return domain.RoomSummary{}, err
	}
	return domain.RoomSummary{Room: room, Participants: participants}, nil
}

func (r *roomPG) ListForUser(
	ctx context.Context, userId string,
) ([]domain.RoomSummary, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select
			"chat_room"."id", "chat_room"."kind", "chat_room"."student_id",
			"chat_room"."role", "chat_room"."status", "chat_room"."created_at",
			"chat_room"."deleted_at",
			(
				select count(*) from "chat_message"
				where "chat_message"."room_id" = "chat_room"."id"
					and "chat_message"."created_at" > "chat_participant"."last_read_at"
					and "chat_message"."sender_id" != "chat_participant"."user_id"
			) as "unread"
		from "chat_room"
		inner join "chat_participant"
			on "chat_participant"."room_id" = "chat_room"."id"
		where "chat_participant"."user_id" = $1
			and "chat_participant"."is_active"
			and "chat_room"."deleted_at" is null
		order by "chat_room"."created_at" desc, "chat_room"."id"
		`,
		userId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.RoomSummary{}
	for rows.Next() {
		var room domain.ChatRoom
		var kind, status string
		var roleVal *string
		var unread int
		if err := rows.Scan(
			&room.Id, &kind, &room.StudentId, &roleVal, &status,
			&room.CreatedAt, &room.DeletedAt, &unread,
		); err != nil {
			return nil, err
		}
		if room.Kind, err = domain.AsRoomKind(kind); err != nil {
			return nil, err
		}
		if room.Status, err = domain.AsRoomStatus(status); err != nil {
			return nil, err
		}
		if roleVal != nil {
			rr, err := domain.AsMentorRole(*roleVal)
			if err != nil {
				return nil, err
			}
			room.Role = &rr
		}
		summaries = append(summaries, domain.RoomSummary{Room: room, UnreadCount: unread})
	}
	rows.Close()

	for i := range summaries {
		participants, err := kpgintr.GetParticipants(ctx, conn, summaries[i].Room.Id)
		if err != nil {
			return nil, err
		}
		summaries[i].Participants = participants
	}
	return summaries, nil
}

func (r *roomPG) Leave(ctx context.Context, roomId string, userId string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(
		ctx,
		`
		update "chat_participant" set "is_active" = false
		where "room_id" = $1 and "user_id" = $2
		`,
		roomId, userId,
	)
	return err
}
