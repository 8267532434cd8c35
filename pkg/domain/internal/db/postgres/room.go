package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
	"github.com/mentorlink/mentorlink/pkg/domain"
	kpgerr "github.com/mentorlink/mentorlink/pkg/domain/errors/dberrors/postgres"
	"github.com/mentorlink/mentorlink/pkg/utils/pointer"
	"github.com/mentorlink/mentorlink/pkg/utils/slices"
)

// EnsurePrivateRoom provisions the private room between a student and a
// mentor for one advisory role, idempotently.
//
// When an ACTIVE private room scoped to (studentId, role) with mentorId
// among its active participants already exists, nothing happens. Otherwise
// the room, its two participants and the mentor-authored welcome message
// are created.
//
// Runs on the caller's queryer: call it inside the transaction that writes
// the assignment, so the assignment and the room commit or abort together.
// Concurrent provisioning for the same (student, role) is resolved by the
// partial unique index on "chat_room": the losing insert fetches the
// winner's room and reports created = false.
func EnsurePrivateRoom(
	ctx context.Context, conn kpool.Queryer,
	studentId string, mentorId string, role domain.MentorRole,
) (roomId string, created bool, err error) {

	if err := conn.QueryRow(
		ctx,
		`
		select "chat_room"."id" from "chat_room"
		inner join "chat_participant"
			on "chat_participant"."room_id" = "chat_room"."id"
		where "chat_room"."student_id" = $1
			and "chat_room"."role" = $2
			and "chat_room"."kind" = $3
			and "chat_room"."status" = $4
			and "chat_participant"."user_id" = $5
			and "chat_participant"."is_active"
		`,
		studentId, role.String(), domain.RoomPrivate.String(),
		domain.RoomActive.String(), mentorId,
	).Scan(&roomId); err == nil {
		return roomId, false, nil
	} else if !IsNoRows(err) {
		return "", false, err
	}

	newId := uuid.NewString()
	var insertedId *string
	if err := conn.QueryRow(
		ctx,
		`
		with "new_room" as (
			insert into "chat_room" ("id", "kind", "student_id", "role", "status")
			values ($1, $2, $3, $4, $5)
			on conflict do nothing
			returning "id"
		)
		select "id" from "new_room"
		union all
		select "id" from "chat_room"
		where "student_id" = $3 and "role" = $4 and "kind" = $2 and "status" = $5
		limit 1
		`,
		newId, domain.RoomPrivate.String(), studentId, role.String(),
		domain.RoomActive.String(),
	).Scan(&insertedId); err != nil {
		if !IsNoRows(err) {
			return "", false, err
		}
		// the insert lost to a row committed after this statement's
		// snapshot was taken; a fresh statement sees the winner.
		if err := conn.QueryRow(
			ctx,
			`
			select "id" from "chat_room"
			where "student_id" = $1 and "role" = $2 and "kind" = $3 and "status" = $4
			`,
			studentId, role.String(), domain.RoomPrivate.String(),
			domain.RoomActive.String(),
		).Scan(&roomId); err != nil {
			if IsNoRows(err) {
				return "", false, kpgerr.Missing{
					Table: "chat_room", Identity: fmt.Sprintf("student %s / role %s", studentId, role),
				}
			}
			return "", false, err
		}
		return roomId, false, nil
	}

	roomId = pointer.SafeDeref(insertedId)
	if roomId != newId {
		// lost the creation race: another provisioner's room is in place.
		return roomId, false, nil
	}

	if err := AddParticipants(ctx, conn, roomId, []string{studentId, mentorId}); err != nil {
		return "", false, err
	}

	welcome := fmt.Sprintf(
		"Hello! I am your %s mentor. Feel free to message me here anytime.",
		role.Label(),
	)
	if _, err := InsertMessage(ctx, conn, domain.MessageSpec{
		RoomId:   roomId,
		SenderId: mentorId,
		Content:  pointer.Ref(welcome),
		Kind:     domain.MessageText,
	}); err != nil {
		return "", false, err
	}

	return roomId, true, nil
}

// EnsureGroupRoomIfComplete recomputes the student's mentor team from
// ACTIVE assignments and provisions the single group room when every
// advisory role is covered.
//
// The team-complete fact is derived on every call, never cached. The group
// room is unique per student for all time (unique index on kind = 'group'),
// so a reassignment on an already-complete team is a no-op here.
//
// The group welcome message is NOT seeded here: it is fired by the caller
// after commit, best-effort, so a welcome failure can never roll back the
// assignment (see the assignment repository's post-commit hook).
func EnsureGroupRoomIfComplete(
	ctx context.Context, conn kpool.Queryer, studentId string,
) (roomId string, created bool, err error) {

	assignments, err := GetActiveAssignments(ctx, conn, studentId)
	if err != nil {
		return "", false, err
	}
	if !domain.TeamComplete(slices.KeysOf(assignments)) {
		return "", false, nil
	}

	if err := conn.QueryRow(
		ctx,
		`
		select "id" from "chat_room"
		where "student_id" = $1 and "kind" = $2
		`,
		studentId, domain.RoomGroup.String(),
	).Scan(&roomId); err == nil {
		return roomId, false, nil
	} else if !IsNoRows(err) {
		return "", false, err
	}

	newId := uuid.NewString()
	var insertedId *string
	if err := conn.QueryRow(
		ctx,
		`
		with "new_room" as (
			insert into "chat_room" ("id", "kind", "student_id", "status")
			values ($1, $2, $3, $4)
			on conflict do nothing
			returning "id"
		)
		select "id" from "new_room"
		union all
		select "id" from "chat_room"
		where "student_id" = $3 and "kind" = $2
		limit 1
		`,
		newId, domain.RoomGroup.String(), studentId, domain.RoomActive.String(),
	).Scan(&insertedId); err != nil {
		if !IsNoRows(err) {
			return "", false, err
		}
		// lost to a concurrent creation committed after this statement's
		// snapshot; re-read with a fresh one.
		if err := conn.QueryRow(
			ctx,
			`select "id" from "chat_room" where "student_id" = $1 and "kind" = $2`,
			studentId, domain.RoomGroup.String(),
		).Scan(&roomId); err != nil {
			if IsNoRows(err) {
				return "", false, kpgerr.Missing{
					Table: "chat_room", Identity: fmt.Sprintf("student %s (group)", studentId),
				}
			}
			return "", false, err
		}
		return roomId, false, nil
	}

	roomId = pointer.SafeDeref(insertedId)
	if roomId != newId {
		return roomId, false, nil
	}

	members := []string{studentId}
	for _, a := range assignments {
		members = append(members, a.MentorId)
	}
	if err := AddParticipants(ctx, conn, roomId, members); err != nil {
		return "", false, err
	}

	return roomId, true, nil
}

// AddParticipants enrolls users into a room, reactivating returning members.
func AddParticipants(
	ctx context.Context, conn kpool.Queryer, roomId string, userIds []string,
) error {
	for _, userId := range userIds {
		if _, err := conn.Exec(
			ctx,
			`
			insert into "chat_participant" ("room_id", "user_id")
			values ($1, $2)
			on conflict ("room_id", "user_id")
				do update set "is_active" = true
			`,
			roomId, userId,
		); err != nil {
			return err
		}
	}
	return nil
}

// ClosePrivateRoom closes (never deletes) the ACTIVE private room of
// (studentId, role) having mentorId as a participant. No-op when there is
// no such room. Returns the closed room's id, or "" for the no-op case.
func ClosePrivateRoom(
	ctx context.Context, conn kpool.Queryer,
	studentId string, mentorId string, role domain.MentorRole,
) (string, error) {
	var roomId string
	if err := conn.QueryRow(
		ctx,
		`
		update "chat_room" set "status" = $1
		where "id" in (
			select "chat_room"."id" from "chat_room"
			inner join "chat_participant"
				on "chat_participant"."room_id" = "chat_room"."id"
			where "chat_room"."student_id" = $2
				and "chat_room"."role" = $3
				and "chat_room"."kind" = $4
				and "chat_room"."status" = $5
				and "chat_participant"."user_id" = $6
		)
		returning "id"
		`,
		domain.RoomClosed.String(), studentId, role.String(),
		domain.RoomPrivate.String(), domain.RoomActive.String(), mentorId,
	).Scan(&roomId); err != nil {
		if IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return roomId, nil
}

// GetRoom fetches a room by id.
func GetRoom(ctx context.Context, conn kpool.Queryer, roomId string) (domain.ChatRoom, error) {
	var r domain.ChatRoom
	var kind, status string
	var role *string
	if err := conn.QueryRow(
		ctx,
		`
		select "id", "kind", "student_id", "role", "status", "created_at", "deleted_at"
		from "chat_room"
		where "id" = $1
		`,
		roomId,
	).Scan(&r.Id, &kind, &r.StudentId, &role, &status, &r.CreatedAt, &r.DeletedAt); err != nil {
		if IsNoRows(err) {
			return domain.ChatRoom{}, kpgerr.Missing{Table: "chat_room", Identity: roomId}
		}
		return domain.ChatRoom{}, err
	}

	var err error
	if r.Kind, err = domain.AsRoomKind(kind); err != nil {
		return domain.ChatRoom{}, err
	}
	if r.Status, err = domain.AsRoomStatus(status); err != nil {
		return domain.ChatRoom{}, err
	}
	if role != nil {
		rr, err := domain.AsMentorRole(*role)
		if err != nil {
			return domain.ChatRoom{}, err
		}
		r.Role = &rr
	}
	return r, nil
}

// GetParticipants lists all participants of a room, active or not.
func GetParticipants(
	ctx context.Context, conn kpool.Queryer, roomId string,
) ([]domain.Participant, error) {
	rows, err := conn.Query(
		ctx,
		`
		select "room_id", "user_id", "is_active", "last_read_at"
		from "chat_participant"
		where "room_id" = $1
		order by "user_id"
		`,
		roomId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.RoomId, &p.UserId, &p.IsActive, &p.LastReadAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, nil
}
