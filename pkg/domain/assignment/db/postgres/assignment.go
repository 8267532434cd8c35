package postgres

import (
	"context"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
	"github.com/mentorlink/mentorlink/pkg/domain"
	kdb "github.com/mentorlink/mentorlink/pkg/domain/assignment/db"
	domerr "github.com/mentorlink/mentorlink/pkg/domain/errors"
	kpgerr "github.com/mentorlink/mentorlink/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/mentorlink/mentorlink/pkg/domain/internal/db/postgres"
)

type assignmentPG struct {
	pool kpool.Pool
	hook kdb.PostCommitHook
}

var _ kdb.AssignmentInterface = &assignmentPG{}

type Option func(*assignmentPG)

// WithPostCommitHook registers a callback fired (in its own goroutine)
// after a commit that created the group room.
func WithPostCommitHook(hook kdb.PostCommitHook) Option {
	return func(a *assignmentPG) {
		a.hook = hook
	}
}

func New(pool kpool.Pool, options ...Option) *assignmentPG {
	a := &assignmentPG{pool: pool}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *assignmentPG) Assign(
	ctx context.Context, studentId string, mentorId string, role domain.MentorRole,
) (domain.AssignmentResult, error) {
	result, err := a.assign(ctx, studentId, mentorId, role)
	if err != nil && kpgerr.IsUniqueViolation(err) {
		// lost an insert race on (student, role). The winner's row is
		// committed now, so a single retry takes the reassignment path.
		result, err = a.assign(ctx, studentId, mentorId, role)
	}
	if err != nil {
		return domain.AssignmentResult{}, err
	}

	if result.GroupRoomCreated && a.hook != nil {
		// detached from the request: the commit already happened and
		// must not appear to fail because of the hook.
		go a.hook(context.Background(), kdb.ProvisioningEvent{
			StudentId:   studentId,
			MentorId:    mentorId,
			Role:        role,
			GroupRoomId: result.GroupRoomId,
		})
	}
	return result, nil
}

func (a *assignmentPG) assign(
	ctx context.Context, studentId string, mentorId string, role domain.MentorRole,
) (domain.AssignmentResult, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return domain.AssignmentResult{}, err
	}
	defer tx.Rollback(ctx)

	// serialize with every other assignment mutation of this student:
	// the group-room derivation below must see all committed assignments,
	// not a snapshot interleaved with a concurrent assign of another role.
	if err := kpgintr.LockStudent(ctx, tx, studentId); err != nil {
		return domain.AssignmentResult{}, err
	}

	if err := checkAssignable(ctx, tx, studentId, mentorId, role); err != nil {
		return domain.AssignmentResult{}, err
	}

	result := domain.AssignmentResult{}

	// lock the active row for this (student, role), if any, so concurrent
	// reassignments serialize on it.
	var current domain.MentorAssignment
	var held bool
	{
		var roleVal, status string
		err := tx.QueryRow(
			ctx,
			`
			select "id", "student_id", "mentor_id", "role", "status", "assigned_at"
			from "mentor_assignment"
			where "student_id" = $1 and "role" = $2 and "status" = $3
			for update
			`,
			studentId, role.String(), domain.AssignmentActive.String(),
		).Scan(
			&current.Id, &current.StudentId, &current.MentorId,
			&roleVal, &status, &current.AssignedAt,
		)
		switch {
		case err == nil:
			held = true
			if current.Role, err = domain.AsMentorRole(roleVal); err != nil {
				return domain.AssignmentResult{}, err
			}
			if current.Status, err = domain.AsAssignmentStatus(status); err != nil {
				return domain.AssignmentResult{}, err
			}
		case kpgintr.IsNoRows(err):
			// role is free
		default:
			return domain.AssignmentResult{}, err
		}
	}

	if held {
		if current.MentorId == mentorId {
			return domain.AssignmentResult{}, domerr.ErrAlreadyAssigned
		}

		// reassignment: rebind the row in place and retire the outgoing
		// mentor's private room. The incoming mentor's private room is a
		// separate, explicit provisioning step.
		updated := current
		if err := tx.QueryRow(
			ctx,
			`
			update "mentor_assignment"
			set "mentor_id" = $1, "assigned_at" = now()
			where "id" = $2
			returning "assigned_at"
			`,
			mentorId, current.Id,
		).Scan(&updated.AssignedAt); err != nil {
			return domain.AssignmentResult{}, err
		}
		updated.MentorId = mentorId

		if _, err := kpgintr.ClosePrivateRoom(
			ctx, tx, studentId, current.MentorId, role,
		); err != nil {
			return domain.AssignmentResult{}, err
		}

		result.Assignment = updated
		result.Reassigned = true
	} else {
		inserted := domain.MentorAssignment{
			StudentId: studentId,
			MentorId:  mentorId,
			Role:      role,
			Status:    domain.AssignmentActive,
		}
		if err := tx.QueryRow(
			ctx,
			`
			insert into "mentor_assignment" ("student_id", "mentor_id", "role", "status")
			values ($1, $2, $3, $4)
			returning "id", "assigned_at"
			`,
			studentId, mentorId, role.String(), domain.AssignmentActive.String(),
		).Scan(&inserted.Id, &inserted.AssignedAt); err != nil {
			return domain.AssignmentResult{}, err
		}

		roomId, created, err := kpgintr.EnsurePrivateRoom(ctx, tx, studentId, mentorId, role)
		if err != nil {
			return domain.AssignmentResult{}, err
		}

		result.Assignment = inserted
		result.PrivateRoomCreated = created
		result.PrivateRoomId = roomId
	}

	groupId, groupCreated, err := kpgintr.EnsureGroupRoomIfComplete(ctx, tx, studentId)
	if err != nil {
		return domain.AssignmentResult{}, err
	}
	result.GroupRoomCreated = groupCreated
	if groupCreated {
		result.GroupRoomId = groupId
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.AssignmentResult{}, err
	}
	return result, nil
}

// checkAssignable validates that both endpoints of the assignment exist
// and that the mentor's specialization matches the requested role.
func checkAssignable(
	ctx context.Context, tx kpool.Tx,
	studentId string, mentorId string, role domain.MentorRole,
) error {
	users, err := kpgintr.GetUsers(ctx, tx, []string{studentId, mentorId})
	if err != nil {
		return err
	}

	student, ok := users[studentId]
	if !ok || student.Role != domain.RoleStudent {
		return domerr.ErrStudentNotFound
	}
	mentor, ok := users[mentorId]
	if !ok || mentor.Role != domain.RoleMentor {
		return domerr.ErrMentorNotFound
	}
	if mentor.Specialization == nil || *mentor.Specialization != role {
		return domerr.ErrSpecializationMismatch
	}
	return nil
}

func (a *assignmentPG) Unassign(
	ctx context.Context, studentId string, role domain.MentorRole,
) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := kpgintr.LockStudent(ctx, tx, studentId); err != nil {
		return err
	}

	var mentorId string
	if err := tx.QueryRow(
		ctx,
		`
		update "mentor_assignment" set "status" = $1
		where "student_id" = $2 and "role" = $3 and "status" = $4
		returning "mentor_id"
		`,
		domain.AssignmentCancelled.String(), studentId, role.String(),
		domain.AssignmentActive.String(),
	).Scan(&mentorId); err != nil {
		if kpgintr.IsNoRows(err) {
			return nil // nothing to unassign
		}
		return err
	}

	if _, err := kpgintr.ClosePrivateRoom(ctx, tx, studentId, mentorId, role); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (a *assignmentPG) Offboard(ctx context.Context, studentId string) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := kpgintr.LockStudent(ctx, tx, studentId); err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`
		update "mentor_assignment" set "status" = $1
		where "student_id" = $2 and "status" = $3
		`,
		domain.AssignmentCancelled.String(), studentId,
		domain.AssignmentActive.String(),
	); err != nil {
		return err
	}

	// close and soft-delete every room of the student, group included.
	if _, err := tx.Exec(
		ctx,
		`
		update "chat_room" set "status" = $1, "deleted_at" = now()
		where "student_id" = $2 and "deleted_at" is null
		`,
		domain.RoomClosed.String(), studentId,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (a *assignmentPG) ActiveFor(
	ctx context.Context, studentId string,
) (map[domain.MentorRole]domain.MentorAssignment, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return kpgintr.GetActiveAssignments(ctx, conn, studentId)
}
