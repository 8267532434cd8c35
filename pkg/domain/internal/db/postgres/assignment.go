package postgres

import (
	"context"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
	"github.com/mentorlink/mentorlink/pkg/domain"
)

// LockStudent takes the transaction-scoped advisory lock of the student.
//
// Every transaction that writes the student's assignments or derives the
// team-complete fact takes this lock first. Assignments run at READ
// COMMITTED, so without the lock two concurrent assigns of different roles
// could each miss the other's row and both skip the group-room creation.
// Held until commit or rollback; there is no explicit unlock.
func LockStudent(ctx context.Context, conn kpool.Queryer, studentId string) error {
	_, err := conn.Exec(
		ctx, `select pg_advisory_xact_lock(hashtextextended($1, 0))`, studentId,
	)
	return err
}

// GetActiveAssignments lists the ACTIVE assignments of a student,
// keyed by advisory role. At most one entry per role exists by the
// partial unique index on "mentor_assignment".
func GetActiveAssignments(
	ctx context.Context, conn kpool.Queryer, studentId string,
) (map[domain.MentorRole]domain.MentorAssignment, error) {
	rows, err := conn.Query(
		ctx,
		`
		select "id", "student_id", "mentor_id", "role", "status", "assigned_at"
		from "mentor_assignment"
		where "student_id" = $1 and "status" = $2
		`,
		studentId, domain.AssignmentActive.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[domain.MentorRole]domain.MentorAssignment{}
	for rows.Next() {
		var a domain.MentorAssignment
		var role, status string
		if err := rows.Scan(
			&a.Id, &a.StudentId, &a.MentorId, &role, &status, &a.AssignedAt,
		); err != nil {
			return nil, err
		}
		if a.Role, err = domain.AsMentorRole(role); err != nil {
			return nil, err
		}
		if a.Status, err = domain.AsAssignmentStatus(status); err != nil {
			return nil, err
		}
		result[a.Role] = a
	}
	return result, nil
}

// GetUsers fetches users by id. Missing ids are simply absent from the
// returned map; the caller decides whether that is an error.
func GetUsers(
	ctx context.Context, conn kpool.Queryer, userIds []string,
) (map[string]domain.User, error) {
	rows, err := conn.Query(
		ctx,
		`
		select "id", "name", "role", "specialization"
		from "user"
		where "id" = any($1::varchar[])
		`,
		userIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]domain.User{}
	for rows.Next() {
		var u domain.User
		var role string
		var spec *string
		if err := rows.Scan(&u.Id, &u.Name, &role, &spec); err != nil {
			return nil, err
		}
		if u.Role, err = domain.AsUserRole(role); err != nil {
			return nil, err
		}
		if spec != nil {
			s, err := domain.AsMentorRole(*spec)
			if err != nil {
				return nil, err
			}
			u.Specialization = &s
		}
		result[u.Id] = u
	}
	return result, nil
}
