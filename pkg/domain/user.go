package domain

import "fmt"

type UserRole string

const (
	// a student being advised.
	RoleStudent UserRole = "student"

	// a mentor advising students. Mentors have a Specialization.
	RoleMentor UserRole = "mentor"

	// platform operator. Not a participant of advisory teams.
	RoleAdmin UserRole = "admin"
)

func (ur UserRole) String() string {
	return string(ur)
}

func AsUserRole(s string) (UserRole, error) {
	switch s {
	case string(RoleStudent):
		return RoleStudent, nil
	case string(RoleMentor):
		return RoleMentor, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("'%s' is not UserRole", s)
	}
}

type User struct {
	Id   string
	Name string
	Role UserRole

	// Specialization is set if and only if Role == RoleMentor.
	Specialization *MentorRole
}
