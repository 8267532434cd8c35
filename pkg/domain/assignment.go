package domain

import (
	"fmt"
	"time"
)

// MentorRole is one of the three fixed advisory roles a mentor can take
// for a student. A mentor's specialization must equal the role it is
// assigned for.
type MentorRole string

const (
	// Admissions Strategist
	AS MentorRole = "AS"

	// Academic Content Specialist
	ACS MentorRole = "ACS"

	// Activity & Research Development
	ARD MentorRole = "ARD"
)

func (mr MentorRole) String() string {
	return string(mr)
}

// Label spells the role out for user-facing text.
func (mr MentorRole) Label() string {
	switch mr {
	case AS:
		return "Admissions Strategist"
	case ACS:
		return "Academic Content Specialist"
	case ARD:
		return "Activity & Research Development"
	default:
		return string(mr)
	}
}

func AsMentorRole(s string) (MentorRole, error) {
	switch s {
	case string(AS):
		return AS, nil
	case string(ACS):
		return ACS, nil
	case string(ARD):
		return ARD, nil
	default:
		return "", fmt.Errorf("'%s' is not MentorRole", s)
	}
}

// MentorRoles lists all advisory roles. A student's mentor team is
// complete when every role here has an ACTIVE assignment.
func MentorRoles() []MentorRole {
	return []MentorRole{AS, ACS, ARD}
}

// TeamComplete tests whether roles covers every advisory role.
//
// Duplicates and extra values are ignored; only coverage matters.
func TeamComplete(roles []MentorRole) bool {
	have := map[MentorRole]struct{}{}
	for _, r := range roles {
		have[r] = struct{}{}
	}
	for _, r := range MentorRoles() {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}

type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

func (as AssignmentStatus) String() string {
	return string(as)
}

func AsAssignmentStatus(s string) (AssignmentStatus, error) {
	switch s {
	case string(AssignmentActive):
		return AssignmentActive, nil
	case string(AssignmentCancelled):
		return AssignmentCancelled, nil
	default:
		return "", fmt.Errorf("'%s' is not AssignmentStatus", s)
	}
}

// MentorAssignment binds a mentor to a student for one advisory role.
//
// Invariant: at most one ACTIVE assignment exists per (StudentId, Role).
// Rows are never deleted; unassignment flips Status to cancelled.
type MentorAssignment struct {
	Id         int
	StudentId  string
	MentorId   string
	Role       MentorRole
	Status     AssignmentStatus
	AssignedAt time.Time
}

// AssignmentResult reports what an Assign call did, for caller bookkeeping.
// Room ids are set only when the corresponding flag is true.
type AssignmentResult struct {
	Assignment MentorAssignment

	// the role was already bound to another mentor and got updated in place.
	Reassigned bool

	PrivateRoomCreated bool
	PrivateRoomId      string

	GroupRoomCreated bool
	GroupRoomId      string
}
