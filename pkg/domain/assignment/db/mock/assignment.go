// this package provide "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/mentorlink/mentorlink/pkg/domain"
	kdbassign "github.com/mentorlink/mentorlink/pkg/domain/assignment/db"
	dbmock "github.com/mentorlink/mentorlink/pkg/domain/internal/db/mock"
)

type AssignmentInterface struct {
	Impl struct {
		Assign    func(context.Context, string, string, domain.MentorRole) (domain.AssignmentResult, error)
		Unassign  func(context.Context, string, domain.MentorRole) error
		Offboard  func(context.Context, string) error
		ActiveFor func(context.Context, string) (map[domain.MentorRole]domain.MentorAssignment, error)
	}
	Calls struct {
		Assign dbmock.CallLog[struct {
			StudentId string
			MentorId  string
			Role      domain.MentorRole
		}]
		Unassign dbmock.CallLog[struct {
			StudentId string
			Role      domain.MentorRole
		}]
		Offboard  dbmock.CallLog[struct{ StudentId string }]
		ActiveFor dbmock.CallLog[struct{ StudentId string }]
	}
}

func NewAssignmentInterface() *AssignmentInterface {
	return &AssignmentInterface{}
}

var _ kdbassign.AssignmentInterface = &AssignmentInterface{}

func (ai *AssignmentInterface) Assign(
	ctx context.Context, studentId string, mentorId string, role domain.MentorRole,
) (domain.AssignmentResult, error) {
	ai.Calls.Assign = append(ai.Calls.Assign, struct {
		StudentId string
		MentorId  string
		Role      domain.MentorRole
	}{
		StudentId: studentId, MentorId: mentorId, Role: role,
	})
	if ai.Impl.Assign != nil {
		return ai.Impl.Assign(ctx, studentId, mentorId, role)
	}
	panic(errors.New("it should not be called"))
}

func (ai *AssignmentInterface) Unassign(
	ctx context.Context, studentId string, role domain.MentorRole,
) error {
	ai.Calls.Unassign = append(ai.Calls.Unassign, struct {
		StudentId string
		Role      domain.MentorRole
	}{
		StudentId: studentId, Role: role,
	})
	if ai.Impl.Unassign != nil {
		return ai.Impl.Unassign(ctx, studentId, role)
	}
	panic(errors.New("it should not be called"))
}

func (ai *AssignmentInterface) Offboard(ctx context.Context, studentId string) error {
	ai.Calls.Offboard = append(ai.Calls.Offboard, struct{ StudentId string }{StudentId: studentId})
	if ai.Impl.Offboard != nil {
		return ai.Impl.Offboard(ctx, studentId)
	}
	panic(errors.New("it should not be called"))
}

func (ai *AssignmentInterface) ActiveFor(
	ctx context.Context, studentId string,
) (map[domain.MentorRole]domain.MentorAssignment, error) {
	ai.Calls.ActiveFor = append(ai.Calls.ActiveFor, struct{ StudentId string }{StudentId: studentId})
	if ai.Impl.ActiveFor != nil {
		return ai.Impl.ActiveFor(ctx, studentId)
	}
	panic(errors.New("it should not be called"))
}
