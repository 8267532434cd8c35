// this package provide "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/mentorlink/mentorlink/pkg/domain"
	dbmock "github.com/mentorlink/mentorlink/pkg/domain/internal/db/mock"
	kdbroom "github.com/mentorlink/mentorlink/pkg/domain/room/db"
)

type RoomInterface struct {
	Impl struct {
		EnsurePrivateRoom func(context.Context, string, domain.MentorRole) (string, bool, error)
		Get               func(context.Context, string) (domain.RoomSummary, error)
		ListForUser       func(context.Context, string) ([]domain.RoomSummary, error)
		Leave             func(context.Context, string, string) error
	}
	Calls struct {
		EnsurePrivateRoom dbmock.CallLog[struct {
			StudentId string
			Role      domain.MentorRole
		}]
		Get         dbmock.CallLog[struct{ RoomId string }]
		ListForUser dbmock.CallLog[struct{ UserId string }]
		Leave       dbmock.CallLog[struct {
			RoomId string
			UserId string
		}]
	}
}

func NewRoomInterface() *RoomInterface {
	return &RoomInterface{}
}

var _ kdbroom.RoomInterface = &RoomInterface{}

func (ri *RoomInterface) EnsurePrivateRoom(
	ctx context.Context, studentId string, role domain.MentorRole,
) (string, bool, error) {
	ri.Calls.EnsurePrivateRoom = append(ri.Calls.EnsurePrivateRoom, struct {
		StudentId string
		Role      domain.MentorRole
	}{
		StudentId: studentId, Role: role,
	})
	if ri.Impl.EnsurePrivateRoom != nil {
		return ri.Impl.EnsurePrivateRoom(ctx, studentId, role)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RoomInterface) Get(ctx context.Context, roomId string) (domain.RoomSummary, error) {
	ri.Calls.Get = append(ri.Calls.Get, struct{ RoomId string }{RoomId: roomId})
	if ri.Impl.Get != nil {
		return ri.Impl.Get(ctx, roomId)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RoomInterface) ListForUser(
	ctx context.Context, userId string,
) ([]domain.RoomSummary, error) {
	ri.Calls.ListForUser = append(ri.Calls.ListForUser, struct{ UserId string }{UserId: userId})
	if ri.Impl.ListForUser != nil {
		return ri.Impl.ListForUser(ctx, userId)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RoomInterface) Leave(ctx context.Context, roomId string, userId string) error {
	ri.Calls.Leave = append(ri.Calls.Leave, struct {
		RoomId string
		UserId string
	}{
		RoomId: roomId, UserId: userId,
	})
	if ri.Impl.Leave != nil {
		return ri.Impl.Leave(ctx, roomId, userId)
	}
	panic(errors.New("it should not be called"))
}
