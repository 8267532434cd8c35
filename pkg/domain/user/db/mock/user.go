// this package provide "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/mentorlink/mentorlink/pkg/domain"
	dbmock "github.com/mentorlink/mentorlink/pkg/domain/internal/db/mock"
	kdbuser "github.com/mentorlink/mentorlink/pkg/domain/user/db"
)

type UserInterface struct {
	Impl struct {
		Get      func(context.Context, []string) (map[string]domain.User, error)
		Register func(context.Context, domain.User) (domain.User, error)
	}
	Calls struct {
		Get      dbmock.CallLog[struct{ UserIds []string }]
		Register dbmock.CallLog[domain.User]
	}
}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

var _ kdbuser.UserInterface = &UserInterface{}

func (ui *UserInterface) Get(
	ctx context.Context, userIds []string,
) (map[string]domain.User, error) {
	ui.Calls.Get = append(ui.Calls.Get, struct{ UserIds []string }{UserIds: userIds})
	if ui.Impl.Get != nil {
		return ui.Impl.Get(ctx, userIds)
	}
	panic(errors.New("it should not be called"))
}

func (ui *UserInterface) Register(ctx context.Context, user domain.User) (domain.User, error) {
	ui.Calls.Register = append(ui.Calls.Register, user)
	if ui.Impl.Register != nil {
		return ui.Impl.Register(ctx, user)
	}
	panic(errors.New("it should not be called"))
}
