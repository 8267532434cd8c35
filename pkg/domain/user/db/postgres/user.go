package postgres

import (
	"context"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
	"github.com/mentorlink/mentorlink/pkg/domain"
	kpgintr "github.com/mentorlink/mentorlink/pkg/domain/internal/db/postgres"
	kdbuser "github.com/mentorlink/mentorlink/pkg/domain/user/db"
)

type userPG struct {
	pool kpool.Pool
}

var _ kdbuser.UserInterface = &userPG{}

func New(pool kpool.Pool) *userPG {
	return &userPG{pool: pool}
}

func (u *userPG) Get(
	ctx context.Context, userIds []string,
) (map[string]domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return kpgintr.GetUsers(ctx, conn, userIds)
}

func (u *userPG) Register(ctx context.Context, user domain.User) (domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Release()

	var spec *string
	if user.Specialization != nil {
		s := user.Specialization.String()
		spec = &s
	}
	if _, err := conn.Exec(
		ctx,
		`
		insert into "user" ("id", "name", "role", "specialization")
		values ($1, $2, $3, $4)
		on conflict ("id") do update
			set "name" = excluded."name",
				"specialization" = excluded."specialization"
		`,
		user.Id, user.Name, user.Role.String(), spec,
	); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
