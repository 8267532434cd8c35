package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
	kassign "github.com/mentorlink/mentorlink/pkg/domain/assignment/db"
	kpgassign "github.com/mentorlink/mentorlink/pkg/domain/assignment/db/postgres"
	dbInterface "github.com/mentorlink/mentorlink/pkg/domain/mentorlink/db"
	kmessage "github.com/mentorlink/mentorlink/pkg/domain/message/db"
	kpgmessage "github.com/mentorlink/mentorlink/pkg/domain/message/db/postgres"
	kroom "github.com/mentorlink/mentorlink/pkg/domain/room/db"
	kpgroom "github.com/mentorlink/mentorlink/pkg/domain/room/db/postgres"
	kpgschema "github.com/mentorlink/mentorlink/pkg/domain/schema/db/postgres"
	kuser "github.com/mentorlink/mentorlink/pkg/domain/user/db"
	kpguser "github.com/mentorlink/mentorlink/pkg/domain/user/db/postgres"
)

type mentorDBPostgres struct {
	pool       *pgxpool.Pool
	assignment kassign.AssignmentInterface
	room       kroom.RoomInterface
	message    kmessage.MessageInterface
	user       kuser.UserInterface
}

type Config struct {
	// fired after commits that create the group room.
	PostCommitHook kassign.PostCommitHook

	// when true, the schema is created (idempotently) before use.
	EnsureSchema bool
}

func DefaultConfig() Config {
	return Config{}
}

type Option func(*Config) *Config

func WithPostCommitHook(hook kassign.PostCommitHook) Option {
	return func(c *Config) *Config {
		c.PostCommitHook = hook
		return c
	}
}

func WithEnsureSchema() Option {
	return func(c *Config) *Config {
		c.EnsureSchema = true
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (dbInterface.MentorDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pool)
	if c.EnsureSchema {
		if err := kpgschema.Ensure(ctx, p); err != nil {
			pool.Close()
			return nil, err
		}
	}

	var assignOptions []kpgassign.Option
	if c.PostCommitHook != nil {
		assignOptions = append(assignOptions, kpgassign.WithPostCommitHook(c.PostCommitHook))
	}

	return &mentorDBPostgres{
		pool:       pool,
		assignment: kpgassign.New(p, assignOptions...),
		room:       kpgroom.New(p),
		message:    kpgmessage.New(p),
		user:       kpguser.New(p),
	}, nil
}

func (m *mentorDBPostgres) Assignment() kassign.AssignmentInterface {
	return m.assignment
}

func (m *mentorDBPostgres) Room() kroom.RoomInterface {
	return m.room
}

func (m *mentorDBPostgres) Message() kmessage.MessageInterface {
	return m.message
}

func (m *mentorDBPostgres) User() kuser.UserInterface {
	return m.user
}

func (m *mentorDBPostgres) Close() error {
	m.pool.Close()
	return nil
}
