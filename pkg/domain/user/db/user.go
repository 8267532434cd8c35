package db

import (
	"context"

	"github.com/mentorlink/mentorlink/pkg/domain"
)

type UserInterface interface {
	// Get fetches users by id. Missing ids are absent from the result.
	Get(ctx context.Context, userIds []string) (map[string]domain.User, error)

	// Register creates a user, or updates its name and specialization when
	// the id is taken. A user's kind (student/mentor/admin) never changes.
	Register(ctx context.Context, user domain.User) (domain.User, error)
}
