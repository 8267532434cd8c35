package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/mentorlink/mentorlink/pkg/api/types/errors"
	apiusers "github.com/mentorlink/mentorlink/pkg/api/types/users"
	"github.com/mentorlink/mentorlink/pkg/domain"
	kdbuser "github.com/mentorlink/mentorlink/pkg/domain/user/db"
)

// POST /api/users
func RegisterUserHandler(dbUser kdbuser.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiusers.RegisterRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return apierr.BadRequest("request body should be JSON with id, name and role", err)
		}

		role, err := domain.AsUserRole(req.Role)
		if err != nil {
			return apierr.BadRequest(`"role" should be one of student, mentor or admin`, err)
		}

		var spec *domain.MentorRole
		if req.Specialization != nil {
			s, err := domain.AsMentorRole(*req.Specialization)
			if err != nil {
				return apierr.BadRequest(`"specialization" should be one of AS, ACS or ARD`, err)
			}
			spec = &s
		}
		if role == domain.RoleMentor && spec == nil {
			return apierr.BadRequest("a mentor needs a specialization", nil)
		}

		user, err := dbUser.Register(ctx, domain.User{
			Id: req.Id, Name: req.Name, Role: role, Specialization: spec,
		})
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, apiusers.ComposeDetail(user))
	}
}

// GET /api/users/:userId
func GetUserHandler(dbUser kdbuser.UserInterface, userKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userId := c.Param(userKey)

		users, err := dbUser.Get(ctx, []string{userId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		user, ok := users[userId]
		if !ok {
			return apierr.NotFound()
		}

		return c.JSON(http.StatusOK, apiusers.ComposeDetail(user))
	}
}
