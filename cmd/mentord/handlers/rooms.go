package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/mentorlink/mentorlink/pkg/api/types/errors"
	apirooms "github.com/mentorlink/mentorlink/pkg/api/types/rooms"
	"github.com/mentorlink/mentorlink/pkg/domain"
	domerr "github.com/mentorlink/mentorlink/pkg/domain/errors"
	kdbroom "github.com/mentorlink/mentorlink/pkg/domain/room/db"
	"github.com/mentorlink/mentorlink/pkg/utils/slices"
)

// POST /api/rooms/private
//
// The explicit provisioning step after a reassignment: creates (or finds)
// the private room of the student and the mentor currently holding the role.
func EnsurePrivateRoomHandler(dbRoom kdbroom.RoomInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apirooms.EnsurePrivateRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return apierr.BadRequest("request body should be JSON with studentId and role", err)
		}

		role, err := domain.AsMentorRole(req.Role)
		if err != nil {
			return apierr.BadRequest(`"role" should be one of AS, ACS or ARD`, err)
		}

		roomId, created, err := dbRoom.EnsurePrivateRoom(ctx, req.StudentId, role)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NewErrorMessage(
				http.StatusNotFound,
				"no active assignment for the role",
				apierr.WithError(err),
			)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		summary, err := dbRoom.Get(ctx, roomId)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		return c.JSON(status, apirooms.ComposeDetail(summary))
	}
}

// GET /api/users/:userId/rooms
func ListRoomsHandler(dbRoom kdbroom.RoomInterface, userKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userId := c.Param(userKey)

		summaries, err := dbRoom.ListForUser(ctx, userId)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, slices.Map(summaries, apirooms.ComposeDetail))
	}
}

// GET /api/rooms/:roomId
func GetRoomHandler(dbRoom kdbroom.RoomInterface, roomKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		roomId := c.Param(roomKey)

		summary, err := dbRoom.Get(ctx, roomId)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound()
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apirooms.ComposeDetail(summary))
	}
}

// DELETE /api/rooms/:roomId/participants/:userId
func LeaveRoomHandler(
	dbRoom kdbroom.RoomInterface, roomKey string, userKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if err := dbRoom.Leave(ctx, c.Param(roomKey), c.Param(userKey)); err != nil {
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
