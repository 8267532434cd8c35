package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apiassign "github.com/mentorlink/mentorlink/pkg/api/types/assignments"
	apierr "github.com/mentorlink/mentorlink/pkg/api/types/errors"
	"github.com/mentorlink/mentorlink/pkg/domain"
	kdbassign "github.com/mentorlink/mentorlink/pkg/domain/assignment/db"
	domerr "github.com/mentorlink/mentorlink/pkg/domain/errors"
	"github.com/mentorlink/mentorlink/pkg/utils/slices"
)

// POST /api/assignments
func AssignMentorHandler(dbAssign kdbassign.AssignmentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiassign.AssignRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return apierr.BadRequest("request body should be JSON with studentId, mentorId and role", err)
		}

		role, err := domain.AsMentorRole(req.Role)
		if err != nil {
			return apierr.BadRequest(`"role" should be one of AS, ACS or ARD`, err)
		}

		result, err := dbAssign.Assign(ctx, req.StudentId, req.MentorId, role)
		switch {
		case err == nil:
			// pass
		case errors.Is(err, domerr.ErrStudentNotFound),
			errors.Is(err, domerr.ErrMentorNotFound):
			return apierr.NewErrorMessage(http.StatusNotFound, err.Error())
		case errors.Is(err, domerr.ErrSpecializationMismatch):
			return apierr.BadRequest(err.Error(), err)
		case errors.Is(err, domerr.ErrAlreadyAssigned):
			return apierr.Conflict(err.Error(), apierr.WithError(err))
		default:
			return apierr.InternalServerError(err)
		}

		status := http.StatusOK
		if !result.Reassigned {
			status = http.StatusCreated
		}
		return c.JSON(status, apiassign.ComposeDetail(result))
	}
}

// DELETE /api/students/:studentId/assignments/:role
func UnassignMentorHandler(
	dbAssign kdbassign.AssignmentInterface, studentKey string, roleKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		studentId := c.Param(studentKey)

		role, err := domain.AsMentorRole(c.Param(roleKey))
		if err != nil {
			return apierr.BadRequest(`role should be one of AS, ACS or ARD`, err)
		}

		if err := dbAssign.Unassign(ctx, studentId, role); err != nil {
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// GET /api/students/:studentId/assignments
func GetAssignmentsHandler(
	dbAssign kdbassign.AssignmentInterface, studentKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		studentId := c.Param(studentKey)

		active, err := dbAssign.ActiveFor(ctx, studentId)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		found := slices.Map(slices.ValuesOf(active), apiassign.ComposeSummary)
		return c.JSON(http.StatusOK, found)
	}
}

// DELETE /api/students/:studentId
func OffboardStudentHandler(
	dbAssign kdbassign.AssignmentInterface, studentKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		studentId := c.Param(studentKey)

		if err := dbAssign.Offboard(ctx, studentId); err != nil {
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
