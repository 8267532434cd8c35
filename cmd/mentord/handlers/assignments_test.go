package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/mentorlink/mentorlink/internal/testutils/http"
	apiassign "github.com/mentorlink/mentorlink/pkg/api/types/assignments"
	"github.com/mentorlink/mentorlink/pkg/domain"
	dbmock "github.com/mentorlink/mentorlink/pkg/domain/assignment/db/mock"
	domerr "github.com/mentorlink/mentorlink/pkg/domain/errors"
	"github.com/mentorlink/mentorlink/pkg/utils/cmp"
	"github.com/mentorlink/mentorlink/pkg/utils/rfctime"
	"github.com/mentorlink/mentorlink/pkg/utils/try"

	"github.com/mentorlink/mentorlink/cmd/mentord/handlers"
)

func TestAssignMentorHandler(t *testing.T) {

	assignedAt := try.To(rfctime.ParseRFC3339DateTime(
		"2024-10-01T12:00:00.000+09:00",
	)).OrFatal(t).Time()

	t.Run("When a fresh assignment is made, it should respond 201 with the provisioned rooms", func(t *testing.T) {
		mckAssign := dbmock.NewAssignmentInterface()
		mckAssign.Impl.Assign = func(
			ctx context.Context, studentId string, mentorId string, role domain.MentorRole,
		) (domain.AssignmentResult, error) {
			return domain.AssignmentResult{
				Assignment: domain.MentorAssignment{
					Id: 1, StudentId: studentId, MentorId: mentorId,
					Role: role, Status: domain.AssignmentActive, AssignedAt: assignedAt,
				},
				PrivateRoomCreated: true,
				PrivateRoomId:      "room-private-1",
				GroupRoomCreated:   true,
				GroupRoomId:        "room-group-1",
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/assignments",
			bytes.NewBufferString(`{"studentId":"student-1","mentorId":"mentor-as","role":"AS"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.AssignMentorHandler(mckAssign)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Result().StatusCode != http.StatusCreated {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusCreated)
		}

		actual := apiassign.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json: %s", err)
		}
		expected := apiassign.Detail{
			Assignment: apiassign.Summary{
				Id: 1, StudentId: "student-1", MentorId: "mentor-as",
				Role: "AS", Status: "active", AssignedAt: rfctime.RFC3339(assignedAt),
			},
			PrivateRoomCreated: true, PrivateRoomId: "room-private-1",
			GroupRoomCreated: true, GroupRoomId: "room-group-1",
		}
		if !actual.Equal(&expected) {
			t.Errorf("response:\n%+v\nwant:\n%+v", actual, expected)
		}

		if mckAssign.Calls.Assign.Times() != 1 {
			t.Fatalf("Assign should be called once, but %d times", mckAssign.Calls.Assign.Times())
		}
		call := mckAssign.Calls.Assign[0]
		if call.StudentId != "student-1" || call.MentorId != "mentor-as" || call.Role != domain.AS {
			t.Errorf("Assign called with unexpected args: %+v", call)
		}
	})

	t.Run("When the role was held by another mentor, it should respond 200 with reassigned = true", func(t *testing.T) {
		mckAssign := dbmock.NewAssignmentInterface()
		mckAssign.Impl.Assign = func(
			ctx context.Context, studentId string, mentorId string, role domain.MentorRole,
		) (domain.AssignmentResult, error) {
			return domain.AssignmentResult{
				Assignment: domain.MentorAssignment{
					Id: 1, StudentId: studentId, MentorId: mentorId,
					Role: role, Status: domain.AssignmentActive, AssignedAt: assignedAt,
				},
				Reassigned: true,
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/assignments",
			bytes.NewBufferString(`{"studentId":"student-1","mentorId":"mentor-as-2","role":"AS"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.AssignMentorHandler(mckAssign)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Result().StatusCode != http.StatusOK {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusOK)
		}

		actual := apiassign.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json: %s", err)
		}
		if !actual.Reassigned {
			t.Errorf("reassigned should be true: %+v", actual)
		}
		if actual.PrivateRoomCreated || actual.GroupRoomCreated {
			t.Errorf("reassignment should not provision rooms implicitly: %+v", actual)
		}
	})

	for name, testcase := range map[string]struct {
		err        error
		statusCode int
	}{
		"When the student is not found, it should respond 404": {
			err: domerr.ErrStudentNotFound, statusCode: http.StatusNotFound,
		},
		"When the mentor is not found, it should respond 404": {
			err: domerr.ErrMentorNotFound, statusCode: http.StatusNotFound,
		},
		"When the specialization does not match, it should respond 400": {
			err: domerr.ErrSpecializationMismatch, statusCode: http.StatusBadRequest,
		},
		"When the same mentor already holds the role, it should respond 409": {
			err: domerr.ErrAlreadyAssigned, statusCode: http.StatusConflict,
		},
		"When the database fails, it should respond 500": {
			err: errors.New("fake error"), statusCode: http.StatusInternalServerError,
		},
	} {
		t.Run(name, func(t *testing.T) {
			mckAssign := dbmock.NewAssignmentInterface()
			mckAssign.Impl.Assign = func(
				ctx context.Context, studentId string, mentorId string, role domain.MentorRole,
			) (domain.AssignmentResult, error) {
				return domain.AssignmentResult{}, testcase.err
			}

			e := echo.New()
			c, _ := httptestutil.Post(
				e, "/api/assignments",
				bytes.NewBufferString(`{"studentId":"student-1","mentorId":"mentor-as","role":"AS"}`),
				httptestutil.ContentType("application/json"),
			)

			testee := handlers.AssignMentorHandler(mckAssign)
			err := testee(c)
			if err == nil {
				t.Fatal("it should cause error, but not")
			}
			httperr := new(echo.HTTPError)
			if !errors.As(err, &httperr) {
				t.Fatalf("error is not echo.HTTPError: %+v", err)
			}
			if httperr.Code != testcase.statusCode {
				t.Errorf("status code %d != %d", httperr.Code, testcase.statusCode)
			}
		})
	}

	t.Run("When the role is unknown, it should respond 400 without calling the database", func(t *testing.T) {
		mckAssign := dbmock.NewAssignmentInterface()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/assignments",
			bytes.NewBufferString(`{"studentId":"student-1","mentorId":"mentor-as","role":"CTO"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.AssignMentorHandler(mckAssign)
		err := testee(c)
		if err == nil {
			t.Fatal("it should cause error, but not")
		}
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		}
		if httperr.Code != http.StatusBadRequest {
			t.Errorf("status code %d != %d", httperr.Code, http.StatusBadRequest)
		}
		if mckAssign.Calls.Assign.Times() != 0 {
			t.Errorf("Assign should not be called, but %d times", mckAssign.Calls.Assign.Times())
		}
	})
}

func TestUnassignMentorHandler(t *testing.T) {

	t.Run("When unassignment succeeds, it should respond 204", func(t *testing.T) {
		mckAssign := dbmock.NewAssignmentInterface()
		mckAssign.Impl.Unassign = func(ctx context.Context, studentId string, role domain.MentorRole) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/students/student-1/assignments/ACS")
		c.SetParamNames("studentId", "role")
		c.SetParamValues("student-1", "ACS")

		testee := handlers.UnassignMentorHandler(mckAssign, "studentId", "role")
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Result().StatusCode != http.StatusNoContent {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusNoContent)
		}

		if mckAssign.Calls.Unassign.Times() != 1 {
			t.Fatalf("Unassign should be called once, but %d times", mckAssign.Calls.Unassign.Times())
		}
		call := mckAssign.Calls.Unassign[0]
		if call.StudentId != "student-1" || call.Role != domain.ACS {
			t.Errorf("Unassign called with unexpected args: %+v", call)
		}
	})

	t.Run("When the role is unknown, it should respond 400", func(t *testing.T) {
		mckAssign := dbmock.NewAssignmentInterface()

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/students/student-1/assignments/boss")
		c.SetParamNames("studentId", "role")
		c.SetParamValues("student-1", "boss")

		testee := handlers.UnassignMentorHandler(mckAssign, "studentId", "role")
		err := testee(c)
		if err == nil {
			t.Fatal("it should cause error, but not")
		}
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		}
		if httperr.Code != http.StatusBadRequest {
			t.Errorf("status code %d != %d", httperr.Code, http.StatusBadRequest)
		}
	})
}

func TestGetAssignmentsHandler(t *testing.T) {

	t.Run("When assignments are found, it should list them as JSON", func(t *testing.T) {
		assignedAt := try.To(rfctime.ParseRFC3339DateTime(
			"2024-10-01T12:00:00.000+09:00",
		)).OrFatal(t).Time()

		mckAssign := dbmock.NewAssignmentInterface()
		mckAssign.Impl.ActiveFor = func(
			ctx context.Context, studentId string,
		) (map[domain.MentorRole]domain.MentorAssignment, error) {
			return map[domain.MentorRole]domain.MentorAssignment{
				domain.AS: {
					Id: 1, StudentId: studentId, MentorId: "mentor-as",
					Role: domain.AS, Status: domain.AssignmentActive, AssignedAt: assignedAt,
				},
				domain.ARD: {
					Id: 2, StudentId: studentId, MentorId: "mentor-ard",
					Role: domain.ARD, Status: domain.AssignmentActive, AssignedAt: assignedAt,
				},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/students/student-1/assignments")
		c.SetParamNames("studentId")
		c.SetParamValues("student-1")

		testee := handlers.GetAssignmentsHandler(mckAssign, "studentId")
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		actual := []apiassign.Summary{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json: %s", err)
		}
		expected := []apiassign.Summary{
			{
				Id: 1, StudentId: "student-1", MentorId: "mentor-as",
				Role: "AS", Status: "active", AssignedAt: rfctime.RFC3339(assignedAt),
			},
			{
				Id: 2, StudentId: "student-1", MentorId: "mentor-ard",
				Role: "ARD", Status: "active", AssignedAt: rfctime.RFC3339(assignedAt),
			},
		}
		if !cmp.SliceContentEqWith(
			actual, expected,
			func(a, b apiassign.Summary) bool { return a.Equal(&b) },
		) {
			t.Errorf("response:\n%+v\nwant:\n%+v", actual, expected)
		}
	})
}

func TestOffboardStudentHandler(t *testing.T) {

	t.Run("When offboarding succeeds, it should respond 204", func(t *testing.T) {
		mckAssign := dbmock.NewAssignmentInterface()
		mckAssign.Impl.Offboard = func(ctx context.Context, studentId string) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/students/student-1")
		c.SetParamNames("studentId")
		c.SetParamValues("student-1")

		testee := handlers.OffboardStudentHandler(mckAssign, "studentId")
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Result().StatusCode != http.StatusNoContent {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusNoContent)
		}
		if mckAssign.Calls.Offboard.Times() != 1 {
			t.Fatalf("Offboard should be called once, but %d times", mckAssign.Calls.Offboard.Times())
		}
	})
}
