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
	apirooms "github.com/mentorlink/mentorlink/pkg/api/types/rooms"
	"github.com/mentorlink/mentorlink/pkg/domain"
	kpgerr "github.com/mentorlink/mentorlink/pkg/domain/errors/dberrors/postgres"
	dbmock "github.com/mentorlink/mentorlink/pkg/domain/room/db/mock"
	"github.com/mentorlink/mentorlink/pkg/utils/pointer"
	"github.com/mentorlink/mentorlink/pkg/utils/rfctime"
	"github.com/mentorlink/mentorlink/pkg/utils/slices"
	"github.com/mentorlink/mentorlink/pkg/utils/try"

	"github.com/mentorlink/mentorlink/cmd/mentord/handlers"
)

func TestEnsurePrivateRoomHandler(t *testing.T) {

	createdAt := try.To(rfctime.ParseRFC3339DateTime(
		"2024-10-01T12:00:00.000+09:00",
	)).OrFatal(t).Time()

	theRoom := func(roomId string) domain.RoomSummary {
		return domain.RoomSummary{
			Room: domain.ChatRoom{
				Id: roomId, Kind: domain.RoomPrivate, StudentId: "student-1",
				Role: pointer.Ref(domain.AS), Status: domain.RoomActive,
				CreatedAt: createdAt,
			},
			Participants: []domain.Participant{
				{RoomId: roomId, UserId: "student-1", IsActive: true},
				{RoomId: roomId, UserId: "mentor-as", IsActive: true},
			},
		}
	}

	t.Run("When the room is newly provisioned, it should respond 201", func(t *testing.T) {
		mckRoom := dbmock.NewRoomInterface()
		mckRoom.Impl.EnsurePrivateRoom = func(
			ctx context.Context, studentId string, role domain.MentorRole,
		) (string, bool, error) {
			return "room-1", true, nil
		}
		mckRoom.Impl.Get = func(ctx context.Context, roomId string) (domain.RoomSummary, error) {
			return theRoom(roomId), nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/rooms/private",
			bytes.NewBufferString(`{"studentId":"student-1","role":"AS"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.EnsurePrivateRoomHandler(mckRoom)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Result().StatusCode != http.StatusCreated {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusCreated)
		}

		actual := apirooms.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json: %s", err)
		}
		if actual.Id != "room-1" || actual.Kind != "private" {
			t.Errorf("unexpected room in response: %+v", actual)
		}

		if mckRoom.Calls.EnsurePrivateRoom.Times() != 1 {
			t.Fatalf(
				"EnsurePrivateRoom should be called once, but %d times",
				mckRoom.Calls.EnsurePrivateRoom.Times(),
			)
		}
		call := mckRoom.Calls.EnsurePrivateRoom[0]
		if call.StudentId != "student-1" || call.Role != domain.AS {
			t.Errorf("EnsurePrivateRoom called with unexpected args: %+v", call)
		}
	})

	t.Run("When the room already exists, it should respond 200 with the same room", func(t *testing.T) {
		mckRoom := dbmock.NewRoomInterface()
		mckRoom.Impl.EnsurePrivateRoom = func(
			ctx context.Context, studentId string, role domain.MentorRole,
		) (string, bool, error) {
			return "room-1", false, nil
		}
		mckRoom.Impl.Get = func(ctx context.Context, roomId string) (domain.RoomSummary, error) {
			return theRoom(roomId), nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/rooms/private",
			bytes.NewBufferString(`{"studentId":"student-1","role":"AS"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.EnsurePrivateRoomHandler(mckRoom)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Result().StatusCode != http.StatusOK {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusOK)
		}
	})

	t.Run("When the student has no active assignment for the role, it should respond 404", func(t *testing.T) {
		mckRoom := dbmock.NewRoomInterface()
		mckRoom.Impl.EnsurePrivateRoom = func(
			ctx context.Context, studentId string, role domain.MentorRole,
		) (string, bool, error) {
			return "", false, kpgerr.Missing{
				Table: "mentor_assignment", Identity: "student student-1 / role AS (active)",
			}
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/rooms/private",
			bytes.NewBufferString(`{"studentId":"student-1","role":"AS"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.EnsurePrivateRoomHandler(mckRoom)
		err := testee(c)
		if err == nil {
			t.Fatal("it should cause error, but not")
		}
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		}
		if httperr.Code != http.StatusNotFound {
			t.Errorf("status code %d != %d", httperr.Code, http.StatusNotFound)
		}
	})
}

func TestGetRoomHandler(t *testing.T) {

	createdAt := try.To(rfctime.ParseRFC3339DateTime(
		"2024-10-01T12:00:00.000+09:00",
	)).OrFatal(t).Time()

	t.Run("When the room is found, it should respond its detail", func(t *testing.T) {
		mckRoom := dbmock.NewRoomInterface()
		mckRoom.Impl.Get = func(ctx context.Context, roomId string) (domain.RoomSummary, error) {
			return domain.RoomSummary{
				Room: domain.ChatRoom{
					Id: roomId, Kind: domain.RoomGroup, StudentId: "student-1",
					Status: domain.RoomActive, CreatedAt: createdAt,
				},
				Participants: []domain.Participant{
					{RoomId: roomId, UserId: "student-1", IsActive: true, LastReadAt: createdAt},
					{RoomId: roomId, UserId: "mentor-as", IsActive: true, LastReadAt: createdAt},
					{RoomId: roomId, UserId: "mentor-acs", IsActive: true, LastReadAt: createdAt},
					{RoomId: roomId, UserId: "mentor-ard", IsActive: true, LastReadAt: createdAt},
				},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/rooms/room-g")
		c.SetParamNames("roomId")
		c.SetParamValues("room-g")

		testee := handlers.GetRoomHandler(mckRoom, "roomId")
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		actual := apirooms.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json: %s", err)
		}
		if actual.Id != "room-g" || actual.Kind != "group" || len(actual.Participants) != 4 {
			t.Errorf("unexpected room in response: %+v", actual)
		}
	})

	t.Run("When the room does not exist, it should respond 404", func(t *testing.T) {
		mckRoom := dbmock.NewRoomInterface()
		mckRoom.Impl.Get = func(ctx context.Context, roomId string) (domain.RoomSummary, error) {
			return domain.RoomSummary{}, kpgerr.Missing{Table: "chat_room", Identity: roomId}
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/rooms/no-such-room")
		c.SetParamNames("roomId")
		c.SetParamValues("no-such-room")

		testee := handlers.GetRoomHandler(mckRoom, "roomId")
		err := testee(c)
		if err == nil {
			t.Fatal("it should cause error, but not")
		}
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		}
		if httperr.Code != http.StatusNotFound {
			t.Errorf("status code %d != %d", httperr.Code, http.StatusNotFound)
		}
	})
}

func TestListRoomsHandler(t *testing.T) {

	createdAt := try.To(rfctime.ParseRFC3339DateTime(
		"2024-10-01T12:00:00.000+09:00",
	)).OrFatal(t).Time()

	t.Run("When the user has rooms, it should list them with unread counts", func(t *testing.T) {
		mckRoom := dbmock.NewRoomInterface()
		mckRoom.Impl.ListForUser = func(
			ctx context.Context, userId string,
		) ([]domain.RoomSummary, error) {
			return []domain.RoomSummary{
				{
					Room: domain.ChatRoom{
						Id: "room-g", Kind: domain.RoomGroup, StudentId: userId,
						Status: domain.RoomActive, CreatedAt: createdAt,
					},
					UnreadCount: 3,
				},
				{
					Room: domain.ChatRoom{
						Id: "room-p", Kind: domain.RoomPrivate, StudentId: userId,
						Role: pointer.Ref(domain.ACS), Status: domain.RoomActive,
						CreatedAt: createdAt,
					},
					UnreadCount: 0,
				},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/users/student-1/rooms")
		c.SetParamNames("userId")
		c.SetParamValues("student-1")

		testee := handlers.ListRoomsHandler(mckRoom, "userId")
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		actual := []apirooms.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json: %s", err)
		}
		ids := slices.Map(actual, func(d apirooms.Detail) string { return d.Id })
		if len(ids) != 2 || ids[0] != "room-g" || ids[1] != "room-p" {
			t.Errorf("unexpected rooms in response: %+v", ids)
		}
		if actual[0].UnreadCount != 3 {
			t.Errorf("unread count should survive composition: %+v", actual[0])
		}
	})
}

func TestLeaveRoomHandler(t *testing.T) {

	t.Run("When leaving succeeds, it should respond 204", func(t *testing.T) {
		mckRoom := dbmock.NewRoomInterface()
		mckRoom.Impl.Leave = func(ctx context.Context, roomId string, userId string) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/rooms/room-1/participants/mentor-as")
		c.SetParamNames("roomId", "userId")
		c.SetParamValues("room-1", "mentor-as")

		testee := handlers.LeaveRoomHandler(mckRoom, "roomId", "userId")
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Result().StatusCode != http.StatusNoContent {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusNoContent)
		}
		if mckRoom.Calls.Leave.Times() != 1 {
			t.Fatalf("Leave should be called once, but %d times", mckRoom.Calls.Leave.Times())
		}
	})
}
