package welcome_test

import (
	"context"
	"errors"
	"log"
	"testing"

	"github.com/mentorlink/mentorlink/pkg/domain"
	kdbassign "github.com/mentorlink/mentorlink/pkg/domain/assignment/db"
	dbmock "github.com/mentorlink/mentorlink/pkg/domain/message/db/mock"
	"github.com/mentorlink/mentorlink/pkg/welcome"
)

type recordingPublisher struct {
	messages []domain.ChatMessage
}

func (r *recordingPublisher) PublishMessage(m domain.ChatMessage) {
	r.messages = append(r.messages, m)
}

func TestGroupRoomHook(t *testing.T) {

	ev := kdbassign.ProvisioningEvent{
		StudentId: "student-1", MentorId: "mentor-ard", Role: domain.ARD,
		GroupRoomId: "room-g",
	}

	t.Run("When the greeting is stored, it should be published to the room", func(t *testing.T) {
		mckMessage := dbmock.NewMessageInterface()
		mckMessage.Impl.Create = func(
			ctx context.Context, spec domain.MessageSpec,
		) (domain.ChatMessage, error) {
			return domain.ChatMessage{
				Id: "message-1", RoomId: spec.RoomId, SenderId: spec.SenderId,
				Content: spec.Content, Kind: spec.Kind, Seq: 1,
			}, nil
		}
		pub := &recordingPublisher{}

		testee := welcome.GroupRoomHook(mckMessage, pub, log.Default())
		testee(context.Background(), ev)

		if mckMessage.Calls.Create.Times() != 1 {
			t.Fatalf("Create should be called once, but %d times", mckMessage.Calls.Create.Times())
		}
		spec := mckMessage.Calls.Create[0]
		if spec.RoomId != "room-g" || spec.SenderId != "mentor-ard" {
			t.Errorf("greeting stored with unexpected spec: %+v", spec)
		}
		if spec.Content == nil || *spec.Content == "" {
			t.Errorf("greeting should have content: %+v", spec)
		}

		if len(pub.messages) != 1 || pub.messages[0].Id != "message-1" {
			t.Errorf("the durable record should be published: %+v", pub.messages)
		}
	})

	t.Run("When storing fails, it should publish nothing and not panic", func(t *testing.T) {
		mckMessage := dbmock.NewMessageInterface()
		mckMessage.Impl.Create = func(
			ctx context.Context, spec domain.MessageSpec,
		) (domain.ChatMessage, error) {
			return domain.ChatMessage{}, errors.New("fake error")
		}
		pub := &recordingPublisher{}

		testee := welcome.GroupRoomHook(mckMessage, pub, log.New(log.Writer(), "", 0))
		testee(context.Background(), ev)

		if len(pub.messages) != 0 {
			t.Errorf("nothing should be published, but got %+v", pub.messages)
		}
	})
}
