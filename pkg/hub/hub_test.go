package hub_test

import (
	"testing"
	"time"

	"github.com/mentorlink/mentorlink/pkg/domain"
	"github.com/mentorlink/mentorlink/pkg/hub"
	"github.com/mentorlink/mentorlink/pkg/utils/pointer"
)

func TestHub(t *testing.T) {

	t.Run("When a message is published, every subscriber of the room should receive it", func(t *testing.T) {
		testee := hub.New()

		sub1 := testee.Subscribe("room-1")
		defer sub1.Close()
		sub2 := testee.Subscribe("room-1")
		defer sub2.Close()
		other := testee.Subscribe("room-2")
		defer other.Close()

		msg := domain.ChatMessage{
			Id: "message-1", RoomId: "room-1", SenderId: "student-1",
			Content: pointer.Ref("hello"), Kind: domain.MessageText, Seq: 1,
		}
		testee.PublishMessage(msg)

		for name, sub := range map[string]*hub.Subscription{"sub1": sub1, "sub2": sub2} {
			select {
			case ev := <-sub.Events():
				if ev.Type != domain.EventMessage {
					t.Errorf("%s: event type %s != %s", name, ev.Type, domain.EventMessage)
				}
				if ev.Message == nil || ev.Message.Id != "message-1" {
					t.Errorf("%s: unexpected event payload: %+v", name, ev)
				}
			case <-time.After(time.Second):
				t.Errorf("%s: no event received", name)
			}
		}

		select {
		case ev := <-other.Events():
			t.Errorf("subscriber of another room received an event: %+v", ev)
		default:
		}
	})

	t.Run("When a read status is published, subscribers should receive a read event", func(t *testing.T) {
		testee := hub.New()

		sub := testee.Subscribe("room-1")
		defer sub.Close()

		testee.PublishRead(domain.ReadStatus{
			RoomId: "room-1", UserId: "student-1", LastReadAt: time.Now(),
		})

		select {
		case ev := <-sub.Events():
			if ev.Type != domain.EventRead {
				t.Errorf("event type %s != %s", ev.Type, domain.EventRead)
			}
			if ev.Read == nil || ev.Read.UserId != "student-1" {
				t.Errorf("unexpected event payload: %+v", ev)
			}
		case <-time.After(time.Second):
			t.Error("no event received")
		}
	})

	t.Run("When a subscription is closed, it should receive no more events", func(t *testing.T) {
		testee := hub.New()

		sub := testee.Subscribe("room-1")
		sub.Close()
		sub.Close() // idempotent

		testee.PublishMessage(domain.ChatMessage{Id: "message-1", RoomId: "room-1"})

		if ev, ok := <-sub.Events(); ok {
			t.Errorf("closed subscription received an event: %+v", ev)
		}
	})

	t.Run("When a subscriber's buffer is full, publishing should drop events instead of blocking", func(t *testing.T) {
		testee := hub.New(hub.WithBuffer(1))

		sub := testee.Subscribe("room-1")
		defer sub.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			testee.PublishMessage(domain.ChatMessage{Id: "message-1", RoomId: "room-1", Seq: 1})
			testee.PublishMessage(domain.ChatMessage{Id: "message-2", RoomId: "room-1", Seq: 2})
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish blocked on a slow consumer")
		}

		ev := <-sub.Events()
		if ev.Message == nil || ev.Message.Id != "message-1" {
			t.Errorf("the first event should survive: %+v", ev)
		}
		select {
		case ev := <-sub.Events():
			t.Errorf("the second event should have been dropped: %+v", ev)
		default:
		}
	})
}
