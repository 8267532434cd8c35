// Package welcome seeds greeting messages into freshly provisioned rooms.
package welcome

import (
	"context"
	"log"

	"github.com/mentorlink/mentorlink/pkg/domain"
	kdbassign "github.com/mentorlink/mentorlink/pkg/domain/assignment/db"
	kdbmessage "github.com/mentorlink/mentorlink/pkg/domain/message/db"
	"github.com/mentorlink/mentorlink/pkg/hub"
	"github.com/mentorlink/mentorlink/pkg/utils/pointer"
)

const groupGreeting = "Your mentor team is complete! This room is for you and all three of your mentors."

// Publisher is the part of the hub the hook needs.
type Publisher interface {
	PublishMessage(domain.ChatMessage)
}

var _ Publisher = &hub.Hub{}

// GroupRoomHook builds the post-commit hook that drops a greeting into a
// new group room and fans it out.
//
// Best-effort on purpose: the group room was already committed, so a
// greeting failure is only logged, never surfaced. The message is
// authored by the mentor whose assignment completed the team, who is a
// participant of the room by construction.
func GroupRoomHook(
	messages kdbmessage.MessageInterface, pub Publisher, logger *log.Logger,
) kdbassign.PostCommitHook {
	return func(ctx context.Context, ev kdbassign.ProvisioningEvent) {
		msg, err := messages.Create(ctx, domain.MessageSpec{
			RoomId:   ev.GroupRoomId,
			SenderId: ev.MentorId,
			Content:  pointer.Ref(groupGreeting),
			Kind:     domain.MessageText,
		})
		if err != nil {
			logger.Printf(
				"failed to seed greeting into group room %s (student %s): %s",
				ev.GroupRoomId, ev.StudentId, err,
			)
			return
		}
		pub.PublishMessage(msg)
	}
}
