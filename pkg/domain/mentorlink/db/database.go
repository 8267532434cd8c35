package db

import (
	kassign "github.com/mentorlink/mentorlink/pkg/domain/assignment/db"
	kmessage "github.com/mentorlink/mentorlink/pkg/domain/message/db"
	kroom "github.com/mentorlink/mentorlink/pkg/domain/room/db"
	kuser "github.com/mentorlink/mentorlink/pkg/domain/user/db"
)

type MentorDatabase interface {
	Assignment() kassign.AssignmentInterface
	Room() kroom.RoomInterface
	Message() kmessage.MessageInterface
	User() kuser.UserInterface
	Close() error
}
