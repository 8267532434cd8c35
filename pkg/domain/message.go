package domain

import (
	"fmt"
	"time"
)

type MessageKind string

const (
	MessageText  MessageKind = "text"
	MessageImage MessageKind = "image"
	MessageFile  MessageKind = "file"
)

func (mk MessageKind) String() string {
	return string(mk)
}

func AsMessageKind(s string) (MessageKind, error) {
	switch s {
	case string(MessageText):
		return MessageText, nil
	case string(MessageImage):
		return MessageImage, nil
	case string(MessageFile):
		return MessageFile, nil
	default:
		return "", fmt.Errorf("'%s' is not MessageKind", s)
	}
}

// ChatMessage is one entry of a room's append-only log.
//
// Ordering within a room is (CreatedAt, Seq) ascending; Seq breaks ties
// in insertion order. Messages are never mutated except the explicit
// edit via EditMessage, which flips IsEdited.
type ChatMessage struct {
	Id       string `json:"id"`
	RoomId   string `json:"roomId"`
	SenderId string `json:"senderId"`

	// nil for attachment-only messages.
	Content *string `json:"content,omitempty"`

	Kind      MessageKind `json:"kind"`
	CreatedAt time.Time   `json:"createdAt"`

	// insertion order within the room. Strictly increasing; clients use it
	// as the re-sync cursor after reconnect.
	Seq int64 `json:"seq"`

	IsEdited    bool         `json:"isEdited"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a blob reference owned by exactly one ChatMessage.
// The blob itself lives in external storage; only returned URLs are kept.
type Attachment struct {
	Id           string  `json:"id"`
	MessageId    string  `json:"messageId"`
	FileUrl      string  `json:"fileUrl"`
	FileName     string  `json:"fileName"`
	FileType     string  `json:"fileType"`
	ThumbnailUrl *string `json:"thumbnailUrl,omitempty"`
}

// MessageSpec is a request to append a message to a room's log.
type MessageSpec struct {
	RoomId      string
	SenderId    string
	Content     *string
	Kind        MessageKind
	Attachments []AttachmentSpec
}

type AttachmentSpec struct {
	FileUrl      string
	FileName     string
	FileType     string
	ThumbnailUrl *string
}

// ReadStatus tells other participants how far a user has read a room.
type ReadStatus struct {
	RoomId     string    `json:"roomId"`
	UserId     string    `json:"userId"`
	LastReadAt time.Time `json:"lastReadAt"`
}

type EventType string

const (
	EventMessage EventType = "message"
	EventRead    EventType = "read"
)

// RoomEvent is what a room subscription carries: either a freshly
// committed message or a read-cursor advance.
type RoomEvent struct {
	Type    EventType    `json:"type"`
	Message *ChatMessage `json:"message,omitempty"`
	Read    *ReadStatus  `json:"read,omitempty"`
}
