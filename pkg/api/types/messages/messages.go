package messages

import (
	"github.com/mentorlink/mentorlink/pkg/domain"
	"github.com/mentorlink/mentorlink/pkg/utils/cmp"
	"github.com/mentorlink/mentorlink/pkg/utils/rfctime"
	"github.com/mentorlink/mentorlink/pkg/utils/slices"
)

// SendRequest carries one send attempt. TempId is generated by the
// client and echoed back in the response, so the client can reconcile
// its optimistic rendering with the durable record.
type SendRequest struct {
	TempId      string       `json:"tempId"`
	SenderId    string       `json:"senderId"`
	Content     *string      `json:"content,omitempty"`
	Kind        string       `json:"kind"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type EditRequest struct {
	EditorId string `json:"editorId"`
	Content  string `json:"content"`
}

type MarkAsReadRequest struct {
	UserId string `json:"userId"`
}

type Attachment struct {
	FileUrl      string  `json:"fileUrl"`
	FileName     string  `json:"fileName"`
	FileType     string  `json:"fileType"`
	ThumbnailUrl *string `json:"thumbnailUrl,omitempty"`
}

func ComposeAttachment(a domain.Attachment) Attachment {
	return Attachment{
		FileUrl:      a.FileUrl,
		FileName:     a.FileName,
		FileType:     a.FileType,
		ThumbnailUrl: a.ThumbnailUrl,
	}
}

func (a *Attachment) Equal(o *Attachment) bool {
	if a == nil || o == nil {
		return a == nil && o == nil
	}
	if (a.ThumbnailUrl == nil) != (o.ThumbnailUrl == nil) {
		return false
	}
	if a.ThumbnailUrl != nil && *a.ThumbnailUrl != *o.ThumbnailUrl {
		return false
	}
	return a.FileUrl == o.FileUrl &&
		a.FileName == o.FileName &&
		a.FileType == o.FileType
}

type Detail struct {
	Id          string          `json:"id"`
	RoomId      string          `json:"roomId"`
	SenderId    string          `json:"senderId"`
	Content     *string         `json:"content,omitempty"`
	Kind        string          `json:"kind"`
	CreatedAt   rfctime.RFC3339 `json:"createdAt"`
	Seq         int64           `json:"seq"`
	IsEdited    bool            `json:"isEdited"`
	Attachments []Attachment    `json:"attachments,omitempty"`

	// echoed from SendRequest. Empty on listings and pushed events.
	TempId string `json:"tempId,omitempty"`
}

func ComposeDetail(m domain.ChatMessage) Detail {
	return Detail{
		Id:          m.Id,
		RoomId:      m.RoomId,
		SenderId:    m.SenderId,
		Content:     m.Content,
		Kind:        m.Kind.String(),
		CreatedAt:   rfctime.RFC3339(m.CreatedAt),
		Seq:         m.Seq,
		IsEdited:    m.IsEdited,
		Attachments: slices.Map(m.Attachments, ComposeAttachment),
	}
}

func (d *Detail) Equal(o *Detail) bool {
	if d == nil || o == nil {
		return d == nil && o == nil
	}
	if (d.Content == nil) != (o.Content == nil) {
		return false
	}
	if d.Content != nil && *d.Content != *o.Content {
		return false
	}
	return d.Id == o.Id &&
		d.RoomId == o.RoomId &&
		d.SenderId == o.SenderId &&
		d.Kind == o.Kind &&
		d.CreatedAt.Equal(&o.CreatedAt) &&
		d.Seq == o.Seq &&
		d.IsEdited == o.IsEdited &&
		d.TempId == o.TempId &&
		cmp.SliceContentEqWith(
			d.Attachments, o.Attachments,
			func(a, b Attachment) bool { return a.Equal(&b) },
		)
}

type ReadStatus struct {
	RoomId     string          `json:"roomId"`
	UserId     string          `json:"userId"`
	LastReadAt rfctime.RFC3339 `json:"lastReadAt"`
}

func ComposeReadStatus(r domain.ReadStatus) ReadStatus {
	return ReadStatus{
		RoomId:     r.RoomId,
		UserId:     r.UserId,
		LastReadAt: rfctime.RFC3339(r.LastReadAt),
	}
}

// Event is the payload of a room subscription.
type Event struct {
	Type    string      `json:"type"`
	Message *Detail     `json:"message,omitempty"`
	Read    *ReadStatus `json:"read,omitempty"`
}

func ComposeEvent(ev domain.RoomEvent) Event {
	e := Event{Type: string(ev.Type)}
	if ev.Message != nil {
		d := ComposeDetail(*ev.Message)
		e.Message = &d
	}
	if ev.Read != nil {
		r := ComposeReadStatus(*ev.Read)
		e.Read = &r
	}
	return e
}
