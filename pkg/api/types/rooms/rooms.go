package rooms

import (
	"github.com/mentorlink/mentorlink/pkg/domain"
	"github.com/mentorlink/mentorlink/pkg/utils/cmp"
	"github.com/mentorlink/mentorlink/pkg/utils/rfctime"
	"github.com/mentorlink/mentorlink/pkg/utils/slices"
)

type EnsurePrivateRequest struct {
	StudentId string `json:"studentId"`
	Role      string `json:"role"`
}

type Participant struct {
	UserId     string          `json:"userId"`
	IsActive   bool            `json:"isActive"`
	LastReadAt rfctime.RFC3339 `json:"lastReadAt"`
}

func ComposeParticipant(p domain.Participant) Participant {
	return Participant{
		UserId:     p.UserId,
		IsActive:   p.IsActive,
		LastReadAt: rfctime.RFC3339(p.LastReadAt),
	}
}

func (p *Participant) Equal(o *Participant) bool {
	if p == nil || o == nil {
		return p == nil && o == nil
	}
	return p.UserId == o.UserId &&
		p.IsActive == o.IsActive &&
		p.LastReadAt.Equal(&o.LastReadAt)
}

type Detail struct {
	Id           string           `json:"id"`
	Kind         string           `json:"kind"`
	StudentId    string           `json:"studentId"`
	Role         *string          `json:"role,omitempty"`
	Status       string           `json:"status"`
	CreatedAt    rfctime.RFC3339  `json:"createdAt"`
	DeletedAt    *rfctime.RFC3339 `json:"deletedAt,omitempty"`
	Participants []Participant    `json:"participants"`
	UnreadCount  int              `json:"unreadCount"`
}

func ComposeDetail(s domain.RoomSummary) Detail {
	var role *string
	if s.Room.Role != nil {
		r := s.Room.Role.String()
		role = &r
	}
	var deletedAt *rfctime.RFC3339
	if s.Room.DeletedAt != nil {
		d := rfctime.RFC3339(*s.Room.DeletedAt)
		deletedAt = &d
	}
	return Detail{
		Id:           s.Room.Id,
		Kind:         s.Room.Kind.String(),
		StudentId:    s.Room.StudentId,
		Role:         role,
		Status:       s.Room.Status.String(),
		CreatedAt:    rfctime.RFC3339(s.Room.CreatedAt),
		DeletedAt:    deletedAt,
		Participants: slices.Map(s.Participants, ComposeParticipant),
		UnreadCount:  s.UnreadCount,
	}
}

func (d *Detail) Equal(o *Detail) bool {
	if d == nil || o == nil {
		return d == nil && o == nil
	}
	if (d.Role == nil) != (o.Role == nil) {
		return false
	}
	if d.Role != nil && *d.Role != *o.Role {
		return false
	}
	return d.Id == o.Id &&
		d.Kind == o.Kind &&
		d.StudentId == o.StudentId &&
		d.Status == o.Status &&
		d.CreatedAt.Equal(&o.CreatedAt) &&
		d.DeletedAt.Equal(o.DeletedAt) &&
		d.UnreadCount == o.UnreadCount &&
		cmp.SliceContentEqWith(
			d.Participants, o.Participants,
			func(a, b Participant) bool { return a.Equal(&b) },
		)
}
