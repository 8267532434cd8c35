package assignments

import (
	"github.com/mentorlink/mentorlink/pkg/domain"
	"github.com/mentorlink/mentorlink/pkg/utils/rfctime"
)

type AssignRequest struct {
	StudentId string `json:"studentId"`
	MentorId  string `json:"mentorId"`
	Role      string `json:"role"`
}

type Summary struct {
	Id         int             `json:"id"`
	StudentId  string          `json:"studentId"`
	MentorId   string          `json:"mentorId"`
	Role       string          `json:"role"`
	Status     string          `json:"status"`
	AssignedAt rfctime.RFC3339 `json:"assignedAt"`
}

func ComposeSummary(a domain.MentorAssignment) Summary {
	return Summary{
		Id:         a.Id,
		StudentId:  a.StudentId,
		MentorId:   a.MentorId,
		Role:       a.Role.String(),
		Status:     a.Status.String(),
		AssignedAt: rfctime.RFC3339(a.AssignedAt),
	}
}

func (s *Summary) Equal(o *Summary) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	return s.Id == o.Id &&
		s.StudentId == o.StudentId &&
		s.MentorId == o.MentorId &&
		s.Role == o.Role &&
		s.Status == o.Status &&
		s.AssignedAt.Equal(&o.AssignedAt)
}

// Detail is the response of an assignment write: the assignment itself
// plus what got provisioned along the way.
type Detail struct {
	Assignment Summary `json:"assignment"`

	Reassigned bool `json:"reassigned"`

	PrivateRoomCreated bool   `json:"privateRoomCreated"`
	PrivateRoomId      string `json:"privateRoomId,omitempty"`

	GroupRoomCreated bool   `json:"groupRoomCreated"`
	GroupRoomId      string `json:"groupRoomId,omitempty"`
}

func ComposeDetail(r domain.AssignmentResult) Detail {
	return Detail{
		Assignment:         ComposeSummary(r.Assignment),
		Reassigned:         r.Reassigned,
		PrivateRoomCreated: r.PrivateRoomCreated,
		PrivateRoomId:      r.PrivateRoomId,
		GroupRoomCreated:   r.GroupRoomCreated,
		GroupRoomId:        r.GroupRoomId,
	}
}

func (d *Detail) Equal(o *Detail) bool {
	if d == nil || o == nil {
		return d == nil && o == nil
	}
	return d.Assignment.Equal(&o.Assignment) &&
		d.Reassigned == o.Reassigned &&
		d.PrivateRoomCreated == o.PrivateRoomCreated &&
		d.PrivateRoomId == o.PrivateRoomId &&
		d.GroupRoomCreated == o.GroupRoomCreated &&
		d.GroupRoomId == o.GroupRoomId
}
