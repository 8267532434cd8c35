package users

import (
	"github.com/mentorlink/mentorlink/pkg/domain"
)

type RegisterRequest struct {
	Id             string  `json:"id"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Specialization *string `json:"specialization,omitempty"`
}

type Detail struct {
	Id             string  `json:"id"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Specialization *string `json:"specialization,omitempty"`
}

func ComposeDetail(u domain.User) Detail {
	var spec *string
	if u.Specialization != nil {
		s := u.Specialization.String()
		spec = &s
	}
	return Detail{
		Id:             u.Id,
		Name:           u.Name,
		Role:           u.Role.String(),
		Specialization: spec,
	}
}

func (d *Detail) Equal(o *Detail) bool {
	if d == nil || o == nil {
		return d == nil && o == nil
	}
	if (d.Specialization == nil) != (o.Specialization == nil) {
		return false
	}
	if d.Specialization != nil && *d.Specialization != *o.Specialization {
		return false
	}
	return d.Id == o.Id && d.Name == o.Name && d.Role == o.Role
}
