package handler

import (
	"github.com/memberhub/member-console/internal/core/domain"
	"github.com/memberhub/member-console/internal/core/ports"
)

func toMemberResponse(m *domain.Member) memberResponse {
	return memberResponse{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Roles:       m.Roles,
	}
}

func toMemberListResponse(members []domain.Member) []memberResponse {
	out := make([]memberResponse, len(members))
	for i := range members {
		out[i] = toMemberResponse(&members[i])
	}
	return out
}

func toUpdateInput(req updateMemberRequest) ports.UpdateMemberInput {
	return ports.UpdateMemberInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	}
}
