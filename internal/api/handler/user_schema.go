package handler

import "github.com/communityhub/events-api/internal/core/domain"

type updateProfileRequest struct {
	Name  *string `json:"name"  validate:"omitempty,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user organizer admin"`
}

type userListResponse struct {
	Users []*domain.User `json:"users"`
	Count int            `json:"count"`
}
