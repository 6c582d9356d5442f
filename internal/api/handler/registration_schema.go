package handler

import "github.com/communityhub/events-api/internal/core/domain"

type registrationListResponse struct {
	Registrations []*domain.Registration `json:"registrations"`
	Count         int                    `json:"count"`
}

func newRegistrationList(regs []*domain.Registration) registrationListResponse {
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return registrationListResponse{Registrations: regs, Count: len(regs)}
}
