package handler

import (
	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/internal/dto"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// toEventResponse converts a domain event to response DTO
func toEventResponse(event *domain.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:                event.ID,
		Title:             event.Title,
		Description:       event.Description,
		Slug:              event.Slug,
		Category:          event.Category,
		Tags:              event.Tags,
		StartDate:         event.StartDate.Format(timeFormat),
		EndDate:           event.EndDate.Format(timeFormat),
		Timezone:          event.Timezone,
		LocationType:      event.LocationType,
		Venue:             event.Venue,
		Address:           event.Address,
		City:              event.City,
		State:             event.State,
		Country:           event.Country,
		Capacity:          event.Capacity,
		TicketType:        event.TicketType,
		TicketPrice:       event.TicketPrice,
		ThemeColor:        event.ThemeColor,
		CoverImageURL:     event.CoverImageURL,
		RegistrationCount: event.RegistrationCount,
		CreatedAt:         event.CreatedAt.Format(timeFormat),
		UpdatedAt:         event.UpdatedAt.Format(timeFormat),
	}
	if event.Organizer != nil {
		resp.Organizer = &dto.OrganizerResponse{
			ID:       event.Organizer.ID,
			Name:     event.Organizer.Name,
			ImageURL: event.Organizer.ImageURL,
		}
	}
	return resp
}

// toEventListResponse converts a page of events to response DTO
func toEventListResponse(events []*domain.Event, page, limit int, total int64) *dto.EventListResponse {
	responses := make([]*dto.EventResponse, len(events))
	for i, event := range events {
		responses[i] = toEventResponse(event)
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &dto.EventListResponse{
		Events:     responses,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// toRegistrationResponse converts a domain registration to response DTO
func toRegistrationResponse(reg *domain.Registration) *dto.RegistrationResponse {
	resp := &dto.RegistrationResponse{
		ID:            reg.ID,
		EventID:       reg.EventID,
		AttendeeName:  reg.AttendeeName,
		AttendeeEmail: reg.AttendeeEmail,
		TicketCode:    reg.TicketCode,
		CheckedIn:     reg.CheckedIn,
		Status:        reg.Status,
		RegisteredAt:  reg.RegisteredAt.Format(timeFormat),
	}
	if reg.CheckedInAt != nil {
		checkedInAt := reg.CheckedInAt.Format(timeFormat)
		resp.CheckedInAt = &checkedInAt
	}
	if reg.Event != nil {
		resp.Event = toEventResponse(reg.Event)
	}
	return resp
}

// toRegistrationListResponse converts registrations to response DTO
func toRegistrationListResponse(regs []*domain.Registration) *dto.RegistrationListResponse {
	responses := make([]*dto.RegistrationResponse, len(regs))
	for i, reg := range regs {
		responses[i] = toRegistrationResponse(reg)
	}
	return &dto.RegistrationListResponse{
		Registrations: responses,
		Total:         len(responses),
	}
}

// toUserResponse converts a domain user to response DTO
func toUserResponse(user *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                     user.ID,
		Name:                   user.Name,
		Email:                  user.Email,
		ImageURL:               user.ImageURL,
		Plan:                   user.Plan,
		FreeEventsCreated:      user.FreeEventsCreated,
		Interests:              user.Interests,
		City:                   user.City,
		State:                  user.State,
		Country:                user.Country,
		HasCompletedOnboarding: user.HasCompletedOnboarding,
		CreatedAt:              user.CreatedAt.Format(timeFormat),
	}
}

// toCategoryCountResponses converts category counts to response DTO
func toCategoryCountResponses(counts []domain.CategoryCount) []dto.CategoryCountResponse {
	responses := make([]dto.CategoryCountResponse, len(counts))
	for i, count := range counts {
		responses[i] = dto.CategoryCountResponse{
			Category: count.Category,
			Count:    count.Count,
		}
	}
	return responses
}
