package dto

// RegisterRequest represents the request to register for an event
type RegisterRequest struct {
	AttendeeName  string `json:"attendee_name" binding:"required,min=1,max=255"`
	AttendeeEmail string `json:"attendee_email" binding:"required,email"`
}

// Validate validates the RegisterRequest
func (r *RegisterRequest) Validate() (bool, string) {
	if r.AttendeeName == "" {
		return false, "Attendee name is required"
	}
	if r.AttendeeEmail == "" {
		return false, "Attendee email is required"
	}
	return true, ""
}

// CheckInRequest represents the request to check in a ticket at the door
type CheckInRequest struct {
	TicketCode string `json:"ticket_code" binding:"required"`
}

// RegistrationResponse represents the response for a registration
type RegistrationResponse struct {
	ID            string         `json:"id"`
	EventID       string         `json:"event_id"`
	AttendeeName  string         `json:"attendee_name"`
	AttendeeEmail string         `json:"attendee_email"`
	TicketCode    string         `json:"ticket_code"`
	CheckedIn     bool           `json:"checked_in"`
	CheckedInAt   *string        `json:"checked_in_at,omitempty"`
	Status        string         `json:"status"`
	RegisteredAt  string         `json:"registered_at"`
	Event         *EventResponse `json:"event,omitempty"`
}

// RegistrationStatusResponse reports whether the user holds an active
// registration for an event
type RegistrationStatusResponse struct {
	Registered bool   `json:"registered"`
	TicketCode string `json:"ticket_code,omitempty"`
}

// RegistrationListResponse represents a list of registrations
type RegistrationListResponse struct {
	Registrations []*RegistrationResponse `json:"registrations"`
	Total         int                     `json:"total"`
}
