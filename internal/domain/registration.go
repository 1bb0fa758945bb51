package domain

import "time"

// RegistrationStatus values
const (
	RegistrationConfirmed = "CONFIRMED"
	RegistrationCancelled = "CANCELLED"
)

// Registration ties an attendee to an event. At most one CONFIRMED
// registration may exist per (event, user) pair; cancellation is a soft
// transition that frees the slot and keeps the row for the audit trail.
type Registration struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	Event         *Event     `json:"event,omitempty"`
	UserID        string     `json:"user_id"`
	AttendeeName  string     `json:"attendee_name"`
	AttendeeEmail string     `json:"attendee_email"`
	TicketCode    string     `json:"ticket_code"`
	CheckedIn     bool       `json:"checked_in"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
	Status        string     `json:"status"`
	RegisteredAt  time.Time  `json:"registered_at"`
}

// IsActive reports whether the registration still holds a slot.
func (r *Registration) IsActive() bool {
	return r.Status == RegistrationConfirmed
}
