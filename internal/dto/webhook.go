package dto

// UserWebhookEvent is the identity provider's webhook payload. Only
// user.created is acted on; other types are acknowledged and dropped.
type UserWebhookEvent struct {
	Type string          `json:"type"`
	Data WebhookUserData `json:"data"`
}

// WebhookUserData carries the provider's user record
type WebhookUserData struct {
	ID             string                `json:"id"`
	FirstName      string                `json:"first_name"`
	LastName       string                `json:"last_name"`
	ImageURL       string                `json:"image_url"`
	EmailAddresses []WebhookEmailAddress `json:"email_addresses"`
}

// WebhookEmailAddress is one of the provider's email entries
type WebhookEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the first email address, the provider lists the
// primary one first.
func (d *WebhookUserData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// FullName joins first and last name, either may be absent.
func (d *WebhookUserData) FullName() string {
	switch {
	case d.FirstName != "" && d.LastName != "":
		return d.FirstName + " " + d.LastName
	case d.FirstName != "":
		return d.FirstName
	default:
		return d.LastName
	}
}
