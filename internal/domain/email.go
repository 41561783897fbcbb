package domain

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventAnnouncementEmailData holds data for the "event_created" email.
type EventAnnouncementEmailData struct {
	To             string
	DepartmentName string
	Event          Event
	DateLabel      string
}

// EventReminderEmailData holds data for the "event_reminder" email.
type EventReminderEmailData struct {
	To             string
	DepartmentName string
	DateLabel      string
	Events         []Event
}
