package utils

// Severity is the visual level of a Notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is a transient user-facing message.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// NewNotification returns a Notification; unknown severities fall back to info.
func NewNotification(message string, severity Severity) Notification {
	switch severity {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
	default:
		severity = SeverityInfo
	}
	return Notification{Message: message, Severity: severity}
}
