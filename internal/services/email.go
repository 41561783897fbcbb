package services

import (
	"context"
	"fmt"
	"log/slog"

	"deptevents/internal/domain"
	"deptevents/internal/utils"
)

type emailService struct {
	mailer     domain.Mailer
	renderer   domain.EmailTemplateRenderer
	recipients map[string]string
	logger     *slog.Logger
}

// NewEmailService returns an EventNotifier that mails each department's
// configured address. Departments without an address are skipped.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, recipients map[string]string, logger *slog.Logger) domain.EventNotifier {
	return &emailService{mailer: mailer, renderer: renderer, recipients: recipients, logger: logger}
}

// EventCreated sends the "event_created" announcement.
func (s *emailService) EventCreated(ctx context.Context, department string, event domain.Event) error {
	to, ok := s.recipients[department]
	if !ok || to == "" {
		s.logger.Debug("no announcement recipient", "department", department)
		return nil
	}
	data := &domain.EventAnnouncementEmailData{
		To:             to,
		DepartmentName: domain.DepartmentName(department),
		Event:          event,
		DateLabel:      utils.FormatDate(event.Date),
	}
	return s.send("event_created", to, data)
}

// EventsTomorrow sends one "event_reminder" listing every event of the department happening tomorrow.
func (s *emailService) EventsTomorrow(ctx context.Context, department string, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	to, ok := s.recipients[department]
	if !ok || to == "" {
		return nil
	}
	data := &domain.EventReminderEmailData{
		To:             to,
		DepartmentName: domain.DepartmentName(department),
		DateLabel:      utils.FormatDate(events[0].Date),
		Events:         events,
	}
	return s.send("event_reminder", to, data)
}

func (s *emailService) send(template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.Info("email sent", "template", template, "to", to)
	return nil
}
