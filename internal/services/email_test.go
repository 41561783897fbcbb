package services

import (
	"context"
	"errors"
	"testing"

	"deptevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, html, text})
	return nil
}

type fakeRenderer struct {
	names []string
	data  []any
	err   error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	f.names = append(f.names, name)
	f.data = append(f.data, data)
	return "subject " + name, "<p>" + name + "</p>", name, nil
}

var recipients = map[string]string{"CS": "hod-cs@college.edu"}

func TestEmailService_EventCreated(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, recipients, testLogger)

	event := domain.Event{ID: 4, Title: "Hackathon", Date: "2025-11-15"}
	require.NoError(t, svc.EventCreated(context.Background(), "CS", event))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "hod-cs@college.edu", mailer.sent[0].to)
	assert.Equal(t, "subject event_created", mailer.sent[0].subject)
	require.Len(t, renderer.data, 1)
	data := renderer.data[0].(*domain.EventAnnouncementEmailData)
	assert.Equal(t, "Computer Science", data.DepartmentName)
	assert.Equal(t, "Sat, Nov 15, 2025", data.DateLabel)
}

func TestEmailService_NoRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewEmailService(mailer, &fakeRenderer{}, recipients, testLogger)

	require.NoError(t, svc.EventCreated(context.Background(), "EE", domain.Event{ID: 1}))
	require.NoError(t, svc.EventsTomorrow(context.Background(), "EE", []domain.Event{{ID: 1}}))
	assert.Empty(t, mailer.sent)
}

func TestEmailService_EventsTomorrow(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, recipients, testLogger)

	require.NoError(t, svc.EventsTomorrow(context.Background(), "CS", nil))
	assert.Empty(t, mailer.sent)

	events := []domain.Event{{ID: 1, Date: "2025-11-15"}, {ID: 5, Date: "2025-11-15"}}
	require.NoError(t, svc.EventsTomorrow(context.Background(), "CS", events))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"event_reminder"}, renderer.names)
}

func TestEmailService_Errors(t *testing.T) {
	event := domain.Event{ID: 1}

	svc := NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("bad template")}, recipients, testLogger)
	require.Error(t, svc.EventCreated(context.Background(), "CS", event))

	sendErr := errors.New("ses throttled")
	svc = NewEmailService(&fakeMailer{err: sendErr}, &fakeRenderer{}, recipients, testLogger)
	require.ErrorIs(t, svc.EventCreated(context.Background(), "CS", event), sendErr)
}
