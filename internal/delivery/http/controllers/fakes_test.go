package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/require"

	"deptevents/internal/delivery/http/views"
	"deptevents/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var loginTime = time.Date(2025, 11, 12, 9, 0, 0, 0, time.UTC)

// fakeAuthService accepts CS/1234 and hands out token "tok-CS".
type fakeAuthService struct {
	session   *domain.Session
	loginErr  error
	logouts   int
	lastDept  string
	lastToken string
}

func (f *fakeAuthService) Login(_ context.Context, dept, password string) (*domain.Session, string, error) {
	f.lastDept = dept
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	code := strings.ToUpper(strings.TrimSpace(dept))
	if code != domain.DepartmentCS || password != "1234" {
		return nil, "", domain.ErrInvalidCredentials
	}
	f.session = domain.NewSession(code, loginTime)
	return f.session, "tok-" + code, nil
}

func (f *fakeAuthService) Logout(context.Context) error {
	f.logouts++
	f.session = nil
	return nil
}

func (f *fakeAuthService) IsAuthenticated(context.Context) bool { return f.session != nil }

func (f *fakeAuthService) CurrentSession(_ context.Context, token string) (*domain.Session, error) {
	f.lastToken = token
	if f.session == nil || token != "tok-"+f.session.Department {
		return nil, domain.ErrNoSession
	}
	return f.session, nil
}

// fakeEventService keeps one department's events in a slice.
type fakeEventService struct {
	events        []domain.Event
	err           error
	validationMsg string
	lastTab       domain.Tab
	lastInput     *domain.EventInput
	lastImage     []byte
}

func (f *fakeEventService) ListEvents(_ context.Context, tab domain.Tab) ([]domain.Event, error) {
	f.lastTab = tab
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventService) index(id int) int {
	for i, e := range f.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeEventService) GetEvent(_ context.Context, id int) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	i := f.index(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	e := f.events[i]
	return &e, nil
}

func (f *fakeEventService) record(input domain.EventInput) error {
	f.lastInput = &input
	if input.Image != nil {
		raw, err := io.ReadAll(input.Image.Content)
		if err != nil {
			return err
		}
		f.lastImage = raw
	}
	if f.validationMsg != "" {
		return domain.NewValidationError(f.validationMsg)
	}
	return f.err
}

func (f *fakeEventService) CreateEvent(_ context.Context, input domain.EventInput) (*domain.Event, error) {
	if err := f.record(input); err != nil {
		return nil, err
	}
	e := domain.NewEvent(len(f.events)+1, input.Title, input.Description, input.Date, input.Time, input.Venue, loginTime)
	f.events = append(f.events, *e)
	return e, nil
}

func (f *fakeEventService) UpdateEvent(_ context.Context, id int, input domain.EventInput) (*domain.Event, error) {
	i := f.index(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	if err := f.record(input); err != nil {
		return nil, err
	}
	e := &f.events[i]
	e.Title, e.Description, e.Date, e.Time, e.Venue = input.Title, input.Description, input.Date, input.Time, input.Venue
	out := *e
	return &out, nil
}

func (f *fakeEventService) DeleteEvent(_ context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	i := f.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	f.events = append(f.events[:i], f.events[i+1:]...)
	return nil
}

func (f *fakeEventService) GenerateID(context.Context) (int, error) {
	return len(f.events) + 1, nil
}

func sampleEvents() []domain.Event {
	return []domain.Event{
		*domain.NewEvent(1, "TechFest 2025", "Annual technical festival with coding competitions and more", "2025-12-15", "10:00", "Auditorium A", loginTime),
		*domain.NewEvent(2, "Web Development Workshop", "Learn modern web development with hands on projects", "2025-12-20", "14:00", "Computer Lab 1", loginTime),
	}
}

func withSession(r *http.Request) *http.Request {
	return r.WithContext(domain.WithSession(r.Context(), domain.NewSession(domain.DepartmentCS, loginTime)))
}

type pageFixture struct {
	ctrl     *PageController
	auth     *fakeAuthService
	events   *fakeEventService
	sessions *scs.SessionManager
}

func newPageFixture(t *testing.T) *pageFixture {
	t.Helper()
	sm := scs.New()
	renderer, err := views.New(sm)
	require.NoError(t, err)
	auth := &fakeAuthService{}
	events := &fakeEventService{events: sampleEvents()}
	ctrl := NewPageController(testLogger, auth, events, renderer, PageConfig{TokenTTL: time.Hour, MaxUploadBytes: 1 << 20})
	ctrl.now = func() time.Time { return time.Date(2025, 11, 12, 9, 30, 0, 0, time.UTC) }
	return &pageFixture{ctrl: ctrl, auth: auth, events: events, sessions: sm}
}

// serve runs handler inside the flash session middleware.
func (p *pageFixture) serve(handler http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	p.sessions.LoadAndSave(handler).ServeHTTP(w, r)
}
