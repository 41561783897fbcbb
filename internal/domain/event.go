package domain

import (
	"context"
	"io"
	"time"
)

// Department codes. The set is closed: credentials and event lists exist only for these.
const (
	DepartmentCS    = "CS"
	DepartmentEE    = "EE"
	DepartmentME    = "ME"
	DepartmentCivil = "CIVIL"
	DepartmentECE   = "ECE"
)

// Departments lists every department code in display order.
var Departments = []string{DepartmentCS, DepartmentEE, DepartmentME, DepartmentCivil, DepartmentECE}

var departmentNames = map[string]string{
	DepartmentCS:    "Computer Science",
	DepartmentEE:    "Electrical Engineering",
	DepartmentME:    "Mechanical Engineering",
	DepartmentCivil: "Civil Engineering",
	DepartmentECE:   "Electronics and Communication",
}

// DepartmentName returns the display name for code, or code itself when it is unknown.
func DepartmentName(code string) string {
	if name, ok := departmentNames[code]; ok {
		return name
	}
	return code
}

// DateLayout is the calendar date format of Event.Date.
const DateLayout = "2006-01-02"

// Event is a department-scoped activity. ID is unique within its department's list only.
// swagger:model Event
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Venue       string    `json:"venue"`
	Image       *string   `json:"image"`
	Video       *string   `json:"video"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEvent returns a new Event without media.
func NewEvent(id int, title, description, date, timeOfDay, venue string, createdAt time.Time) *Event {
	return &Event{
		ID:          id,
		Title:       title,
		Description: description,
		Date:        date,
		Time:        timeOfDay,
		Venue:       venue,
		CreatedAt:   createdAt,
	}
}

// EventPatch holds the fields to overwrite on an existing event. Nil fields are retained.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Venue       *string
	Image       *string
	Video       *string
}

// Apply merges p over e. ID and CreatedAt are never touched.
func (e *Event) Apply(p EventPatch) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.Image != nil {
		img := *p.Image
		e.Image = &img
	}
	if p.Video != nil {
		vid := *p.Video
		e.Video = &vid
	}
}

// Tab selects which partition of a department's events to show.
type Tab string

const (
	TabUpcoming Tab = "upcoming"
	TabPast     Tab = "past"
)

// ParseTab maps a query value to a Tab, defaulting to TabUpcoming.
func ParseTab(s string) Tab {
	if Tab(s) == TabPast {
		return TabPast
	}
	return TabUpcoming
}

// MediaFile is an uploaded binary file as reported by the client.
type MediaFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// EventInput is the user-entered content of the create and edit forms.
// Image and Video are optional; nil leaves existing media untouched on edit.
type EventInput struct {
	Title       string `validate:"required"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Time        string `validate:"required"`
	Venue       string `validate:"required"`
	Description string `validate:"required,minwords=5"`
	Image       *MediaFile
	Video       *MediaFile
}

// EventStore is the per-department event list persistence.
type EventStore interface {
	InitializeDepartments(ctx context.Context) error
	GetDepartmentEvents(ctx context.Context, department string) []Event
	SaveEvent(ctx context.Context, department string, event *Event) error
	UpdateEvent(ctx context.Context, department string, id int, patch EventPatch) (bool, error)
	DeleteEvent(ctx context.Context, department string, id int) (bool, error)
}

// StorageManager owns both persisted records: department events and the current session.
type StorageManager interface {
	EventStore
	SessionStore
}

// MediaEncoder turns uploaded files into data URIs suitable for Event.Image and Event.Video.
type MediaEncoder interface {
	EncodeImage(ctx context.Context, file MediaFile) (string, error)
	EncodeVideo(ctx context.Context, file MediaFile) (string, error)
}

// EventService defines the event page operations. All of them act on the
// department of the Session carried by ctx.
type EventService interface {
	ListEvents(ctx context.Context, tab Tab) ([]Event, error)
	GetEvent(ctx context.Context, id int) (*Event, error)
	CreateEvent(ctx context.Context, input EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, id int, input EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, id int) error
	GenerateID(ctx context.Context) (int, error)
}

// EventNotifier is told about event lifecycle moments worth announcing to a department.
type EventNotifier interface {
	EventCreated(ctx context.Context, department string, event Event) error
	EventsTomorrow(ctx context.Context, department string, events []Event) error
}
