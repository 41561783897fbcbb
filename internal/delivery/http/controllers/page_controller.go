package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"deptevents/internal/delivery/http/helpers"
	"deptevents/internal/delivery/http/views"
	"deptevents/internal/domain"
	"deptevents/internal/utils"
)

// Toast texts shown after page actions.
const (
	MsgForgotPassword  = "Please contact the administration office to reset your password."
	MsgEventCreated    = "Event created successfully!"
	MsgEventUpdated    = "Event updated successfully!"
	MsgEventDeleted    = "Event deleted successfully!"
	MsgEventNotFound   = "Event not found."
	MsgUploadTooLarge  = "The uploaded files are too large."
	MsgInvalidForm     = "The form could not be read. Please try again."
	MsgSomethingFailed = "Something went wrong. Please try again."
)

// Empty list texts per tab.
const (
	EmptyUpcomingText = "No upcoming events. Create one to get started!"
	EmptyPastText     = "No past events yet."
)

// multipartMemory is the part of an upload kept in memory; the rest spills to temp files.
const multipartMemory = 8 << 20

// PageConfig holds the settings of the browser pages.
type PageConfig struct {
	TokenTTL       time.Duration
	SecureCookies  bool
	MaxUploadBytes int64
}

// PageController serves the server-rendered HTML pages.
type PageController struct {
	Logger *slog.Logger
	Auth   domain.AuthService
	Events domain.EventService
	Views  *views.Renderer
	Config PageConfig
	now    func() time.Time
}

func NewPageController(logger *slog.Logger, auth domain.AuthService, events domain.EventService, renderer *views.Renderer, cfg PageConfig) *PageController {
	return &PageController{
		Logger: logger,
		Auth:   auth,
		Events: events,
		Views:  renderer,
		Config: cfg,
		now:    time.Now,
	}
}

// LoginPage shows the login form, or sends a logged-in browser to its events.
func (c *PageController) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := c.Auth.CurrentSession(r.Context(), helpers.TokenFromRequest(r)); err == nil {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}
	c.render(w, r, http.StatusOK, views.PageLogin, views.TemplateData{Title: "Login"})
}

// Login checks the form and starts a session. Failures re-render the form with
// the department kept and the password cleared.
func (c *PageController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.renderLoginError(w, r, http.StatusBadRequest, "", domain.MsgMissingLogin)
		return
	}
	dept := r.PostFormValue("department")
	password := r.PostFormValue("password")
	if strings.TrimSpace(dept) == "" || password == "" {
		c.renderLoginError(w, r, http.StatusBadRequest, dept, domain.MsgMissingLogin)
		return
	}

	session, token, err := c.Auth.Login(r.Context(), dept, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.renderLoginError(w, r, http.StatusUnauthorized, dept, domain.InvalidCredentialsMessage)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		c.renderLoginError(w, r, http.StatusInternalServerError, dept, MsgSomethingFailed)
		return
	}
	c.Logger.InfoContext(r.Context(), "department logged in", "department", session.Department)
	helpers.SetSessionCookie(w, token, c.Config.TokenTTL, c.Config.SecureCookies)
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

func (c *PageController) renderLoginError(w http.ResponseWriter, r *http.Request, status int, dept, msg string) {
	c.render(w, r, status, views.PageLogin, views.TemplateData{Title: "Login", Department: dept, Error: msg})
}

// Logout clears the session and the cookie.
func (c *PageController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Auth.Logout(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.ClearSessionCookie(w, c.Config.SecureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ForgotPassword only tells the user whom to contact.
func (c *PageController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	c.Views.SetFlash(r, utils.NewNotification(MsgForgotPassword, utils.SeverityWarning))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EventsPage lists the upcoming or past tab.
func (c *PageController) EventsPage(w http.ResponseWriter, r *http.Request) {
	c.renderEvents(w, r, http.StatusOK, domain.ParseTab(r.URL.Query().Get("tab")), views.TemplateData{})
}

func (c *PageController) renderEvents(w http.ResponseWriter, r *http.Request, status int, tab domain.Tab, data views.TemplateData) {
	events, err := c.Events.ListEvents(r.Context(), tab)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	data.Title = "Events"
	data.Tab = tab
	data.Events = events
	data.EmptyText = EmptyUpcomingText
	if tab == domain.TabPast {
		data.EmptyText = EmptyPastText
	}
	c.render(w, r, status, views.PageEvents, data)
}

// CreateEvent handles the multipart create form.
func (c *PageController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	input, cleanup, err := c.parseEventForm(w, r)
	defer cleanup()
	if err != nil {
		c.renderEvents(w, r, http.StatusBadRequest, domain.TabUpcoming, views.TemplateData{Error: formErrorMessage(err), ShowCreate: true, Form: formValues(input)})
		return
	}

	event, err := c.Events.CreateEvent(r.Context(), input)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.renderEvents(w, r, http.StatusBadRequest, domain.TabUpcoming, views.TemplateData{Error: verr.Message, ShowCreate: true, Form: formValues(input)})
			return
		}
		c.fail(w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "event created", "event_id", event.ID)
	c.Views.SetFlash(r, utils.NewNotification(MsgEventCreated, utils.SeveritySuccess))
	http.Redirect(w, r, "/events?tab=upcoming", http.StatusSeeOther)
}

// EventDetail shows one event.
func (c *PageController) EventDetail(w http.ResponseWriter, r *http.Request) {
	event, ok := c.loadEvent(w, r)
	if !ok {
		return
	}
	c.render(w, r, http.StatusOK, views.PageEventDetail, views.TemplateData{Title: event.Title, Event: event})
}

// EditEventPage shows the edit form filled with the stored values.
func (c *PageController) EditEventPage(w http.ResponseWriter, r *http.Request) {
	event, ok := c.loadEvent(w, r)
	if !ok {
		return
	}
	c.render(w, r, http.StatusOK, views.PageEventEdit, views.TemplateData{Title: "Edit Event", Event: event, Form: views.FormFromEvent(event)})
}

// UpdateEvent saves the edit form. Empty file inputs keep the stored media.
func (c *PageController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := c.loadEvent(w, r)
	if !ok {
		return
	}
	input, cleanup, err := c.parseEventForm(w, r)
	defer cleanup()
	if err != nil {
		c.render(w, r, http.StatusBadRequest, views.PageEventEdit, views.TemplateData{Title: "Edit Event", Event: event, Error: formErrorMessage(err), Form: formValues(input)})
		return
	}

	updated, err := c.Events.UpdateEvent(r.Context(), event.ID, input)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			c.render(w, r, http.StatusBadRequest, views.PageEventEdit, views.TemplateData{Title: "Edit Event", Event: event, Error: verr.Message, Form: formValues(input)})
		case errors.Is(err, domain.ErrNotFound):
			c.redirectNotFound(w, r)
		default:
			c.fail(w, r, err)
		}
		return
	}
	c.Views.SetFlash(r, utils.NewNotification(MsgEventUpdated, utils.SeveritySuccess))
	http.Redirect(w, r, "/events?tab="+string(c.tabOf(updated)), http.StatusSeeOther)
}

// DeleteEventPage asks for confirmation.
func (c *PageController) DeleteEventPage(w http.ResponseWriter, r *http.Request) {
	event, ok := c.loadEvent(w, r)
	if !ok {
		return
	}
	c.render(w, r, http.StatusOK, views.PageEventDelete, views.TemplateData{Title: "Delete Event", Event: event})
}

// DeleteEvent deletes only when the form carries confirm=yes; otherwise the
// browser goes back to the event untouched.
func (c *PageController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := c.eventID(w, r)
	if !ok {
		return
	}
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, fmt.Sprintf("/events/%d", id), http.StatusSeeOther)
		return
	}
	if err := c.Events.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.redirectNotFound(w, r)
			return
		}
		c.fail(w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "event deleted", "event_id", id)
	c.Views.SetFlash(r, utils.NewNotification(MsgEventDeleted, utils.SeveritySuccess))
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

func (c *PageController) tabOf(e *domain.Event) domain.Tab {
	if utils.IsEventUpcoming(e.Date, c.now()) {
		return domain.TabUpcoming
	}
	return domain.TabPast
}

func (c *PageController) eventID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("eventID"))
	if err != nil || id < 1 {
		c.redirectNotFound(w, r)
		return 0, false
	}
	return id, true
}

func (c *PageController) loadEvent(w http.ResponseWriter, r *http.Request) (*domain.Event, bool) {
	id, ok := c.eventID(w, r)
	if !ok {
		return nil, false
	}
	event, err := c.Events.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.redirectNotFound(w, r)
			return nil, false
		}
		c.fail(w, r, err)
		return nil, false
	}
	return event, true
}

func (c *PageController) redirectNotFound(w http.ResponseWriter, r *http.Request) {
	c.Views.SetFlash(r, utils.NewNotification(MsgEventNotFound, utils.SeverityError))
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// fail logs err and shows the list with an error toast. A lost session goes to the login page.
func (c *PageController) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNoSession) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	c.render(w, r, http.StatusInternalServerError, views.PageLogin, views.TemplateData{
		Title: "Error",
		Flash: &utils.Notification{Message: MsgSomethingFailed, Severity: utils.SeverityError},
	})
}

func (c *PageController) render(w http.ResponseWriter, r *http.Request, status int, page string, data views.TemplateData) {
	if data.Session == nil {
		data.Session, _ = domain.SessionFromContext(r.Context())
	}
	if err := c.Views.Render(w, r, status, page, data); err != nil {
		c.Logger.ErrorContext(r.Context(), "render failed", "page", page, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// parseEventForm reads the text fields and optional media of a create or edit form.
// The returned cleanup closes uploaded files and removes multipart temp files.
func (c *PageController) parseEventForm(w http.ResponseWriter, r *http.Request) (domain.EventInput, func(), error) {
	var input domain.EventInput
	closers := []func(){}
	cleanup := func() {
		for _, fn := range closers {
			fn()
		}
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	if c.Config.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, c.Config.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return input, cleanup, err
	}
	input.Title = r.FormValue("title")
	input.Date = r.FormValue("date")
	input.Time = r.FormValue("time")
	input.Venue = r.FormValue("venue")
	input.Description = r.FormValue("description")

	for _, field := range []string{"image", "video"} {
		file, closeFn, err := helpers.FormMedia(r, field)
		closers = append(closers, closeFn)
		if err != nil {
			return input, cleanup, err
		}
		if field == "image" {
			input.Image = file
		} else {
			input.Video = file
		}
	}
	return input, cleanup, nil
}

func formErrorMessage(err error) string {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return MsgUploadTooLarge
	}
	return MsgInvalidForm
}

func formValues(input domain.EventInput) views.EventForm {
	return views.EventForm{
		Title:       input.Title,
		Date:        input.Date,
		Time:        input.Time,
		Venue:       input.Venue,
		Description: input.Description,
	}
}
