// Package views renders the HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"deptevents/internal/adapters/markdown"
	"deptevents/internal/domain"
	"deptevents/internal/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names.
const (
	PageLogin       = "login"
	PageEvents      = "events"
	PageEventDetail = "event_detail"
	PageEventEdit   = "event_edit"
	PageEventDelete = "event_delete"
)

var pages = []string{PageLogin, PageEvents, PageEventDetail, PageEventEdit, PageEventDelete}

const (
	flashMessageKey  = "flash"
	flashSeverityKey = "flash_severity"
)

// Renderer handles template rendering and flash toasts.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
}

// EventForm holds the values shown in the create and edit forms.
type EventForm struct {
	Title       string
	Date        string
	Time        string
	Venue       string
	Description string
}

// FormFromEvent fills an EventForm with e's current values.
func FormFromEvent(e *domain.Event) EventForm {
	return EventForm{
		Title:       e.Title,
		Date:        e.Date,
		Time:        e.Time,
		Venue:       e.Venue,
		Description: e.Description,
	}
}

// TemplateData holds data passed to templates. Page-specific fields are left
// zero by pages that do not use them.
type TemplateData struct {
	Title   string
	Session *domain.Session
	Flash   *utils.Notification
	// Error is shown inline above the form that failed.
	Error string

	Department string

	Tab        domain.Tab
	Events     []domain.Event
	EmptyText  string
	ShowCreate bool

	Event *domain.Event
	Form  EventForm
}

// New parses every page together with the shared layout.
func New(sessionManager *scs.SessionManager) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template, len(pages)),
		sessionManager: sessionManager,
	}
	for _, name := range pages {
		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": utils.FormatDate,
		"markdown":   markdown.Render,
		"mediaURL":   MediaURL,
		"deptName":   domain.DepartmentName,
	}
}

// MediaURL admits stored data URIs of image and MP4 types as src attributes.
// Anything else renders as an empty URL.
func MediaURL(uri *string) template.URL {
	if uri == nil {
		return ""
	}
	if strings.HasPrefix(*uri, "data:image/") || strings.HasPrefix(*uri, "data:video/mp4") {
		return template.URL(*uri) //nolint:gosec // prefix checked above
	}
	return ""
}

// Render writes page name with status. A pending flash toast is consumed.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	if data.Flash == nil {
		data.Flash = r.PopFlash(req)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "layout", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// SetFlash stores a toast shown by the next rendered page.
func (r *Renderer) SetFlash(req *http.Request, n utils.Notification) {
	if r.sessionManager == nil {
		return
	}
	r.sessionManager.Put(req.Context(), flashMessageKey, n.Message)
	r.sessionManager.Put(req.Context(), flashSeverityKey, string(n.Severity))
}

// PopFlash returns and clears the pending toast, if any.
func (r *Renderer) PopFlash(req *http.Request) *utils.Notification {
	if r.sessionManager == nil {
		return nil
	}
	msg := r.sessionManager.PopString(req.Context(), flashMessageKey)
	if msg == "" {
		return nil
	}
	n := utils.NewNotification(msg, utils.Severity(r.sessionManager.PopString(req.Context(), flashSeverityKey)))
	return &n
}
