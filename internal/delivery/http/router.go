package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"deptevents/internal/delivery/http/controllers"
	"deptevents/internal/delivery/http/middleware"
	"deptevents/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(pages *controllers.PageController, authController *controllers.AuthController, eventController *controllers.EventController, auth domain.AuthService, loginLimiter *middleware.RateLimiter, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	page := middleware.RequirePageSession(auth, logger)
	api := middleware.RequireSession(auth, logger)
	limit := loginLimiter.Limit(logger)

	// Pages
	mux.HandleFunc("GET /{$}", pages.LoginPage)
	mux.HandleFunc("POST /login", limit(pages.Login))
	mux.HandleFunc("POST /logout", page(pages.Logout))
	mux.HandleFunc("GET /forgot", pages.ForgotPassword)
	mux.HandleFunc("GET /events", page(pages.EventsPage))
	mux.HandleFunc("POST /events", page(pages.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", page(pages.EventDetail))
	mux.HandleFunc("GET /events/{eventID}/edit", page(pages.EditEventPage))
	mux.HandleFunc("POST /events/{eventID}/edit", page(pages.UpdateEvent))
	mux.HandleFunc("GET /events/{eventID}/delete", page(pages.DeleteEventPage))
	mux.HandleFunc("POST /events/{eventID}/delete", page(pages.DeleteEvent))

	// Auth API
	mux.HandleFunc("POST /api/auth/login", limit(authController.Login))
	mux.HandleFunc("POST /api/auth/logout", api(authController.Logout))
	mux.HandleFunc("GET /api/session", api(authController.Session))

	// Events API
	mux.HandleFunc("GET /api/events", api(eventController.ListEvents))
	mux.HandleFunc("POST /api/events", api(eventController.CreateEvent))
	mux.HandleFunc("GET /api/events/{eventID}", api(eventController.GetEvent))
	mux.HandleFunc("PATCH /api/events/{eventID}", api(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /api/events/{eventID}", api(eventController.DeleteEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
