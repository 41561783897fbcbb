package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deptevents/internal/delivery/http/helpers"
	"deptevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAuthService accepts exactly one token.
type fakeAuthService struct {
	token   string
	session *domain.Session
}

func (f *fakeAuthService) Login(context.Context, string, string) (*domain.Session, string, error) {
	return nil, "", domain.ErrInvalidCredentials
}

func (f *fakeAuthService) Logout(context.Context) error { return nil }

func (f *fakeAuthService) IsAuthenticated(context.Context) bool { return f.session != nil }

func (f *fakeAuthService) CurrentSession(_ context.Context, token string) (*domain.Session, error) {
	if token == "" || token != f.token {
		return nil, domain.ErrNoSession
	}
	return f.session, nil
}

func newFakeAuth() *fakeAuthService {
	return &fakeAuthService{
		token:   "good",
		session: domain.NewSession(domain.DepartmentCS, time.Date(2025, 11, 12, 9, 0, 0, 0, time.UTC)),
	}
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		cookie     string
		wantStatus int
		nextCalled bool
	}{
		{name: "bearer token", authHeader: "Bearer good", wantStatus: http.StatusOK, nextCalled: true},
		{name: "session cookie", cookie: "good", wantStatus: http.StatusOK, nextCalled: true},
		{name: "missing token", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "stale token", authHeader: "Bearer old", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDept string
			called := false
			next := func(w http.ResponseWriter, r *http.Request) {
				called = true
				s, ok := domain.SessionFromContext(r.Context())
				require.True(t, ok)
				gotDept = s.Department
				w.WriteHeader(http.StatusOK)
			}
			handler := RequireSession(newFakeAuth(), testLogger)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.nextCalled, called)
			if tt.nextCalled {
				assert.Equal(t, domain.DepartmentCS, gotDept)
				return
			}
			var body helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			require.NotNil(t, body.Error)
			assert.Equal(t, helpers.ErrCodeUnauthorized, body.Error.Code)
		})
	}
}

func TestRequirePageSession(t *testing.T) {
	handler := RequirePageSession(newFakeAuth(), testLogger)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("redirects without session", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/events", nil))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
	})

	t.Run("passes with cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: "good"})
		rr := httptest.NewRecorder()
		handler(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
