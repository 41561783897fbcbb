package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"deptevents/internal/domain"
)

type authService struct {
	storage     domain.StorageManager
	credentials domain.CredentialVerifier
	issuer      domain.TokenIssuer
	verifier    domain.TokenVerifier
	tokenExpiry time.Duration
}

// NewAuthService creates an AuthService. Sessions are persisted through storage
// and bound to browsers with tokens from issuer.
func NewAuthService(storage domain.StorageManager, credentials domain.CredentialVerifier, issuer domain.TokenIssuer, verifier domain.TokenVerifier, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		storage:     storage,
		credentials: credentials,
		issuer:      issuer,
		verifier:    verifier,
		tokenExpiry: tokenExpiry,
	}
}

// NormalizeDepartment trims and uppercases a department code as typed on the login form.
func NormalizeDepartment(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Login returns ErrInvalidCredentials for an unknown department and for a wrong
// password alike.
func (s *authService) Login(ctx context.Context, department, password string) (*domain.Session, string, error) {
	dept := NormalizeDepartment(department)
	if dept == "" || !s.credentials.Verify(ctx, dept, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	session, err := s.storage.SetSession(ctx, dept)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	token, err := s.issuer.Issue(dept, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return session, token, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.storage.ClearSession(ctx)
}

func (s *authService) IsAuthenticated(ctx context.Context) bool {
	return s.storage.GetSession(ctx) != nil
}

// CurrentSession resolves token to the persisted session. A valid token for a
// department that is no longer (or never was) the current session yields ErrNoSession.
func (s *authService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}
	dept, err := s.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrNoSession, err)
	}
	session := s.storage.GetSession(ctx)
	if session == nil || session.Department != dept {
		return nil, domain.ErrNoSession
	}
	return session, nil
}
