package domain

import (
	"context"
	"time"
)

// InvalidCredentialsMessage is shown for every failed login, whether the
// department is unknown or the password is wrong.
const InvalidCredentialsMessage = "Invalid department code or password."

// CredentialVerifier checks a normalized department code and password.
// Implementations may use a static table or stored hashes.
type CredentialVerifier interface {
	Verify(ctx context.Context, department, password string) bool
}

// TokenIssuer issues a signed token binding a browser context to a department session.
type TokenIssuer interface {
	Issue(department string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the department it was issued for.
type TokenVerifier interface {
	Verify(token string) (department string, err error)
}

// AuthService defines login, logout and session lookup.
type AuthService interface {
	Login(ctx context.Context, department, password string) (*Session, string, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	CurrentSession(ctx context.Context, token string) (*Session, error)
}
