package auth

import (
	"bufio"
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"deptevents/internal/domain"
)

// DefaultCredentials is the built-in department password table.
var DefaultCredentials = map[string]string{
	domain.DepartmentCS:    "1234",
	domain.DepartmentEE:    "5678",
	domain.DepartmentME:    "9012",
	domain.DepartmentCivil: "3456",
	domain.DepartmentECE:   "7890",
}

type staticVerifier struct {
	passwords map[string]string
}

// NewStaticVerifier returns a CredentialVerifier over a plaintext department-to-password table.
func NewStaticVerifier(passwords map[string]string) domain.CredentialVerifier {
	cp := make(map[string]string, len(passwords))
	for k, v := range passwords {
		cp[k] = v
	}
	return &staticVerifier{passwords: cp}
}

func (v *staticVerifier) Verify(_ context.Context, department, password string) bool {
	want, ok := v.passwords[department]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(password)) == 1
}

type hashedVerifier struct {
	hashes map[string]string
	logger *slog.Logger
}

// LoadHashedVerifier reads a credentials file with one "DEPT:hash" line per department.
// Blank lines and lines starting with # are skipped.
func LoadHashedVerifier(path string, logger *slog.Logger) (domain.CredentialVerifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials file: %w", err)
	}
	defer f.Close()

	hashes, err := ParseCredentials(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("loaded hashed credentials", "file", path, "departments", len(hashes))
	return &hashedVerifier{hashes: hashes, logger: logger}, nil
}

// ParseCredentials parses "DEPT:hash" lines. Department codes are uppercased.
func ParseCredentials(r io.Reader) (map[string]string, error) {
	hashes := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dept, hash, ok := strings.Cut(line, ":")
		dept = strings.ToUpper(strings.TrimSpace(dept))
		hash = strings.TrimSpace(hash)
		if !ok || dept == "" || hash == "" {
			return nil, fmt.Errorf("line %d: invalid format (expected: DEPT:hash)", lineNo)
		}
		hashes[dept] = hash
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return hashes, nil
}

func (v *hashedVerifier) Verify(_ context.Context, department, password string) bool {
	hash, ok := v.hashes[department]
	if !ok {
		return false
	}
	match, err := VerifyPassword(password, hash)
	if err != nil {
		v.logger.Error("verify password failed", "department", department, "error", err)
		return false
	}
	return match
}

// CredentialLine formats a credentials file line for department with an argon2id hash of password.
func CredentialLine(department, password string) (string, error) {
	dept := strings.ToUpper(strings.TrimSpace(department))
	if dept == "" {
		return "", fmt.Errorf("department code is required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}
	return dept + ":" + hash, nil
}
