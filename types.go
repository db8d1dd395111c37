package accounts

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the process-wide settings the package needs at wiring time
type Config interface {
	GetSigningSecret() string
	GetJournalPath() string
}

// AccountManager holds the account lifecycle and authentication operations
type AccountManager interface {
	Create(ctx context.Context, identifier, password string) error
	Read(ctx context.Context, identifier string) (*Account, error)
	ReadAll(ctx context.Context) ([]*Account, error)
	Update(ctx context.Context, identifier string, update ProfileUpdate) error
	Delete(ctx context.Context, identifier string) error
	Authenticate(ctx context.Context, identifier, password string) (string, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCOUNTS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
