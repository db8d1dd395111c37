package accounts

import (
	"context"
)

// Outcome is the result of a mutating credential store operation. A declined
// outcome (Succeeded false, nil error) is expected control flow; an error is
// an unexpected store fault.
type Outcome struct {
	Succeeded bool
}

// CredentialStore owns password hashing, verification, and account
// persistence. It guarantees uniqueness of the login identifier across
// accounts. Lookups return (nil, nil) when no account matches.
type CredentialStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	All(ctx context.Context) ([]*Account, error)
	Create(ctx context.Context, account *Account, rawPassword string) (Outcome, error)
	Update(ctx context.Context, account *Account) (Outcome, error)
	Delete(ctx context.Context, account *Account) (Outcome, error)
	VerifyPassword(ctx context.Context, identifier, rawPassword string) (Outcome, error)
}
