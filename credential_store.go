package accounts

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// BunCredentialStore is the packaged CredentialStore implementation: bcrypt
// password hashing over the bun-backed accounts repository. Identifier
// uniqueness is enforced by the accounts schema.
type BunCredentialStore struct {
	db     *bun.DB
	repo   Accounts
	hasher PasswordAuthenticator
	// fallback is compared against when no account matches, so an unknown
	// identifier costs the same as a wrong password
	fallback string
	logger   Logger
}

var _ CredentialStore = (*BunCredentialStore)(nil)

// NewCredentialStore wires a credential store over the given database
func NewCredentialStore(db *bun.DB) *BunCredentialStore {
	return &BunCredentialStore{
		db:       db,
		repo:     NewAccountsRepository(db),
		hasher:   BcryptAuthenticator{},
		fallback: RandomPasswordHash(),
		logger:   defLogger{},
	}
}

func (s *BunCredentialStore) WithLogger(logger Logger) *BunCredentialStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithPasswordAuthenticator swaps the password hashing scheme
func (s *BunCredentialStore) WithPasswordAuthenticator(hasher PasswordAuthenticator) *BunCredentialStore {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// Accounts exposes the underlying repository for callers that need raw
// record access, e.g. registration commands running inside a transaction.
func (s *BunCredentialStore) Accounts() Accounts {
	return s.repo
}

func (s *BunCredentialStore) FindByIdentifier(ctx context.Context, identifier string) (*Account, error) {
	record, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (s *BunCredentialStore) FindByID(ctx context.Context, id string) (*Account, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (s *BunCredentialStore) All(ctx context.Context) ([]*Account, error) {
	records := []*Account{}

	err := s.db.NewSelect().
		Model(&records).
		Order("date_created ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

// Create hashes the raw password and persists the account. A duplicate
// login identifier declines the outcome rather than erroring; anything else
// that goes wrong during the insert is a store fault.
func (s *BunCredentialStore) Create(ctx context.Context, account *Account, rawPassword string) (Outcome, error) {
	existing, err := s.FindByIdentifier(ctx, account.Email)
	if err != nil {
		return Outcome{}, err
	}
	if existing != nil {
		return Outcome{Succeeded: false}, nil
	}

	hash, err := s.hasher.HashPassword(rawPassword)
	if err != nil {
		var rich *goerrors.Error
		if goerrors.As(err, &rich) && rich.Category == goerrors.CategoryValidation {
			return Outcome{Succeeded: false}, nil
		}
		return Outcome{}, err
	}

	account.PasswordHash = hash

	if _, err := s.repo.Register(ctx, account); err != nil {
		return Outcome{}, err
	}

	return Outcome{Succeeded: true}, nil
}

func (s *BunCredentialStore) Update(ctx context.Context, account *Account) (Outcome, error) {
	_, err := s.repo.Update(ctx, account, repository.UpdateByID(account.ID.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return Outcome{Succeeded: false}, nil
		}
		return Outcome{}, err
	}

	return Outcome{Succeeded: true}, nil
}

func (s *BunCredentialStore) Delete(ctx context.Context, account *Account) (Outcome, error) {
	res, err := s.db.NewDelete().
		Model(account).
		WherePK().
		Exec(ctx)

	if err != nil {
		return Outcome{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Succeeded: affected > 0}, nil
}

// VerifyPassword compares the raw password with the stored hash. An unknown
// identifier and a wrong password both decline the outcome; only store
// faults error.
func (s *BunCredentialStore) VerifyPassword(ctx context.Context, identifier, rawPassword string) (Outcome, error) {
	account, err := s.FindByIdentifier(ctx, identifier)
	if err != nil {
		return Outcome{}, err
	}

	return s.verify(account, rawPassword)
}

func (s *BunCredentialStore) verify(account *Account, rawPassword string) (Outcome, error) {
	if account == nil {
		s.hasher.ComparePasswordAndHash(rawPassword, s.fallback)
		return Outcome{Succeeded: false}, nil
	}

	if err := s.hasher.ComparePasswordAndHash(rawPassword, account.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return Outcome{Succeeded: false}, nil
		}
		return Outcome{}, err
	}

	return Outcome{Succeeded: true}, nil
}
