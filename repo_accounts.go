package accounts

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Accounts is the account repository
type Accounts interface {
	repository.Repository[*Account]

	Register(ctx context.Context, account *Account) (*Account, error)
	RegisterTx(ctx context.Context, tx bun.IDB, account *Account) (*Account, error)
	Create(ctx context.Context, record *Account, criteria ...repository.InsertCriteria) (*Account, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Account, criteria ...repository.InsertCriteria) (*Account, error)
}

type accountsRepo struct {
	repository.Repository[*Account]
	db *bun.DB
}

var (
	_ Accounts                        = (*accountsRepo)(nil)
	_ repository.Repository[*Account] = (*accountsRepo)(nil)
)

func NewAccountsRepository(db *bun.DB) Accounts {
	repo := repository.NewRepository[*Account](db, repository.ModelHandlers[*Account]{
		NewRecord: func() *Account { return &Account{} },
		GetID: func(a *Account) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Account, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &accountsRepo{
		Repository: repo,
		db:         db,
	}
}

func (a *accountsRepo) Register(ctx context.Context, account *Account) (*Account, error) {
	return a.RegisterTx(ctx, a.db, account)
}

func (a *accountsRepo) RegisterTx(ctx context.Context, tx bun.IDB, account *Account) (*Account, error) {
	return a.CreateTx(ctx, tx, account)
}

func (a *accountsRepo) Create(ctx context.Context, record *Account, criteria ...repository.InsertCriteria) (*Account, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *accountsRepo) CreateTx(ctx context.Context, tx bun.IDB, record *Account, criteria ...repository.InsertCriteria) (*Account, error) {
	prepareAccountDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *accountsRepo) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*Account, error) {
	return a.GetByIdentifierTx(ctx, a.db, identifier, criteria...)
}

func (a *accountsRepo) GetByIdentifierTx(ctx context.Context, tx bun.IDB, identifier string, criteria ...repository.SelectCriteria) (*Account, error) {
	options := resolveAccountIdentifier(identifier)
	if len(options) == 0 {
		options = []identifierOption{
			{
				column: "id",
				value:  strings.TrimSpace(identifier),
			},
		}
	}

	for _, opt := range options {
		record := &Account{}
		q := tx.NewSelect().Model(record)

		for _, c := range criteria {
			q.Apply(c)
		}

		err := q.
			Where(fmt.Sprintf("?TableAlias.%s = ?", opt.column), opt.value).
			Limit(1).
			Scan(ctx)

		if err != nil {
			if repository.IsRecordNotFound(err) {
				continue
			}
			return nil, err
		}

		return record, nil
	}

	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{
			"identifier": identifier,
		})
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	if record.Username == "" {
		record.Username = record.Email
	}

	if record.About == "" {
		record.About = DefaultAbout
	}

	if record.DateCreated.IsZero() {
		record.DateCreated = time.Now().UTC()
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

type identifierOption struct {
	column string
	value  string
}

// resolveAccountIdentifier maps an opaque identifier to the columns it can
// match: a UUID is tried against id, an address against email, and any
// value against username (which mirrors the email at creation).
func resolveAccountIdentifier(identifier string) []identifierOption {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil
	}

	options := make([]identifierOption, 0, 3)

	if isUUID(trimmed) {
		options = append(options, identifierOption{
			column: "id",
			value:  trimmed,
		})
	}

	if isEmail(trimmed) {
		options = append(options, identifierOption{
			column: "email",
			value:  trimmed,
		})
	}

	options = append(options, identifierOption{
		column: "username",
		value:  trimmed,
	})

	return options
}

func isEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isUUID(identifier string) bool {
	_, err := uuid.Parse(identifier)
	return err == nil
}
