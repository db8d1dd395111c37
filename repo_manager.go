package accounts

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Accounts() Accounts
	Roles() repository.Repository[*RoleRecord]
}

func NewRolesRepository(db *bun.DB) repository.Repository[*RoleRecord] {
	handlers := repository.ModelHandlers[*RoleRecord]{
		NewRecord: func() *RoleRecord {
			return &RoleRecord{}
		},
		GetID: func(record *RoleRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *RoleRecord, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
	}
	return repository.NewRepository(db, handlers)
}

type mngr struct {
	db       *bun.DB
	accounts Accounts
	roles    repository.Repository[*RoleRecord]
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		accounts: NewAccountsRepository(db),
		roles:    NewRolesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}

	if m.roles == nil {
		return errors.New("repository roles should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Accounts() Accounts {
	return m.accounts
}

func (m mngr) Roles() repository.Repository[*RoleRecord] {
	return m.roles
}
