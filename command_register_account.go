package accounts

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

type RegisterAccountMessage struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Age         int    `json:"age"`
	Gender      int    `json:"gender"`
	UseHashid   bool
}

func (e RegisterAccountMessage) Type() string { return "account.register" }

// RegisterAccountHandler creates a fully populated account inside a single
// transaction. The plain Service.Create path covers the bare email+password
// registration; this handler is for callers that carry profile data upfront.
type RegisterAccountHandler struct {
	repo RepositoryManager
}

func NewRegisterAccountHandler(repo RepositoryManager) *RegisterAccountHandler {
	return &RegisterAccountHandler{repo: repo}
}

func (h *RegisterAccountHandler) Execute(ctx context.Context, event RegisterAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterAccountHandler) execute(ctx context.Context, event RegisterAccountMessage) error {
	account := NewAccount(event.Email)
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		account.PasswordHash = hash
		account.Phone = event.Phone
		account.FirstName = event.FirstName
		account.LastName = event.LastName
		account.DisplayName = getDisplayName(event.DisplayName, event.Email)
		account.Age = event.Age

		if gender, ok := ParseGender(event.Gender); ok {
			account.Gender = gender
		}

		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				account.ID = id
			}
		}

		if account, err = h.repo.Accounts().CreateTx(ctx, tx, account); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create account")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "account registration transaction failed")
	}

	return nil
}

func getDisplayName(displayName, email string) string {
	if displayName != "" {
		return displayName
	}

	if strings.Contains(email, "@") {
		displayName = strings.Split(email, "@")[0]
	}

	return displayName
}

type SeedRolesMessage struct{}

func (e SeedRolesMessage) Type() string { return "roles.seed" }

// SeedRolesHandler seeds the fixed role set at process start
type SeedRolesHandler struct {
	registry RoleRegistry
}

func NewSeedRolesHandler(registry RoleRegistry) *SeedRolesHandler {
	return &SeedRolesHandler{registry: registry}
}

func (h *SeedRolesHandler) Execute(ctx context.Context, _ SeedRolesMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during role seeding",
		)
	default:
		return SeedRoles(ctx, h.registry)
	}
}
