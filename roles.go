package accounts

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is one of the fixed application roles. The numbering is part of the
// stored representation and must not change.
type Role int

const (
	RoleMaster Role = 1
	RoleAdmin  Role = 2
	RoleUser   Role = 3
)

// String returns the role name used in the role registry
func (r Role) String() string {
	switch r {
	case RoleMaster:
		return "Master"
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	default:
		return "Unknown"
	}
}

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleMaster, RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// AllRoles returns the fixed role set in declaration order
func AllRoles() []Role {
	return []Role{RoleMaster, RoleAdmin, RoleUser}
}

// ParseRole safely parses a role name into a Role value
func ParseRole(name string) (Role, bool) {
	for _, role := range AllRoles() {
		if role.String() == name {
			return role, true
		}
	}
	return 0, false
}

// RoleRegistry is the store that holds the seeded role names.
type RoleRegistry interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) error
}

// SeedRoles makes sure every member of the fixed role set is present in the
// registry. It runs once at process start; accounts are not assigned a role
// at creation.
func SeedRoles(ctx context.Context, registry RoleRegistry) error {
	for _, role := range AllRoles() {
		name := role.String()

		exists, err := registry.Exists(ctx, name)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check role registry").
				WithMetadata(map[string]any{"role": name})
		}

		if exists {
			continue
		}

		if err := registry.Create(ctx, name); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to seed role").
				WithMetadata(map[string]any{"role": name})
		}
	}

	return nil
}

// RoleRecord is the persisted role registry entry
type RoleRecord struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string    `bun:"name,notnull,unique" json:"name,omitempty"`
}

type bunRoleRegistry struct {
	db *bun.DB
}

// NewRoleRegistry returns a bun backed RoleRegistry
func NewRoleRegistry(db *bun.DB) RoleRegistry {
	return &bunRoleRegistry{db: db}
}

func (r *bunRoleRegistry) Exists(ctx context.Context, name string) (bool, error) {
	return r.db.NewSelect().
		Model((*RoleRecord)(nil)).
		Where("?TableAlias.name = ?", name).
		Exists(ctx)
}

func (r *bunRoleRegistry) Create(ctx context.Context, name string) error {
	record := &RoleRecord{
		ID:   uuid.New(),
		Name: name,
	}

	_, err := r.db.NewInsert().Model(record).Exec(ctx)
	return err
}
