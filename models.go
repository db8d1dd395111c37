package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Gender is the closed gender enumeration carried on the account profile.
type Gender int

const (
	GenderUnspecified Gender = 0
	GenderMale        Gender = 1
	GenderFemale      Gender = 2
)

// String returns the display name for the gender value
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unspecified"
	}
}

// ParseGender safely parses an integer into a Gender value
func ParseGender(value int) (Gender, bool) {
	g := Gender(value)
	switch g {
	case GenderMale, GenderFemale:
		return g, true
	default:
		return GenderUnspecified, false
	}
}

// DefaultAbout is the profile placeholder set on newly created accounts.
const DefaultAbout = "The user has not written anything about themselves yet."

// Account is the account model
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	DisplayName   string     `bun:"display_name" json:"display_name,omitempty"`
	FirstName     string     `bun:"first_name" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name" json:"last_name,omitempty"`
	About         string     `bun:"about" json:"about,omitempty"`
	Age           int        `bun:"age" json:"age,omitempty"`
	Gender        Gender     `bun:"gender" json:"gender,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	AvatarPath    string     `bun:"avatar_path" json:"avatar_path,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	DateCreated   time.Time  `bun:"date_created,notnull" json:"date_created,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// NewAccount builds an account keyed by email with default profile fields.
// The username mirrors the email, which is the convention the identifier
// resolution in the accounts repository assumes.
func NewAccount(email string) *Account {
	return &Account{
		Email:       email,
		Username:    email,
		About:       DefaultAbout,
		AvatarPath:  "",
		DateCreated: time.Now().UTC(),
	}
}

// ProfileUpdate carries a partial profile mutation. Nil pointer fields keep
// the stored value. DisplayName is not optional: whatever value the caller
// sends, including the empty string, replaces the stored one.
type ProfileUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	DisplayName string  `json:"display_name"`
	About       *string `json:"about,omitempty"`
}

// ApplyUpdate merges a partial profile update into the account. First and
// last name fall back to the stored value, then to the empty string.
// DisplayName is always overwritten, even when the update omits it.
func (a *Account) ApplyUpdate(update ProfileUpdate) *Account {
	a.FirstName = coalesce(update.FirstName, a.FirstName)
	a.LastName = coalesce(update.LastName, a.LastName)
	a.DisplayName = update.DisplayName
	if update.About != nil {
		a.About = *update.About
	}
	return a
}

func coalesce(incoming *string, existing string) string {
	if incoming != nil {
		return *incoming
	}
	return existing
}

// PublicProfile is the read-only projection of an account exposed to other
// users. It never carries the email or any credential material.
type PublicProfile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	About       string    `json:"about"`
	Age         int       `json:"age"`
	Gender      Gender    `json:"gender"`
	DateCreated time.Time `json:"date_created"`
	AvatarPath  string    `json:"avatar_path"`
}

// PublicProfile builds a fresh projection from the account record.
func (a *Account) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:          a.ID.String(),
		DisplayName: a.DisplayName,
		About:       a.About,
		Age:         a.Age,
		Gender:      a.Gender,
		DateCreated: a.DateCreated,
		AvatarPath:  a.AvatarPath,
	}
}
