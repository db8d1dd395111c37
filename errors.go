package accounts

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrIdentifierTaken is returned when creating an account whose login
// identifier already belongs to another account.
var ErrIdentifierTaken = goerrors.New("identifier already taken", goerrors.CategoryConflict).
	WithTextCode("IDENTIFIER_TAKEN")

// ErrAccountNotFound is returned when a read lookup matches no account
var ErrAccountNotFound = goerrors.New("account does not exist", goerrors.CategoryNotFound).
	WithTextCode("ACCOUNT_NOT_FOUND")

// ErrAccountMissing is the business conflict returned when updating or
// deleting an account that does not exist. Reads use ErrAccountNotFound.
var ErrAccountMissing = goerrors.New("account does not exist", goerrors.CategoryConflict).
	WithTextCode("ACCOUNT_MISSING")

// ErrCreateDeclined is the store declining an account creation
var ErrCreateDeclined = goerrors.New("internal creation failure", goerrors.CategoryConflict).
	WithTextCode("CREATE_DECLINED")

// ErrUpdateDeclined is the store declining a profile update
var ErrUpdateDeclined = goerrors.New("internal update failure", goerrors.CategoryConflict).
	WithTextCode("UPDATE_DECLINED")

// ErrDeleteDeclined is the store declining an account deletion
var ErrDeleteDeclined = goerrors.New("internal deletion failure", goerrors.CategoryConflict).
	WithTextCode("DELETE_DECLINED")

// ErrInvalidCredentials is returned for every failed authentication. Wrong
// password and unknown identifier produce this same value so callers cannot
// probe which identifiers exist.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS")

// ErrInternalFault is the detail-free outcome surfaced after an unexpected
// failure has been recorded in the problem journal.
var ErrInternalFault = goerrors.New("internal fault", goerrors.CategoryInternal).
	WithTextCode("INTERNAL_FAULT")

// ErrMissingSecret is the configuration fault for an empty signing secret
var ErrMissingSecret = goerrors.New("signing secret is not configured", goerrors.CategoryValidation).
	WithTextCode("MISSING_SECRET")

// ErrTokenExpired is returned when validating a token past its expiry
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed is returned for tokens that fail parsing or signature
// verification
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED")

// ErrNoEmptyString is the guard for empty required string input
var ErrNoEmptyString = goerrors.New("value should not be an empty string", goerrors.CategoryValidation).
	WithTextCode("EMPTY_STRING")

// ErrMismatchedHashAndPassword is the bcrypt comparison failure
var ErrMismatchedHashAndPassword = goerrors.New("mismatched hash and password", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// IsConflict reports whether the error is a business conflict outcome
func IsConflict(err error) bool {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.Category == goerrors.CategoryConflict
	}
	return false
}

// IsNotFound reports whether the error is a not-found outcome
func IsNotFound(err error) bool {
	return goerrors.IsNotFound(err)
}

// IsUnauthenticated reports whether the error is the uniform authentication
// failure
func IsUnauthenticated(err error) bool {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.Category == goerrors.CategoryAuth
	}
	return false
}

// IsValidation reports whether the error was rejected before reaching the
// credential store
func IsValidation(err error) bool {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.Category == goerrors.CategoryValidation
	}
	return false
}

// IsInternalFault reports whether the error is the generic internal-fault
// outcome
func IsInternalFault(err error) bool {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.Category == goerrors.CategoryInternal
	}
	return false
}
