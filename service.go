package accounts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// serviceName labels journal entries recorded by the account service
const serviceName = "Account Service"

// Human readable action descriptions attached to journal entries
const (
	actionCreate       = "Creating an account with email and password"
	actionRead         = "Reading individual account info"
	actionReadAll      = "Reading multiple accounts info"
	actionUpdate       = "Updating account info"
	actionDelete       = "Removing an account"
	actionAuthenticate = "Signing in the account using email and password"
)

// ProblemRecorder is the journal surface the service needs
type ProblemRecorder interface {
	Record(controllerName, action string, cause error) error
}

type noopProblemRecorder struct{}

func (noopProblemRecorder) Record(string, string, error) error { return nil }

// Service orchestrates the account lifecycle against the credential store,
// issuing tokens on successful authentication and recording unexpected
// faults in the problem journal. Business conflicts and authentication
// failures are returned as values and never journaled.
type Service struct {
	store   CredentialStore
	issuer  *TokenIssuer
	journal ProblemRecorder
	logger  Logger
}

var _ AccountManager = (*Service)(nil)

// NewService returns a new account Service
func NewService(store CredentialStore, issuer *TokenIssuer) *Service {
	return &Service{
		store:   store,
		issuer:  issuer,
		journal: noopProblemRecorder{},
		logger:  defLogger{},
	}
}

// NewServiceFromConfig builds the token issuer and problem journal from the
// config and wires them into a service over the given store.
func NewServiceFromConfig(cfg Config, store CredentialStore, logger Logger) (*Service, error) {
	issuer, err := NewTokenIssuer(cfg.GetSigningSecret(), logger)
	if err != nil {
		return nil, err
	}

	svc := NewService(store, issuer).WithLogger(logger)

	if path := cfg.GetJournalPath(); path != "" {
		journal, err := NewJournal(path, WithJournalLogger(logger))
		if err != nil {
			return nil, err
		}
		svc.WithJournal(journal)
	}

	return svc, nil
}

func (s *Service) WithLogger(logger Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithJournal configures the problem journal used for unexpected faults
func (s *Service) WithJournal(journal ProblemRecorder) *Service {
	if journal != nil {
		s.journal = journal
	}
	return s
}

// Create registers a new account under the given login identifier. A taken
// identifier yields ErrIdentifierTaken; a store decline ErrCreateDeclined.
func (s *Service) Create(ctx context.Context, identifier, password string) (err error) {
	defer s.recoverFault(actionCreate, &err)

	if identifier == "" || password == "" {
		return goerrors.New("identifier and password are required", goerrors.CategoryValidation)
	}

	existing, err := s.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		return s.fault(actionCreate, err)
	}

	if existing != nil {
		return ErrIdentifierTaken
	}

	outcome, err := s.store.Create(ctx, NewAccount(identifier), password)
	if err != nil {
		return s.fault(actionCreate, err)
	}

	if !outcome.Succeeded {
		return ErrCreateDeclined
	}

	// TODO: send the new account a welcome + confirmation email
	return nil
}

// Read returns the account matching the identifier. Both the internal id
// and the login identifier are accepted as lookup keys.
func (s *Service) Read(ctx context.Context, identifier string) (account *Account, err error) {
	defer s.recoverFault(actionRead, &err)

	if identifier == "" {
		return nil, goerrors.New("identifier is required", goerrors.CategoryValidation)
	}

	account, ferr := s.find(ctx, identifier)
	if ferr != nil {
		return nil, s.fault(actionRead, ferr)
	}

	if account == nil {
		return nil, ErrAccountNotFound
	}

	return account, nil
}

// ReadAll returns every account. An empty set is a valid, non-error result.
func (s *Service) ReadAll(ctx context.Context) (records []*Account, err error) {
	defer s.recoverFault(actionReadAll, &err)

	records, aerr := s.store.All(ctx)
	if aerr != nil {
		return nil, s.fault(actionReadAll, aerr)
	}

	if records == nil {
		records = []*Account{}
	}

	return records, nil
}

// Update merges a partial profile update into the matching account and
// persists it. Unset fields keep their stored value; DisplayName is always
// overwritten with the incoming value. A missing account is a business
// conflict, not a not-found outcome.
func (s *Service) Update(ctx context.Context, identifier string, update ProfileUpdate) (err error) {
	defer s.recoverFault(actionUpdate, &err)

	if identifier == "" {
		return goerrors.New("identifier is required", goerrors.CategoryValidation)
	}

	account, ferr := s.find(ctx, identifier)
	if ferr != nil {
		return s.fault(actionUpdate, ferr)
	}

	if account == nil {
		return ErrAccountMissing
	}

	outcome, uerr := s.store.Update(ctx, account.ApplyUpdate(update))
	if uerr != nil {
		return s.fault(actionUpdate, uerr)
	}

	if !outcome.Succeeded {
		return ErrUpdateDeclined
	}

	return nil
}

// Delete removes the matching account. There is no soft delete.
func (s *Service) Delete(ctx context.Context, identifier string) (err error) {
	defer s.recoverFault(actionDelete, &err)

	if identifier == "" {
		return goerrors.New("identifier is required", goerrors.CategoryValidation)
	}

	account, ferr := s.find(ctx, identifier)
	if ferr != nil {
		return s.fault(actionDelete, ferr)
	}

	if account == nil {
		return ErrAccountMissing
	}

	outcome, derr := s.store.Delete(ctx, account)
	if derr != nil {
		return s.fault(actionDelete, derr)
	}

	if !outcome.Succeeded {
		return ErrDeleteDeclined
	}

	return nil
}

// Authenticate verifies the credentials with the store and issues a signed
// token on success. A wrong password and an unknown identifier produce the
// identical ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (token string, err error) {
	defer s.recoverFault(actionAuthenticate, &err)

	if identifier == "" || password == "" {
		return "", goerrors.New("identifier and password are required", goerrors.CategoryValidation)
	}

	outcome, verr := s.store.VerifyPassword(ctx, identifier, password)
	if verr != nil {
		return "", s.fault(actionAuthenticate, verr)
	}

	if !outcome.Succeeded {
		return "", ErrInvalidCredentials
	}

	token, ierr := s.issuer.Issue(identifier)
	if ierr != nil {
		return "", s.fault(actionAuthenticate, ierr)
	}

	return token, nil
}

// find resolves an account by login identifier first, then by internal id.
// It returns (nil, nil) when nothing matches.
func (s *Service) find(ctx context.Context, identifier string) (*Account, error) {
	account, err := s.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if account != nil {
		return account, nil
	}

	return s.store.FindByID(ctx, identifier)
}

// fault records an unexpected failure in the journal and returns the
// detail-free internal fault outcome.
func (s *Service) fault(action string, cause error) error {
	s.logger.Error("account service fault", "action", action, "error", cause)

	if err := s.journal.Record(serviceName, action, cause); err != nil {
		s.logger.Error("failed to record problem", "action", action, "error", err)
	}

	return ErrInternalFault
}

// recoverFault converts a panic escaping an operation into a journaled
// internal fault, mirroring the catch-at-boundary discipline for errors.
func (s *Service) recoverFault(action string, err *error) {
	if r := recover(); r != nil {
		*err = s.fault(action, fmt.Errorf("panic: %v", r))
	}
}
