package accounts_test

import (
	"context"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/mock"
)

// MockCredentialStore implements accounts.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByIdentifier(ctx context.Context, identifier string) (*accounts.Account, error) {
	args := m.Called(ctx, identifier)
	account, _ := args.Get(0).(*accounts.Account)
	return account, args.Error(1)
}

func (m *MockCredentialStore) FindByID(ctx context.Context, id string) (*accounts.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*accounts.Account)
	return account, args.Error(1)
}

func (m *MockCredentialStore) All(ctx context.Context) ([]*accounts.Account, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]*accounts.Account)
	return records, args.Error(1)
}

func (m *MockCredentialStore) Create(ctx context.Context, account *accounts.Account, rawPassword string) (accounts.Outcome, error) {
	args := m.Called(ctx, account, rawPassword)
	return args.Get(0).(accounts.Outcome), args.Error(1)
}

func (m *MockCredentialStore) Update(ctx context.Context, account *accounts.Account) (accounts.Outcome, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(accounts.Outcome), args.Error(1)
}

func (m *MockCredentialStore) Delete(ctx context.Context, account *accounts.Account) (accounts.Outcome, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(accounts.Outcome), args.Error(1)
}

func (m *MockCredentialStore) VerifyPassword(ctx context.Context, identifier, rawPassword string) (accounts.Outcome, error) {
	args := m.Called(ctx, identifier, rawPassword)
	return args.Get(0).(accounts.Outcome), args.Error(1)
}

// MockProblemRecorder implements accounts.ProblemRecorder
type MockProblemRecorder struct {
	mock.Mock
}

func (m *MockProblemRecorder) Record(controllerName, action string, cause error) error {
	args := m.Called(controllerName, action, cause)
	return args.Error(0)
}

// MockLogger implements accounts.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// quietLogger drops everything; used where log output is not under test
type quietLogger struct{}

func (quietLogger) Debug(string, ...any) {}
func (quietLogger) Info(string, ...any)  {}
func (quietLogger) Warn(string, ...any)  {}
func (quietLogger) Error(string, ...any) {}
