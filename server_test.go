package accounts_test

import (
	"testing"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	service := newTestService(t, &MockCredentialStore{})
	ctrl, _, _ := newTestController(t, service)

	srv := accounts.NewServer(ctrl)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.Router())
}
