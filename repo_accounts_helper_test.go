package accounts

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAccountIdentifier(t *testing.T) {
	t.Parallel()

	t.Run("uuid matches id, then username", func(t *testing.T) {
		id := uuid.New().String()
		options := resolveAccountIdentifier(id)

		require.Len(t, options, 2)
		assert.Equal(t, "id", options[0].column)
		assert.Equal(t, id, options[0].value)
		assert.Equal(t, "username", options[1].column)
	})

	t.Run("email matches email, then username", func(t *testing.T) {
		options := resolveAccountIdentifier("ann@example.com")

		require.Len(t, options, 2)
		assert.Equal(t, "email", options[0].column)
		assert.Equal(t, "username", options[1].column)
		assert.Equal(t, "ann@example.com", options[1].value)
	})

	t.Run("plain value falls through to username", func(t *testing.T) {
		options := resolveAccountIdentifier("annp")

		require.Len(t, options, 1)
		assert.Equal(t, "username", options[0].column)
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		options := resolveAccountIdentifier("  ann@example.com  ")

		require.NotEmpty(t, options)
		assert.Equal(t, "ann@example.com", options[0].value)
	})

	t.Run("blank identifier resolves to nothing", func(t *testing.T) {
		assert.Empty(t, resolveAccountIdentifier(""))
		assert.Empty(t, resolveAccountIdentifier("   "))
	})
}

func TestPrepareAccountDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills missing fields", func(t *testing.T) {
		record := &Account{Email: "ann@example.com"}

		prepareAccountDefaults(record)

		assert.Equal(t, "ann@example.com", record.Username)
		assert.Equal(t, DefaultAbout, record.About)
		assert.False(t, record.DateCreated.IsZero())
		assert.NotEqual(t, uuid.Nil, record.ID)
	})

	t.Run("keeps populated fields", func(t *testing.T) {
		id := uuid.New()
		record := &Account{
			ID:       id,
			Email:    "ann@example.com",
			Username: "annp",
			About:    "hello",
		}

		prepareAccountDefaults(record)

		assert.Equal(t, id, record.ID)
		assert.Equal(t, "annp", record.Username)
		assert.Equal(t, "hello", record.About)
	})

	t.Run("nil record is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() {
			prepareAccountDefaults(nil)
		})
	})
}
