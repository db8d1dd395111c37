package accounts_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func journalPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "problems.json")
}

func TestNewJournal(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		journal, err := accounts.NewJournal(journalPath(t))
		require.NoError(t, err)
		assert.Equal(t, 0, journal.Len())
		assert.Empty(t, journal.Problems())
	})

	t.Run("empty file starts empty", func(t *testing.T) {
		path := journalPath(t)
		require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

		journal, err := accounts.NewJournal(path)
		require.NoError(t, err)
		assert.Equal(t, 0, journal.Len())
	})

	t.Run("corrupt file fails at open", func(t *testing.T) {
		path := journalPath(t)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		journal, err := accounts.NewJournal(path)
		assert.Nil(t, journal)
		assert.Error(t, err)
		assert.True(t, accounts.IsInternalFault(err))
	})
}

func TestJournal_Record(t *testing.T) {
	t.Run("captures the failure context", func(t *testing.T) {
		journal, err := accounts.NewJournal(journalPath(t))
		require.NoError(t, err)

		before := time.Now().UTC()
		require.NoError(t, journal.Record("Account Service", "Updating account info", errors.New("disk full")))

		problems := journal.Problems()
		require.Len(t, problems, 1)

		problem := problems[0]
		assert.NotEmpty(t, problem.ID)
		assert.Equal(t, "Account Service", problem.ControllerName)
		assert.Equal(t, "Updating account info", problem.Action)
		assert.Equal(t, "disk full", problem.Message)
		assert.Contains(t, problem.StackTrace, "goroutine")
		assert.WithinDuration(t, before, problem.DateTime, time.Minute)
	})

	t.Run("each record gets a distinct id", func(t *testing.T) {
		journal, err := accounts.NewJournal(journalPath(t))
		require.NoError(t, err)

		require.NoError(t, journal.Record("A", "first", errors.New("x")))
		require.NoError(t, journal.Record("A", "second", errors.New("y")))

		problems := journal.Problems()
		require.Len(t, problems, 2)
		assert.NotEqual(t, problems[0].ID, problems[1].ID)
		assert.Equal(t, "first", problems[0].Action)
		assert.Equal(t, "second", problems[1].Action)
	})

	t.Run("survives reopening", func(t *testing.T) {
		path := journalPath(t)

		journal, err := accounts.NewJournal(path)
		require.NoError(t, err)
		require.NoError(t, journal.Record("Account Service", "Removing an account", errors.New("boom")))

		reopened, err := accounts.NewJournal(path)
		require.NoError(t, err)

		problems := reopened.Problems()
		require.Len(t, problems, 1)
		assert.Equal(t, "boom", problems[0].Message)
	})

	t.Run("concurrent records are all kept", func(t *testing.T) {
		path := journalPath(t)

		journal, err := accounts.NewJournal(path)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				assert.NoError(t, journal.Record("Account Service", "Reading individual account info", fmt.Errorf("fault %d", n)))
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 20, journal.Len())

		reopened, err := accounts.NewJournal(path)
		require.NoError(t, err)
		assert.Equal(t, 20, reopened.Len())
	})
}

func TestJournal_Clear(t *testing.T) {
	path := journalPath(t)

	journal, err := accounts.NewJournal(path)
	require.NoError(t, err)
	require.NoError(t, journal.Record("Account Service", "Reading multiple accounts info", errors.New("boom")))
	require.Equal(t, 1, journal.Len())

	require.NoError(t, journal.Clear())
	assert.Equal(t, 0, journal.Len())

	// clearing persists: a reopen starts empty too
	reopened, err := accounts.NewJournal(path)
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestJournal_ProblemsReturnsSnapshot(t *testing.T) {
	journal, err := accounts.NewJournal(journalPath(t))
	require.NoError(t, err)
	require.NoError(t, journal.Record("A", "one", errors.New("x")))

	snapshot := journal.Problems()
	snapshot[0].Message = "mutated"

	assert.Equal(t, "x", journal.Problems()[0].Message)
}
