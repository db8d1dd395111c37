package accounts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Problem is one recorded operational failure. Records are immutable once
// written; the journal keeps them in insertion order, oldest first.
type Problem struct {
	ID             string    `json:"id"`
	ControllerName string    `json:"controllerName"`
	Action         string    `json:"action"`
	Message        string    `json:"message"`
	StackTrace     string    `json:"stackTrace"`
	DateTime       time.Time `json:"dateTime"`
}

// NewProblem captures a failure into a journal record
func NewProblem(controllerName, action string, cause error) Problem {
	message := ""
	if cause != nil {
		message = cause.Error()
	}

	return Problem{
		ID:             uuid.New().String(),
		ControllerName: controllerName,
		Action:         action,
		Message:        message,
		StackTrace:     string(debug.Stack()),
		DateTime:       time.Now().UTC(),
	}
}

// Journal is the durable append-only log of operational failures. All
// mutations rewrite the backing file before returning, so a crash right
// after Record cannot lose the entry. A single lock serializes writers;
// readers get a snapshot copy.
type Journal struct {
	mu       sync.Mutex
	path     string
	problems []Problem
	logger   Logger
}

type JournalOption func(*Journal)

// WithJournalLogger overrides the journal logger
func WithJournalLogger(logger Logger) JournalOption {
	return func(j *Journal) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// NewJournal opens the journal backed by the given file. A missing file
// starts an empty journal; a file that exists but cannot be decoded is a
// configuration fault and fails here.
func NewJournal(path string, opts ...JournalOption) (*Journal, error) {
	j := &Journal{
		path:     path,
		problems: []Problem{},
		logger:   defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(j)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return j, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read problem journal").
			WithMetadata(map[string]any{"path": path})
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &j.problems); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "problem journal is corrupt").
				WithMetadata(map[string]any{"path": path})
		}
	}

	return j, nil
}

// Record appends a problem and persists the journal before returning
func (j *Journal) Record(controllerName, action string, cause error) error {
	problem := NewProblem(controllerName, action, cause)

	j.mu.Lock()
	defer j.mu.Unlock()

	j.problems = append(j.problems, problem)

	if err := j.flush(); err != nil {
		// keep the in-memory record, surface the persistence failure
		j.logger.Error("journal flush failed", "error", err)
		return err
	}

	return nil
}

// Problems returns a snapshot of the journal in insertion order
func (j *Journal) Problems() []Problem {
	j.mu.Lock()
	defer j.mu.Unlock()

	snapshot := make([]Problem, len(j.problems))
	copy(snapshot, j.problems)
	return snapshot
}

// Clear empties the journal and persists the empty state
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.problems = []Problem{}
	return j.flush()
}

// Len returns the number of recorded problems
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.problems)
}

// flush rewrites the whole backing file. Callers must hold the lock.
// The write goes through a temp file plus rename so readers never observe
// a partially written journal.
func (j *Journal) flush() error {
	data, err := json.MarshalIndent(j.problems, "", "  ")
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode problem journal")
	}

	dir := filepath.Dir(j.path)
	tmp, err := os.CreateTemp(dir, ".journal-*")
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to stage problem journal write")
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write problem journal")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sync problem journal")
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to close problem journal")
	}

	if err := os.Rename(tmpName, j.path); err != nil {
		os.Remove(tmpName)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to replace problem journal")
	}

	return nil
}
