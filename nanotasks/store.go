// Package nanotasks manages an ordered task list mirrored to a durable slot.
//
// A Store owns the collection and writes it through a Persister after every
// mutation. Project derives the visible subset for a filter, and a Board ties
// a Store to the active filter for a presentation layer.
package nanotasks

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/arthur-debert/nanotasks/internal/validation"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

// Persister loads and saves the whole collection.
// *storage.Adapter is the production implementation.
type Persister interface {
	Load() []types.Task
	Save(tasks []types.Task) error
}

// Store is the sole owner of a task collection.
//
// Every mutating method saves the full collection before returning. When the
// save fails the mutation is discarded: the in-memory collection always
// equals the last successfully persisted one, and the caller gets a
// *types.PersistenceError.
type Store struct {
	persister   Persister
	tasks       []types.Task
	lockManager *storage.LockManager
	newID       IDGenerator
	// timeFunc is used to get the current time, defaults to time.Now
	timeFunc func() time.Time
	logger   *slog.Logger
}

// Option is a function that modifies Store configuration
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.timeFunc = now
	}
}

// WithIDGenerator overrides the id source
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithLogger sets the store logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New loads the collection from p and returns a store over it.
// Stored records without an id, or repeating an earlier one, get a fresh id.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister:   p,
		lockManager: storage.NewLockManager(),
		newID:       NewID,
		timeFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.tasks = s.repairIDs(p.Load())
	return s
}

func (s *Store) repairIDs(loaded []types.Task) []types.Task {
	tasks := make([]types.Task, 0, len(loaded))
	seen := make(map[string]bool, len(loaded))
	for _, t := range loaded {
		seen[t.ID] = true
	}
	kept := make(map[string]bool, len(loaded))
	for _, t := range loaded {
		if t.ID == "" || kept[t.ID] {
			old := t.ID
			t.ID = uniqueID(s.newID, func(id string) bool { return seen[id] })
			seen[t.ID] = true
			s.logger.Warn("stored task had a missing or duplicate id, assigned a new one",
				"old_id", old, "new_id", t.ID)
		}
		kept[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks
}

// commit saves next and, only on success, makes it the current collection.
// Callers hold the write lock.
func (s *Store) commit(op string, next []types.Task) error {
	if err := s.persister.Save(next); err != nil {
		var pe *types.PersistenceError
		if !errors.As(err, &pe) {
			err = &types.PersistenceError{Op: "save", Err: err}
		}
		s.logger.Error("mutation discarded, save failed", "op", op, "error", err)
		return err
	}
	s.tasks = next
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t types.Task) bool { return t.ID == id })
}

func (s *Store) hasID(id string) bool {
	return s.indexOf(id) >= 0
}

func (s *Store) now() time.Time {
	return s.timeFunc().UTC().Truncate(time.Millisecond)
}

// Create adds a new pending task at the front of the collection
func (s *Store) Create(text, date, clock string) (types.Task, error) {
	text, date, clock, err := validation.TaskFields(text, date, clock)
	if err != nil {
		return types.Task{}, err
	}

	return storage.ExecuteWithResult(s.lockManager, storage.WriteOperation, func() (types.Task, error) {
		task := types.Task{
			ID:        uniqueID(s.newID, s.hasID),
			Text:      text,
			Date:      date,
			Time:      clock,
			CreatedAt: s.now(),
		}

		next := make([]types.Task, 0, len(s.tasks)+1)
		next = append(next, task)
		next = append(next, s.tasks...)
		if err := s.commit("create", next); err != nil {
			return types.Task{}, err
		}

		s.logger.Debug("task created", "id", task.ID)
		return task, nil
	})
}

// Insert adds a task produced elsewhere (an import) at the front of the
// collection, keeping its id, completion flag and creation time.
// A missing id or creation time is generated.
func (s *Store) Insert(task types.Task) (types.Task, error) {
	text, date, clock, err := validation.TaskFields(task.Text, task.Date, task.Time)
	if err != nil {
		return types.Task{}, err
	}
	task.Text, task.Date, task.Time = text, date, clock

	return storage.ExecuteWithResult(s.lockManager, storage.WriteOperation, func() (types.Task, error) {
		if task.ID == "" {
			task.ID = uniqueID(s.newID, s.hasID)
		} else if s.hasID(task.ID) {
			return types.Task{}, &types.ValidationError{
				Field:  "id",
				Value:  task.ID,
				Reason: "a task with this id already exists",
			}
		}
		if task.CreatedAt.IsZero() {
			task.CreatedAt = s.now()
		} else {
			task.CreatedAt = task.CreatedAt.UTC().Truncate(time.Millisecond)
		}

		next := make([]types.Task, 0, len(s.tasks)+1)
		next = append(next, task)
		next = append(next, s.tasks...)
		if err := s.commit("insert", next); err != nil {
			return types.Task{}, err
		}
		return task, nil
	})
}

// Update replaces the text, date and time of a task in place.
// ID, Completed, CreatedAt and position are kept.
func (s *Store) Update(id, text, date, clock string) (types.Task, error) {
	return storage.ExecuteWithResult(s.lockManager, storage.WriteOperation, func() (types.Task, error) {
		idx := s.indexOf(id)
		if idx < 0 {
			return types.Task{}, &types.NotFoundError{ID: id}
		}

		text, date, clock, err := updatedFields(s.tasks[idx], text, date, clock)
		if err != nil {
			return types.Task{}, err
		}

		next := slices.Clone(s.tasks)
		next[idx].Text = text
		next[idx].Date = date
		next[idx].Time = clock
		if err := s.commit("update", next); err != nil {
			return types.Task{}, err
		}

		s.logger.Debug("task updated", "id", id)
		return next[idx], nil
	})
}

// updatedFields validates the fields of an update. A date or time equal to
// the stored value is kept as is, so a loaded task with a schedule in some
// other layout can still have its text changed.
func updatedFields(current types.Task, text, date, clock string) (string, string, string, error) {
	text, err := validation.NormalizeText(text)
	if err != nil {
		return "", "", "", err
	}
	if date != current.Date {
		if date, err = validation.ValidateDate(date); err != nil {
			return "", "", "", err
		}
	}
	if clock != current.Time {
		if clock, err = validation.ValidateTime(clock); err != nil {
			return "", "", "", err
		}
	}
	return text, date, clock, nil
}

// ToggleCompleted flips the completion flag of a task
func (s *Store) ToggleCompleted(id string) (types.Task, error) {
	return storage.ExecuteWithResult(s.lockManager, storage.WriteOperation, func() (types.Task, error) {
		idx := s.indexOf(id)
		if idx < 0 {
			return types.Task{}, &types.NotFoundError{ID: id}
		}

		next := slices.Clone(s.tasks)
		next[idx].Completed = !next[idx].Completed
		if err := s.commit("toggle", next); err != nil {
			return types.Task{}, err
		}

		s.logger.Debug("task toggled", "id", id, "completed", next[idx].Completed)
		return next[idx], nil
	})
}

// Delete removes a task. Deleting an unknown id does nothing and writes nothing.
func (s *Store) Delete(id string) error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		idx := s.indexOf(id)
		if idx < 0 {
			s.logger.Debug("delete of unknown task ignored", "id", id)
			return nil
		}

		next := slices.Delete(slices.Clone(s.tasks), idx, idx+1)
		if err := s.commit("delete", next); err != nil {
			return err
		}

		s.logger.Debug("task deleted", "id", id)
		return nil
	})
}

// List returns a snapshot of the collection, newest first
func (s *Store) List() []types.Task {
	tasks, _ := storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() ([]types.Task, error) {
		out := make([]types.Task, len(s.tasks))
		copy(out, s.tasks)
		return out, nil
	})
	return tasks
}

// Get returns a single task by exact id
func (s *Store) Get(id string) (types.Task, error) {
	return storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() (types.Task, error) {
		idx := s.indexOf(id)
		if idx < 0 {
			return types.Task{}, &types.NotFoundError{ID: id}
		}
		return s.tasks[idx], nil
	})
}

// Resolve maps a user-typed reference to a task id: an exact id wins,
// otherwise the reference must be a prefix of exactly one id.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	return storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() (string, error) {
		if ref == "" {
			return "", &types.NotFoundError{ID: ref}
		}
		if s.hasID(ref) {
			return ref, nil
		}

		lower := strings.ToLower(ref)
		var matches []string
		for _, t := range s.tasks {
			if strings.HasPrefix(strings.ToLower(t.ID), lower) {
				matches = append(matches, t.ID)
			}
		}
		switch len(matches) {
		case 0:
			return "", &types.NotFoundError{ID: ref}
		case 1:
			return matches[0], nil
		}
		return "", &types.AmbiguousIDError{Ref: ref, Matches: matches}
	})
}
