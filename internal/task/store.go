package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"taskpad/internal/storage"
)

// StorageKey is the slot holding the serialized collection.
const StorageKey = "tasks"

// maxIDAttempts bounds id regeneration on collision.
const maxIDAttempts = 3

// Store is the single source of truth for tasks.
// Every mutation is written through to the backing slot before it returns.
// A Store is not safe for concurrent use; callers drive it from one
// goroutine, one user action at a time.
type Store struct {
	backend storage.Storage
	key     string
	tasks   []Task
	now     func() time.Time
	newID   IDFunc
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides the id generator.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an empty store over backend. Call Load to read the
// persisted collection.
func NewStore(backend storage.Storage, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     StorageKey,
		now:     time.Now,
		newID:   NewID,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one.
// An empty slot yields an empty collection. Malformed data is logged and
// discarded; only backend read failures are returned.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.backend.GetItem(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	if !ok {
		s.tasks = nil
		return nil
	}

	tasks, err := decode(data)
	if err != nil {
		s.logger.Warn("discarding malformed task data", "key", s.key, "error", err)
		s.tasks = nil
		return nil
	}
	s.tasks = tasks
	s.logger.Debug("tasks loaded", "count", len(tasks))
	return nil
}

// Save writes the whole collection to the slot, replacing the previous
// snapshot.
func (s *Store) Save(ctx context.Context) error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := s.backend.SetItem(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// Create validates in, assigns an id and creation time, appends the task
// and persists the collection.
func (s *Store) Create(ctx context.Context, in Input) (Task, error) {
	in, err := in.normalize()
	if err != nil {
		return Task{}, err
	}

	id, err := s.uniqueID()
	if err != nil {
		return Task{}, err
	}

	t := Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Completed:   false,
		CreatedAt:   s.now().UTC(),
	}

	prev := s.tasks
	s.tasks = append(slices.Clone(prev), t)
	if err := s.Save(ctx); err != nil {
		s.tasks = prev
		return Task{}, err
	}
	return t, nil
}

// Update replaces title, description, due date and priority of task id.
// ID, CreatedAt and Completed are preserved.
func (s *Store) Update(ctx context.Context, id string, in Input) (Task, error) {
	in, err := in.normalize()
	if err != nil {
		return Task{}, err
	}

	i := s.index(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}

	prev := slices.Clone(s.tasks)
	t := &s.tasks[i]
	t.Title = in.Title
	t.Description = in.Description
	t.DueDate = in.DueDate
	t.Priority = in.Priority

	if err := s.Save(ctx); err != nil {
		s.tasks = prev
		return Task{}, err
	}
	return *t, nil
}

// Delete removes task id. Deleting an absent id is a NotFoundError.
func (s *Store) Delete(ctx context.Context, id string) error {
	i := s.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}

	prev := s.tasks
	s.tasks = slices.Delete(slices.Clone(prev), i, i+1)
	if err := s.Save(ctx); err != nil {
		s.tasks = prev
		return err
	}
	return nil
}

// ToggleCompletion flips the completed flag of task id.
func (s *Store) ToggleCompletion(ctx context.Context, id string) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	if err := s.Save(ctx); err != nil {
		s.tasks[i].Completed = !s.tasks[i].Completed
		return Task{}, err
	}
	return s.tasks[i], nil
}

// GetByID returns the task with id, if present.
func (s *Store) GetByID(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Store) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("failed to generate task id: %w", err)
		}
		if id != "" && s.index(id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("failed to generate a unique task id")
}

// decode parses a persisted collection. Records without an id and
// duplicate ids make the whole document malformed.
func decode(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("record %d has no id", i)
		}
		if strings.TrimSpace(t.Title) == "" {
			return nil, fmt.Errorf("record %s has no title", t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("duplicate id %s", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return tasks, nil
}
