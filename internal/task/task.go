// Package task is the in-memory warehouse task queue and its lifecycle.
package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tarsalgabko/logitrack/internal/metrics"
	"github.com/tarsalgabko/logitrack/internal/model"
	"github.com/tarsalgabko/logitrack/internal/notify"
)

var (
	// ErrNotFound is returned when an operation targets an unknown task id.
	ErrNotFound = errors.New("task not found")
	// ErrIllegalTransition is returned when a status change is not allowed
	// from the task's current status.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// DefaultFetchLatency is the simulated latency of Fetch.
const DefaultFetchLatency = time.Second

// NewTask holds the caller-supplied fields of a task.
type NewTask struct {
	Type          model.TaskType
	Title         string
	Description   string
	Priority      model.TaskPriority
	AssignedTo    string
	DueDate       *time.Time
	Items         []model.TaskLine
	Instructions  string
	EstimatedTime int
}

// TaskPatch lists the fields Update may change. Status and completion time
// only move through Start, Complete and Cancel.
type TaskPatch struct {
	Type          *model.TaskType
	Title         *string
	Description   *string
	Priority      *model.TaskPriority
	AssignedTo    *string
	DueDate       *time.Time
	Items         []model.TaskLine
	Instructions  *string
	EstimatedTime *int
}

func (p TaskPatch) apply(t *model.Task) {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.Items != nil {
		t.Items = model.CloneLines(p.Items)
	}
	if p.Instructions != nil {
		t.Instructions = *p.Instructions
	}
	if p.EstimatedTime != nil {
		t.EstimatedTime = *p.EstimatedTime
	}
}

// Store owns the task queue. All readers receive copies.
type Store struct {
	mu      sync.RWMutex
	tasks   []model.Task
	loading int

	now     func() time.Time
	newID   func() string
	latency time.Duration
	hub     notify.Hub
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source for createdAt and completedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the id source for new tasks.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithFetchLatency sets the simulated latency of Fetch.
func WithFetchLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// New creates a store holding a copy of seed.
func New(seed []model.Task, opts ...Option) *Store {
	s := &Store{
		tasks:   make([]model.Task, 0, len(seed)),
		now:     time.Now,
		newID:   uuid.NewString,
		latency: DefaultFetchLatency,
	}
	for _, t := range seed {
		s.tasks = append(s.tasks, t.Clone())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a pending task with a fresh id and the current time.
func (s *Store) Add(in NewTask) model.Task {
	t := model.Task{
		Type:          in.Type,
		Title:         in.Title,
		Description:   in.Description,
		Priority:      in.Priority,
		Status:        model.TaskPending,
		AssignedTo:    in.AssignedTo,
		DueDate:       in.DueDate,
		Items:         in.Items,
		Instructions:  in.Instructions,
		EstimatedTime: in.EstimatedTime,
	}
	t = t.Clone()
	if t.Items == nil {
		t.Items = []model.TaskLine{}
	}

	s.mu.Lock()
	t.ID = s.newID()
	t.CreatedAt = s.now()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	s.hub.Publish()
	return t.Clone()
}

// Update merges patch into the task with the given id. It reports false when
// no such task exists.
func (s *Store) Update(id string, patch TaskPatch) (model.Task, bool) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return model.Task{}, false
	}
	patch.apply(&s.tasks[i])
	updated := s.tasks[i].Clone()
	s.mu.Unlock()

	s.hub.Publish()
	return updated, true
}

// Start moves a pending task to in-progress.
func (s *Store) Start(id string) (model.Task, error) {
	return s.transition(id, model.TaskInProgress)
}

// Complete marks the task completed and stamps completedAt. Completing an
// already completed task returns it unchanged.
func (s *Store) Complete(id string) (model.Task, error) {
	return s.transition(id, model.TaskCompleted)
}

// Cancel moves a pending or in-progress task to cancelled.
func (s *Store) Cancel(id string) (model.Task, error) {
	return s.transition(id, model.TaskCancelled)
}

func (s *Store) transition(id string, to model.TaskStatus) (model.Task, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t := &s.tasks[i]
	from := t.Status
	if from == to && to == model.TaskCompleted {
		unchanged := t.Clone()
		s.mu.Unlock()
		return unchanged, nil
	}
	if !from.CanTransitionTo(to) {
		s.mu.Unlock()
		metrics.TaskTransitionsRejectedTotal.WithLabelValues(string(from), string(to)).Inc()
		return model.Task{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	t.Status = to
	if to == model.TaskCompleted {
		now := s.now()
		t.CompletedAt = &now
	}
	updated := t.Clone()
	s.mu.Unlock()

	metrics.TaskTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
	s.hub.Publish()
	return updated, nil
}

// Delete removes the task with the given id. It reports false when no such
// task exists.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.mu.Unlock()

	s.hub.Publish()
	return true
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Tasks returns every task in insertion order.
func (s *Store) Tasks() []model.Task {
	return s.where(func(model.Task) bool { return true })
}

// ByStatus returns the tasks whose status equals status.
func (s *Store) ByStatus(status model.TaskStatus) []model.Task {
	return s.where(func(t model.Task) bool { return t.Status == status })
}

// ByAssignee returns the tasks assigned to userID.
func (s *Store) ByAssignee(userID string) []model.Task {
	return s.where(func(t model.Task) bool { return t.AssignedTo == userID })
}

// CompletedOn returns the completed tasks whose completedAt falls on the
// calendar day of day, in day's location.
func (s *Store) CompletedOn(day time.Time) []model.Task {
	y, m, d := day.Date()
	return s.where(func(t model.Task) bool {
		if t.Status != model.TaskCompleted || t.CompletedAt == nil {
			return false
		}
		cy, cm, cd := t.CompletedAt.In(day.Location()).Date()
		return cy == y && cm == m && cd == d
	})
}

func (s *Store) where(keep func(model.Task) bool) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Fetch simulates loading tasks from a backend: Loading reports true for the
// configured latency. It returns early with ctx's error if ctx ends.
func (s *Store) Fetch(ctx context.Context) error {
	s.setLoading(1)
	defer s.setLoading(-1)

	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loading reports whether any Fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// setLoading adjusts the in-flight Fetch count by delta.
func (s *Store) setLoading(delta int) {
	s.mu.Lock()
	s.loading += delta
	s.mu.Unlock()
	s.hub.Publish()
}

// Subscribe registers fn to run after every change to the store.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
