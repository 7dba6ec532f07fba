package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/infrastructure/config"
	"github.com/quickdesk/core/internal/infrastructure/logger"
	"github.com/quickdesk/core/internal/ports"
)

// TaskStore owns the widget's task list. Mutations apply locally first and
// are reconciled with the remote collaborator best-effort: a failed remote
// call is logged and the local change stands (no rollback, see DESIGN.md).
type TaskStore struct {
	mu     sync.Mutex
	api    ports.TaskAPI
	cfg    config.WidgetConfig
	logger *logger.Logger

	tasks  []entities.Task
	loaded bool
	lastID int64
}

// NewTaskStore creates a new task store
func NewTaskStore(api ports.TaskAPI, cfg config.WidgetConfig, log *logger.Logger) *TaskStore {
	return &TaskStore{
		api:    api,
		cfg:    cfg,
		logger: log.WithComponent("task_store"),
	}
}

// Load populates the store with the configured page of tasks. On failure
// the store stays in its empty state and the error is returned to the
// caller; there is no automatic retry.
func (s *TaskStore) Load(ctx context.Context) error {
	tasks, err := s.api.FetchTasks(ctx, s.cfg.TaskPage, s.cfg.TaskLimit)
	if err != nil {
		s.logger.Errorw("Failed to fetch tasks", "error", err)
		return fmt.Errorf("fetch tasks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = tasks
	s.loaded = true
	for _, t := range tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}

	s.logger.Infow("Task list loaded", "count", len(tasks))
	return nil
}

// Loaded reports whether the initial fetch has completed.
func (s *TaskStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Create produces a new empty task in the default bucket, due now, and
// prepends it so the list stays most-recently-created first. The local
// insert always succeeds.
func (s *TaskStore) Create(ctx context.Context) entities.Task {
	s.mu.Lock()

	task := entities.Task{
		ID:          s.nextID(),
		Category:    s.cfg.DefaultCategory,
		Title:       "",
		DueDate:     time.Now(),
		Description: "",
		Completed:   false,
		Stickers:    nil,
	}

	s.tasks = append([]entities.Task{task}, s.tasks...)
	s.mu.Unlock()

	if err := s.api.CreateTask(ctx, task); err != nil {
		s.logger.Warnw("Remote task create failed", "task_id", task.ID, "error", err)
	}

	return task
}

// nextID derives a creation-time id in milliseconds and keeps it strictly
// increasing so two creates in the same millisecond never collide.
// Caller holds s.mu.
func (s *TaskStore) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Update replaces exactly the named field on the task matching id. An
// unknown id is a no-op, not an error; an unknown field name or a value of
// the wrong type is rejected before any state changes. The list order is
// never touched.
func (s *TaskStore) Update(ctx context.Context, id int64, field string, value interface{}) error {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	task := s.tasks[idx]
	if err := applyField(&task, field, value); err != nil {
		s.mu.Unlock()
		return err
	}

	s.tasks[idx] = task
	s.mu.Unlock()

	if err := s.api.UpdateTask(ctx, task); err != nil {
		s.logger.Warnw("Remote task update failed", "task_id", id, "field", field, "error", err)
	}

	return nil
}

func applyField(task *entities.Task, field string, value interface{}) error {
	switch field {
	case "category":
		v, ok := value.(string)
		if !ok {
			return entities.ErrInvalidFieldValue
		}
		task.Category = v
	case "title":
		v, ok := value.(string)
		if !ok {
			return entities.ErrInvalidFieldValue
		}
		task.Title = v
	case "description":
		v, ok := value.(string)
		if !ok {
			return entities.ErrInvalidFieldValue
		}
		task.Description = v
	case "dueDate":
		v, ok := value.(time.Time)
		if !ok {
			return entities.ErrInvalidFieldValue
		}
		task.DueDate = v
	case "completed":
		v, ok := value.(bool)
		if !ok {
			return entities.ErrInvalidFieldValue
		}
		task.Completed = v
	case "stickers":
		stickers, err := coerceStickers(value)
		if err != nil {
			return err
		}
		task.Stickers = stickers
	default:
		return entities.ErrUnknownField
	}
	return nil
}

func coerceStickers(value interface{}) ([]entities.Sticker, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []entities.Sticker:
		for _, s := range v {
			if !s.IsValid() {
				return nil, entities.ErrUnknownSticker
			}
		}
		return v, nil
	case []string:
		out := make([]entities.Sticker, 0, len(v))
		for _, raw := range v {
			s, err := entities.ParseSticker(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, entities.ErrInvalidFieldValue
	}
}

// ToggleCompleted flips the completed flag; unknown ids are no-ops.
func (s *TaskStore) ToggleCompleted(ctx context.Context, id int64) {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.tasks[idx].Completed = !s.tasks[idx].Completed
	task := s.tasks[idx]
	s.mu.Unlock()

	if err := s.api.UpdateTask(ctx, task); err != nil {
		s.logger.Warnw("Remote task update failed", "task_id", id, "error", err)
	}
}

// ToggleSticker adds or removes a vocabulary tag on the task's sticker
// set. Unknown tags are rejected; unknown ids are no-ops.
func (s *TaskStore) ToggleSticker(ctx context.Context, id int64, sticker entities.Sticker) error {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	if err := s.tasks[idx].ToggleSticker(sticker); err != nil {
		s.mu.Unlock()
		return err
	}
	task := s.tasks[idx]
	s.mu.Unlock()

	if err := s.api.UpdateTask(ctx, task); err != nil {
		s.logger.Warnw("Remote task update failed", "task_id", id, "error", err)
	}

	return nil
}

// Delete removes the task permanently. Unknown ids are no-ops.
func (s *TaskStore) Delete(ctx context.Context, id int64) {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.mu.Unlock()

	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.logger.Warnw("Remote task delete failed", "task_id", id, "error", err)
	}
}

// Tasks returns a snapshot of the current list. Callers re-read after
// mutating; the returned slice never aliases store state.
func (s *TaskStore) Tasks() []entities.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.Task, len(s.tasks))
	copy(out, s.tasks)
	for i := range out {
		if out[i].Stickers != nil {
			stickers := make([]entities.Sticker, len(out[i].Stickers))
			copy(stickers, out[i].Stickers)
			out[i].Stickers = stickers
		}
	}
	return out
}

// indexOf returns the position of id or -1. Caller holds s.mu.
func (s *TaskStore) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
