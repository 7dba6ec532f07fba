package services

import (
	"context"
	"fmt"

	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/infrastructure/logger"
	"github.com/quickdesk/core/internal/ports"
)

// TaskService is the collaborator-side task surface behind the REST API.
// The widget's TaskStore is its client.
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, log *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   log.WithComponent("task_service"),
	}
}

// List returns one page of tasks plus the total count for the envelope.
func (s *TaskService) List(ctx context.Context, page, limit int) ([]entities.Task, int64, error) {
	tasks, err := s.taskRepo.List(ctx, ports.TaskFilter{Page: page, Limit: limit})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	total, err := s.taskRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return tasks, total, nil
}

// Create persists a client-created task record.
func (s *TaskService) Create(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	stickers, err := coerceStickers(req.Stickers)
	if err != nil {
		return nil, err
	}

	task := &entities.Task{
		ID:          req.ID,
		Category:    req.Category,
		Title:       req.Title,
		DueDate:     req.DueDate,
		Description: req.Description,
		Completed:   req.Completed,
		Stickers:    stickers,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "category", task.Category)
	return task, nil
}

// Update applies the non-nil fields of the request to the stored task.
func (s *TaskService) Update(ctx context.Context, id int64, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.Stickers != nil {
		stickers, err := coerceStickers(req.Stickers)
		if err != nil {
			return nil, err
		}
		task.Stickers = stickers
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes the task permanently.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Task deleted", "task_id", id)
	return nil
}
