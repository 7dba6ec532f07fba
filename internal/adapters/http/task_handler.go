package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quickdesk/core/internal/application/services"
	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/infrastructure/logger"
	"github.com/quickdesk/core/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns one page of tasks wrapped in the widget's fetch
// envelope: a success flag plus the data or an error message.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = 5
	}

	tasks, total, err := h.taskService.List(c.Request().Context(), page, limit)
	if err != nil {
		h.logger.Errorw("Failed to list tasks", "error", err)
		return c.JSON(http.StatusInternalServerError, ports.TaskListEnvelope{
			Success: false,
			Message: "Failed to fetch tasks",
		})
	}

	if tasks == nil {
		tasks = []entities.Task{}
	}

	return c.JSON(http.StatusOK, ports.TaskListEnvelope{
		Success: true,
		Data: ports.TaskListData{
			Tasks: tasks,
			Page:  page,
			Limit: limit,
			Total: int(total),
		},
	})
}

// CreateTask persists a client-created task
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrUnknownSticker) {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown sticker")
		}
		h.logger.Errorw("Failed to create task", "error", err, "task_id", req.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

// UpdateTask replaces the provided fields of a task
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Update(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrTaskNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		case errors.Is(err, entities.ErrUnknownSticker):
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown sticker")
		default:
			h.logger.Errorw("Failed to update task", "error", err, "task_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task")
		}
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task permanently
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	if err := h.taskService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Errorw("Failed to delete task", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Task deleted successfully"})
}
