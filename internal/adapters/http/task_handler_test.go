package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	handlers "github.com/quickdesk/core/internal/adapters/http"
	"github.com/quickdesk/core/internal/application/services"
	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/infrastructure/logger"
	"github.com/quickdesk/core/internal/ports"
	"github.com/quickdesk/core/internal/testutil"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &requestValidator{validate: validator.New()}
	return e
}

func newTaskHandler(repo *testutil.FakeTaskRepository) *handlers.TaskHandler {
	log := logger.NewNop()
	return handlers.NewTaskHandler(services.NewTaskService(repo, log), log)
}

func seedTasks(t *testing.T, repo *testutil.FakeTaskRepository, n int) {
	t.Helper()
	for i := n; i >= 1; i-- {
		task := entities.Task{
			ID:       int64(i),
			Category: "Urgent To-Do",
			Title:    "task",
			DueDate:  time.Now(),
		}
		if err := repo.Create(context.Background(), &task); err != nil {
			t.Fatalf("seed task %d: %v", i, err)
		}
	}
}

func TestListTasksEnvelope(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	seedTasks(t, repo, 7)
	h := newTaskHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?page=1&limit=5", nil)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)

	if err := h.ListTasks(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var env ports.TaskListEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !env.Success {
		t.Error("success flag not set")
	}
	if len(env.Data.Tasks) != 5 {
		t.Errorf("page holds %d tasks, want 5", len(env.Data.Tasks))
	}
	if env.Data.Total != 7 || env.Data.Page != 1 || env.Data.Limit != 5 {
		t.Errorf("pagination fields wrong: %+v", env.Data)
	}
}

func TestListTasksDefaultsPageAndLimit(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	seedTasks(t, repo, 7)
	h := newTaskHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?page=abc&limit=-1", nil)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)

	if err := h.ListTasks(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var env ports.TaskListEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if env.Data.Page != 1 || env.Data.Limit != 5 {
		t.Errorf("bad params must fall back to page 1 limit 5, got %+v", env.Data)
	}
}

func TestListTasksFailureEnvelope(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	repo.ListErr = context.DeadlineExceeded
	h := newTaskHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)

	if err := h.ListTasks(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rec.Code)
	}

	var env ports.TaskListEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if env.Success || env.Message == "" {
		t.Errorf("failure envelope must carry success=false and a message: %+v", env)
	}
}

func TestCreateTask(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	h := newTaskHandler(repo)

	body := `{"id":1756700000000,"category":"Urgent To-Do","title":"Draft motion","dueDate":"2026-09-03T00:00:00Z","stickers":["ASAP"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)

	if err := h.CreateTask(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, want 201: %s", rec.Code, rec.Body.String())
	}

	stored, err := repo.GetByID(context.Background(), 1756700000000)
	if err != nil {
		t.Fatalf("task not stored: %v", err)
	}
	if stored.Title != "Draft motion" || len(stored.Stickers) != 1 {
		t.Errorf("stored task wrong: %+v", stored)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	h := newTaskHandler(testutil.NewFakeTaskRepository())

	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"category":"Urgent To-Do","dueDate":"2026-09-03T00:00:00Z"}`},
		{"missing category", `{"id":1,"dueDate":"2026-09-03T00:00:00Z"}`},
		{"malformed json", `{"id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := newEcho().NewContext(req, rec)

			err := h.CreateTask(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestCreateTaskUnknownSticker(t *testing.T) {
	h := newTaskHandler(testutil.NewFakeTaskRepository())

	body := `{"id":1,"category":"Urgent To-Do","dueDate":"2026-09-03T00:00:00Z","stickers":["Nope"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)

	err := h.CreateTask(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown sticker, got %v", err)
	}
}

func TestUpdateTask(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	seedTasks(t, repo, 1)
	h := newTaskHandler(repo)

	body := `{"title":"Revised","completed":true}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.UpdateTask(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var task entities.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if task.Title != "Revised" || !task.Completed {
		t.Errorf("update not applied: %+v", task)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	h := newTaskHandler(testutil.NewFakeTaskRepository())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/99", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := h.UpdateTask(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestUpdateTaskBadID(t *testing.T) {
	h := newTaskHandler(testutil.NewFakeTaskRepository())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/abc", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.UpdateTask(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	seedTasks(t, repo, 1)
	h := newTaskHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/1", nil)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.DeleteTask(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	if _, err := repo.GetByID(context.Background(), 1); err == nil {
		t.Error("task still present after delete")
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	h := newTaskHandler(testutil.NewFakeTaskRepository())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/99", nil)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := h.DeleteTask(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
