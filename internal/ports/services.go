package ports

import (
	"context"
	"time"

	"github.com/quickdesk/core/internal/domain/entities"
)

// TaskAPI is the remote collaborator the task store reconciles against.
// The widget core never talks to a transport directly; it consumes these
// operations and leaves the wire format to the adapter.
type TaskAPI interface {
	FetchTasks(ctx context.Context, page, limit int) ([]entities.Task, error)
	CreateTask(ctx context.Context, task entities.Task) error
	UpdateTask(ctx context.Context, task entities.Task) error
	DeleteTask(ctx context.Context, id int64) error
}

// ChatAPI is the remote collaborator for conversations. FetchMessages is
// polled; SendMessage returns the server-confirmed record, which is the
// only copy the store treats as authoritative.
type ChatAPI interface {
	FetchMessages(ctx context.Context, chatID string) ([]entities.Message, error)
	SendMessage(ctx context.Context, req SendMessageRequest) (*entities.Message, error)
	FetchInbox(ctx context.Context) ([]entities.Thread, error)
}

// CollaboratorAPI bundles both remote surfaces for adapters that
// implement them together.
type CollaboratorAPI interface {
	TaskAPI
	ChatAPI
}

// Request/Response Types

type SendMessageRequest struct {
	ChatID    string `json:"chatId" validate:"required"`
	Sender    string `json:"sender" validate:"required,max=100"`
	Text      string `json:"text" validate:"required,max=4000"`
	ReplyToID string `json:"replyToId" validate:"omitempty,uuid"`
}

type CreateTaskRequest struct {
	ID          int64     `json:"id" validate:"required"`
	Category    string    `json:"category" validate:"required,max=100"`
	Title       string    `json:"title" validate:"max=500"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Description string    `json:"description" validate:"max=2000"`
	Completed   bool      `json:"completed"`
	Stickers    []string  `json:"stickers" validate:"omitempty,dive,max=50"`
}

type UpdateTaskRequest struct {
	Category    *string    `json:"category" validate:"omitempty,max=100"`
	Title       *string    `json:"title" validate:"omitempty,max=500"`
	DueDate     *time.Time `json:"dueDate"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Completed   *bool      `json:"completed"`
	Stickers    []string   `json:"stickers" validate:"omitempty,dive,max=50"`
}

// TaskListEnvelope mirrors the widget's task fetch contract: a success
// flag plus either the page of tasks or an error message.
type TaskListEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    TaskListData `json:"data"`
}

type TaskListData struct {
	Tasks []entities.Task `json:"tasks"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int             `json:"total"`
}

type MessageListResponse struct {
	Messages []entities.Message `json:"messages"`
}

type InboxResponse struct {
	Inbox []entities.Thread `json:"inbox"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
