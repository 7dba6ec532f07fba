package ports

import (
	"context"

	"github.com/quickdesk/core/internal/domain/entities"
)

// TaskRepository defines the interface for task persistence on the
// collaborator side.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id int64) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter TaskFilter) ([]entities.Task, error)
	Count(ctx context.Context) (int64, error)
}

// MessageRepository defines the interface for conversation message
// persistence.
type MessageRepository interface {
	Create(ctx context.Context, msg *entities.Message) error
	ListByChat(ctx context.Context, chatID string) ([]entities.Message, error)
	MarkChatRead(ctx context.Context, chatID string) error
}

// ThreadRepository defines the interface for inbox thread summaries.
type ThreadRepository interface {
	List(ctx context.Context) ([]entities.Thread, error)
	GetByID(ctx context.Context, id string) (*entities.Thread, error)
	TouchPreview(ctx context.Context, chatID, preview, sender, date string) error
}

// TaskFilter narrows task listings. Page is 1-based to match the widget's
// fetch contract.
type TaskFilter struct {
	Page      int
	Limit     int
	Category  *string
	Completed *bool
}

// Offset converts the page/limit pair to a SQL offset.
func (f TaskFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit
}
