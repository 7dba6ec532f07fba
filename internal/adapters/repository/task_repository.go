package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/ports"
)

// TaskRepository implements the task repository interface on Postgres
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists a new task. The id is client-assigned (creation-time
// derived), so no RETURNING clause is needed.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, category, title, due_date, description, completed, stickers)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Category,
		task.Title,
		task.DueDate,
		task.Description,
		task.Completed,
		pq.Array(stickerStrings(task.Stickers)),
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	query := `
		SELECT id, category, title, due_date, description, completed, stickers
		FROM tasks WHERE id = $1
	`

	var task entities.Task
	var stickers pq.StringArray

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Category,
		&task.Title,
		&task.DueDate,
		&task.Description,
		&task.Completed,
		&stickers,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	task.Stickers = parseStickers(stickers)
	return &task, nil
}

// Update replaces the task row
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET category = $2, title = $3, due_date = $4, description = $5, completed = $6, stickers = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Category,
		task.Title,
		task.DueDate,
		task.Description,
		task.Completed,
		pq.Array(stickerStrings(task.Stickers)),
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

// Delete removes the task permanently
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

// List returns a page of tasks, most-recently-created first (ids are
// creation-time derived, so id order is creation order).
func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]entities.Task, error) {
	query := `
		SELECT id, category, title, due_date, description, completed, stickers
		FROM tasks
	`
	args := []interface{}{}
	where := ""

	if filter.Category != nil {
		args = append(args, *filter.Category)
		where = fmt.Sprintf(" WHERE category = $%d", len(args))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		if where == "" {
			where = fmt.Sprintf(" WHERE completed = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND completed = $%d", len(args))
		}
	}

	args = append(args, filter.Limit, filter.Offset())
	query += where + fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []entities.Task
	for rows.Next() {
		var task entities.Task
		var stickers pq.StringArray

		if err := rows.Scan(
			&task.ID,
			&task.Category,
			&task.Title,
			&task.DueDate,
			&task.Description,
			&task.Completed,
			&stickers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		task.Stickers = parseStickers(stickers)
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// Count returns the total number of tasks
func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

func stickerStrings(stickers []entities.Sticker) []string {
	if stickers == nil {
		return nil
	}
	out := make([]string, len(stickers))
	for i, s := range stickers {
		out[i] = string(s)
	}
	return out
}

// parseStickers drops values outside the vocabulary rather than failing a
// whole row on bad data.
func parseStickers(raw pq.StringArray) []entities.Sticker {
	if len(raw) == 0 {
		return nil
	}
	out := make([]entities.Sticker, 0, len(raw))
	for _, v := range raw {
		if s, err := entities.ParseSticker(v); err == nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
