// Package remote implements the collaborator ports over the QuickDesk
// REST API. It is the only place the widget engine touches a wire format.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/ports"
)

// Client talks to the collaborator API. It carries no retry or timeout
// policy of its own beyond the HTTP client's; the stores decide what a
// failure means.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient allows callers to supply the underlying HTTP client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

// FetchTasks retrieves one page of tasks via the widget fetch envelope.
func (c *Client) FetchTasks(ctx context.Context, page, limit int) ([]entities.Task, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var envelope ports.TaskListEnvelope
	if err := c.get(ctx, "/api/v1/tasks?"+q.Encode(), &envelope); err != nil {
		return nil, err
	}

	if !envelope.Success {
		return nil, fmt.Errorf("task fetch rejected: %s", envelope.Message)
	}

	return envelope.Data.Tasks, nil
}

// CreateTask reconciles a locally created task with the collaborator.
func (c *Client) CreateTask(ctx context.Context, task entities.Task) error {
	req := ports.CreateTaskRequest{
		ID:          task.ID,
		Category:    task.Category,
		Title:       task.Title,
		DueDate:     task.DueDate,
		Description: task.Description,
		Completed:   task.Completed,
		Stickers:    stickerStrings(task.Stickers),
	}
	return c.send(ctx, http.MethodPost, "/api/v1/tasks", req, nil)
}

// UpdateTask pushes the task's current state.
func (c *Client) UpdateTask(ctx context.Context, task entities.Task) error {
	req := ports.UpdateTaskRequest{
		Category:    &task.Category,
		Title:       &task.Title,
		DueDate:     &task.DueDate,
		Description: &task.Description,
		Completed:   &task.Completed,
		Stickers:    stickerStrings(task.Stickers),
	}
	return c.send(ctx, http.MethodPut, "/api/v1/tasks/"+strconv.FormatInt(task.ID, 10), req, nil)
}

// DeleteTask removes the task remotely.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, "/api/v1/tasks/"+strconv.FormatInt(id, 10), nil, nil)
}

// FetchMessages retrieves the full message list for one poll cycle.
func (c *Client) FetchMessages(ctx context.Context, chatID string) ([]entities.Message, error) {
	var resp ports.MessageListResponse
	if err := c.get(ctx, "/api/v1/chats/"+url.PathEscape(chatID)+"/messages", &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SendMessage submits a message and returns the server-confirmed record.
func (c *Client) SendMessage(ctx context.Context, req ports.SendMessageRequest) (*entities.Message, error) {
	var msg entities.Message
	path := "/api/v1/chats/" + url.PathEscape(req.ChatID) + "/messages"
	if err := c.send(ctx, http.MethodPost, path, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// FetchInbox retrieves the conversation summaries.
func (c *Client) FetchInbox(ctx context.Context) ([]entities.Thread, error) {
	var resp ports.InboxResponse
	if err := c.get(ctx, "/api/v1/inbox", &resp); err != nil {
		return nil, err
	}
	return resp.Inbox, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.send(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr ports.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
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
