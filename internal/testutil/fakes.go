// Package testutil provides in-memory test doubles for the collaborator
// ports.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/ports"
)

// FakeCollaborator is an in-memory implementation of the remote
// collaborator. Sends are reflected into the message map so a later
// "poll" returns them, which is how the dedupe paths get exercised.
type FakeCollaborator struct {
	mu       sync.Mutex
	Tasks    []entities.Task
	Messages map[string][]entities.Message
	Threads  []entities.Thread

	nextMsgID int

	// Records of remote calls, for assertions.
	CreatedTasks []entities.Task
	UpdatedTasks []entities.Task
	DeletedTasks []int64
	SentRequests []ports.SendMessageRequest

	// Error injection.
	FetchTasksErr    error
	CreateTaskErr    error
	UpdateTaskErr    error
	DeleteTaskErr    error
	FetchMessagesErr error
	SendMessageErr   error
	FetchInboxErr    error
}

// NewFakeCollaborator creates an empty fake.
func NewFakeCollaborator() *FakeCollaborator {
	return &FakeCollaborator{
		Messages: make(map[string][]entities.Message),
	}
}

// AddMessage seeds a conversation.
func (f *FakeCollaborator) AddMessage(chatID string, msg entities.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ChatID = chatID
	f.Messages[chatID] = append(f.Messages[chatID], msg)
}

func (f *FakeCollaborator) FetchTasks(ctx context.Context, page, limit int) ([]entities.Task, error) {
	if f.FetchTasksErr != nil {
		return nil, f.FetchTasksErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entities.Task, len(f.Tasks))
	copy(out, f.Tasks)
	return out, nil
}

func (f *FakeCollaborator) CreateTask(ctx context.Context, task entities.Task) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatedTasks = append(f.CreatedTasks, task)
	return nil
}

func (f *FakeCollaborator) UpdateTask(ctx context.Context, task entities.Task) error {
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdatedTasks = append(f.UpdatedTasks, task)
	return nil
}

func (f *FakeCollaborator) DeleteTask(ctx context.Context, id int64) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedTasks = append(f.DeletedTasks, id)
	return nil
}

func (f *FakeCollaborator) FetchMessages(ctx context.Context, chatID string) ([]entities.Message, error) {
	if f.FetchMessagesErr != nil {
		return nil, f.FetchMessagesErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entities.Message, len(f.Messages[chatID]))
	copy(out, f.Messages[chatID])
	return out, nil
}

func (f *FakeCollaborator) SendMessage(ctx context.Context, req ports.SendMessageRequest) (*entities.Message, error) {
	if f.SendMessageErr != nil {
		return nil, f.SendMessageErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.SentRequests = append(f.SentRequests, req)
	f.nextMsgID++

	msg := entities.Message{
		ID:        fmt.Sprintf("msg-%d", f.nextMsgID),
		ChatID:    req.ChatID,
		Sender:    req.Sender,
		Text:      req.Text,
		Time:      "08:00",
		Date:      "2025-04-05",
		ReplyToID: req.ReplyToID,
	}

	f.Messages[req.ChatID] = append(f.Messages[req.ChatID], msg)
	return &msg, nil
}

func (f *FakeCollaborator) FetchInbox(ctx context.Context) ([]entities.Thread, error) {
	if f.FetchInboxErr != nil {
		return nil, f.FetchInboxErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entities.Thread, len(f.Threads))
	copy(out, f.Threads)
	return out, nil
}

// FakeTaskRepository is an in-memory ports.TaskRepository for handler and
// service tests.
type FakeTaskRepository struct {
	mu    sync.Mutex
	tasks []entities.Task

	CreateErr error
	ListErr   error
}

func NewFakeTaskRepository() *FakeTaskRepository {
	return &FakeTaskRepository{}
}

func (r *FakeTaskRepository) Create(ctx context.Context, task *entities.Task) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append([]entities.Task{*task}, r.tasks...)
	return nil
}

func (r *FakeTaskRepository) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			t := r.tasks[i]
			return &t, nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (r *FakeTaskRepository) Update(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			r.tasks[i] = *task
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

func (r *FakeTaskRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

func (r *FakeTaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]entities.Task, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := filter.Offset()
	if start >= len(r.tasks) {
		return nil, nil
	}

	end := start + filter.Limit
	if filter.Limit <= 0 || end > len(r.tasks) {
		end = len(r.tasks)
	}

	out := make([]entities.Task, end-start)
	copy(out, r.tasks[start:end])
	return out, nil
}

func (r *FakeTaskRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.tasks)), nil
}

// FakeMessageRepository is an in-memory ports.MessageRepository.
type FakeMessageRepository struct {
	mu       sync.Mutex
	messages map[string][]entities.Message
	read     map[string]bool
}

func NewFakeMessageRepository() *FakeMessageRepository {
	return &FakeMessageRepository{
		messages: make(map[string][]entities.Message),
		read:     make(map[string]bool),
	}
}

func (r *FakeMessageRepository) Create(ctx context.Context, msg *entities.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.ChatID] = append(r.messages[msg.ChatID], *msg)
	return nil
}

func (r *FakeMessageRepository) ListByChat(ctx context.Context, chatID string) ([]entities.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entities.Message, len(r.messages[chatID]))
	copy(out, r.messages[chatID])
	return out, nil
}

func (r *FakeMessageRepository) MarkChatRead(ctx context.Context, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.messages[chatID]; !ok {
		return entities.ErrChatNotFound
	}
	r.read[chatID] = true
	return nil
}

// WasRead reports whether MarkChatRead ran for the chat.
func (r *FakeMessageRepository) WasRead(chatID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read[chatID]
}

// FakeThreadRepository is an in-memory ports.ThreadRepository.
type FakeThreadRepository struct {
	mu      sync.Mutex
	threads []entities.Thread

	Previews []string
}

func NewFakeThreadRepository(threads ...entities.Thread) *FakeThreadRepository {
	return &FakeThreadRepository{threads: threads}
}

func (r *FakeThreadRepository) List(ctx context.Context) ([]entities.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entities.Thread, len(r.threads))
	copy(out, r.threads)
	return out, nil
}

func (r *FakeThreadRepository) GetByID(ctx context.Context, id string) (*entities.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.threads {
		if r.threads[i].ID == id {
			t := r.threads[i]
			return &t, nil
		}
	}
	return nil, entities.ErrThreadNotFound
}

func (r *FakeThreadRepository) TouchPreview(ctx context.Context, chatID, preview, sender, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Previews = append(r.Previews, preview)
	for i := range r.threads {
		if r.threads[i].ID == chatID {
			r.threads[i].Preview = preview
			r.threads[i].Sender = sender
			r.threads[i].Date = date
		}
	}
	return nil
}
