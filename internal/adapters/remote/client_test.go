package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quickdesk/core/internal/adapters/remote"
	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/ports"
)

func TestFetchTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tasks" {
			t.Errorf("path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "1" {
			t.Errorf("page param %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit param %q", got)
		}

		json.NewEncoder(w).Encode(ports.TaskListEnvelope{
			Success: true,
			Data: ports.TaskListData{
				Tasks: []entities.Task{
					{ID: 2, Category: "Urgent To-Do", Title: "Close out case"},
					{ID: 1, Category: "Personal Errands", Title: "Buy groceries"},
				},
				Page:  1,
				Limit: 5,
				Total: 2,
			},
		})
	}))
	defer srv.Close()

	client := remote.New(srv.URL)
	tasks, err := client.FetchTasks(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != 2 || tasks[1].Title != "Buy groceries" {
		t.Fatalf("unexpected tasks: %v", tasks)
	}
}

func TestFetchTasksRejectedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ports.TaskListEnvelope{
			Success: false,
			Message: "database unavailable",
		})
	}))
	defer srv.Close()

	client := remote.New(srv.URL)
	if _, err := client.FetchTasks(context.Background(), 1, 5); err == nil {
		t.Fatal("success=false envelope must surface as an error")
	}
}

func TestCreateTaskWire(t *testing.T) {
	var got ports.CreateTaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/tasks" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	task := entities.Task{
		ID:       1756700000000,
		Category: "Urgent To-Do",
		Title:    "Draft motion",
		DueDate:  time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Stickers: []entities.Sticker{entities.StickerASAP},
	}

	client := remote.New(srv.URL)
	if err := client.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if got.ID != task.ID || got.Category != "Urgent To-Do" {
		t.Errorf("request body wrong: %+v", got)
	}
	if len(got.Stickers) != 1 || got.Stickers[0] != "ASAP" {
		t.Errorf("stickers not flattened to strings: %v", got.Stickers)
	}
}

func TestUpdateTaskTargetsID(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewEncoder(w).Encode(entities.Task{ID: 42})
	}))
	defer srv.Close()

	client := remote.New(srv.URL)
	if err := client.UpdateTask(context.Background(), entities.Task{ID: 42, Category: "Urgent To-Do"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if path != "/api/v1/tasks/42" {
		t.Errorf("path %q", path)
	}
}

func TestDeleteTask(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(ports.MessageResponse{Message: "ok"})
	}))
	defer srv.Close()

	client := remote.New(srv.URL)
	if err := client.DeleteTask(context.Background(), 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if method != http.MethodDelete || path != "/api/v1/tasks/7" {
		t.Errorf("%s %s", method, path)
	}
}

func TestSendMessageReturnsConfirmedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chats/chat-1/messages" {
			t.Errorf("path %q", r.URL.Path)
		}

		var req ports.SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entities.Message{
			ID:     "7b00b5e6-4b3e-4c59-ae6a-111111111111",
			ChatID: "chat-1",
			Sender: req.Sender,
			Text:   req.Text,
			Time:   "14:05",
			Date:   "2026-09-01",
		})
	}))
	defer srv.Close()

	client := remote.New(srv.URL)
	msg, err := client.SendMessage(context.Background(), ports.SendMessageRequest{
		ChatID: "chat-1",
		Sender: "You",
		Text:   "on my way",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg.ID == "" || msg.Time != "14:05" || msg.Date != "2026-09-01" {
		t.Errorf("confirmed record wrong: %+v", msg)
	}
}

func TestSendMessageServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ports.ErrorResponse{Message: "Chat not found"})
	}))
	defer srv.Close()

	client := remote.New(srv.URL)
	_, err := client.SendMessage(context.Background(), ports.SendMessageRequest{
		ChatID: "ghost",
		Sender: "You",
		Text:   "anyone?",
	})
	if err == nil {
		t.Fatal("expected error from 404 response")
	}
}

func TestFetchMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chats/chat-1/messages" {
			t.Errorf("path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ports.MessageListResponse{
			Messages: []entities.Message{
				{ID: "m1", ChatID: "chat-1", Sender: "Dana", Text: "hello", IsNew: true},
			},
		})
	}))
	defer srv.Close()

	client := remote.New(srv.URL)
	msgs, err := client.FetchMessages(context.Background(), "chat-1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(msgs) != 1 || !msgs[0].IsNew {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestFetchInbox(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/inbox" {
			t.Errorf("path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ports.InboxResponse{
			Inbox: []entities.Thread{
				{ID: "chat-1", Subject: "Case review", IsUnread: true},
			},
		})
	}))
	defer srv.Close()

	client := remote.New(srv.URL)
	threads, err := client.FetchInbox(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(threads) != 1 || threads[0].Subject != "Case review" {
		t.Fatalf("unexpected inbox: %v", threads)
	}
}

func TestClientContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	client := remote.New(srv.URL)
	if _, err := client.FetchInbox(ctx); err == nil {
		t.Fatal("expected error after context timeout")
	}
}
