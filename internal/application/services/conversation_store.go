package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/infrastructure/config"
	"github.com/quickdesk/core/internal/infrastructure/logger"
	"github.com/quickdesk/core/internal/ports"
)

// TimelineKind discriminates the items produced when a conversation is
// rendered in order.
type TimelineKind string

const (
	TimelineDateSeparator TimelineKind = "date_separator"
	TimelineNewMarker     TimelineKind = "new_marker"
	TimelineMessage       TimelineKind = "message"
)

// TimelineItem is one renderable row: a day separator, the single
// new-message marker, or a message.
type TimelineItem struct {
	Kind    TimelineKind
	Date    string
	Message *entities.Message
}

// conversation is the per-chat view state.
type conversation struct {
	messages  []entities.Message
	hasUnread bool
	replyTo   *entities.Message
}

// ConversationStore owns per-chat message lists. Poll results replace the
// remote view wholesale but the merge is idempotent: ids already known keep
// their new-message markers, and a locally appended send is never
// duplicated when a later poll returns the same record.
type ConversationStore struct {
	mu      sync.Mutex
	api     ports.ChatAPI
	cfg     config.WidgetConfig
	logger  *logger.Logger
	metrics *Metrics

	chats map[string]*conversation
}

// NewConversationStore creates a new conversation store. metrics may be
// nil when the caller does not export any.
func NewConversationStore(api ports.ChatAPI, cfg config.WidgetConfig, log *logger.Logger, metrics *Metrics) *ConversationStore {
	return &ConversationStore{
		api:     api,
		cfg:     cfg,
		logger:  log.WithComponent("conversation_store"),
		metrics: metrics,
		chats:   make(map[string]*conversation),
	}
}

// ensure returns the chat's view state, creating it with the unread flag
// raised. Caller holds s.mu.
func (s *ConversationStore) ensure(chatID string) *conversation {
	conv, ok := s.chats[chatID]
	if !ok {
		conv = &conversation{hasUnread: true}
		s.chats[chatID] = conv
	}
	return conv
}

// Replace installs a poll result for the chat. Incoming records win on
// content, but a marker already computed client-side survives: once a
// message is known its IsNew flag never regresses, so the unread boundary
// cannot move backward between polls. Messages the store appended locally
// that the poll has not caught up with yet are retained at the tail.
func (s *ConversationStore) Replace(chatID string, msgs []entities.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.ensure(chatID)

	known := make(map[string]entities.Message, len(conv.messages))
	for _, m := range conv.messages {
		known[m.ID] = m
	}

	next := make([]entities.Message, 0, len(msgs))
	seen := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true

		if prev, ok := known[m.ID]; ok && prev.IsNew {
			m.IsNew = true
		}
		next = append(next, m)
	}

	// Keep confirmed sends the poll has not returned yet.
	for _, m := range conv.messages {
		if !seen[m.ID] {
			next = append(next, m)
			seen[m.ID] = true
		}
	}

	conv.messages = next
}

// Poll fetches the chat's message list once and merges it. Failures are
// reported to the caller; the polling loop logs and keeps going.
func (s *ConversationStore) Poll(ctx context.Context, chatID string) error {
	msgs, err := s.api.FetchMessages(ctx, chatID)

	s.metrics.CountPoll(err)
	s.logger.LogPoll(chatID, len(msgs), err)

	if err != nil {
		return fmt.Errorf("fetch messages: %w", err)
	}

	s.Replace(chatID, msgs)
	return nil
}

// Send submits a message as the configured viewer, threading it against
// the current reply target. The reply target is cleared whether or not the
// send succeeds, so a failed send never leaves stale reply state behind.
// On failure the caller keeps the input text and may retry manually.
func (s *ConversationStore) Send(ctx context.Context, chatID, text string) (*entities.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entities.ErrEmptyMessage
	}

	s.mu.Lock()
	conv := s.ensure(chatID)
	replyToID := ""
	if conv.replyTo != nil {
		replyToID = conv.replyTo.ID
	}
	conv.replyTo = nil
	s.mu.Unlock()

	msg, err := s.api.SendMessage(ctx, ports.SendMessageRequest{
		ChatID:    chatID,
		Sender:    s.cfg.SelfSender,
		Text:      text,
		ReplyToID: replyToID,
	})
	if err != nil {
		s.logger.Errorw("Send failed", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.metrics.CountSend()
	s.append(chatID, *msg)
	return msg, nil
}

// append adds the confirmed record unless an in-flight poll already
// delivered it.
func (s *ConversationStore) append(chatID string, msg entities.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.ensure(chatID)
	for _, m := range conv.messages {
		if m.ID == msg.ID {
			return
		}
	}
	conv.messages = append(conv.messages, msg)
}

// Messages returns a snapshot of the chat's message list.
func (s *ConversationStore) Messages(chatID string) []entities.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.chats[chatID]
	if !ok {
		return nil
	}

	out := make([]entities.Message, len(conv.messages))
	copy(out, conv.messages)
	return out
}

// Timeline walks the chat in order and yields one date separator at the
// first message of each distinct date run, the new-message marker exactly
// once immediately before the first unread message (only while the viewer
// still has unread), and the messages themselves.
func (s *ConversationStore) Timeline(chatID string) []TimelineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.chats[chatID]
	if !ok {
		return nil
	}

	items := make([]TimelineItem, 0, len(conv.messages)+2)
	lastDate := ""
	shownNew := false

	for i := range conv.messages {
		msg := conv.messages[i]

		if msg.Date != lastDate {
			items = append(items, TimelineItem{Kind: TimelineDateSeparator, Date: msg.Date})
			lastDate = msg.Date
		}

		if !shownNew && msg.IsNew && conv.hasUnread {
			items = append(items, TimelineItem{Kind: TimelineNewMarker})
		}
		if msg.IsNew {
			shownNew = true
		}

		m := msg
		items = append(items, TimelineItem{Kind: TimelineMessage, Date: m.Date, Message: &m})
	}

	return items
}

// HasUnread reports whether the viewer has not yet scrolled to the newest
// message.
func (s *ConversationStore) HasUnread(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.chats[chatID]
	if !ok {
		return false
	}
	return conv.hasUnread
}

// MarkRead records that the viewer reached the bottom. The marker is
// suppressed on the next Timeline call; message data is untouched.
func (s *ConversationStore) MarkRead(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensure(chatID).hasUnread = false
}

// SetReplyTarget holds at most one message the next send threads against.
// Passing nil clears it.
func (s *ConversationStore) SetReplyTarget(chatID string, msg *entities.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.ensure(chatID)
	if msg == nil {
		conv.replyTo = nil
		return
	}
	m := *msg
	conv.replyTo = &m
}

// ReplyTarget returns the pending reply target, or nil.
func (s *ConversationStore) ReplyTarget(chatID string) *entities.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.chats[chatID]
	if !ok || conv.replyTo == nil {
		return nil
	}
	m := *conv.replyTo
	return &m
}
