package entities

import (
	"errors"
	"strconv"
	"time"
)

// Common errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrThreadNotFound    = errors.New("thread not found")
	ErrChatNotFound      = errors.New("chat not found")
	ErrUnknownSticker    = errors.New("unknown sticker")
	ErrUnknownField      = errors.New("unknown task field")
	ErrInvalidFieldValue = errors.New("invalid value for task field")
	ErrEmptyMessage      = errors.New("message text is empty")
)

// Sticker is a category tag attached to a task, drawn from a fixed
// vocabulary of eight values.
type Sticker string

const (
	StickerImportantASAP  Sticker = "Important ASAP"
	StickerOfflineMeeting Sticker = "Offline Meeting"
	StickerVirtualMeeting Sticker = "Virtual Meeting"
	StickerASAP           Sticker = "ASAP"
	StickerClientRelated  Sticker = "Client Related"
	StickerSelfTask       Sticker = "Self Task"
	StickerAppointments   Sticker = "Appointments"
	StickerCourtRelated   Sticker = "Court Related"
)

// AllStickers lists the full vocabulary in display order.
var AllStickers = []Sticker{
	StickerImportantASAP,
	StickerOfflineMeeting,
	StickerVirtualMeeting,
	StickerASAP,
	StickerClientRelated,
	StickerSelfTask,
	StickerAppointments,
	StickerCourtRelated,
}

func (s Sticker) IsValid() bool {
	switch s {
	case StickerImportantASAP, StickerOfflineMeeting, StickerVirtualMeeting,
		StickerASAP, StickerClientRelated, StickerSelfTask,
		StickerAppointments, StickerCourtRelated:
		return true
	default:
		return false
	}
}

// ParseSticker validates a raw tag value against the vocabulary.
func ParseSticker(raw string) (Sticker, error) {
	s := Sticker(raw)
	if !s.IsValid() {
		return "", ErrUnknownSticker
	}
	return s, nil
}

// Task represents a task record owned by the task store
type Task struct {
	ID          int64     `json:"id" db:"id"`
	Category    string    `json:"category" db:"category"`
	Title       string    `json:"title" db:"title"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`
	Description string    `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	Stickers    []Sticker `json:"stickers" db:"-"`
}

// HasSticker reports whether the tag is currently attached.
func (t *Task) HasSticker(s Sticker) bool {
	for _, have := range t.Stickers {
		if have == s {
			return true
		}
	}
	return false
}

// ToggleSticker adds the tag if absent and removes it if present. The
// collection behaves as a set; display order is insertion order. Tags
// outside the vocabulary are rejected.
func (t *Task) ToggleSticker(s Sticker) error {
	if !s.IsValid() {
		return ErrUnknownSticker
	}

	for i, have := range t.Stickers {
		if have == s {
			t.Stickers = append(t.Stickers[:i], t.Stickers[i+1:]...)
			return nil
		}
	}

	t.Stickers = append(t.Stickers, s)
	return nil
}

// DueKind classifies a task's due date relative to a reference moment.
type DueKind string

const (
	DueToday DueKind = "due_today"
	Overdue  DueKind = "overdue"
	DueIn    DueKind = "due_in"
)

// DueStatus is the derived due-date label for an uncompleted task.
// Days is zero for DueToday and a positive day count otherwise.
type DueStatus struct {
	Kind DueKind
	Days int
}

// ClassifyDue computes the calendar-day difference between due and now.
// Two timestamps on the same calendar date classify as DueToday no matter
// the time-of-day offset. Completed tasks display no due label, so callers
// skip this for them.
func ClassifyDue(due, now time.Time) DueStatus {
	diff := calendarDays(due, now)

	switch {
	case diff == 0:
		return DueStatus{Kind: DueToday}
	case diff < 0:
		return DueStatus{Kind: Overdue, Days: -diff}
	default:
		return DueStatus{Kind: DueIn, Days: diff}
	}
}

// calendarDays returns the whole calendar days from b's date to a's date,
// ignoring the time of day on both sides.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	at := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bt := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(at.Sub(bt).Hours() / 24)
}

// Label renders the user-facing due text with the singular/plural rule
// from the reference UI ("1 day overdue", "2 days left").
func (d DueStatus) Label() string {
	switch d.Kind {
	case DueToday:
		return "Due Today"
	case Overdue:
		return pluralDays(d.Days) + " overdue"
	default:
		return pluralDays(d.Days) + " left"
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

// Message represents a single chat message within a conversation. SentAt
// is the authoritative send instant; Time and Date are display strings
// derived from it and never fed back into ordering or unread decisions.
type Message struct {
	ID        string    `json:"id" db:"id"`
	ChatID    string    `json:"chatId" db:"chat_id"`
	Sender    string    `json:"sender" db:"sender"`
	Text      string    `json:"text" db:"text"`
	SentAt    time.Time `json:"-" db:"sent_at"`
	Time      string    `json:"time" db:"time"`
	Date      string    `json:"date" db:"date"`
	ReplyToID string    `json:"replyToId,omitempty" db:"reply_to_id"`
	IsNew     bool      `json:"isNew,omitempty" db:"is_new"`
}

// Thread is an inbox conversation summary. The widget core only reads
// these to render and select a conversation.
type Thread struct {
	ID       string `json:"id" db:"id"`
	Subject  string `json:"subject" db:"subject"`
	Preview  string `json:"preview" db:"preview"`
	Sender   string `json:"sender" db:"sender"`
	Date     string `json:"date" db:"date"`
	IsGroup  bool   `json:"isGroup" db:"is_group"`
	IsUnread bool   `json:"isUnread" db:"is_unread"`
}
