package entities

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func TestClassifyDueSameCalendarDate(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		now  time.Time
	}{
		{"same instant", date(2025, 4, 5, 12, 0), date(2025, 4, 5, 12, 0)},
		{"due earlier in the day", date(2025, 4, 5, 0, 1), date(2025, 4, 5, 23, 59)},
		{"due later in the day", date(2025, 4, 5, 23, 59), date(2025, 4, 5, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDue(tt.due, tt.now)
			if got.Kind != DueToday {
				t.Errorf("expected DueToday, got %s (days=%d)", got.Kind, got.Days)
			}
			if got.Label() != "Due Today" {
				t.Errorf("expected label %q, got %q", "Due Today", got.Label())
			}
		})
	}
}

func TestClassifyDueOverdue(t *testing.T) {
	now := date(2025, 4, 5, 9, 0)

	tests := []struct {
		name  string
		due   time.Time
		days  int
		label string
	}{
		{"one day", date(2025, 4, 4, 23, 0), 1, "1 day overdue"},
		{"two days", date(2025, 4, 3, 9, 0), 2, "2 days overdue"},
		{"a week", date(2025, 3, 29, 9, 0), 7, "7 days overdue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDue(tt.due, now)
			if got.Kind != Overdue {
				t.Fatalf("expected Overdue, got %s", got.Kind)
			}
			if got.Days != tt.days {
				t.Errorf("expected %d days, got %d", tt.days, got.Days)
			}
			if got.Label() != tt.label {
				t.Errorf("expected label %q, got %q", tt.label, got.Label())
			}
		})
	}
}

func TestClassifyDueFuture(t *testing.T) {
	now := date(2025, 4, 5, 23, 30)

	tests := []struct {
		name  string
		due   time.Time
		days  int
		label string
	}{
		{"tomorrow just after midnight", date(2025, 4, 6, 0, 15), 1, "1 day left"},
		{"in three days", date(2025, 4, 8, 12, 0), 3, "3 days left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDue(tt.due, now)
			if got.Kind != DueIn {
				t.Fatalf("expected DueIn, got %s", got.Kind)
			}
			if got.Days != tt.days {
				t.Errorf("expected %d days, got %d", tt.days, got.Days)
			}
			if got.Label() != tt.label {
				t.Errorf("expected label %q, got %q", tt.label, got.Label())
			}
		})
	}
}

func TestParseSticker(t *testing.T) {
	for _, s := range AllStickers {
		got, err := ParseSticker(string(s))
		if err != nil {
			t.Errorf("ParseSticker(%q) returned error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseSticker(%q) = %q", s, got)
		}
	}

	if _, err := ParseSticker("Very Important"); err != ErrUnknownSticker {
		t.Errorf("expected ErrUnknownSticker, got %v", err)
	}
	if _, err := ParseSticker(""); err != ErrUnknownSticker {
		t.Errorf("expected ErrUnknownSticker for empty input, got %v", err)
	}
}

func TestToggleStickerAddsAndRemoves(t *testing.T) {
	task := &Task{ID: 1}

	if err := task.ToggleSticker(StickerASAP); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !task.HasSticker(StickerASAP) {
		t.Fatal("expected sticker to be attached")
	}

	if err := task.ToggleSticker(StickerASAP); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if task.HasSticker(StickerASAP) {
		t.Fatal("expected sticker to be removed by second toggle")
	}
	if len(task.Stickers) != 0 {
		t.Errorf("expected empty sticker set, got %v", task.Stickers)
	}
}

func TestToggleStickerKeepsInsertionOrder(t *testing.T) {
	task := &Task{ID: 1}

	for _, s := range []Sticker{StickerCourtRelated, StickerASAP, StickerSelfTask} {
		if err := task.ToggleSticker(s); err != nil {
			t.Fatalf("toggle %q failed: %v", s, err)
		}
	}

	// Removing the middle tag keeps the rest in insertion order.
	if err := task.ToggleSticker(StickerASAP); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	want := []Sticker{StickerCourtRelated, StickerSelfTask}
	if len(task.Stickers) != len(want) {
		t.Fatalf("expected %d stickers, got %d", len(want), len(task.Stickers))
	}
	for i, s := range want {
		if task.Stickers[i] != s {
			t.Errorf("position %d: expected %q, got %q", i, s, task.Stickers[i])
		}
	}
}

func TestToggleStickerRejectsUnknownTag(t *testing.T) {
	task := &Task{ID: 1, Stickers: []Sticker{StickerASAP}}

	if err := task.ToggleSticker(Sticker("Made Up")); err != ErrUnknownSticker {
		t.Fatalf("expected ErrUnknownSticker, got %v", err)
	}
	if len(task.Stickers) != 1 {
		t.Errorf("sticker set changed on rejected toggle: %v", task.Stickers)
	}
}
