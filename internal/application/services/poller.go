package services

import (
	"context"
	"time"
)

// StartPolling runs the timer-driven pull loop for one conversation until
// the context is cancelled. The widget approximates live updates by
// re-fetching on a fixed interval rather than any push subscription. Poll
// errors are logged inside Poll and swallowed here so a flaky network does
// not stop the loop.
//
// Callers run this in its own goroutine per open conversation view and
// cancel the context when the view is torn down; a response landing after
// cancellation is simply never merged.
func (s *ConversationStore) StartPolling(ctx context.Context, chatID string) {
	interval := s.cfg.PollInterval
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}

	// Prime the view before the first tick.
	_ = s.Poll(ctx, chatID)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debugw("Polling stopped", "chat_id", chatID)
			return
		case <-ticker.C:
			_ = s.Poll(ctx, chatID)
		}
	}
}
