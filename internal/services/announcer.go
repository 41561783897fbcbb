package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"deptevents/internal/domain"
)

// DefaultAnnounceTimeout bounds one background announcement.
const DefaultAnnounceTimeout = 30 * time.Second

// AsyncNotifier sends event announcements in the background so a slow mail
// provider never holds up the request that created the event. Reminders pass
// straight through; the scheduler already runs them off the request path.
type AsyncNotifier struct {
	next    domain.EventNotifier
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewAsyncNotifier(next domain.EventNotifier, timeout time.Duration, logger *slog.Logger) *AsyncNotifier {
	if timeout <= 0 {
		timeout = DefaultAnnounceTimeout
	}
	return &AsyncNotifier{next: next, timeout: timeout, logger: logger}
}

// EventCreated queues the announcement and returns immediately.
func (n *AsyncNotifier) EventCreated(ctx context.Context, department string, event domain.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()
		if err := n.next.EventCreated(ctx, department, event); err != nil {
			n.logger.Warn("event announcement failed", "department", department, "event_id", event.ID, "error", err)
		}
	}()
	return nil
}

func (n *AsyncNotifier) EventsTomorrow(ctx context.Context, department string, events []domain.Event) error {
	return n.next.EventsTomorrow(ctx, department, events)
}

// Wait blocks until every queued announcement has finished.
func (n *AsyncNotifier) Wait() {
	n.wg.Wait()
}
