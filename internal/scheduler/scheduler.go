package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"deptevents/internal/domain"
)

// DefaultReminderSpec runs the reminder job every day at 07:00.
const DefaultReminderSpec = "0 7 * * *"

// Scheduler sends daily reminders for events happening the next day.
type Scheduler struct {
	events   domain.EventStore
	notifier domain.EventNotifier
	spec     string
	loc      *time.Location
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new scheduler instance. spec is a standard five-field cron expression
// evaluated in loc.
func New(events domain.EventStore, notifier domain.EventNotifier, spec string, loc *time.Location, logger *slog.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultReminderSpec
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		events:   events,
		notifier: notifier,
		spec:     spec,
		loc:      loc,
		cron:     cron.New(cron.WithLocation(loc)),
		logger:   logger.With("component", "scheduler"),
		now:      time.Now,
	}
}

// Start registers the reminder job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.RemindTomorrow(ctx, s.now().In(s.loc))
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "spec", s.spec, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RemindTomorrow notifies every department with events on the calendar day after now.
// It returns the number of departments notified.
func (s *Scheduler) RemindTomorrow(ctx context.Context, now time.Time) int {
	tomorrow := now.AddDate(0, 0, 1).Format(domain.DateLayout)
	notified := 0
	for _, dept := range domain.Departments {
		var due []domain.Event
		for _, e := range s.events.GetDepartmentEvents(ctx, dept) {
			if e.Date == tomorrow {
				due = append(due, e)
			}
		}
		if len(due) == 0 {
			continue
		}
		if err := s.notifier.EventsTomorrow(ctx, dept, due); err != nil {
			s.logger.Error("failed to send reminder", "department", dept, "date", tomorrow, "error", err)
			continue
		}
		notified++
		s.logger.Info("sent reminder", "department", dept, "date", tomorrow, "events", len(due))
	}
	return notified
}
