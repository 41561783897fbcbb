package utils

import (
	"time"

	"deptevents/internal/domain"
)

const displayDateLayout = "Mon, Jan 2, 2006"

// FormatDate renders an ISO calendar date as "Wed, Nov 15, 2025".
// Input that does not parse is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayDateLayout)
}

// IsEventUpcoming reports whether midnight of date, in now's location, is strictly after now.
// An unparseable date is never upcoming.
func IsEventUpcoming(date string, now time.Time) bool {
	t, err := time.ParseInLocation(domain.DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	return t.After(now)
}

// PartitionEvents splits events into upcoming and past, preserving order.
func PartitionEvents(events []domain.Event, now time.Time) (upcoming, past []domain.Event) {
	upcoming = []domain.Event{}
	past = []domain.Event{}
	for _, e := range events {
		if IsEventUpcoming(e.Date, now) {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	return upcoming, past
}

// NextID returns one more than the largest id in events, or 1 when events is empty.
func NextID(events []domain.Event) int {
	max := 0
	for _, e := range events {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}
