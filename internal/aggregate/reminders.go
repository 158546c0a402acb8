package aggregate

import (
	"slices"
	"time"

	"github.com/mmynk/fairshare/internal/models"
)

// DefaultReminderLimit is how many reminders the dashboard shows.
const DefaultReminderLimit = 4

// UpcomingReminders returns unpaid reminders ordered by due date, undated ones
// last, truncated to limit. A limit of zero or less returns all of them.
func UpcomingReminders(reminders []models.Reminder, now time.Time, limit int) []models.UpcomingReminder {
	upcoming := make([]models.UpcomingReminder, 0, len(reminders))
	for _, r := range reminders {
		if r.IsPaid {
			continue
		}
		upcoming = append(upcoming, models.UpcomingReminder{
			Reminder: r,
			Overdue:  r.DueDate != nil && r.DueDate.Before(now),
		})
	}

	slices.SortStableFunc(upcoming, func(a, b models.UpcomingReminder) int {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		}
		return a.DueDate.Compare(*b.DueDate)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
