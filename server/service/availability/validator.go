package availability

import (
	"time"

	"github.com/DinDin03/FriendAvailability/internal/apperrors"
	"github.com/DinDin03/FriendAvailability/store"
)

// validateInterval enforces the interval invariants. It runs on the fully
// merged interval, so a partial update that moves one endpoint is checked
// against the surviving other endpoint.
func (s *service) validateInterval(interval *store.Interval) error {
	if interval.StartTs == 0 || interval.EndTs == 0 {
		return apperrors.InvalidInterval("start and end times are required")
	}
	if interval.StartTs >= interval.EndTs {
		return apperrors.InvalidInterval("start time must be before end time")
	}
	if interval.StartTs < s.now().Unix() {
		return apperrors.InvalidInterval("interval cannot start in the past")
	}
	if interval.IsAllDay && !isFullDaySpan(interval, s.location()) {
		return apperrors.InvalidInterval("all-day interval must span 00:00 to 23:59")
	}
	if interval.ReminderMinutes != nil && *interval.ReminderMinutes < 0 {
		return apperrors.InvalidIntervalf("reminder offset must not be negative, got %d", *interval.ReminderMinutes)
	}
	return nil
}

func (s *service) location() *time.Location {
	return s.now().Location()
}

// isFullDaySpan reports whether the interval starts at midnight and ends at
// 23:59 local time, the shape required of all-day intervals.
func isFullDaySpan(interval *store.Interval, loc *time.Location) bool {
	start := time.Unix(interval.StartTs, 0).In(loc)
	end := time.Unix(interval.EndTs, 0).In(loc)
	return start.Hour() == 0 && start.Minute() == 0 &&
		end.Hour() == 23 && end.Minute() == 59
}
