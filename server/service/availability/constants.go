package availability

import "time"

const (
	// DefaultTimezone is the timezone label applied when a request carries
	// none. Labels are display metadata; timestamps are never shifted.
	DefaultTimezone = "UTC"

	// DefaultReminderMinutes is the reminder offset applied on create when
	// the request does not set one.
	DefaultReminderMinutes int32 = 30

	// FreeSlotTitle is the title of synthesized free-time intervals.
	FreeSlotTitle = "Available"

	// FreeSlotDescription is the description of synthesized free-time
	// intervals.
	FreeSlotDescription = "Implied free time"

	// MonthEndSlack is subtracted from the start of the next month to form a
	// month-view window end. The resulting window excludes intervals that
	// only overlap the final second of the month. This reproduces the
	// boundary behavior of the original service; set to 0 to widen the
	// window to the true month end.
	MonthEndSlack = time.Second
)
