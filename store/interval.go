package store

import (
	"time"
)

// Source is the provenance tag of an interval.
type Source string

const (
	// SourceManual marks an interval entered by the user.
	SourceManual Source = "MANUAL"
	// SourceGoogleCalendar marks an interval imported from Google Calendar.
	// Import itself is not implemented; the variant exists so imported rows
	// round-trip through the store unchanged.
	SourceGoogleCalendar Source = "GOOGLE_CALENDAR"
	// SourceOverride marks a manual override of an imported interval.
	SourceOverride Source = "OVERRIDE"
	// SourceRecurring marks an instance of a recurring pattern. Expansion is
	// not implemented; the variant is reserved.
	SourceRecurring Source = "RECURRING"
)

// DisplayName returns the human-readable name of the source.
func (s Source) DisplayName() string {
	switch s {
	case SourceManual:
		return "Manual Entry"
	case SourceGoogleCalendar:
		return "Google Calendar"
	case SourceOverride:
		return "Manual Override"
	case SourceRecurring:
		return "Recurring Pattern"
	default:
		return string(s)
	}
}

// Priority ranks sources when overlapping intervals disagree.
// Higher wins: OVERRIDE > MANUAL > GOOGLE_CALENDAR > RECURRING.
func (s Source) Priority() int {
	switch s {
	case SourceOverride:
		return 4
	case SourceManual:
		return 3
	case SourceGoogleCalendar:
		return 2
	case SourceRecurring:
		return 1
	default:
		return 0
	}
}

// IsEditable returns true if intervals from this source may be modified by the
// user. Imported intervals are read-only.
func (s Source) IsEditable() bool {
	return s == SourceOverride || s == SourceManual || s == SourceRecurring
}

// IsManual returns true for user-entered sources.
func (s Source) IsManual() bool {
	return s == SourceManual || s == SourceOverride
}

// IsImported returns true for externally imported sources.
func (s Source) IsImported() bool {
	return s == SourceGoogleCalendar
}

// IsCurrentlySupported returns true if the rest of the system exercises this
// source. Only MANUAL is populated today; the others are forward-provisioning.
func (s Source) IsCurrentlySupported() bool {
	return s == SourceManual
}

// Interval is the object representing a busy/free time interval of a user.
// Timestamps are unix seconds and timezone-naive; Timezone is a stored label
// and is never used to shift StartTs/EndTs.
type Interval struct {
	ID        int32  `json:"id,omitempty"`
	UID       string `json:"uid,omitempty"`
	OwnerID   int32  `json:"ownerId"`
	CreatedTs int64  `json:"createdAt,omitempty"`
	UpdatedTs int64  `json:"updatedAt,omitempty"`

	StartTs  int64  `json:"start"`
	EndTs    int64  `json:"end"`
	Timezone string `json:"timezone"`
	Source   Source `json:"source"`
	IsBusy   bool   `json:"isBusy"`
	IsAllDay bool   `json:"isAllDay"`

	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	Location        string `json:"location,omitempty"`
	ReminderMinutes *int32 `json:"reminderMinutes,omitempty"`

	// Synthesized marks an implied free-time slot generated for a complete
	// calendar view. Synthesized intervals have no ID and must never be
	// persisted; Store.CreateInterval rejects them.
	Synthesized bool `json:"synthesized,omitempty"`
}

// FindInterval is the find condition for intervals.
type FindInterval struct {
	ID      *int32
	UID     *string
	OwnerID *int32

	// Overlap window: matches intervals with start_ts < WindowEnd AND
	// end_ts > WindowStart (strict, [start, end) convention).
	WindowStart *int64
	WindowEnd   *int64

	// StartAfter matches intervals with start_ts strictly after the instant.
	StartAfter *int64
	// ActiveAt matches intervals with start_ts <= instant <= end_ts.
	ActiveAt *int64
	// StartWithin matches intervals whose start_ts lies in the inclusive
	// range [StartWithin.From, StartWithin.To].
	StartWithin *TimeRange

	// ExcludeID drops one interval from the result, used when checking an
	// interval against itself during update.
	ExcludeID *int32

	IsBusy *bool

	Limit  *int
	Offset *int
}

// TimeRange is an inclusive unix-second range.
type TimeRange struct {
	From int64
	To   int64
}

// UpdateInterval is the partial update request for an interval. Nil fields are
// left unchanged. OwnerID is immutable and deliberately absent.
type UpdateInterval struct {
	ID        int32
	UpdatedTs *int64

	StartTs         *int64
	EndTs           *int64
	Timezone        *string
	Source          *Source
	IsBusy          *bool
	IsAllDay        *bool
	Title           *string
	Description     *string
	Location        *string
	ReminderMinutes *int32
}

// DeleteInterval is the delete request for an interval.
type DeleteInterval struct {
	ID int32
}

// CountInterval is the count condition for intervals.
type CountInterval struct {
	OwnerID int32
	IsBusy  *bool
}

// Helper functions for interval time operations.

// ParseStartTime parses the interval start to time.Time.
func (i *Interval) ParseStartTime() time.Time {
	return time.Unix(i.StartTs, 0)
}

// ParseEndTime parses the interval end to time.Time.
func (i *Interval) ParseEndTime() time.Time {
	return time.Unix(i.EndTs, 0)
}

// IsValidTimeRange returns true if the interval has a positive length.
func (i *Interval) IsValidTimeRange() bool {
	return i.StartTs != 0 && i.EndTs != 0 && i.StartTs < i.EndTs
}

// DurationMinutes returns the interval length in whole minutes, 0 when the
// range is invalid.
func (i *Interval) DurationMinutes() int64 {
	if !i.IsValidTimeRange() {
		return 0
	}
	return (i.EndTs - i.StartTs) / 60
}

// DurationHours returns the interval length in whole hours.
func (i *Interval) DurationHours() int64 {
	return i.DurationMinutes() / 60
}

// Overlaps reports whether the two intervals strictly overlap. Intervals that
// merely touch at an endpoint do not overlap ([start, end) convention).
func (i *Interval) Overlaps(other *Interval) bool {
	if other == nil || !i.IsValidTimeRange() || !other.IsValidTimeRange() {
		return false
	}
	return i.StartTs < other.EndTs && i.EndTs > other.StartTs
}

// IsInPast reports whether the interval ended before the given instant.
func (i *Interval) IsInPast(now time.Time) bool {
	return i.EndTs < now.Unix()
}

// IsToday reports whether the interval starts or ends on the calendar date of
// now, evaluated in now's location.
func (i *Interval) IsToday(now time.Time) bool {
	return i.IsOnDate(now, now.Location())
}

// IsOnDate reports whether the interval starts or ends on the calendar date
// of the given instant.
func (i *Interval) IsOnDate(date time.Time, loc *time.Location) bool {
	y, m, d := date.In(loc).Date()
	sy, sm, sd := time.Unix(i.StartTs, 0).In(loc).Date()
	ey, em, ed := time.Unix(i.EndTs, 0).In(loc).Date()
	return (y == sy && m == sm && d == sd) || (y == ey && m == em && d == ed)
}

// IsMultiDay reports whether the interval spans more than one calendar date.
func (i *Interval) IsMultiDay(loc *time.Location) bool {
	sy, sm, sd := time.Unix(i.StartTs, 0).In(loc).Date()
	ey, em, ed := time.Unix(i.EndTs, 0).In(loc).Date()
	return sy != ey || sm != em || sd != ed
}

// ReminderTime returns start minus the reminder offset, or nil when no
// reminder is set.
func (i *Interval) ReminderTime() *time.Time {
	if i.ReminderMinutes == nil {
		return nil
	}
	t := time.Unix(i.StartTs-int64(*i.ReminderMinutes)*60, 0)
	return &t
}
