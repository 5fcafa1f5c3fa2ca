package availability

import (
	"context"
	"time"

	"github.com/DinDin03/FriendAvailability/store"
)

// Service defines the availability engine surface exposed to callers (an HTTP
// layer, a CLI, or tests). Every operation is request-scoped; the engine holds
// no mutable state between calls.
type Service interface {
	// CreateInterval validates and stores a new interval for the owner. The
	// returned conflict list is advisory: the write succeeds even when busy
	// intervals overlap, and callers are expected to surface the conflicts.
	CreateInterval(ctx context.Context, ownerID int32, create *CreateIntervalRequest) (*store.Interval, []*store.Interval, error)

	// UpdateInterval merges the non-nil fields into the stored interval,
	// re-validates, and persists. Conflicts are advisory, as on create.
	UpdateInterval(ctx context.Context, id int32, update *UpdateIntervalRequest) (*store.Interval, []*store.Interval, error)

	// DeleteInterval deletes an interval by id, returning false when absent.
	DeleteInterval(ctx context.Context, id int32) (bool, error)

	// GetInterval returns an interval by id, nil when absent.
	GetInterval(ctx context.Context, id int32) (*store.Interval, error)

	// FindConflicts returns the owner's busy intervals strictly overlapping
	// [startTs, endTs), optionally excluding one interval id.
	FindConflicts(ctx context.Context, ownerID int32, startTs, endTs int64, excludeID *int32) ([]*store.Interval, error)

	// CalendarView returns the stored intervals overlapping [start, end),
	// ordered by start time.
	CalendarView(ctx context.Context, ownerID int32, start, end time.Time) ([]*store.Interval, error)

	// CompleteCalendarView returns the calendar view unioned with
	// synthesized free time, chronologically interleaved.
	CompleteCalendarView(ctx context.Context, ownerID int32, start, end time.Time) ([]*store.Interval, error)

	// MonthView returns the calendar view for a calendar month.
	MonthView(ctx context.Context, ownerID int32, year int, month time.Month) ([]*store.Interval, error)

	// TodayView returns the calendar view for the current local day.
	TodayView(ctx context.Context, ownerID int32) ([]*store.Interval, error)

	// AllIntervals returns every stored interval of the owner, start-ordered.
	AllIntervals(ctx context.Context, ownerID int32) ([]*store.Interval, error)

	// UpcomingIntervals returns stored intervals starting strictly after now.
	UpcomingIntervals(ctx context.Context, ownerID int32) ([]*store.Interval, error)

	// CurrentIntervals returns stored intervals with start <= now <= end.
	CurrentIntervals(ctx context.Context, ownerID int32) ([]*store.Interval, error)

	// Statistics returns per-owner interval counts.
	Statistics(ctx context.Context, ownerID int32) (*Statistics, error)

	// HasIntervalsInRange reports whether any stored interval starts within
	// the inclusive range [start, end].
	HasIntervalsInRange(ctx context.Context, ownerID int32, start, end time.Time) (bool, error)

	// ExportICS serializes the owner's calendar view for [start, end) to
	// iCalendar text.
	ExportICS(ctx context.Context, ownerID int32, start, end time.Time) (string, error)
}

// Store is the interface for store operations needed by the availability
// engine. *store.Store satisfies it; tests substitute an in-memory mock.
type Store interface {
	CreateInterval(ctx context.Context, create *store.Interval) (*store.Interval, error)
	ListIntervals(ctx context.Context, find *store.FindInterval) ([]*store.Interval, error)
	GetInterval(ctx context.Context, find *store.FindInterval) (*store.Interval, error)
	UpdateInterval(ctx context.Context, update *store.UpdateInterval) error
	DeleteInterval(ctx context.Context, delete *store.DeleteInterval) (bool, error)
	CountIntervals(ctx context.Context, count *store.CountInterval) (int64, error)
	GetUser(ctx context.Context, find *store.FindUser) (*store.User, error)
}

// CreateIntervalRequest represents the request to create an interval.
type CreateIntervalRequest struct {
	StartTs         int64
	EndTs           int64
	Timezone        string
	Source          store.Source
	IsBusy          *bool
	IsAllDay        *bool
	Title           string
	Description     string
	Location        string
	ReminderMinutes *int32
}

// UpdateIntervalRequest represents a partial update. Nil fields are left
// unchanged; the owner cannot be changed.
type UpdateIntervalRequest struct {
	StartTs         *int64
	EndTs           *int64
	Timezone        *string
	IsBusy          *bool
	IsAllDay        *bool
	Title           *string
	Description     *string
	Location        *string
	ReminderMinutes *int32
}

// Statistics is the per-owner interval count summary.
type Statistics struct {
	TotalEvents   int64 `json:"totalEvents"`
	FreeTimeSlots int64 `json:"freeTimeSlots"`
	BusyTimeSlots int64 `json:"busyTimeSlots"`
}
