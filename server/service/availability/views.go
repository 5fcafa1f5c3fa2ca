package availability

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/DinDin03/FriendAvailability/internal/apperrors"
	"github.com/DinDin03/FriendAvailability/store"
)

func (s *service) CalendarView(ctx context.Context, ownerID int32, start, end time.Time) ([]*store.Interval, error) {
	startTs := start.Unix()
	endTs := end.Unix()
	list, err := s.store.ListIntervals(ctx, &store.FindInterval{
		OwnerID:     &ownerID,
		WindowStart: &startTs,
		WindowEnd:   &endTs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list intervals")
	}
	return list, nil
}

func (s *service) CompleteCalendarView(ctx context.Context, ownerID int32, start, end time.Time) ([]*store.Interval, error) {
	owner, err := s.store.GetUser(ctx, &store.FindUser{ID: &ownerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve owner")
	}
	if owner == nil {
		return nil, apperrors.OwnerNotFound(ownerID)
	}

	stored, err := s.CalendarView(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	free := SynthesizeFreeTime(ownerID, start, end, stored)

	complete := make([]*store.Interval, 0, len(stored)+len(free))
	complete = append(complete, stored...)
	complete = append(complete, free...)
	sort.SliceStable(complete, func(i, j int) bool {
		return complete[i].StartTs < complete[j].StartTs
	})

	slog.Debug("composed complete calendar view",
		slog.Int("ownerID", int(ownerID)),
		slog.Int("stored", len(stored)),
		slog.Int("free", len(free)))
	return complete, nil
}

func (s *service) MonthView(ctx context.Context, ownerID int32, year int, month time.Month) ([]*store.Interval, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-MonthEndSlack)
	return s.CalendarView(ctx, ownerID, monthStart, monthEnd)
}

func (s *service) TodayView(ctx context.Context, ownerID int32) ([]*store.Interval, error) {
	now := s.now()
	year, month, day := now.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	dayEnd := time.Date(year, month, day, 23, 59, 59, 0, now.Location())
	return s.CalendarView(ctx, ownerID, dayStart, dayEnd)
}

func (s *service) AllIntervals(ctx context.Context, ownerID int32) ([]*store.Interval, error) {
	list, err := s.store.ListIntervals(ctx, &store.FindInterval{OwnerID: &ownerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list intervals")
	}
	return list, nil
}

func (s *service) UpcomingIntervals(ctx context.Context, ownerID int32) ([]*store.Interval, error) {
	nowTs := s.now().Unix()
	list, err := s.store.ListIntervals(ctx, &store.FindInterval{
		OwnerID:    &ownerID,
		StartAfter: &nowTs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list upcoming intervals")
	}
	return list, nil
}

func (s *service) CurrentIntervals(ctx context.Context, ownerID int32) ([]*store.Interval, error) {
	nowTs := s.now().Unix()
	list, err := s.store.ListIntervals(ctx, &store.FindInterval{
		OwnerID:  &ownerID,
		ActiveAt: &nowTs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list current intervals")
	}
	return list, nil
}

func (s *service) Statistics(ctx context.Context, ownerID int32) (*Statistics, error) {
	total, err := s.store.CountIntervals(ctx, &store.CountInterval{OwnerID: ownerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count intervals")
	}

	busy := true
	busyCount, err := s.store.CountIntervals(ctx, &store.CountInterval{OwnerID: ownerID, IsBusy: &busy})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count busy intervals")
	}

	free := false
	freeCount, err := s.store.CountIntervals(ctx, &store.CountInterval{OwnerID: ownerID, IsBusy: &free})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count free intervals")
	}

	return &Statistics{
		TotalEvents:   total,
		FreeTimeSlots: freeCount,
		BusyTimeSlots: busyCount,
	}, nil
}

func (s *service) HasIntervalsInRange(ctx context.Context, ownerID int32, start, end time.Time) (bool, error) {
	limit := 1
	list, err := s.store.ListIntervals(ctx, &store.FindInterval{
		OwnerID: &ownerID,
		StartWithin: &store.TimeRange{
			From: start.Unix(),
			To:   end.Unix(),
		},
		Limit: &limit,
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to probe range")
	}
	return len(list) > 0, nil
}
