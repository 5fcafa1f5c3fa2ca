// Package availability implements the availability engine: interval
// validation, advisory conflict detection, free-time synthesis, and view
// composition over a user's stored time intervals.
package availability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/DinDin03/FriendAvailability/internal/apperrors"
	"github.com/DinDin03/FriendAvailability/internal/util"
	"github.com/DinDin03/FriendAvailability/server/timezone"
	"github.com/DinDin03/FriendAvailability/store"
)

type service struct {
	store Store

	// now is injectable so validation and view windows are deterministic in
	// tests. Production wiring uses time.Now.
	now func() time.Time
}

// NewService creates an availability service backed by the given store.
func NewService(st Store) Service {
	return &service{
		store: st,
		now:   time.Now,
	}
}

// NewServiceAt creates a service with a fixed clock, for tests.
func NewServiceAt(st Store, now func() time.Time) Service {
	return &service{store: st, now: now}
}

func (s *service) CreateInterval(ctx context.Context, ownerID int32, create *CreateIntervalRequest) (*store.Interval, []*store.Interval, error) {
	owner, err := s.store.GetUser(ctx, &store.FindUser{ID: &ownerID})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to resolve owner")
	}
	if owner == nil {
		return nil, nil, apperrors.NotFound(fmt.Sprintf("user not found with id %d", ownerID))
	}

	interval := &store.Interval{
		UID:             util.GenUUID(),
		OwnerID:         ownerID,
		StartTs:         create.StartTs,
		EndTs:           create.EndTs,
		Timezone:        timezone.NormalizeLabel(create.Timezone),
		Source:          create.Source,
		Title:           create.Title,
		Description:     create.Description,
		Location:        create.Location,
		ReminderMinutes: create.ReminderMinutes,
	}
	if interval.Source == "" {
		interval.Source = store.SourceManual
	}
	if create.IsBusy != nil {
		interval.IsBusy = *create.IsBusy
	}
	if create.IsAllDay != nil {
		interval.IsAllDay = *create.IsAllDay
	}
	if interval.ReminderMinutes == nil {
		reminder := DefaultReminderMinutes
		interval.ReminderMinutes = &reminder
	}

	if err := s.validateInterval(interval); err != nil {
		return nil, nil, err
	}
	if !timezone.IsValidTimezone(interval.Timezone) {
		slog.Warn("storing unrecognized timezone label",
			slog.String("timezone", interval.Timezone),
			slog.Int("ownerID", int(ownerID)))
	}

	conflicts, err := s.FindConflicts(ctx, ownerID, interval.StartTs, interval.EndTs, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to check conflicts")
	}
	if len(conflicts) > 0 {
		slog.Warn("creating interval with conflicts",
			slog.Int("ownerID", int(ownerID)),
			slog.Int("conflictCount", len(conflicts)))
	}

	created, err := s.store.CreateInterval(ctx, interval)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create interval")
	}

	slog.Debug("created interval",
		slog.Int("id", int(created.ID)),
		slog.Int("ownerID", int(ownerID)),
		slog.Int64("startTs", created.StartTs),
		slog.Int64("endTs", created.EndTs))
	return created, conflicts, nil
}

func (s *service) UpdateInterval(ctx context.Context, id int32, update *UpdateIntervalRequest) (*store.Interval, []*store.Interval, error) {
	existing, err := s.store.GetInterval(ctx, &store.FindInterval{ID: &id})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get interval")
	}
	if existing == nil {
		return nil, nil, apperrors.NotFound("interval not found")
	}

	merged := *existing
	if update.StartTs != nil {
		merged.StartTs = *update.StartTs
	}
	if update.EndTs != nil {
		merged.EndTs = *update.EndTs
	}
	if update.Timezone != nil {
		merged.Timezone = timezone.NormalizeLabel(*update.Timezone)
	}
	if update.IsBusy != nil {
		merged.IsBusy = *update.IsBusy
	}
	if update.IsAllDay != nil {
		merged.IsAllDay = *update.IsAllDay
	}
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Location != nil {
		merged.Location = *update.Location
	}
	if update.ReminderMinutes != nil {
		merged.ReminderMinutes = update.ReminderMinutes
	}

	if err := s.validateInterval(&merged); err != nil {
		return nil, nil, err
	}

	conflicts, err := s.FindConflicts(ctx, existing.OwnerID, merged.StartTs, merged.EndTs, &id)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to check conflicts")
	}
	if len(conflicts) > 0 {
		slog.Warn("updating interval with conflicts",
			slog.Int("id", int(id)),
			slog.Int("conflictCount", len(conflicts)))
	}

	updatedTs := s.now().Unix()
	storeUpdate := &store.UpdateInterval{
		ID:              id,
		UpdatedTs:       &updatedTs,
		StartTs:         update.StartTs,
		EndTs:           update.EndTs,
		IsBusy:          update.IsBusy,
		IsAllDay:        update.IsAllDay,
		Title:           update.Title,
		Description:     update.Description,
		Location:        update.Location,
		ReminderMinutes: update.ReminderMinutes,
	}
	if update.Timezone != nil {
		normalized := timezone.NormalizeLabel(*update.Timezone)
		storeUpdate.Timezone = &normalized
	}
	if err := s.store.UpdateInterval(ctx, storeUpdate); err != nil {
		return nil, nil, errors.Wrap(err, "failed to update interval")
	}

	updated, err := s.store.GetInterval(ctx, &store.FindInterval{ID: &id})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to reload interval")
	}

	slog.Debug("updated interval", slog.Int("id", int(id)))
	return updated, conflicts, nil
}

func (s *service) DeleteInterval(ctx context.Context, id int32) (bool, error) {
	deleted, err := s.store.DeleteInterval(ctx, &store.DeleteInterval{ID: id})
	if err != nil {
		return false, errors.Wrap(err, "failed to delete interval")
	}
	if deleted {
		slog.Debug("deleted interval", slog.Int("id", int(id)))
	}
	return deleted, nil
}

func (s *service) GetInterval(ctx context.Context, id int32) (*store.Interval, error) {
	interval, err := s.store.GetInterval(ctx, &store.FindInterval{ID: &id})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get interval")
	}
	return interval, nil
}
