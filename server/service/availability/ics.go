package availability

import (
	"context"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pkg/errors"

	"github.com/DinDin03/FriendAvailability/internal/apperrors"
	"github.com/DinDin03/FriendAvailability/store"
)

const icsProductID = "-//FriendAvailability//Availability Engine//EN"

// ExportICS serializes the owner's stored intervals overlapping [start, end)
// to iCalendar text. Synthesized free time is not exported; consumers derive
// their own gaps.
func (s *service) ExportICS(ctx context.Context, ownerID int32, start, end time.Time) (string, error) {
	owner, err := s.store.GetUser(ctx, &store.FindUser{ID: &ownerID})
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve owner")
	}
	if owner == nil {
		return "", apperrors.OwnerNotFound(ownerID)
	}

	list, err := s.CalendarView(ctx, ownerID, start, end)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	if owner.Name != "" {
		cal.SetName(owner.Name + "'s availability")
	}

	stamp := s.now().UTC()
	for _, interval := range list {
		event := cal.AddEvent(interval.UID)
		event.SetDtStampTime(stamp)
		if interval.CreatedTs != 0 {
			event.SetCreatedTime(time.Unix(interval.CreatedTs, 0).UTC())
		}
		if interval.UpdatedTs != 0 {
			event.SetModifiedAt(time.Unix(interval.UpdatedTs, 0).UTC())
		}

		if interval.IsAllDay {
			event.SetAllDayStartAt(interval.ParseStartTime().UTC())
			event.SetAllDayEndAt(interval.ParseEndTime().UTC())
		} else {
			event.SetStartAt(interval.ParseStartTime().UTC())
			event.SetEndAt(interval.ParseEndTime().UTC())
		}

		summary := interval.Title
		if summary == "" {
			if interval.IsBusy {
				summary = "Busy"
			} else {
				summary = FreeSlotTitle
			}
		}
		event.SetSummary(summary)
		if interval.Description != "" {
			event.SetDescription(interval.Description)
		}
		if interval.Location != "" {
			event.SetLocation(interval.Location)
		}
	}

	return cal.Serialize(), nil
}
