package availability

import (
	"sort"
	"time"

	"github.com/DinDin03/FriendAvailability/store"
)

// SynthesizeFreeTime computes the implied free-time slots of [windowStart,
// windowEnd) left uncovered by the given stored intervals, via a single
// left-to-right sweep. Stored intervals may overlap each other and may extend
// past the window edges; free slots are clamped to the window and always have
// positive length. An empty input yields one slot covering the whole window.
//
// The returned intervals are synthesized: no ID, busy=false, and they must
// never be persisted.
func SynthesizeFreeTime(ownerID int32, windowStart, windowEnd time.Time, stored []*store.Interval) []*store.Interval {
	startTs := windowStart.Unix()
	endTs := windowEnd.Unix()
	if startTs >= endTs {
		return []*store.Interval{}
	}

	sorted := make([]*store.Interval, len(stored))
	copy(sorted, stored)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTs < sorted[j].StartTs
	})

	free := make([]*store.Interval, 0)
	cursor := startTs
	for _, interval := range sorted {
		if interval.StartTs >= endTs {
			break
		}
		if gapEnd := min(interval.StartTs, endTs); cursor < gapEnd {
			free = append(free, newFreeSlot(ownerID, cursor, gapEnd))
		}
		// The cursor only moves forward; an interval contained in an earlier
		// one must not pull it back.
		if interval.EndTs > cursor {
			cursor = interval.EndTs
		}
	}
	if cursor < endTs {
		free = append(free, newFreeSlot(ownerID, cursor, endTs))
	}
	return free
}

func newFreeSlot(ownerID int32, startTs, endTs int64) *store.Interval {
	return &store.Interval{
		OwnerID:     ownerID,
		StartTs:     startTs,
		EndTs:       endTs,
		Timezone:    DefaultTimezone,
		Source:      store.SourceManual,
		IsBusy:      false,
		IsAllDay:    false,
		Title:       FreeSlotTitle,
		Description: FreeSlotDescription,
		Synthesized: true,
	}
}
