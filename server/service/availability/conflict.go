package availability

import (
	"context"

	"github.com/pkg/errors"

	"github.com/DinDin03/FriendAvailability/store"
)

// FindConflicts returns the owner's busy intervals strictly overlapping
// [startTs, endTs), optionally excluding one interval id. Free intervals never
// conflict. Conflicts are advisory: the engine reports them alongside writes
// and never rejects a write because of them.
func (s *service) FindConflicts(ctx context.Context, ownerID int32, startTs, endTs int64, excludeID *int32) ([]*store.Interval, error) {
	busy := true
	candidates, err := s.store.ListIntervals(ctx, &store.FindInterval{
		OwnerID:     &ownerID,
		WindowStart: &startTs,
		WindowEnd:   &endTs,
		IsBusy:      &busy,
		ExcludeID:   excludeID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list overlap candidates")
	}

	probe := &store.Interval{StartTs: startTs, EndTs: endTs}

	// Re-check in memory so the [start, end) convention holds even when a
	// store implementation filters with a looser range predicate.
	conflicts := make([]*store.Interval, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.IsBusy {
			continue
		}
		if excludeID != nil && candidate.ID == *excludeID {
			continue
		}
		if probe.Overlaps(candidate) {
			conflicts = append(conflicts, candidate)
		}
	}
	return conflicts, nil
}
