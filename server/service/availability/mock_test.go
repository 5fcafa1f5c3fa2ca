package availability

import (
	"context"
	"sort"

	"github.com/DinDin03/FriendAvailability/store"
)

// mockStore is an in-memory Store used by the engine tests. It reproduces the
// driver's find semantics, including the strict [start, end) overlap window
// and start-time ordering.
type mockStore struct {
	intervals []*store.Interval
	users     map[int32]*store.User
	nextID    int32
}

func newMockStore() *mockStore {
	return &mockStore{
		users:  make(map[int32]*store.User),
		nextID: 1,
	}
}

func (m *mockStore) addUser(user *store.User) *store.User {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	return user
}

func (m *mockStore) CreateInterval(_ context.Context, create *store.Interval) (*store.Interval, error) {
	created := *create
	created.ID = m.nextID
	m.nextID++
	if created.CreatedTs == 0 {
		created.CreatedTs = created.StartTs
	}
	if created.UpdatedTs == 0 {
		created.UpdatedTs = created.CreatedTs
	}
	m.intervals = append(m.intervals, &created)
	return &created, nil
}

func (m *mockStore) ListIntervals(_ context.Context, find *store.FindInterval) ([]*store.Interval, error) {
	list := make([]*store.Interval, 0)
	for _, interval := range m.intervals {
		if !matches(interval, find) {
			continue
		}
		list = append(list, interval)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTs < list[j].StartTs
	})
	if find.Limit != nil && len(list) > *find.Limit {
		list = list[:*find.Limit]
	}
	return list, nil
}

func matches(interval *store.Interval, find *store.FindInterval) bool {
	if find.ID != nil && interval.ID != *find.ID {
		return false
	}
	if find.UID != nil && interval.UID != *find.UID {
		return false
	}
	if find.OwnerID != nil && interval.OwnerID != *find.OwnerID {
		return false
	}
	if find.ExcludeID != nil && interval.ID == *find.ExcludeID {
		return false
	}
	if find.IsBusy != nil && interval.IsBusy != *find.IsBusy {
		return false
	}
	if find.WindowEnd != nil && interval.StartTs >= *find.WindowEnd {
		return false
	}
	if find.WindowStart != nil && interval.EndTs <= *find.WindowStart {
		return false
	}
	if find.StartAfter != nil && interval.StartTs <= *find.StartAfter {
		return false
	}
	if find.ActiveAt != nil && (interval.StartTs > *find.ActiveAt || interval.EndTs < *find.ActiveAt) {
		return false
	}
	if find.StartWithin != nil && (interval.StartTs < find.StartWithin.From || interval.StartTs > find.StartWithin.To) {
		return false
	}
	return true
}

func (m *mockStore) GetInterval(ctx context.Context, find *store.FindInterval) (*store.Interval, error) {
	list, err := m.ListIntervals(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (m *mockStore) UpdateInterval(_ context.Context, update *store.UpdateInterval) error {
	for _, interval := range m.intervals {
		if interval.ID != update.ID {
			continue
		}
		if update.StartTs != nil {
			interval.StartTs = *update.StartTs
		}
		if update.EndTs != nil {
			interval.EndTs = *update.EndTs
		}
		if update.Timezone != nil {
			interval.Timezone = *update.Timezone
		}
		if update.Source != nil {
			interval.Source = *update.Source
		}
		if update.IsBusy != nil {
			interval.IsBusy = *update.IsBusy
		}
		if update.IsAllDay != nil {
			interval.IsAllDay = *update.IsAllDay
		}
		if update.Title != nil {
			interval.Title = *update.Title
		}
		if update.Description != nil {
			interval.Description = *update.Description
		}
		if update.Location != nil {
			interval.Location = *update.Location
		}
		if update.ReminderMinutes != nil {
			interval.ReminderMinutes = update.ReminderMinutes
		}
		if update.UpdatedTs != nil {
			interval.UpdatedTs = *update.UpdatedTs
		}
		return nil
	}
	return nil
}

func (m *mockStore) DeleteInterval(_ context.Context, delete *store.DeleteInterval) (bool, error) {
	for i, interval := range m.intervals {
		if interval.ID == delete.ID {
			m.intervals = append(m.intervals[:i], m.intervals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) CountIntervals(_ context.Context, count *store.CountInterval) (int64, error) {
	var n int64
	for _, interval := range m.intervals {
		if interval.OwnerID != count.OwnerID {
			continue
		}
		if count.IsBusy != nil && interval.IsBusy != *count.IsBusy {
			continue
		}
		n++
	}
	return n, nil
}

func (m *mockStore) GetUser(_ context.Context, find *store.FindUser) (*store.User, error) {
	if find.ID != nil {
		if user, ok := m.users[*find.ID]; ok {
			return user, nil
		}
		return nil, nil
	}
	for _, user := range m.users {
		if find.UID != nil && user.UID == *find.UID {
			return user, nil
		}
		if find.Email != nil && user.Email == *find.Email {
			return user, nil
		}
	}
	return nil, nil
}
