package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DinDin03/FriendAvailability/internal/profile"
	"github.com/DinDin03/FriendAvailability/internal/util"
	"github.com/DinDin03/FriendAvailability/store"
	"github.com/DinDin03/FriendAvailability/store/db"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dir := t.TempDir()
	testProfile := &profile.Profile{
		Mode:   "dev",
		Data:   dir,
		Driver: "sqlite",
		DSN:    filepath.Join(dir, "availability_test.db"),
	}
	require.NoError(t, testProfile.Validate())

	driver, err := db.NewDBDriver(testProfile)
	require.NoError(t, err)

	st := store.New(driver, testProfile)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func createTestUser(t *testing.T, st *store.Store) *store.User {
	t.Helper()
	user, err := st.CreateUser(context.Background(), &store.User{
		UID:   util.GenUUID(),
		Name:  "Dineth",
		Email: "dineth@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	return user
}

func TestIntervalRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := createTestUser(t, st)

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	reminder := int32(30)
	created, err := st.CreateInterval(ctx, &store.Interval{
		UID:             util.GenUUID(),
		OwnerID:         user.ID,
		StartTs:         start.Unix(),
		EndTs:           start.Add(time.Hour).Unix(),
		Timezone:        "Australia/Sydney",
		Source:          store.SourceManual,
		IsBusy:          true,
		Title:           "Design review",
		Description:     "Quarterly",
		Location:        "Room 4",
		ReminderMinutes: &reminder,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotZero(t, created.CreatedTs)

	got, err := st.GetInterval(ctx, &store.FindInterval{ID: &created.ID})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, created.UID, got.UID)
	assert.Equal(t, user.ID, got.OwnerID)
	assert.Equal(t, created.StartTs, got.StartTs)
	assert.Equal(t, created.EndTs, got.EndTs)
	assert.Equal(t, "Australia/Sydney", got.Timezone)
	assert.Equal(t, store.SourceManual, got.Source)
	assert.True(t, got.IsBusy)
	assert.False(t, got.IsAllDay)
	assert.Equal(t, "Design review", got.Title)
	assert.Equal(t, "Quarterly", got.Description)
	assert.Equal(t, "Room 4", got.Location)
	require.NotNil(t, got.ReminderMinutes)
	assert.Equal(t, reminder, *got.ReminderMinutes)
}

func TestListIntervals_WindowIsStrict(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := createTestUser(t, st)

	base := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	mk := func(startHour, endHour int) *store.Interval {
		interval, err := st.CreateInterval(ctx, &store.Interval{
			UID:     util.GenUUID(),
			OwnerID: user.ID,
			StartTs: base.Add(time.Duration(startHour) * time.Hour).Unix(),
			EndTs:   base.Add(time.Duration(endHour) * time.Hour).Unix(),
			Source:  store.SourceManual,
			IsBusy:  true,
		})
		require.NoError(t, err)
		return interval
	}

	mk(8, 9)   // touches window start
	in := mk(10, 11)
	mk(17, 18) // touches window end

	windowStart := base.Add(9 * time.Hour).Unix()
	windowEnd := base.Add(17 * time.Hour).Unix()
	list, err := st.ListIntervals(ctx, &store.FindInterval{
		OwnerID:     &user.ID,
		WindowStart: &windowStart,
		WindowEnd:   &windowEnd,
	})
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, in.ID, list[0].ID)
}

func TestListIntervals_OrderedByStart(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := createTestUser(t, st)

	base := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	for _, hour := range []int{14, 8, 11} {
		_, err := st.CreateInterval(ctx, &store.Interval{
			UID:     util.GenUUID(),
			OwnerID: user.ID,
			StartTs: base.Add(time.Duration(hour) * time.Hour).Unix(),
			EndTs:   base.Add(time.Duration(hour+1) * time.Hour).Unix(),
			Source:  store.SourceManual,
		})
		require.NoError(t, err)
	}

	list, err := st.ListIntervals(ctx, &store.FindInterval{OwnerID: &user.ID})
	require.NoError(t, err)

	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].StartTs, list[i].StartTs)
	}
}

func TestUpdateInterval_PartialFields(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := createTestUser(t, st)

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	created, err := st.CreateInterval(ctx, &store.Interval{
		UID:     util.GenUUID(),
		OwnerID: user.ID,
		StartTs: start.Unix(),
		EndTs:   start.Add(time.Hour).Unix(),
		Source:  store.SourceManual,
		Title:   "Standup",
	})
	require.NoError(t, err)

	title := "Retro"
	busy := true
	updatedTs := time.Now().Unix()
	err = st.UpdateInterval(ctx, &store.UpdateInterval{
		ID:        created.ID,
		Title:     &title,
		IsBusy:    &busy,
		UpdatedTs: &updatedTs,
	})
	require.NoError(t, err)

	got, err := st.GetInterval(ctx, &store.FindInterval{ID: &created.ID})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Retro", got.Title)
	assert.True(t, got.IsBusy)
	assert.Equal(t, created.StartTs, got.StartTs)
	assert.Equal(t, updatedTs, got.UpdatedTs)
}

func TestDeleteInterval_ReportsExistence(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := createTestUser(t, st)

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	created, err := st.CreateInterval(ctx, &store.Interval{
		UID:     util.GenUUID(),
		OwnerID: user.ID,
		StartTs: start.Unix(),
		EndTs:   start.Add(time.Hour).Unix(),
		Source:  store.SourceManual,
	})
	require.NoError(t, err)

	deleted, err := st.DeleteInterval(ctx, &store.DeleteInterval{ID: created.ID})
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = st.DeleteInterval(ctx, &store.DeleteInterval{ID: created.ID})
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCreateInterval_RejectsSynthesized(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := createTestUser(t, st)

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	_, err := st.CreateInterval(ctx, &store.Interval{
		UID:         util.GenUUID(),
		OwnerID:     user.ID,
		StartTs:     start.Unix(),
		EndTs:       start.Add(time.Hour).Unix(),
		Source:      store.SourceManual,
		Synthesized: true,
	})

	require.Error(t, err)
}

func TestCountIntervals(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := createTestUser(t, st)

	base := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	for i, busy := range []bool{true, true, false} {
		_, err := st.CreateInterval(ctx, &store.Interval{
			UID:     util.GenUUID(),
			OwnerID: user.ID,
			StartTs: base.Add(time.Duration(2*i) * time.Hour).Unix(),
			EndTs:   base.Add(time.Duration(2*i+1) * time.Hour).Unix(),
			Source:  store.SourceManual,
			IsBusy:  busy,
		})
		require.NoError(t, err)
	}

	total, err := st.CountIntervals(ctx, &store.CountInterval{OwnerID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	busy := true
	busyCount, err := st.CountIntervals(ctx, &store.CountInterval{OwnerID: user.ID, IsBusy: &busy})
	require.NoError(t, err)
	assert.Equal(t, int64(2), busyCount)
}

func TestGetUser_ServedFromCacheAfterFirstLookup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := createTestUser(t, st)

	first, err := st.GetUser(ctx, &store.FindUser{ID: &user.ID})
	require.NoError(t, err)
	require.NotNil(t, first)

	// Delete behind the cache's back via the driver, then confirm the cached
	// record still serves ID lookups.
	require.NoError(t, st.GetDriver().DeleteUser(ctx, &store.DeleteUser{ID: user.ID}))

	second, err := st.GetUser(ctx, &store.FindUser{ID: &user.ID})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetUser_MissReturnsNil(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	missing := int32(999)
	user, err := st.GetUser(ctx, &store.FindUser{ID: &missing})
	require.NoError(t, err)
	assert.Nil(t, user)
}
