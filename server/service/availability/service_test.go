package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DinDin03/FriendAvailability/internal/apperrors"
	"github.com/DinDin03/FriendAvailability/store"
)

func newTestServiceWithOwner(t *testing.T) (*service, *mockStore, *store.User) {
	t.Helper()
	mock := newMockStore()
	owner := mock.addUser(&store.User{UID: "owner-uid", Name: "Dineth", Email: "dineth@example.com"})
	return newTestService(mock), mock, owner
}

func TestCreateInterval_AppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)

	created, conflicts, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs: at(10, 0).Unix(),
		EndTs:   at(11, 0).Unix(),
		Title:   "Standup",
	})

	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.UID)
	assert.Equal(t, owner.ID, created.OwnerID)
	assert.Equal(t, "UTC", created.Timezone)
	assert.Equal(t, store.SourceManual, created.Source)
	assert.False(t, created.IsBusy)
	assert.False(t, created.IsAllDay)
	require.NotNil(t, created.ReminderMinutes)
	assert.Equal(t, DefaultReminderMinutes, *created.ReminderMinutes)
}

func TestCreateInterval_ConflictsAreAdvisory(t *testing.T) {
	ctx := context.Background()
	svc, mock, owner := newTestServiceWithOwner(t)

	busy := true
	first, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs: at(10, 0).Unix(),
		EndTs:   at(11, 0).Unix(),
		IsBusy:  &busy,
	})
	require.NoError(t, err)

	second, conflicts, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs: at(10, 30).Unix(),
		EndTs:   at(11, 30).Unix(),
		IsBusy:  &busy,
	})

	// The write succeeds; the overlap is only reported.
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, first.ID, conflicts[0].ID)
	assert.NotZero(t, second.ID)
	assert.Len(t, mock.intervals, 2)
}

func TestCreateInterval_StartEqualsEndRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)

	_, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs: at(10, 0).Unix(),
		EndTs:   at(10, 0).Unix(),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInterval))
}

func TestCreateInterval_PastStartRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)

	past := testDay.Add(-60 * 24 * time.Hour)
	_, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs: past.Unix(),
		EndTs:   past.Add(time.Hour).Unix(),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInterval))
}

func TestCreateInterval_NegativeReminderRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)

	reminder := int32(-5)
	_, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs:         at(10, 0).Unix(),
		EndTs:           at(11, 0).Unix(),
		ReminderMinutes: &reminder,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInterval))
}

func TestCreateInterval_AllDayMustSpanFullDay(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)
	allDay := true

	_, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs:  at(10, 0).Unix(),
		EndTs:    at(11, 0).Unix(),
		IsAllDay: &allDay,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInterval))

	created, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs:  at(0, 0).Unix(),
		EndTs:    at(23, 59).Unix(),
		IsAllDay: &allDay,
	})
	require.NoError(t, err)
	assert.True(t, created.IsAllDay)
}

func TestCreateInterval_UnknownOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockStore())

	_, _, err := svc.CreateInterval(ctx, 42, &CreateIntervalRequest{
		StartTs: at(10, 0).Unix(),
		EndTs:   at(11, 0).Unix(),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestUpdateInterval_PartialMerge(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)

	created, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs:     at(10, 0).Unix(),
		EndTs:       at(11, 0).Unix(),
		Title:       "Standup",
		Description: "Daily sync",
		Location:    "Room 4",
	})
	require.NoError(t, err)

	newTitle := "Retro"
	updated, conflicts, err := svc.UpdateInterval(ctx, created.ID, &UpdateIntervalRequest{
		Title: &newTitle,
	})

	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, "Retro", updated.Title)
	assert.Equal(t, "Daily sync", updated.Description)
	assert.Equal(t, "Room 4", updated.Location)
	assert.Equal(t, created.StartTs, updated.StartTs)
	assert.Equal(t, created.EndTs, updated.EndTs)
}

func TestUpdateInterval_MovedEndpointCheckedAgainstSurvivingOne(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)

	created, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs: at(10, 0).Unix(),
		EndTs:   at(11, 0).Unix(),
	})
	require.NoError(t, err)

	// Moving the end before the surviving start must fail validation.
	badEnd := at(9, 0).Unix()
	_, _, err = svc.UpdateInterval(ctx, created.ID, &UpdateIntervalRequest{
		EndTs: &badEnd,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInterval))
}

func TestUpdateInterval_ConflictCheckExcludesSelf(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)

	busy := true
	created, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs: at(10, 0).Unix(),
		EndTs:   at(11, 0).Unix(),
		IsBusy:  &busy,
	})
	require.NoError(t, err)

	// Shifting the interval within its own span must not conflict with itself.
	newStart := at(10, 15).Unix()
	_, conflicts, err := svc.UpdateInterval(ctx, created.ID, &UpdateIntervalRequest{
		StartTs: &newStart,
	})

	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestUpdateInterval_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)

	created, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs: at(10, 0).Unix(),
		EndTs:   at(11, 0).Unix(),
	})
	require.NoError(t, err)

	title := "Focus block"
	first, _, err := svc.UpdateInterval(ctx, created.ID, &UpdateIntervalRequest{Title: &title})
	require.NoError(t, err)
	second, _, err := svc.UpdateInterval(ctx, created.ID, &UpdateIntervalRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.StartTs, second.StartTs)
	assert.Equal(t, first.EndTs, second.EndTs)
}

func TestUpdateInterval_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServiceWithOwner(t)

	title := "anything"
	_, _, err := svc.UpdateInterval(ctx, 999, &UpdateIntervalRequest{Title: &title})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestDeleteInterval_ReportsExistence(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newTestServiceWithOwner(t)

	created, _, err := svc.CreateInterval(ctx, owner.ID, &CreateIntervalRequest{
		StartTs: at(10, 0).Unix(),
		EndTs:   at(11, 0).Unix(),
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteInterval(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteInterval(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetInterval_MissReturnsNil(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServiceWithOwner(t)

	interval, err := svc.GetInterval(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, interval)
}
