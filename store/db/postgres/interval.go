package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/DinDin03/FriendAvailability/store"
)

func (d *DB) CreateInterval(ctx context.Context, create *store.Interval) (*store.Interval, error) {
	fields := []string{
		"uid", "owner_id", "start_ts", "end_ts", "timezone", "source",
		"is_busy", "is_all_day", "title", "description", "location",
	}
	placeholderValues := []any{
		create.UID, create.OwnerID, create.StartTs, create.EndTs, create.Timezone, create.Source,
		create.IsBusy, create.IsAllDay, create.Title, create.Description, create.Location,
	}

	if create.ReminderMinutes != nil {
		fields = append(fields, "reminder_minutes")
		placeholderValues = append(placeholderValues, *create.ReminderMinutes)
	}
	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}
	if create.UpdatedTs != 0 {
		fields = append(fields, "updated_ts")
		placeholderValues = append(placeholderValues, create.UpdatedTs)
	}

	stmt := `INSERT INTO availability (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create interval: %w", err)
	}

	return create, nil
}

func (d *DB) ListIntervals(ctx context.Context, find *store.FindInterval) ([]*store.Interval, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "availability.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "availability.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.OwnerID; v != nil {
		where, args = append(where, "availability.owner_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ExcludeID; v != nil {
		where, args = append(where, "availability.id != "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.IsBusy; v != nil {
		where, args = append(where, "availability.is_busy = "+placeholder(len(args)+1)), append(args, *v)
	}
	// Overlap window, [start, end) convention: strict inequalities so that
	// intervals merely touching the window boundary do not match.
	if v := find.WindowEnd; v != nil {
		where, args = append(where, "availability.start_ts < "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.WindowStart; v != nil {
		where, args = append(where, "availability.end_ts > "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.StartAfter; v != nil {
		where, args = append(where, "availability.start_ts > "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ActiveAt; v != nil {
		where, args = append(where, "availability.start_ts <= "+placeholder(len(args)+1)), append(args, *v)
		where, args = append(where, "availability.end_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.StartWithin; v != nil {
		where, args = append(where, "availability.start_ts >= "+placeholder(len(args)+1)), append(args, v.From)
		where, args = append(where, "availability.start_ts <= "+placeholder(len(args)+1)), append(args, v.To)
	}

	query := `
		SELECT
			id, uid, owner_id, created_ts, updated_ts,
			start_ts, end_ts, timezone, source,
			is_busy, is_all_day, title, description, location, reminder_minutes
		FROM availability
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY availability.start_ts ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query intervals: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Interval, 0)
	for rows.Next() {
		var interval store.Interval
		var reminderMinutes sql.NullInt64

		if err := rows.Scan(
			&interval.ID,
			&interval.UID,
			&interval.OwnerID,
			&interval.CreatedTs,
			&interval.UpdatedTs,
			&interval.StartTs,
			&interval.EndTs,
			&interval.Timezone,
			&interval.Source,
			&interval.IsBusy,
			&interval.IsAllDay,
			&interval.Title,
			&interval.Description,
			&interval.Location,
			&reminderMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interval: %w", err)
		}

		if reminderMinutes.Valid {
			v := int32(reminderMinutes.Int64)
			interval.ReminderMinutes = &v
		}

		list = append(list, &interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intervals: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateInterval(ctx context.Context, update *store.UpdateInterval) error {
	set, args := []string{}, []any{}

	if v := update.StartTs; v != nil {
		set, args = append(set, "start_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.EndTs; v != nil {
		set, args = append(set, "end_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Timezone; v != nil {
		set, args = append(set, "timezone = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Source; v != nil {
		set, args = append(set, "source = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.IsBusy; v != nil {
		set, args = append(set, "is_busy = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.IsAllDay; v != nil {
		set, args = append(set, "is_all_day = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Title; v != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Location; v != nil {
		set, args = append(set, "location = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.ReminderMinutes; v != nil {
		set, args = append(set, "reminder_minutes = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)

	stmt := `UPDATE availability SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update interval: %w", err)
	}

	return nil
}

func (d *DB) DeleteInterval(ctx context.Context, delete *store.DeleteInterval) (bool, error) {
	stmt := `DELETE FROM availability WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return false, fmt.Errorf("failed to delete interval: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (d *DB) CountIntervals(ctx context.Context, count *store.CountInterval) (int64, error) {
	where, args := []string{"owner_id = " + placeholder(1)}, []any{count.OwnerID}

	if v := count.IsBusy; v != nil {
		where, args = append(where, "is_busy = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT COUNT(*) FROM availability WHERE ` + strings.Join(where, " AND ")

	var n int64
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count intervals: %w", err)
	}
	return n, nil
}
