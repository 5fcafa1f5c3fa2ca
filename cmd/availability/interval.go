package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DinDin03/FriendAvailability/server/service/availability"
)

// timeLayouts are the accepted formats for --start/--end values, tried in
// order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q, want RFC3339 or \"2006-01-02 15:04\"", value)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an interval; overlapping busy intervals are reported, not rejected",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		ownerID, _ := cmd.Flags().GetInt32("owner")
		startValue, _ := cmd.Flags().GetString("start")
		endValue, _ := cmd.Flags().GetString("end")

		start, err := parseTimeFlag(startValue)
		if err != nil {
			return err
		}
		end, err := parseTimeFlag(endValue)
		if err != nil {
			return err
		}

		create := &availability.CreateIntervalRequest{
			StartTs: start.Unix(),
			EndTs:   end.Unix(),
		}
		create.Timezone, _ = cmd.Flags().GetString("timezone")
		create.Title, _ = cmd.Flags().GetString("title")
		create.Description, _ = cmd.Flags().GetString("description")
		create.Location, _ = cmd.Flags().GetString("location")
		if cmd.Flags().Changed("busy") {
			busy, _ := cmd.Flags().GetBool("busy")
			create.IsBusy = &busy
		}
		if cmd.Flags().Changed("all-day") {
			allDay, _ := cmd.Flags().GetBool("all-day")
			create.IsAllDay = &allDay
		}
		if cmd.Flags().Changed("reminder") {
			reminder, _ := cmd.Flags().GetInt32("reminder")
			create.ReminderMinutes = &reminder
		}

		created, conflicts, err := engine.CreateInterval(ctx, ownerID, create)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{
			"interval":  created,
			"conflicts": conflicts,
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an interval's set flags, leaving the rest unchanged",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		id, _ := cmd.Flags().GetInt32("id")

		update := &availability.UpdateIntervalRequest{}
		if cmd.Flags().Changed("start") {
			value, _ := cmd.Flags().GetString("start")
			start, err := parseTimeFlag(value)
			if err != nil {
				return err
			}
			ts := start.Unix()
			update.StartTs = &ts
		}
		if cmd.Flags().Changed("end") {
			value, _ := cmd.Flags().GetString("end")
			end, err := parseTimeFlag(value)
			if err != nil {
				return err
			}
			ts := end.Unix()
			update.EndTs = &ts
		}
		if cmd.Flags().Changed("timezone") {
			tz, _ := cmd.Flags().GetString("timezone")
			update.Timezone = &tz
		}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			update.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			update.Description = &description
		}
		if cmd.Flags().Changed("location") {
			location, _ := cmd.Flags().GetString("location")
			update.Location = &location
		}
		if cmd.Flags().Changed("busy") {
			busy, _ := cmd.Flags().GetBool("busy")
			update.IsBusy = &busy
		}
		if cmd.Flags().Changed("all-day") {
			allDay, _ := cmd.Flags().GetBool("all-day")
			update.IsAllDay = &allDay
		}
		if cmd.Flags().Changed("reminder") {
			reminder, _ := cmd.Flags().GetInt32("reminder")
			update.ReminderMinutes = &reminder
		}

		updated, conflicts, err := engine.UpdateInterval(ctx, id, update)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{
			"interval":  updated,
			"conflicts": conflicts,
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an interval by id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		id, _ := cmd.Flags().GetInt32("id")
		deleted, err := engine.DeleteInterval(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{"deleted": deleted})
	},
}

func addIntervalFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "start time")
	cmd.Flags().String("end", "", "end time")
	cmd.Flags().String("timezone", "", "IANA timezone label")
	cmd.Flags().String("title", "", "title")
	cmd.Flags().String("description", "", "description")
	cmd.Flags().String("location", "", "location")
	cmd.Flags().Bool("busy", false, "mark the interval busy")
	cmd.Flags().Bool("all-day", false, "mark the interval all-day")
	cmd.Flags().Int32("reminder", 0, "reminder offset in minutes before start")
}

func init() {
	addCmd.Flags().Int32("owner", 0, "owner user id")
	addIntervalFieldFlags(addCmd)
	_ = addCmd.MarkFlagRequired("owner")
	_ = addCmd.MarkFlagRequired("start")
	_ = addCmd.MarkFlagRequired("end")

	updateCmd.Flags().Int32("id", 0, "interval id")
	addIntervalFieldFlags(updateCmd)
	_ = updateCmd.MarkFlagRequired("id")

	deleteCmd.Flags().Int32("id", 0, "interval id")
	_ = deleteCmd.MarkFlagRequired("id")
}
