package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, value any) error {
	buf, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(buf))
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all intervals of an owner",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		ownerID, _ := cmd.Flags().GetInt32("owner")
		list, err := engine.AllIntervals(ctx, ownerID)
		if err != nil {
			return err
		}
		return printJSON(cmd, list)
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "List intervals overlapping the current local day",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		ownerID, _ := cmd.Flags().GetInt32("owner")
		list, err := engine.TodayView(ctx, ownerID)
		if err != nil {
			return err
		}
		return printJSON(cmd, list)
	},
}

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List intervals starting after now",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		ownerID, _ := cmd.Flags().GetInt32("owner")
		list, err := engine.UpcomingIntervals(ctx, ownerID)
		if err != nil {
			return err
		}
		return printJSON(cmd, list)
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "List intervals in progress now",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		ownerID, _ := cmd.Flags().GetInt32("owner")
		list, err := engine.CurrentIntervals(ctx, ownerID)
		if err != nil {
			return err
		}
		return printJSON(cmd, list)
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show a window's complete calendar: stored intervals plus implied free time",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		ownerID, _ := cmd.Flags().GetInt32("owner")
		start, end, err := windowFlags(cmd)
		if err != nil {
			return err
		}
		list, err := engine.CompleteCalendarView(ctx, ownerID, start, end)
		if err != nil {
			return err
		}
		return printJSON(cmd, list)
	},
}

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "List intervals of a calendar month",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		ownerID, _ := cmd.Flags().GetInt32("owner")
		year, _ := cmd.Flags().GetInt("year")
		month, _ := cmd.Flags().GetInt("month")
		if month < 1 || month > 12 {
			return fmt.Errorf("month must be in 1..12, got %d", month)
		}
		list, err := engine.MonthView(ctx, ownerID, year, time.Month(month))
		if err != nil {
			return err
		}
		return printJSON(cmd, list)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show interval counts for an owner",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		ownerID, _ := cmd.Flags().GetInt32("owner")
		stats, err := engine.Statistics(ctx, ownerID)
		if err != nil {
			return err
		}
		return printJSON(cmd, stats)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a window's intervals as iCalendar text",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		engine, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		ownerID, _ := cmd.Flags().GetInt32("owner")
		start, end, err := windowFlags(cmd)
		if err != nil {
			return err
		}
		text, err := engine.ExportICS(ctx, ownerID, start, end)
		if err != nil {
			return err
		}
		cmd.Print(text)
		return nil
	},
}

func windowFlags(cmd *cobra.Command) (time.Time, time.Time, error) {
	startValue, _ := cmd.Flags().GetString("start")
	endValue, _ := cmd.Flags().GetString("end")
	start, err := parseTimeFlag(startValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseTimeFlag(endValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func addOwnerFlag(cmd *cobra.Command) {
	cmd.Flags().Int32("owner", 0, "owner user id")
	_ = cmd.MarkFlagRequired("owner")
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "window start time")
	cmd.Flags().String("end", "", "window end time")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func init() {
	addOwnerFlag(listCmd)
	addOwnerFlag(todayCmd)
	addOwnerFlag(upcomingCmd)
	addOwnerFlag(currentCmd)
	addOwnerFlag(statsCmd)

	addOwnerFlag(viewCmd)
	addWindowFlags(viewCmd)

	addOwnerFlag(monthCmd)
	monthCmd.Flags().Int("year", 0, "calendar year")
	monthCmd.Flags().Int("month", 0, "calendar month, 1..12")
	_ = monthCmd.MarkFlagRequired("year")
	_ = monthCmd.MarkFlagRequired("month")

	addOwnerFlag(exportCmd)
	addWindowFlags(exportCmd)
}
