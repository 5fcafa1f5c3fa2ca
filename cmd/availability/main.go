package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DinDin03/FriendAvailability/internal/profile"
	"github.com/DinDin03/FriendAvailability/server/service/availability"
	"github.com/DinDin03/FriendAvailability/store"
	"github.com/DinDin03/FriendAvailability/store/db"
)

var (
	rootCmd = &cobra.Command{
		Use:   "availability",
		Short: "A calendar availability engine for user time intervals",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if viper.GetString("mode") != "prod" {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of the engine, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name (e.g. file path or connection string)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("availability")
	viper.AutomaticEnv()
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", "sqlite")

	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
}

// newEngine opens the configured store and wraps it in the availability
// service. The caller owns the returned store and must Close it.
func newEngine(ctx context.Context) (availability.Service, *store.Store, error) {
	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version,
	}
	if err := instanceProfile.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid profile: %w", err)
	}

	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create db driver: %w", err)
	}

	storeInstance := store.New(dbDriver, instanceProfile)
	if err := storeInstance.Migrate(ctx); err != nil {
		_ = storeInstance.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return availability.NewService(storeInstance), storeInstance, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
