// Package db provides the database driver factory.
package db

import (
	"github.com/pkg/errors"

	"github.com/DinDin03/FriendAvailability/internal/profile"
	"github.com/DinDin03/FriendAvailability/store"
	"github.com/DinDin03/FriendAvailability/store/db/postgres"
	"github.com/DinDin03/FriendAvailability/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
// SQLite is the default for development and single-user deployments;
// PostgreSQL is for shared installations.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
