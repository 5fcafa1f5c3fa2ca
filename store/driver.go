package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Interval model related methods.
	CreateInterval(ctx context.Context, create *Interval) (*Interval, error)
	ListIntervals(ctx context.Context, find *FindInterval) ([]*Interval, error)
	UpdateInterval(ctx context.Context, update *UpdateInterval) error
	DeleteInterval(ctx context.Context, delete *DeleteInterval) (bool, error)
	CountIntervals(ctx context.Context, count *CountInterval) (int64, error)

	// User model related methods.
	CreateUser(ctx context.Context, create *User) (*User, error)
	ListUsers(ctx context.Context, find *FindUser) ([]*User, error)
	DeleteUser(ctx context.Context, delete *DeleteUser) error
}
