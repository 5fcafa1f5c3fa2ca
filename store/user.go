package store

import (
	"context"
	"strconv"
)

// User is the object representing a directory user. The availability engine
// only consumes existence checks and the display name; accounts, sessions and
// the friend graph live elsewhere.
type User struct {
	ID        int32  `json:"id"`
	UID       string `json:"uid"`
	CreatedTs int64  `json:"createdAt,omitempty"`
	UpdatedTs int64  `json:"updatedAt,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
}

// FindUser is the find condition for users.
type FindUser struct {
	ID    *int32
	UID   *string
	Email *string
}

// DeleteUser is the delete request for a user.
type DeleteUser struct {
	ID int32
}

// CreateUser creates a new user.
func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	user, err := s.driver.CreateUser(ctx, create)
	if err != nil {
		return nil, err
	}
	s.userCache.Set(userCacheKey(user.ID), user)
	return user, nil
}

// GetUser gets a user matching the find condition, nil when absent. Lookups
// by ID are served from the user cache when possible.
func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	if find.ID != nil && find.UID == nil && find.Email == nil {
		if cached, ok := s.userCache.Get(userCacheKey(*find.ID)); ok {
			if user, ok := cached.(*User); ok {
				return user, nil
			}
		}
	}

	list, err := s.driver.ListUsers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.userCache.Set(userCacheKey(user.ID), user)
	return user, nil
}

// ListUsers lists users with filter.
func (s *Store) ListUsers(ctx context.Context, find *FindUser) ([]*User, error) {
	return s.driver.ListUsers(ctx, find)
}

// DeleteUser deletes a user.
func (s *Store) DeleteUser(ctx context.Context, delete *DeleteUser) error {
	if err := s.driver.DeleteUser(ctx, delete); err != nil {
		return err
	}
	s.userCache.Delete(userCacheKey(delete.ID))
	return nil
}

func userCacheKey(id int32) string {
	return "user:" + strconv.FormatInt(int64(id), 10)
}
