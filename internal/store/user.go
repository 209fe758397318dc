package store

import (
	"context"

	"healthmate/internal/model"
)

func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	return readCollection[model.User](ctx, s, KeyUsers)
}

func (s *Store) SaveUsers(ctx context.Context, users []model.User) error {
	return writeCollection(ctx, s, KeyUsers, users)
}

// UpdateUsers runs one read-modify-write cycle on the users collection.
// Nothing is written when fn returns an error.
func (s *Store) UpdateUsers(ctx context.Context, fn func([]model.User) ([]model.User, error)) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.Users(ctx)
	if err != nil {
		return err
	}
	next, err := fn(users)
	if err != nil {
		return err
	}
	return s.SaveUsers(ctx, next)
}

// UserByID scans the users collection; ok is false when no user has that id.
func (s *Store) UserByID(ctx context.Context, id string) (u model.User, ok bool, err error) {
	users, err := s.Users(ctx)
	if err != nil {
		return model.User{}, false, err
	}
	for _, candidate := range users {
		if candidate.ID == id {
			return candidate, true, nil
		}
	}
	return model.User{}, false, nil
}
