package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"healthmate/internal/kv"
	"healthmate/internal/model"
)

// CurrentUser returns the mirrored session user, or nil when nobody is
// logged in or the mirror does not parse.
func (s *Store) CurrentUser(ctx context.Context) (*model.User, error) {
	raw, err := s.kv.Get(ctx, s.key(KeyCurrentUser))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyCurrentUser, err)
	}
	var u *model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		log.Printf("store: %s is not valid json, ignoring: %v", KeyCurrentUser, err)
		return nil, nil
	}
	return u, nil
}

// SaveCurrentUser mirrors u without its password.
func (s *Store) SaveCurrentUser(ctx context.Context, u model.User) error {
	b, err := json.Marshal(u.Public())
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyCurrentUser, err)
	}
	if err := s.kv.Set(ctx, s.key(KeyCurrentUser), b); err != nil {
		return fmt.Errorf("write %s: %w", KeyCurrentUser, err)
	}
	return nil
}

func (s *Store) ClearCurrentUser(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key(KeyCurrentUser)); err != nil {
		return fmt.Errorf("clear %s: %w", KeyCurrentUser, err)
	}
	return nil
}
