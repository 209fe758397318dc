// Package store is the typed adapter over the key-value backend. It owns the
// two persisted collections and the session mirror and does the JSON encoding
// at the boundary. Callers always read a full collection and write a full
// collection back; there is no partial update.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"healthmate/internal/kv"
)

const (
	KeyUsers        = "users"
	KeyAppointments = "appointments"
	KeyCurrentUser  = "currentUser"
)

type Store struct {
	kv     kv.KV
	prefix string

	// serialise read-modify-write per collection within this process;
	// separate processes sharing a backend are still last-writer-wins
	usersMu sync.Mutex
	apptsMu sync.Mutex
}

// New wraps db. prefix is prepended to every key so several deployments can
// share one backend.
func New(db kv.KV, prefix string) *Store {
	return &Store{kv: db, prefix: prefix}
}

func (s *Store) key(name string) string { return s.prefix + name }

// readCollection decodes the JSON array stored under name. A missing key or a
// value that does not parse yields an empty collection; only backend failures
// are returned as errors.
func readCollection[T any](ctx context.Context, s *Store, name string) ([]T, error) {
	raw, err := s.kv.Get(ctx, s.key(name))
	if errors.Is(err, kv.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("store: %s is not valid json, reading as empty: %v", name, err)
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func writeCollection[T any](ctx context.Context, s *Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, s.key(name), b); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
