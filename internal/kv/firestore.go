package kv

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const firestoreCollection = "HealthMateKV"

// Firestore stores each key as a document holding a single bytes field.
type Firestore struct {
	client *firestore.Client
}

func OpenFirestore(ctx context.Context, projectID string) (*Firestore, error) {
	if projectID == "" {
		return nil, errors.New("firestore project id required")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("while creating firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

func (f *Firestore) doc(key string) *firestore.DocumentRef {
	return f.client.Collection(firestoreCollection).Doc(key)
}

func (f *Firestore) Get(ctx context.Context, key string) ([]byte, error) {
	snap, err := f.doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("while getting %s: %w", key, err)
	}
	raw, err := snap.DataAt("value")
	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", key, err)
	}
	v, ok := raw.([]byte)
	if !ok {
		return nil, fmt.Errorf("document %s: value is %T, not bytes", key, raw)
	}
	return v, nil
}

func (f *Firestore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := f.doc(key).Set(ctx, map[string]interface{}{"value": value}); err != nil {
		return fmt.Errorf("while setting %s: %w", key, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, key string) error {
	if _, err := f.doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("while deleting %s: %w", key, err)
	}
	return nil
}

func (f *Firestore) Close() error { return f.client.Close() }
