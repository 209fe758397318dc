// Package kv provides the durable key-value dictionary the clinic store is
// persisted in. Every driver stores opaque byte values under string keys and
// overwrites on Set; there is no partial update and no cross-key transaction.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("kv: key not found")

// KV is the contract every backend satisfies.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory    = "memory"
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
	DriverMySQL     = "mysql"
	DriverBadger    = "badger"
	DriverS3        = "s3"
	DriverFirestore = "firestore"
)

// Config selects and parameterises a backend. DSN is interpreted per driver:
// a file path for sqlite, a directory for badger, a connection string for
// postgres and mysql, a bucket for s3 and a project id for firestore.
type Config struct {
	Driver string
	DSN    string

	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// Open constructs the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (KV, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, "":
		return wrap(OpenSQLite(ctx, cfg.DSN))
	case DriverPostgres:
		return wrap(OpenPostgres(ctx, cfg.DSN))
	case DriverMySQL:
		return wrap(OpenMySQL(cfg.DSN))
	case DriverBadger:
		return wrap(OpenBadger(cfg.DSN))
	case DriverS3:
		return wrap(OpenS3(ctx, S3Config{
			Bucket:    cfg.DSN,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		}))
	case DriverFirestore:
		return wrap(OpenFirestore(ctx, cfg.DSN))
	default:
		return nil, fmt.Errorf("kv: unknown driver %q", cfg.Driver)
	}
}

// wrap keeps a typed nil out of the returned interface.
func wrap[T KV](v T, err error) (KV, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
