package kv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"

	"healthmate/internal/kv"
)

func backends(t *testing.T) map[string]kv.KV {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	out := map[string]kv.KV{"memory": kv.NewMemory()}

	sq, err := kv.OpenSQLite(ctx, filepath.Join(dir, "sub", "test.db"))
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	out["sqlite"] = sq

	bg, err := kv.OpenBadger(filepath.Join(dir, "badger"))
	if err != nil {
		t.Fatalf("badger: %v", err)
	}
	out["badger"] = bg

	_ = godotenv.Load("../../.env")
	if dsn := os.Getenv("HM_TEST_POSTGRES_DSN"); dsn != "" {
		pg, err := kv.OpenPostgres(ctx, dsn)
		if err != nil {
			t.Fatalf("postgres: %v", err)
		}
		out["postgres"] = pg
	}

	for _, b := range out {
		b := b
		t.Cleanup(func() { b.Close() })
	}
	return out
}

func TestBackends(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := "kvtest-" + name

			if _, err := store.Get(ctx, key); !errors.Is(err, kv.ErrNotFound) {
				t.Fatalf("expected ErrNotFound before set, got %v", err)
			}

			if err := store.Set(ctx, key, []byte(`[1,2]`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := store.Get(ctx, key)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != `[1,2]` {
				t.Errorf("got %q", got)
			}

			// overwrite
			if err := store.Set(ctx, key, []byte(`[]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, _ = store.Get(ctx, key)
			if string(got) != `[]` {
				t.Errorf("after overwrite got %q", got)
			}

			if err := store.Delete(ctx, key); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := store.Get(ctx, key); !errors.Is(err, kv.ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()
	v := []byte("abc")
	m.Set(ctx, "k", v)
	v[0] = 'x'

	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}
	got[1] = 'y'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("returned value aliased store: %q", again)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	m, err := kv.Open(ctx, kv.Config{Driver: kv.DriverMemory})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := m.(*kv.Memory); !ok {
		t.Errorf("expected *kv.Memory, got %T", m)
	}

	s, err := kv.Open(ctx, kv.Config{Driver: kv.DriverSQLite, DSN: filepath.Join(t.TempDir(), "x.db")})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer s.Close()

	if _, err := kv.Open(ctx, kv.Config{Driver: "etcd"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}

	// required parameters are checked before any network access
	if st, err := kv.Open(ctx, kv.Config{Driver: kv.DriverS3}); err == nil || st != nil {
		t.Errorf("expected s3 error without bucket, got %v / %v", st, err)
	}
	if st, err := kv.Open(ctx, kv.Config{Driver: kv.DriverMySQL}); err == nil || st != nil {
		t.Errorf("expected mysql error without dsn, got %v / %v", st, err)
	}
	if st, err := kv.Open(ctx, kv.Config{Driver: kv.DriverFirestore}); err == nil || st != nil {
		t.Errorf("expected firestore error without project, got %v / %v", st, err)
	}
}
