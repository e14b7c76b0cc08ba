// Package storagetest is a conformance suite for storage.Storage
// implementations.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ggoodman/slashcmd-go/storage"
)

// StorageFactory creates a fresh, empty store for one subtest. The suite
// closes it when the subtest ends.
type StorageFactory func(t *testing.T) storage.Storage

// RunStorageTests runs the complete storage test suite against the provided factory.
func RunStorageTests(t *testing.T, factory StorageFactory) {
	t.Run("SetAndGet", func(t *testing.T) {
		testSetAndGet(t, factory)
	})
	t.Run("GetNonExistent", func(t *testing.T) {
		testGetNonExistent(t, factory)
	})
	t.Run("Overwrite", func(t *testing.T) {
		testOverwrite(t, factory)
	})
	t.Run("TTL", func(t *testing.T) {
		testTTL(t, factory)
	})
	t.Run("NamespaceIsolation", func(t *testing.T) {
		testNamespaceIsolation(t, factory)
	})
	t.Run("DeleteKey", func(t *testing.T) {
		testDeleteKey(t, factory)
	})
	t.Run("DeleteNamespace", func(t *testing.T) {
		testDeleteNamespace(t, factory)
	})
	t.Run("InvalidOptions", func(t *testing.T) {
		testInvalidOptions(t, factory)
	})
}

func open(t *testing.T, factory StorageFactory) storage.Storage {
	t.Helper()
	s := factory(t)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func mustGet(t *testing.T, s storage.Storage, key string, opts ...storage.Option) *storage.Item {
	t.Helper()
	item, err := s.Get(context.Background(), key, opts...)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", key, err)
	}
	return item
}

func mustSet(t *testing.T, s storage.Storage, key, data string, opts ...storage.Option) {
	t.Helper()
	if err := s.Set(context.Background(), key, []byte(data), opts...); err != nil {
		t.Fatalf("Set(%q) failed: %v", key, err)
	}
}

func testSetAndGet(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	mustSet(t, s, "demo", "abc123")

	item := mustGet(t, s, "demo")
	if item == nil {
		t.Fatal("expected item, got nil")
	}
	if string(item.Data) != "abc123" {
		t.Fatalf("data = %q, want %q", item.Data, "abc123")
	}
	if item.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
	if item.ExpiresAt != nil {
		t.Fatal("ExpiresAt should be nil without a TTL")
	}
}

func testGetNonExistent(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	if item := mustGet(t, s, "missing"); item != nil {
		t.Fatalf("expected nil for missing key, got %q", item.Data)
	}
}

func testOverwrite(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	mustSet(t, s, "demo", "one")
	mustSet(t, s, "demo", "two")
	if item := mustGet(t, s, "demo"); item == nil || string(item.Data) != "two" {
		t.Fatalf("expected overwritten value, got %v", item)
	}
}

func testTTL(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	ttl := 100 * time.Millisecond
	mustSet(t, s, "short", "x", storage.WithTTL(ttl))

	item := mustGet(t, s, "short")
	if item == nil || item.ExpiresAt == nil {
		t.Fatalf("expected item with expiry, got %v", item)
	}

	time.Sleep(ttl + 50*time.Millisecond)
	if item := mustGet(t, s, "short"); item != nil {
		t.Fatal("expected expired item to be gone")
	}
}

func testNamespaceIsolation(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	mustSet(t, s, "demo", "global")
	mustSet(t, s, "demo", "guild-1", storage.WithGuild("1"))
	mustSet(t, s, "demo", "guild-2", storage.WithGuild("2"))

	tests := []struct {
		name string
		opts []storage.Option
		want string
	}{
		{"global", nil, "global"},
		{"guild 1", []storage.Option{storage.WithGuild("1")}, "guild-1"},
		{"guild 2", []storage.Option{storage.WithGuild("2")}, "guild-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := mustGet(t, s, "demo", tt.opts...)
			if item == nil || string(item.Data) != tt.want {
				t.Fatalf("got %v, want %q", item, tt.want)
			}
		})
	}
	if item := mustGet(t, s, "demo", storage.WithGuild("3")); item != nil {
		t.Fatalf("unexpected value in empty guild: %q", item.Data)
	}
}

func testDeleteKey(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	mustSet(t, s, "a", "1")
	mustSet(t, s, "b", "2")

	if err := s.Delete(context.Background(), storage.WithKey("a")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if item := mustGet(t, s, "a"); item != nil {
		t.Fatal("deleted key still present")
	}
	if item := mustGet(t, s, "b"); item == nil {
		t.Fatal("unrelated key was deleted")
	}
}

func testDeleteNamespace(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	mustSet(t, s, "a", "1", storage.WithGuild("1"))
	mustSet(t, s, "b", "2", storage.WithGuild("1"))
	mustSet(t, s, "a", "3", storage.WithGuild("10"))
	mustSet(t, s, "a", "4")

	if err := s.Delete(context.Background(), storage.WithGuild("1")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	for _, key := range []string{"a", "b"} {
		if item := mustGet(t, s, key, storage.WithGuild("1")); item != nil {
			t.Fatalf("key %q survived namespace delete", key)
		}
	}
	if item := mustGet(t, s, "a", storage.WithGuild("10")); item == nil {
		t.Fatal("guild 10 lost its key")
	}
	if item := mustGet(t, s, "a"); item == nil {
		t.Fatal("global namespace lost its key")
	}
}

func testInvalidOptions(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	ctx := context.Background()

	if _, err := s.Get(ctx, "a", storage.WithGuild("")); !errors.Is(err, storage.ErrInvalidOptions) {
		t.Fatalf("Get with empty guild: expected ErrInvalidOptions, got %v", err)
	}
	if err := s.Set(ctx, "a", nil, storage.WithTTL(0)); !errors.Is(err, storage.ErrInvalidOptions) {
		t.Fatalf("Set with zero TTL: expected ErrInvalidOptions, got %v", err)
	}
	if err := s.Delete(ctx, storage.WithKey("")); !errors.Is(err, storage.ErrInvalidOptions) {
		t.Fatalf("Delete with empty key: expected ErrInvalidOptions, got %v", err)
	}
}
