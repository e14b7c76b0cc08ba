package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ggoodman/slashcmd-go/storage"
	"github.com/ggoodman/slashcmd-go/storage/storagetest"
)

func TestMemoryStorage(t *testing.T) {
	storagetest.RunStorageTests(t, func(t *testing.T) storage.Storage {
		s, err := New(100)
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		return s
	})
}

func TestNew_InvalidSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero capacity")
	}
}

func TestEviction(t *testing.T) {
	s, err := New(2)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(ctx, k, []byte(k)); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}
	if item, _ := s.Get(ctx, "a"); item != nil {
		t.Fatal("oldest key should have been evicted")
	}
	if item, _ := s.Get(ctx, "c"); item == nil {
		t.Fatal("newest key missing")
	}
}

func TestRemoveExpired(t *testing.T) {
	s, err := New(10)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Set(ctx, "short", []byte("x"), storage.WithTTL(time.Minute)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "forever", []byte("y")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	s.removeExpired(time.Now().Add(2 * time.Minute))
	if s.cache.Len() != 1 || !s.cache.Contains(storage.Prefix(nil)+"forever") {
		t.Fatalf("unexpected keys after sweep: %v", s.cache.Keys())
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	s, err := New(10)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Set(ctx, "k", []byte("abc")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	item, _ := s.Get(ctx, "k")
	item.Data[0] = 'z'
	again, _ := s.Get(ctx, "k")
	if string(again.Data) != "abc" {
		t.Fatalf("stored data was mutated through Get: %q", again.Data)
	}
}

func TestClose_Idempotent(t *testing.T) {
	s, err := New(10)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
