package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/tree"
)

func TestMemoryStorage(t *testing.T) {
	storage := NewMemoryStorage()
	defer storage.Close()

	ctx := context.Background()
	s := &Session{
		ID:        "s1",
		Token:     "backend-token",
		User:      &models.UserNode{ID: "boss-id", Username: "boss"},
		TreeState: tree.NewUIState("boss-id"),
		CreatedAt: time.Now(),
	}

	if err := storage.Save(ctx, s, time.Minute); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	loaded, err := storage.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if loaded.Token != "backend-token" || loaded.User.Username != "boss" {
		t.Errorf("Unexpected session %+v", loaded)
	}
	if !loaded.TreeState.IsExpanded("boss-id") {
		t.Errorf("Expected tree state to survive the round trip")
	}

	if err := storage.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if _, err := storage.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got: '%v'", err)
	}
}

func TestMemoryStorageUnknownSession(t *testing.T) {
	storage := NewMemoryStorage()
	defer storage.Close()

	if _, err := storage.Get(context.Background(), "ghost"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got: '%v'", err)
	}
}

func TestMemoryStorageExpiry(t *testing.T) {
	storage := NewMemoryStorage()
	defer storage.Close()

	ctx := context.Background()
	if err := storage.Save(ctx, &Session{ID: "s1", Token: "tok"}, 10*time.Millisecond); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	time.Sleep(20 * time.Millisecond)
	// истёкшая сессия недоступна и без уборщика
	if _, err := storage.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after expiry, got: '%v'", err)
	}
}

func TestMemoryStorageReturnsIndependentCopies(t *testing.T) {
	storage := NewMemoryStorage()
	defer storage.Close()

	ctx := context.Background()
	s := &Session{
		ID:        "s1",
		Token:     "backend-token",
		User:      &models.UserNode{ID: "boss-id", Username: "boss"},
		Tree:      &models.UserNode{ID: "boss-id", Username: "boss"},
		TreeState: tree.NewUIState("boss-id"),
	}
	if err := storage.Save(ctx, s, time.Minute); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	first, err := storage.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	second, err := storage.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	// изменения одной копии не видны ни другой копии, ни хранилищу
	first.TreeState.Toggle("child-1")
	first.TreeState.Select("child-1")
	first.Tree = nil
	first.User.Username = "mutated"

	if second.TreeState.IsExpanded("child-1") || second.TreeState.SelectedID != "" {
		t.Errorf("Expected second copy untouched, got %+v", second.TreeState)
	}
	if second.Tree == nil || second.User.Username != "boss" {
		t.Errorf("Expected second copy untouched, got %+v", second)
	}

	stored, err := storage.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if stored.TreeState.IsExpanded("child-1") || stored.User.Username != "boss" {
		t.Errorf("Expected stored session untouched, got %+v", stored)
	}
}

// Параллельные запросы с одним токеном получают каждый свою копию сессии:
// одновременные изменения состояния дерева не делят общую память.
func TestMemoryStorageConcurrentAccess(t *testing.T) {
	storage := NewMemoryStorage()
	defer storage.Close()

	ctx := context.Background()
	s := &Session{
		ID:        "s1",
		Token:     "backend-token",
		User:      &models.UserNode{ID: "boss-id", Username: "boss"},
		TreeState: tree.NewUIState("boss-id"),
	}
	if err := storage.Save(ctx, s, time.Minute); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := storage.Get(ctx, "s1")
			if err != nil {
				t.Errorf("Expected no error, got: '%v'", err)
				return
			}
			for j := 0; j < 100; j++ {
				loaded.TreeState.Toggle("node")
				loaded.TreeState.Select("node")
			}
			if err := storage.Save(ctx, loaded, time.Minute); err != nil {
				t.Errorf("Expected no error, got: '%v'", err)
			}
		}()
	}
	wg.Wait()
}

func TestMemoryStorageOverwrite(t *testing.T) {
	storage := NewMemoryStorage()
	defer storage.Close()

	ctx := context.Background()
	if err := storage.Save(ctx, &Session{ID: "s1", Token: "old"}, time.Minute); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if err := storage.Save(ctx, &Session{ID: "s1", Token: "new"}, time.Minute); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	loaded, err := storage.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if loaded.Token != "new" {
		t.Errorf("Expected latest session state, got %s", loaded.Token)
	}
}
