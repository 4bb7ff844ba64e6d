package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/quotewits/internal/auth"
	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

func TestCredentialsCreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewCredentials()

	created, err := s.Create(ctx, "alice", []byte("hash"), time.Now())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 1 {
		t.Errorf("Create() ID = %d, want 1", created.ID)
	}

	found, err := s.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if found.ID != created.ID || string(found.PasswordHash) != "hash" {
		t.Errorf("FindByUsername() = %+v, want %+v", found, created)
	}

	if _, err := s.FindByUsername(ctx, "bob"); err != auth.ErrIdentityNotFound {
		t.Errorf("FindByUsername(unknown) error = %v, want ErrIdentityNotFound", err)
	}

	if _, err := s.Create(ctx, "alice", []byte("other"), time.Now()); err != domain.ErrDuplicateIdentity {
		t.Errorf("Create(duplicate) error = %v, want ErrDuplicateIdentity", err)
	}
}

func TestCredentialsConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := NewCredentials()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			identity, err := s.Create(ctx, fmt.Sprintf("user-%d", i), []byte("hash"), time.Now())
			if err != nil {
				t.Errorf("Create() error = %v", err)
				return
			}
			ids <- identity.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Errorf("ID %d assigned twice", id)
		}
		seen[id] = true
	}
	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if len(seen) != n || count != int64(n) {
		t.Errorf("got %d unique IDs and %d identities, want %d", len(seen), count, n)
	}
}

func TestCredentialsConcurrentSameUsername(t *testing.T) {
	ctx := context.Background()
	s := NewCredentials()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Create(ctx, "alice", []byte("hash"), time.Now()); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("got %d successful registrations, want 1", successes)
	}
}

func entry(id string) domain.FavoriteEntry {
	return domain.FavoriteEntry{ID: id, Type: domain.ContentQuote, Text: "text " + id}
}

func TestFavoritesInsertListDelete(t *testing.T) {
	ctx := context.Background()
	s := NewFavorites()

	list, err := s.List(ctx, 1)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("List(unknown) = %v, %v, want empty slice", list, err)
	}

	for _, id := range []string{"3", "1", "2"} {
		if err := s.Insert(ctx, 1, entry(id)); err != nil {
			t.Fatalf("Insert(%s) error = %v", id, err)
		}
	}
	if err := s.Insert(ctx, 1, entry("1")); err != domain.ErrDuplicateFavorite {
		t.Errorf("Insert(duplicate) error = %v, want ErrDuplicateFavorite", err)
	}

	list, _ = s.List(ctx, 1)
	if len(list) != 3 || list[0].ID != "3" || list[1].ID != "1" || list[2].ID != "2" {
		t.Fatalf("List() = %+v, want insertion order 3,1,2", list)
	}

	// another identity is isolated
	if err := s.Delete(ctx, 2, "1"); err != domain.ErrFavoritesEmpty {
		t.Errorf("Delete(other identity) error = %v, want ErrFavoritesEmpty", err)
	}

	if err := s.Delete(ctx, 1, "missing"); err != domain.ErrFavoriteNotFound {
		t.Errorf("Delete(missing) error = %v, want ErrFavoriteNotFound", err)
	}
	if err := s.Delete(ctx, 1, "1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	list, _ = s.List(ctx, 1)
	if len(list) != 2 || list[0].ID != "3" || list[1].ID != "2" {
		t.Errorf("List() after delete = %+v, want 3,2", list)
	}

	_ = s.Delete(ctx, 1, "3")
	_ = s.Delete(ctx, 1, "2")
	if err := s.Delete(ctx, 1, "2"); err != domain.ErrFavoritesEmpty {
		t.Errorf("Delete(emptied) error = %v, want ErrFavoritesEmpty", err)
	}
	if n, err := s.Identities(ctx); err != nil || n != 1 {
		t.Errorf("Identities() = %d, %v, want 1", n, err)
	}
}

func TestFavoritesListIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewFavorites()
	_ = s.Insert(ctx, 1, entry("1"))

	list, _ := s.List(ctx, 1)
	list[0].ID = "mutated"

	again, _ := s.List(ctx, 1)
	if again[0].ID != "1" {
		t.Errorf("List() returned shared storage, got %q", again[0].ID)
	}
}

func TestFavoritesConcurrentSameItem(t *testing.T) {
	ctx := context.Background()
	s := NewFavorites()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Insert(ctx, 1, entry("42")); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("got %d successful inserts, want 1", successes)
	}
	list, _ := s.List(ctx, 1)
	if len(list) != 1 {
		t.Errorf("List() has %d entries, want 1", len(list))
	}
}

func TestFavoritesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewFavorites()
	if err := s.Insert(ctx, 1, entry("1")); err == nil {
		t.Error("Insert() with canceled context should fail")
	}
	list, _ := s.List(context.Background(), 1)
	if len(list) != 0 {
		t.Errorf("List() = %+v, want nothing stored", list)
	}
}
