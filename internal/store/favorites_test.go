package store

import (
	"context"
	"testing"

	"github.com/stylemate/stylemate/internal/style"
)

func TestAddFavorite_GeneratesIncreasingIDs(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id1, err := s.AddFavorite(ctx, 1, "look one", style.ModeProfessional)
	if err != nil {
		t.Fatalf("AddFavorite() failed: %v", err)
	}
	id2, err := s.AddFavorite(ctx, 1, "look two", style.ModeProfessional)
	if err != nil {
		t.Fatalf("AddFavorite() failed: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("expected increasing ids, got %d then %d", id1, id2)
	}
}

func TestListFavorites_EmptyIsNotNil(t *testing.T) {
	s := testStore(t)

	favorites, err := s.ListFavorites(context.Background(), 404)
	if err != nil {
		t.Fatalf("ListFavorites() failed: %v", err)
	}
	if favorites == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(favorites) != 0 {
		t.Errorf("expected no favorites, got %d", len(favorites))
	}
}

func TestListFavorites_NewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id1, err := s.AddFavorite(ctx, 1, "oldest", style.ModeStudent)
	if err != nil {
		t.Fatalf("AddFavorite() failed: %v", err)
	}
	id2, err := s.AddFavorite(ctx, 1, "middle", style.ModeStudent)
	if err != nil {
		t.Fatalf("AddFavorite() failed: %v", err)
	}
	id3, err := s.AddFavorite(ctx, 1, "newest", style.ModeStudent)
	if err != nil {
		t.Fatalf("AddFavorite() failed: %v", err)
	}

	// Force distinct creation times t1 < t2 < t3
	stamps := map[int64]string{
		id1: "2025-03-01 10:00:00",
		id2: "2025-03-01 11:00:00",
		id3: "2025-03-01 12:00:00",
	}
	for id, ts := range stamps {
		if _, err := s.db.Exec("UPDATE favorites SET created_at = ? WHERE id = ?", ts, id); err != nil {
			t.Fatalf("backdating favorite %d failed: %v", id, err)
		}
	}

	favorites, err := s.ListFavorites(ctx, 1)
	if err != nil {
		t.Fatalf("ListFavorites() failed: %v", err)
	}
	if len(favorites) != 3 {
		t.Fatalf("expected 3 favorites, got %d", len(favorites))
	}
	want := []string{"newest", "middle", "oldest"}
	for i, w := range want {
		if favorites[i].Analysis != w {
			t.Errorf("favorites[%d] = %q, want %q", i, favorites[i].Analysis, w)
		}
	}
}

func TestListFavorites_TieBrokenByID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// Same-second inserts share created_at; the most recently inserted
	// row (highest id) must come first.
	if _, err := s.AddFavorite(ctx, 1, "a", style.ModeFashion); err != nil {
		t.Fatalf("AddFavorite() failed: %v", err)
	}
	if _, err := s.AddFavorite(ctx, 1, "b", style.ModeFashion); err != nil {
		t.Fatalf("AddFavorite() failed: %v", err)
	}
	if _, err := s.db.Exec("UPDATE favorites SET created_at = '2025-03-01 10:00:00'"); err != nil {
		t.Fatalf("flattening timestamps failed: %v", err)
	}

	favorites, err := s.ListFavorites(ctx, 1)
	if err != nil {
		t.Fatalf("ListFavorites() failed: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	if favorites[0].Analysis != "b" || favorites[1].Analysis != "a" {
		t.Errorf("tie not broken by id desc: got [%q, %q]", favorites[0].Analysis, favorites[1].Analysis)
	}
}

func TestDeleteFavorite_OwnershipEnforced(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.AddFavorite(ctx, 1, "mine", style.ModeProfessional)
	if err != nil {
		t.Fatalf("AddFavorite() failed: %v", err)
	}

	// Cross-user delete: false, not an error
	deleted, err := s.DeleteFavorite(ctx, id, 2)
	if err != nil {
		t.Fatalf("DeleteFavorite() cross-user returned error: %v", err)
	}
	if deleted {
		t.Error("user 2 deleted user 1's favorite")
	}

	// Still retrievable by the owner
	favorites, err := s.ListFavorites(ctx, 1)
	if err != nil {
		t.Fatalf("ListFavorites() failed: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("favorite disappeared after failed cross-user delete")
	}

	// Owner delete succeeds
	deleted, err = s.DeleteFavorite(ctx, id, 1)
	if err != nil {
		t.Fatalf("DeleteFavorite() failed: %v", err)
	}
	if !deleted {
		t.Error("owner could not delete own favorite")
	}
}

func TestDeleteFavorite_AbsentIsNoOp(t *testing.T) {
	s := testStore(t)

	deleted, err := s.DeleteFavorite(context.Background(), 12345, 1)
	if err != nil {
		t.Fatalf("DeleteFavorite() for absent id returned error: %v", err)
	}
	if deleted {
		t.Error("deleting an absent favorite reported success")
	}
}

func TestDeleteAllFavorites_ReturnsCount(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.AddFavorite(ctx, 1, "look", style.ModeFashion); err != nil {
			t.Fatalf("AddFavorite() failed: %v", err)
		}
	}
	if _, err := s.AddFavorite(ctx, 2, "other user", style.ModeFashion); err != nil {
		t.Fatalf("AddFavorite() failed: %v", err)
	}

	count, err := s.DeleteAllFavorites(ctx, 1)
	if err != nil {
		t.Fatalf("DeleteAllFavorites() failed: %v", err)
	}
	if count != 3 {
		t.Errorf("DeleteAllFavorites() = %d, want 3", count)
	}

	// User 2's favorites untouched
	favorites, err := s.ListFavorites(ctx, 2)
	if err != nil {
		t.Fatalf("ListFavorites() failed: %v", err)
	}
	if len(favorites) != 1 {
		t.Errorf("bulk delete for user 1 affected user 2")
	}

	// Nothing left to delete
	count, err = s.DeleteAllFavorites(ctx, 1)
	if err != nil {
		t.Fatalf("DeleteAllFavorites() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("second DeleteAllFavorites() = %d, want 0", count)
	}
}
