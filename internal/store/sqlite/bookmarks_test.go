package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/pinbox/pinbox/internal/apperror"
	"github.com/pinbox/pinbox/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:", 1)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustUpsert(t *testing.T, s *Store, b domain.Bookmark) {
	t.Helper()
	if err := s.Upsert(context.Background(), &b); err != nil {
		t.Fatalf("Upsert(%s) error = %v", b.ID, err)
	}
}

func findByID(t *testing.T, s *Store, userID, id string) *domain.Bookmark {
	t.Helper()
	items, err := s.ListByOwner(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListByOwner(%s) error = %v", userID, err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

func TestUpsertAndList(t *testing.T) {
	s := newTestStore(t)

	mustUpsert(t, s, domain.Bookmark{
		ID:            "1",
		UserID:        "u1",
		URL:           "http://a",
		Img:           "http://a.png",
		Title:         "a",
		Tags:          []string{"x", "y"},
		SourcePageURL: "http://page",
	})

	got := findByID(t, s, "u1", "1")
	if got == nil {
		t.Fatal("created bookmark missing from ListByOwner")
	}
	if got.URL != "http://a" || got.Img != "http://a.png" {
		t.Errorf("url/img = %q/%q, want http://a / http://a.png", got.URL, got.Img)
	}
	// Tags round-trip through the delimited column exactly.
	if !reflect.DeepEqual(got.Tags, []string{"x", "y"}) {
		t.Errorf("Tags = %v, want [x y]", got.Tags)
	}
	if got.CreatedAt == 0 {
		t.Error("CreatedAt not set on insert")
	}
	if got.UpdatedAt != 0 {
		t.Errorf("UpdatedAt = %d on fresh insert, want 0", got.UpdatedAt)
	}
}

func TestUpsertIdempotence(t *testing.T) {
	s := newTestStore(t)

	mustUpsert(t, s, domain.Bookmark{ID: "1", UserID: "u1", URL: "http://a", Img: "http://a.png"})
	first := findByID(t, s, "u1", "1")

	// Same id again with a different url: exactly one row, latest url wins,
	// created_at untouched.
	mustUpsert(t, s, domain.Bookmark{ID: "1", UserID: "u1", URL: "http://b", Img: "http://b.png"})

	items, err := s.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d after duplicate upsert, want 1", len(items))
	}
	if items[0].URL != "http://b" {
		t.Errorf("URL = %q, want http://b", items[0].URL)
	}
	if items[0].CreatedAt != first.CreatedAt {
		t.Errorf("CreatedAt changed on conflict: %d -> %d", first.CreatedAt, items[0].CreatedAt)
	}
	if items[0].UpdatedAt == 0 {
		t.Error("UpdatedAt not set on conflict overwrite")
	}
}

func TestUpdatePartial(t *testing.T) {
	s := newTestStore(t)

	mustUpsert(t, s, domain.Bookmark{
		ID: "1", UserID: "u1",
		URL: "http://a", Img: "http://a.png",
		Title: "old", Tags: []string{"x", "y"},
	})

	title := "new"
	err := s.Update(context.Background(), "1", "u1", &domain.BookmarkUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got := findByID(t, s, "u1", "1")
	if got.Title != "new" {
		t.Errorf("Title = %q, want %q", got.Title, "new")
	}
	// Only the named field changes.
	if got.URL != "http://a" || got.Img != "http://a.png" {
		t.Errorf("url/img touched by title-only update: %q/%q", got.URL, got.Img)
	}
	if !reflect.DeepEqual(got.Tags, []string{"x", "y"}) {
		t.Errorf("Tags touched by title-only update: %v", got.Tags)
	}
	if got.UpdatedAt == 0 {
		t.Error("UpdatedAt not refreshed")
	}

	// Tags-only update replaces the sequence.
	tags := []string{"z"}
	if err := s.Update(context.Background(), "1", "u1", &domain.BookmarkUpdate{Tags: &tags}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got = findByID(t, s, "u1", "1")
	if !reflect.DeepEqual(got.Tags, []string{"z"}) {
		t.Errorf("Tags = %v, want [z]", got.Tags)
	}
	if got.URL != "http://a" {
		t.Errorf("URL touched by tags-only update: %q", got.URL)
	}
}

func TestUpdateErrors(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s, domain.Bookmark{ID: "1", UserID: "u1", URL: "http://a", Img: "http://a.png"})

	title := "x"

	// Unknown id.
	err := s.Update(context.Background(), "missing", "u1", &domain.BookmarkUpdate{Title: &title})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update(missing id) error = %v, want ErrNotFound", err)
	}

	// Wrong owner.
	err = s.Update(context.Background(), "1", "u2", &domain.BookmarkUpdate{Title: &title})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update(wrong owner) error = %v, want ErrNotFound", err)
	}

	// Empty update.
	err = s.Update(context.Background(), "1", "u1", &domain.BookmarkUpdate{})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Update(empty) error = %v, want ErrValidation", err)
	}
}

func TestDeleteOwnerScoped(t *testing.T) {
	s := newTestStore(t)

	// Same id under two owners.
	mustUpsert(t, s, domain.Bookmark{ID: "1", UserID: "A", URL: "http://a", Img: "http://a.png"})

	if err := s.Delete(context.Background(), "1", "B"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete(owner B) error = %v, want ErrNotFound", err)
	}
	if got := findByID(t, s, "A", "1"); got == nil {
		t.Fatal("owner A's bookmark removed by owner B's delete")
	}

	if err := s.Delete(context.Background(), "1", "A"); err != nil {
		t.Fatalf("Delete(owner A) error = %v", err)
	}
	if got := findByID(t, s, "A", "1"); got != nil {
		t.Error("bookmark still present after delete")
	}

	// Deleting again is a 404.
	if err := s.Delete(context.Background(), "1", "A"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestListByOwnerIsolation(t *testing.T) {
	s := newTestStore(t)

	mustUpsert(t, s, domain.Bookmark{ID: "1", UserID: "u1", URL: "http://a", Img: "http://a.png"})
	mustUpsert(t, s, domain.Bookmark{ID: "2", UserID: "u2", URL: "http://b", Img: "http://b.png"})

	items, err := s.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "1" {
		t.Errorf("ListByOwner(u1) = %v, want only bookmark 1", items)
	}

	empty, err := s.ListByOwner(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListByOwner(nobody) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListByOwner(nobody) = %v, want empty", empty)
	}
}
