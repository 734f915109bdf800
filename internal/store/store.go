// Package store defines the persistence contract for bookmark collections.
// Every operation is a single statement against the backing database; there
// are no multi-statement transactions and no cross-request coordination.
package store

import (
	"context"

	"github.com/pinbox/pinbox/internal/domain"
)

// BookmarkStore is the storage handle constructed once at startup and
// passed into each request handler.
type BookmarkStore interface {
	// Upsert inserts the bookmark or, when the id already exists,
	// overwrites url, img, title, tags and source_page_url and refreshes
	// updated_at. created_at and user_id are never touched on conflict.
	Upsert(ctx context.Context, b *domain.Bookmark) error

	// ListByOwner returns every bookmark for the owner, newest first.
	ListByOwner(ctx context.Context, userID string) ([]domain.Bookmark, error)

	// Update applies the present fields of u to the row matching
	// (id, userID) and always refreshes updated_at. Returns
	// apperror.ErrNotFound when no row matches.
	Update(ctx context.Context, id, userID string, u *domain.BookmarkUpdate) error

	// Delete removes the row matching (id, userID). Returns
	// apperror.ErrNotFound when no row was affected.
	Delete(ctx context.Context, id, userID string) error

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error

	Close() error
}
