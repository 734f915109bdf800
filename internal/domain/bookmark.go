package domain

import (
	"errors"
	"time"
)

// ErrInvalidBookmark is returned when a bookmark fails validation.
var ErrInvalidBookmark = errors.New("invalid bookmark")

// Bookmark represents a saved reference to a piece of media (image/video)
// and the link it was captured from. Collections are scoped by UserID:
// (ID, UserID) is unique and upsert semantics apply on duplicates.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the client-generated unique identifier within an owner's
	// collection. It is the upsert key on the remote side.
	ID string `json:"id"`

	// UserID identifies the owning account/device profile.
	// It is an exact-match scoping string, not an authenticated identity.
	UserID string `json:"user_id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// URL is the link the bookmark points to. Never empty once persisted.
	URL string `json:"url"`

	// Img is the representative image URL. Never empty once persisted.
	Img string `json:"img"`

	// Title is the display label. Consumers fall back to URL when empty.
	Title string `json:"title,omitempty"`

	// Tags are free-form labels, stored case-sensitively, order preserved.
	Tags []string `json:"tags,omitempty"`

	// SourcePageURL is the page the bookmark was captured from.
	SourcePageURL string `json:"sourcePageUrl,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set once at creation (epoch milliseconds).
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is refreshed on every mutating write (epoch milliseconds).
	// Zero means the bookmark has never been mutated since creation.
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}

// DisplayTitle returns the title, falling back to the URL when unset.
func (b *Bookmark) DisplayTitle() string {
	if b.Title != "" {
		return b.Title
	}
	return b.URL
}

// Validate checks the invariants a bookmark must hold before persisting.
func (b *Bookmark) Validate() error {
	if b.ID == "" {
		return errors.New("invalid bookmark: missing id")
	}
	if b.UserID == "" {
		return errors.New("invalid bookmark: missing user_id")
	}
	if b.URL == "" {
		return errors.New("invalid bookmark: missing url")
	}
	if b.Img == "" {
		return errors.New("invalid bookmark: missing img")
	}
	return nil
}

// SameMedia reports whether two bookmarks reference the same media.
// Local dedup identity is (url, img) pair equality, independent of ID:
// a second capture of the same pair is treated as the same bookmark.
func SameMedia(a, b *Bookmark) bool {
	return a.URL == b.URL && a.Img == b.Img
}

// NowMillis returns the current time as epoch milliseconds,
// the timestamp unit used throughout the bookmark model.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
