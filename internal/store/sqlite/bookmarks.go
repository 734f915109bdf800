package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pinbox/pinbox/internal/apperror"
	"github.com/pinbox/pinbox/internal/domain"
)

// Upsert inserts the bookmark, or overwrites the mutable columns when the
// id already exists. created_at and user_id are never touched on conflict.
func (s *Store) Upsert(ctx context.Context, b *domain.Bookmark) error {
	createdAt := b.CreatedAt
	if createdAt == 0 {
		createdAt = domain.NowMillis()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookmarks (id, user_id, url, img, title, tags, source_page_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)
		 ON CONFLICT(id) DO UPDATE SET
		     url = excluded.url,
		     img = excluded.img,
		     title = excluded.title,
		     tags = excluded.tags,
		     source_page_url = excluded.source_page_url,
		     updated_at = ?`,
		b.ID,
		b.UserID,
		b.URL,
		b.Img,
		b.Title,
		domain.JoinTags(b.Tags),
		b.SourcePageURL,
		createdAt,
		domain.NowMillis(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting bookmark %s: %w", b.ID, err)
	}
	return nil
}

// ListByOwner returns every bookmark for the owner, newest first.
func (s *Store) ListByOwner(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, url, img, title, tags, source_page_url, created_at, updated_at
		 FROM bookmarks
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing bookmarks for %s: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	bookmarks := make([]domain.Bookmark, 0, 16)
	for rows.Next() {
		var (
			b         domain.Bookmark
			tags      string
			updatedAt sql.NullInt64
		)
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.URL, &b.Img, &b.Title,
			&tags, &b.SourcePageURL, &b.CreatedAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning bookmark row: %w", err)
		}
		b.Tags = domain.SplitTags(tags)
		if updatedAt.Valid {
			b.UpdatedAt = updatedAt.Int64
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating bookmarks: %w", err)
	}

	return bookmarks, nil
}

// Update applies only the present fields of u to the row matching
// (id, userID). updated_at is always refreshed.
func (s *Store) Update(ctx context.Context, id, userID string, u *domain.BookmarkUpdate) error {
	if u.Empty() {
		return apperror.Validation("no updatable fields supplied")
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 8)

	if u.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *u.URL)
	}
	if u.Img != nil {
		sets = append(sets, "img = ?")
		args = append(args, *u.Img)
	}
	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, domain.JoinTags(*u.Tags))
	}
	if u.SourcePageURL != nil {
		sets = append(sets, "source_page_url = ?")
		args = append(args, *u.SourcePageURL)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, domain.NowMillis())

	args = append(args, id, userID)
	query := "UPDATE bookmarks SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating bookmark %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("bookmark", id)
	}
	return nil
}

// Delete removes the row matching (id, userID).
func (s *Store) Delete(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting bookmark %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("bookmark", id)
	}
	return nil
}
