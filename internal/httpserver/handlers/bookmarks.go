package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pinbox/pinbox/internal/apperror"
	"github.com/pinbox/pinbox/internal/domain"
	"github.com/pinbox/pinbox/internal/httpserver/deps"
	"github.com/pinbox/pinbox/internal/logger"
)

type listResponse struct {
	Items []domain.Bookmark `json:"items"`
}

type importRequest struct {
	UserID string            `json:"user_id"`
	Items  []domain.Bookmark `json:"items"`
}

type importResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
}

// ownerID extracts the user_id query parameter. Every owner-scoped
// endpoint rejects the request before any database call when it is missing.
func ownerID(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		return "", apperror.Validation("user_id is required")
	}
	return userID, nil
}

// ListBookmarks handles GET /bookmarks?user_id=.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ownerID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := loadOwnerList(r, d, userID)
		if err != nil {
			d.Logger.Error("failed to list bookmarks",
				logger.String("user_id", userID),
				logger.Error(err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, listResponse{Items: items})
	}
}

// ExportBookmarks handles GET /bookmarks/export?user_id=. Same payload as
// the list endpoint, delivered as a downloadable attachment.
func ExportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ownerID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := loadOwnerList(r, d, userID)
		if err != nil {
			d.Logger.Error("failed to export bookmarks",
				logger.String("user_id", userID),
				logger.Error(err))
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "bookmarks-"+userID+".json"))
		writeJSON(w, http.StatusOK, listResponse{Items: items})
	}
}

// loadOwnerList reads an owner's collection, serving from the cache when
// one is configured and refilling it on a miss. Cache failures degrade to
// the database, they never fail the request.
func loadOwnerList(r *http.Request, d deps.Deps, userID string) ([]domain.Bookmark, error) {
	ctx := r.Context()

	if d.Cache != nil {
		items, hit, err := d.Cache.GetList(ctx, userID)
		if err != nil {
			d.Logger.Warn("bookmark cache read failed",
				logger.String("user_id", userID),
				logger.Error(err))
		} else if hit {
			return items, nil
		}
	}

	items, err := d.Store.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Bookmark{}
	}

	if d.Cache != nil {
		if err := d.Cache.SetList(ctx, userID, items); err != nil {
			d.Logger.Warn("bookmark cache write failed",
				logger.String("user_id", userID),
				logger.Error(err))
		}
	}

	return items, nil
}

// CreateBookmark handles POST /bookmarks: an insert-or-update keyed by id.
// Only id and user_id are required here; content invariants are the
// capture side's concern.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b domain.Bookmark
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			writeError(w, apperror.Validation("invalid JSON body"))
			return
		}
		if b.ID == "" {
			writeError(w, apperror.Validation("id is required"))
			return
		}
		if b.UserID == "" {
			writeError(w, apperror.Validation("user_id is required"))
			return
		}

		if err := d.Store.Upsert(r.Context(), &b); err != nil {
			d.Logger.Error("failed to upsert bookmark",
				logger.String("id", b.ID),
				logger.String("user_id", b.UserID),
				logger.Error(err))
			writeError(w, err)
			return
		}

		invalidateOwner(r, d, b.UserID)
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

// UpdateBookmark handles PUT /bookmarks/{id}?user_id=. The body carries
// only the fields to change; absent fields stay untouched.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ownerID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		id := chi.URLParam(r, "id")

		var u domain.BookmarkUpdate
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			writeError(w, apperror.Validation("invalid JSON body"))
			return
		}
		if u.Empty() {
			writeError(w, apperror.Validation("no updatable fields supplied"))
			return
		}

		if err := d.Store.Update(r.Context(), id, userID, &u); err != nil {
			if !isClientError(err) {
				d.Logger.Error("failed to update bookmark",
					logger.String("id", id),
					logger.String("user_id", userID),
					logger.Error(err))
			}
			writeError(w, err)
			return
		}

		invalidateOwner(r, d, userID)
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

// DeleteBookmark handles DELETE /bookmarks/{id}?user_id=.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ownerID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		id := chi.URLParam(r, "id")

		if err := d.Store.Delete(r.Context(), id, userID); err != nil {
			if !isClientError(err) {
				d.Logger.Error("failed to delete bookmark",
					logger.String("id", id),
					logger.String("user_id", userID),
					logger.Error(err))
			}
			writeError(w, err)
			return
		}

		invalidateOwner(r, d, userID)
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

// ImportBookmarks handles POST /bookmarks/import. The batch is validated
// as a whole before any write; each item is then upserted independently
// (single statements, no transaction), so a storage failure mid-batch
// leaves earlier rows in place.
func ImportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperror.Validation("invalid JSON body"))
			return
		}
		if req.UserID == "" {
			writeError(w, apperror.Validation("user_id is required"))
			return
		}
		if req.Items == nil {
			writeError(w, apperror.Validation("items array is required"))
			return
		}
		for i := range req.Items {
			if req.Items[i].ID == "" {
				writeError(w, apperror.Validation(
					fmt.Sprintf("items[%d] is missing an id", i)))
				return
			}
		}

		for i := range req.Items {
			// Imported rows always land in the requesting owner's collection.
			req.Items[i].UserID = req.UserID
			if err := d.Store.Upsert(r.Context(), &req.Items[i]); err != nil {
				d.Logger.Error("failed to import bookmark",
					logger.String("id", req.Items[i].ID),
					logger.String("user_id", req.UserID),
					logger.Int("index", i),
					logger.Error(err))
				writeError(w, err)
				return
			}
		}

		invalidateOwner(r, d, req.UserID)
		writeJSON(w, http.StatusOK, importResponse{Success: true, Imported: len(req.Items)})
	}
}

// invalidateOwner drops the owner's cached collection after a mutation.
// Best effort: a failed invalidation only shortens cache correctness to
// the TTL, so it is logged and ignored.
func invalidateOwner(r *http.Request, d deps.Deps, userID string) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Invalidate(r.Context(), userID); err != nil {
		d.Logger.Warn("bookmark cache invalidation failed",
			logger.String("user_id", userID),
			logger.Error(err))
	}
}

// isClientError reports whether err belongs to the 4xx taxonomy
// (validation or not-found) rather than a storage failure worth logging.
func isClientError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr)
}
