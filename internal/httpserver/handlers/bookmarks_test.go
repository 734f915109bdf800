package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pinbox/pinbox/internal/domain"
	"github.com/pinbox/pinbox/internal/httpserver/deps"
	"github.com/pinbox/pinbox/internal/logger"
	"github.com/pinbox/pinbox/internal/store/sqlite"
)

// newTestRouter wires the bookmark handlers against a fresh in-memory
// database, no cache.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	st, err := sqlite.New(":memory:", 1)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	d := deps.Deps{
		Logger:    logger.Nop(),
		StartTime: time.Now(),
		TimeNow:   time.Now,
		Store:     st,
	}

	r := chi.NewRouter()
	r.Route("/bookmarks", func(r chi.Router) {
		r.Get("/", ListBookmarks(d))
		r.Post("/", CreateBookmark(d))
		r.Get("/export", ExportBookmarks(d))
		r.Post("/import", ImportBookmarks(d))
		r.Put("/{id}", UpdateBookmark(d))
		r.Delete("/{id}", DeleteBookmark(d))
	})
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeItems(t *testing.T, rec *httptest.ResponseRecorder) []domain.Bookmark {
	t.Helper()
	var out listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	return out.Items
}

func TestListRequiresUserID(t *testing.T) {
	r := newTestRouter(t)

	for _, target := range []string{
		"/bookmarks",
		"/bookmarks?user_id=",
		"/bookmarks?user_id=%20%20",
		"/bookmarks/export",
	} {
		rec := do(t, r, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "validation_error") {
			t.Errorf("%s: expected validation_error body, got %s", target, rec.Body.String())
		}
	}
}

func TestCreateThenListRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/bookmarks", `{
		"id": "b1", "user_id": "u1",
		"url": "https://x/1", "img": "https://x/1.jpg",
		"title": "first", "tags": ["x", "y"],
		"sourcePageUrl": "https://x/page", "createdAt": 1700000000000
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, "/bookmarks?user_id=u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	items := decodeItems(t, rec)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	b := items[0]
	if b.ID != "b1" || b.URL != "https://x/1" || b.SourcePageURL != "https://x/page" {
		t.Fatalf("unexpected bookmark: %+v", b)
	}
	if len(b.Tags) != 2 || b.Tags[0] != "x" || b.Tags[1] != "y" {
		t.Fatalf("tags not round-tripped in order: %v", b.Tags)
	}
	if b.UpdatedAt != 0 {
		t.Fatalf("fresh insert should have zero updated_at, got %d", b.UpdatedAt)
	}
}

func TestCreateValidation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing id", `{"user_id":"u1","url":"https://x"}`},
		{"missing user_id", `{"id":"b1","url":"https://x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, "/bookmarks", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestCreateUpsertsOnDuplicateID(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/bookmarks",
		`{"id":"b1","user_id":"u1","url":"https://old","img":"https://old.jpg"}`)
	rec := do(t, r, http.MethodPost, "/bookmarks",
		`{"id":"b1","user_id":"u1","url":"https://new","img":"https://new.jpg"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("second create: expected 200, got %d", rec.Code)
	}

	items := decodeItems(t, do(t, r, http.MethodGet, "/bookmarks?user_id=u1", ""))
	if len(items) != 1 {
		t.Fatalf("expected 1 item after upsert, got %d", len(items))
	}
	if items[0].URL != "https://new" {
		t.Fatalf("content not overwritten: %q", items[0].URL)
	}
	if items[0].UpdatedAt == 0 {
		t.Fatal("overwrite should stamp updated_at")
	}
}

func TestUpdatePartial(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/bookmarks",
		`{"id":"b1","user_id":"u1","url":"https://x/1","img":"https://x/1.jpg","tags":["x","y"]}`)

	rec := do(t, r, http.MethodPut, "/bookmarks/b1?user_id=u1", `{"tags":["z"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	items := decodeItems(t, do(t, r, http.MethodGet, "/bookmarks?user_id=u1", ""))
	b := items[0]
	if len(b.Tags) != 1 || b.Tags[0] != "z" {
		t.Fatalf("tags not replaced: %v", b.Tags)
	}
	if b.URL != "https://x/1" || b.Img != "https://x/1.jpg" {
		t.Fatalf("untouched fields changed: %+v", b)
	}
	if b.UpdatedAt == 0 {
		t.Fatal("update should stamp updated_at")
	}
}

func TestUpdateErrors(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/bookmarks",
		`{"id":"b1","user_id":"u1","url":"https://x/1","img":"https://x/1.jpg"}`)

	// Empty patch.
	rec := do(t, r, http.MethodPut, "/bookmarks/b1?user_id=u1", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty patch: expected 400, got %d", rec.Code)
	}

	// Unknown id.
	rec = do(t, r, http.MethodPut, "/bookmarks/missing?user_id=u1", `{"title":"t"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", rec.Code)
	}

	// Wrong owner must look identical to a missing row.
	rec = do(t, r, http.MethodPut, "/bookmarks/b1?user_id=other", `{"title":"t"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("wrong owner: expected 404, got %d", rec.Code)
	}
}

func TestDeleteOwnerScoped(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/bookmarks",
		`{"id":"b1","user_id":"u1","url":"https://x/1","img":"https://x/1.jpg"}`)

	rec := do(t, r, http.MethodDelete, "/bookmarks/b1?user_id=other", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("wrong owner: expected 404, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodDelete, "/bookmarks/b1?user_id=u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	items := decodeItems(t, do(t, r, http.MethodGet, "/bookmarks?user_id=u1", ""))
	if len(items) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(items))
	}

	// Deleting again is a 404.
	rec = do(t, r, http.MethodDelete, "/bookmarks/b1?user_id=u1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestExportDisposition(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/bookmarks",
		`{"id":"b1","user_id":"u1","url":"https://x/1","img":"https://x/1.jpg"}`)

	rec := do(t, r, http.MethodGet, "/bookmarks/export?user_id=u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", rec.Code)
	}
	cd := rec.Header().Get("Content-Disposition")
	if cd != `attachment; filename="bookmarks-u1.json"` {
		t.Fatalf("unexpected disposition: %q", cd)
	}
	if len(decodeItems(t, rec)) != 1 {
		t.Fatal("export payload should match list payload")
	}
}

func TestImportBatch(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/bookmarks/import", `{
		"user_id": "u1",
		"items": [
			{"id":"b1","user_id":"ignored","url":"https://x/1","img":"https://x/1.jpg"},
			{"id":"b2","url":"https://x/2","img":"https://x/2.jpg"}
		]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out importResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if !out.Success || out.Imported != 2 {
		t.Fatalf("unexpected import response: %+v", out)
	}

	// Every imported row lands in the requesting owner's collection.
	items := decodeItems(t, do(t, r, http.MethodGet, "/bookmarks?user_id=u1", ""))
	if len(items) != 2 {
		t.Fatalf("expected 2 items for u1, got %d", len(items))
	}
	if items := decodeItems(t, do(t, r, http.MethodGet, "/bookmarks?user_id=ignored", "")); len(items) != 0 {
		t.Fatalf("owner override leaked a row: %+v", items)
	}
}

func TestImportRejectsBadBatchBeforeWriting(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/bookmarks/import", `{
		"user_id": "u1",
		"items": [
			{"id":"b1","url":"https://x/1","img":"https://x/1.jpg"},
			{"url":"https://x/2","img":"https://x/2.jpg"}
		]
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	// Nothing from the rejected batch may have been written.
	items := decodeItems(t, do(t, r, http.MethodGet, "/bookmarks?user_id=u1", ""))
	if len(items) != 0 {
		t.Fatalf("rejected batch wrote %d rows", len(items))
	}

	// Missing items array and missing user_id are rejected too.
	if rec := do(t, r, http.MethodPost, "/bookmarks/import", `{"user_id":"u1"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing items: expected 400, got %d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/bookmarks/import", `{"items":[]}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing user_id: expected 400, got %d", rec.Code)
	}
}

func TestListEmptyCollectionIsEmptyArray(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/bookmarks?user_id=nobody", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items array, got %s", rec.Body.String())
	}
}
