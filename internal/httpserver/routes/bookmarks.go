package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pinbox/pinbox/internal/httpserver/deps"
	"github.com/pinbox/pinbox/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.ListBookmarks(d))
		r.Post("/", handlers.CreateBookmark(d))
		// Fixed paths before the id wildcard.
		r.Get("/export", handlers.ExportBookmarks(d))
		r.Post("/import", handlers.ImportBookmarks(d))
		r.Put("/{id}", handlers.UpdateBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
	})
}
