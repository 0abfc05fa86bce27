package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/smartware/smartware-api/internal/server/auth"
)

// NewRouter builds the REST surface. Auth and public blog reads are open;
// every mutating route sits behind RequireAuth. CORS admits only the
// configured SPA origin.
func NewRouter(h *Handlers, issuer *auth.TokenIssuer, corsOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requireAuth := RequireAuth(issuer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/refresh", h.refresh)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.Get("/search", h.searchPosts)
			r.Get("/slug/{slug}", h.getPostBySlug)
			r.Get("/author/{authorID}", h.listPostsByAuthor)
			r.Get("/tag/{tagSlug}", h.listPostsByTag)
			r.Get("/{id}", h.getPost)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.createPost)
				r.Put("/{id}", h.updatePost)
				r.Delete("/{id}", h.deletePost)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.listTags)
			r.Get("/{id}", h.getTag)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.createTag)
				r.Put("/{id}", h.updateTag)
				r.Delete("/{id}", h.deleteTag)
			})
		})

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", h.listAuthors)
			r.Get("/{id}", h.getAuthor)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.createAuthor)
				r.Put("/{id}", h.updateAuthor)
				r.Delete("/{id}", h.deleteAuthor)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return r
}
