package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/smartware/smartware-api/internal/server/services"
)

func (h *Handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponses(posts))
}

func (h *Handlers) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"), viewerInfo(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (h *Handlers) getPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetBySlug(r.Context(), chi.URLParam(r, "slug"), viewerInfo(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (h *Handlers) listPostsByAuthor(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListByAuthor(r.Context(), chi.URLParam(r, "authorID"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponses(posts))
}

func (h *Handlers) listPostsByTag(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListByTagSlug(r.Context(), chi.URLParam(r, "tagSlug"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponses(posts))
}

func (h *Handlers) searchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponses(posts))
}

func postParams(req postRequest) services.PostParams {
	return services.PostParams{
		Title:            req.Title,
		Slug:             req.Slug,
		Content:          req.Content,
		Summary:          req.Summary,
		FeaturedImageURL: req.FeaturedImageURL,
		IsPublished:      req.IsPublished,
		AuthorID:         req.AuthorID,
		TagIDs:           req.TagIDs,
	}
}

func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" || req.AuthorID == "" {
		writeMessage(w, http.StatusBadRequest, "title, content and authorId are required")
		return
	}

	post, err := h.posts.Create(r.Context(), postParams(req))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

func (h *Handlers) updatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeMessage(w, http.StatusBadRequest, "title and content are required")
		return
	}

	post, err := h.posts.Update(r.Context(), chi.URLParam(r, "id"), postParams(req))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (h *Handlers) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
