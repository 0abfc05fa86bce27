package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/smartware/smartware-api/internal/server/services"
)

func (h *Handlers) listAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.authors.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	result := make([]authorResponse, 0, len(authors))
	for _, a := range authors {
		result = append(result, toAuthorResponse(a))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) getAuthor(w http.ResponseWriter, r *http.Request) {
	detail, err := h.authors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, authorDetailResponse{
		authorResponse: toAuthorResponse(detail.Author),
		Posts:          toPostResponses(detail.Posts),
	})
}

func authorParams(req authorRequest) services.AuthorParams {
	return services.AuthorParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	}
}

func (h *Handlers) createAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Email) == "" {
		writeMessage(w, http.StatusBadRequest, "firstName, lastName and email are required")
		return
	}

	author, err := h.authors.Create(r.Context(), authorParams(req))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAuthorResponse(author))
}

func (h *Handlers) updateAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	author, err := h.authors.Update(r.Context(), chi.URLParam(r, "id"), authorParams(req))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthorResponse(author))
}

func (h *Handlers) deleteAuthor(w http.ResponseWriter, r *http.Request) {
	if err := h.authors.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
