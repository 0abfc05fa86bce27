package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	result := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		result = append(result, toTagResponse(t))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) getTag(w http.ResponseWriter, r *http.Request) {
	detail, err := h.tags.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tagDetailResponse{
		tagResponse: toTagResponse(detail.Tag),
		Posts:       toPostResponses(detail.Posts),
	})
}

func (h *Handlers) createTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	tag, err := h.tags.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTagResponse(tag))
}

func (h *Handlers) updateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	tag, err := h.tags.Update(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagResponse(tag))
}

func (h *Handlers) deleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.tags.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
