package httpapi

import (
	"net/http"
	"strings"

	"github.com/smartware/smartware-api/internal/logging"
	"github.com/smartware/smartware-api/internal/server/services"
)

// Handlers holds the request handlers and their service dependencies.
type Handlers struct {
	log     logging.Logger
	auth    AuthService
	posts   PostService
	tags    TagService
	authors AuthorService
}

func NewHandlers(log logging.Logger, auth AuthService, posts PostService, tags TagService, authors AuthorService) *Handlers {
	return &Handlers{log: log, auth: auth, posts: posts, tags: tags, authors: authors}
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	result, err := h.auth.Register(r.Context(), services.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.UsernameOrEmail) == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "usernameOrEmail and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeMessage(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	result, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(result))
}
