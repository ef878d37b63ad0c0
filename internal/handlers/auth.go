package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/netdash/apiserver/internal/services"
	"github.com/netdash/apiserver/internal/store"
	"github.com/sirupsen/logrus"
)

// AuthHandler provides the login endpoint.
type AuthHandler struct {
	auth *services.AuthService
	log  *logrus.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(auth *services.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, auth *services.AuthService, log *logrus.Logger) {
	handler := NewAuthHandler(auth, log)

	r.Post("/login", handler.Login)
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login authenticates by username, email, or phone and issues an opaque
// session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Identifier (username/email/phone) and password are required")
		return
	}

	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Identifier (username/email/phone) and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Account not found")
		case errors.Is(err, services.ErrAccountInactive):
			writeError(w, http.StatusForbidden, "Account is deactivated")
		case errors.Is(err, services.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Wrong password")
		default:
			h.log.WithError(err).Error("login failed")
			writeError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	writeData(w, http.StatusOK, "Login successful", result)
}
