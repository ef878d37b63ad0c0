package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	msgInternalError = "Internal server error"
	msgUserIDMissing = "User ID is required"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{Status: statusSuccess, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Status: statusError, Message: message})
}

// MethodNotAllowed is the router-wide 405 handler.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound is the router-wide 404 handler for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ownerIDFromQuery reads the user_id query parameter. A missing, malformed,
// or non-positive value yields 0, which the handlers reject as unauthorized.
func ownerIDFromQuery(r *http.Request) int {
	raw := strings.TrimSpace(r.URL.Query().Get("user_id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0
	}
	return id
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
