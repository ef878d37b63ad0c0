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

// DeviceHandler provides the device listing and update endpoints.
type DeviceHandler struct {
	devices *services.DeviceService
	log     *logrus.Logger
}

// NewDeviceHandler constructs a DeviceHandler with the provided dependencies.
func NewDeviceHandler(devices *services.DeviceService, log *logrus.Logger) *DeviceHandler {
	return &DeviceHandler{devices: devices, log: log}
}

// DeviceRouter registers device routes on the given router. POST and PUT
// share the update handler; the dashboard frontend uses both.
func DeviceRouter(r chi.Router, devices *services.DeviceService, log *logrus.Logger) {
	handler := NewDeviceHandler(devices, log)

	r.Get("/", handler.List)
	r.Post("/", handler.Update)
	r.Put("/", handler.Update)
}

// List returns one searchable, paginated page of the caller's devices.
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromQuery(r)
	if ownerID < 1 {
		writeError(w, http.StatusUnauthorized, msgUserIDMissing)
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 0)

	result, err := h.devices.List(r.Context(), ownerID, search, page, limit)
	if err != nil {
		h.log.WithError(err).Error("device listing failed")
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeData(w, http.StatusOK, "", result)
}

type DeviceUpdateRequest struct {
	UserID     int     `json:"user_id"`
	MikrotikID *int    `json:"mikrotik_id"`
	Name       *string `json:"name"`
	Location   *string `json:"location"`
}

// Update renames and relocates one of the caller's devices. The response
// carries the persisted row, re-read after the write, so the caller sees
// exactly what was stored.
func (h *DeviceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req DeviceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields: mikrotik_id, name, and location are required")
		return
	}

	if req.UserID < 1 {
		writeError(w, http.StatusUnauthorized, msgUserIDMissing)
		return
	}

	if req.MikrotikID == nil || req.Name == nil || req.Location == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields: mikrotik_id, name, and location are required")
		return
	}

	deviceID := *req.MikrotikID
	if deviceID < 1 {
		writeError(w, http.StatusBadRequest, "Missing required fields: mikrotik_id, name, and location are required")
		return
	}

	name := strings.TrimSpace(*req.Name)
	location := strings.TrimSpace(*req.Location)
	if name == "" || location == "" {
		writeError(w, http.StatusBadRequest, "Name and location cannot be empty")
		return
	}

	view, err := h.devices.Update(r.Context(), req.UserID, deviceID, name, location)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Device not found or you don't have permission to edit it")
		case errors.Is(err, store.ErrConflict):
			writeError(w, http.StatusConflict, "Device name already exists")
		default:
			h.log.WithError(err).Error("device update failed")
			writeError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	writeData(w, http.StatusOK, "Device updated successfully", view)
}
