package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/netdash/apiserver/internal/services"
	"github.com/sirupsen/logrus"
)

// DashboardHandler provides the dashboard summary endpoint.
type DashboardHandler struct {
	dashboard *services.DashboardService
	log       *logrus.Logger
}

// NewDashboardHandler constructs a DashboardHandler with the provided dependencies.
func NewDashboardHandler(dashboard *services.DashboardService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, log: log}
}

// DashboardRouter registers dashboard routes on the given router.
func DashboardRouter(r chi.Router, dashboard *services.DashboardService, log *logrus.Logger) {
	handler := NewDashboardHandler(dashboard, log)

	r.Get("/", handler.Stats)
}

// Stats returns the four metric cards and the caller's top devices.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromQuery(r)
	if ownerID < 1 {
		writeError(w, http.StatusUnauthorized, msgUserIDMissing)
		return
	}

	result, err := h.dashboard.Stats(r.Context(), ownerID)
	if err != nil {
		h.log.WithError(err).Error("dashboard stats failed")
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeData(w, http.StatusOK, "", result)
}
