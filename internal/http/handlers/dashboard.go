package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/dashboard"
	"github.com/anuragmoyde/mentor4all-sub000/internal/http/respond"
)

// DashboardHandler serves the mentee and mentor dashboards.
type DashboardHandler struct {
	service *dashboard.Service
	logger  *zap.Logger
}

func NewDashboardHandler(service *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: logger}
}

func (h *DashboardHandler) Register(r chi.Router, authn func(http.Handler) http.Handler) {
	r.With(authn).Get("/dashboard", h.handleMentee)
	r.With(authn).Get("/mentor-dashboard", h.handleMentor)
}

func (h *DashboardHandler) handleMentee(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Mentee(r.Context(), identity(r))
	if err != nil {
		writeError(w, h.logger, err, "failed to load dashboard")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", d)
}

func (h *DashboardHandler) handleMentor(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Mentor(r.Context(), identity(r))
	if err != nil {
		writeError(w, h.logger, err, "failed to load dashboard")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", d)
}
