package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/booking"
	"github.com/anuragmoyde/mentor4all-sub000/internal/dashboard"
	"github.com/anuragmoyde/mentor4all-sub000/internal/http/respond"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models/dto"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// BookingHandler exposes open slots, booking, and the caller's sessions.
type BookingHandler struct {
	reconciler *booking.Reconciler
	dashboards *dashboard.Service
	logger     *zap.Logger
}

func NewBookingHandler(reconciler *booking.Reconciler, dashboards *dashboard.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{reconciler: reconciler, dashboards: dashboards, logger: logger}
}

// Register attaches booking routes. Open slots are public.
func (h *BookingHandler) Register(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Get("/mentors/{id}/open-slots", h.handleOpenSlots)
	r.With(authn).Post("/bookings", h.handleBook)
	r.With(authn).Get("/sessions", h.handleSessions)
	r.With(authn).Patch("/sessions/{id}/status", h.handleStatus)
}

func (h *BookingHandler) handleOpenSlots(w http.ResponseWriter, r *http.Request) {
	mentorID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, http.StatusBadRequest, "invalid mentor id")
		return
	}
	days, err := h.reconciler.OpenSlots(r.Context(), mentorID)
	if err != nil {
		writeError(w, h.logger, err, "failed to load slots")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", days)
}

// handleBook drives the booking wizard with the submitted form and hands the
// confirmed request to the reconciler.
func (h *BookingHandler) handleBook(w http.ResponseWriter, r *http.Request) {
	var req dto.BookingRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	wizard := booking.NewWizard()
	slotID := uuid.Nil
	if raw := strings.TrimSpace(req.SlotID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid slot id")
			return
		}
		slotID = id
	}
	if err := wizard.SelectSlot(slotID); err != nil {
		writeError(w, h.logger, err, "booking failed")
		return
	}
	if err := wizard.EnterDetails(req.Title, req.Description); err != nil {
		writeError(w, h.logger, err, "booking failed")
		return
	}
	confirmed, err := wizard.Confirm()
	if err != nil {
		writeError(w, h.logger, err, "booking failed")
		return
	}

	session, err := h.reconciler.Book(r.Context(), identity(r), confirmed)
	if err != nil {
		writeError(w, h.logger, err, "booking failed")
		return
	}
	wizard.Complete()
	respond.JSON(w, http.StatusCreated, "session booked", session)
}

type sessionsResponse struct {
	Upcoming []models.Session `json:"upcoming"`
	Past     []models.Session `json:"past"`
}

// handleSessions lists the caller's sessions as mentee, or as mentor with ?as=mentor.
func (h *BookingHandler) handleSessions(w http.ResponseWriter, r *http.Request) {
	id := identity(r)
	filter := storage.SessionFilter{MenteeID: id.UserID}
	if r.URL.Query().Get("as") == models.UserTypeMentor {
		filter = storage.SessionFilter{MentorID: id.UserID}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidSessionStatus(status) {
			respond.Error(w, http.StatusBadRequest, "unknown status")
			return
		}
		filter.Status = status
	}
	upcoming, past, err := h.dashboards.Split(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err, "failed to load sessions")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", sessionsResponse{Upcoming: upcoming, Past: past})
}

func (h *BookingHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, http.StatusBadRequest, "invalid session id")
		return
	}
	var req dto.UpdateSessionStatusRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	status := strings.TrimSpace(req.Status)
	if !models.ValidSessionStatus(status) {
		respond.Error(w, http.StatusBadRequest, "unknown status")
		return
	}
	session, err := h.reconciler.UpdateStatus(r.Context(), identity(r), sessionID, status)
	if err != nil {
		writeError(w, h.logger, err, "failed to update session")
		return
	}
	respond.JSON(w, http.StatusOK, "session updated", session)
}
