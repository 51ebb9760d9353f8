package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/availability"
	"github.com/anuragmoyde/mentor4all-sub000/internal/http/respond"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models/dto"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// AvailabilityHandler lets a mentor manage their own slots.
type AvailabilityHandler struct {
	manager *availability.Manager
	mentors storage.MentorStore
	logger  *zap.Logger
}

func NewAvailabilityHandler(manager *availability.Manager, mentors storage.MentorStore, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{manager: manager, mentors: mentors, logger: logger}
}

// Register attaches availability routes; all of them require a mentor caller.
func (h *AvailabilityHandler) Register(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Route("/mentors/me/availability", func(r chi.Router) {
		r.Use(authn, h.requireMentor)
		r.Get("/", h.handleList)
		r.Put("/", h.handleSave)
		r.Post("/slots", h.handleAdd)
		r.Delete("/slots/{id}", h.handleRemove)
	})
}

func (h *AvailabilityHandler) requireMentor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.mentors.GetMentor(r.Context(), identity(r).UserID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				err = errNotMentor
			}
			writeError(w, h.logger, err, "failed to load mentor")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *AvailabilityHandler) handleList(w http.ResponseWriter, r *http.Request) {
	slots, err := h.manager.List(r.Context(), identity(r).UserID)
	if err != nil {
		writeError(w, h.logger, err, "failed to load availability")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", slots)
}

func (h *AvailabilityHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveAvailabilityRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	staged := make([]availability.Input, 0, len(req.Slots))
	for _, s := range req.Slots {
		in, err := slotInput(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		staged = append(staged, in)
	}
	slots, err := h.manager.SaveAll(r.Context(), identity(r).UserID, staged, req.CancelBooked)
	if err != nil {
		writeError(w, h.logger, err, "save failed")
		return
	}
	respond.JSON(w, http.StatusOK, "availability saved", slots)
}

func (h *AvailabilityHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req dto.SlotInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	in, err := slotInput(req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	slots, err := h.manager.AddSlot(r.Context(), identity(r).UserID, in)
	if err != nil {
		writeError(w, h.logger, err, "save failed")
		return
	}
	respond.JSON(w, http.StatusCreated, "slot added", slots)
}

func (h *AvailabilityHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	slotID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, http.StatusBadRequest, "invalid slot id")
		return
	}
	cancelBooked, _ := strconv.ParseBool(r.URL.Query().Get("cancel_booked"))
	slots, err := h.manager.RemoveSlot(r.Context(), identity(r).UserID, slotID, cancelBooked)
	if err != nil {
		writeError(w, h.logger, err, "save failed")
		return
	}
	respond.JSON(w, http.StatusOK, "slot removed", slots)
}

func slotInput(s dto.SlotInput) (availability.Input, error) {
	in := availability.Input{Day: s.Day, Start: s.StartTime, End: s.EndTime}
	if s.ID != "" {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			return availability.Input{}, errors.New("invalid slot id")
		}
		in.ID = id
	}
	return in, nil
}
