package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/http/respond"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models/dto"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

const errEnsureMentorFailed = "could not ensure mentor profile"

// MentorHandler serves the mentor catalogue and mentor self-management.
type MentorHandler struct {
	store  storage.MentorStore
	logger *zap.Logger
	now    func() time.Time
}

func NewMentorHandler(store storage.MentorStore, logger *zap.Logger) *MentorHandler {
	return &MentorHandler{store: store, logger: logger, now: time.Now}
}

// Register attaches catalogue routes publicly and self-management behind authn.
func (h *MentorHandler) Register(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Get("/mentors", h.handleList)
	r.Get("/mentors/{id}", h.handleGet)
	r.Get("/mentors/{id}/reviews", h.handleReviews)
	r.Get("/group-sessions", h.handleGroupSessions)
	r.With(authn).Put("/mentors/me", h.handleUpdateMe)
	r.With(authn).Post("/functions/ensure-mentor-profile", h.handleEnsure)
}

func (h *MentorHandler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := models.MentorFilter{
		Industry:  strings.TrimSpace(r.URL.Query().Get("industry")),
		Expertise: strings.TrimSpace(r.URL.Query().Get("expertise")),
	}
	mentors, err := h.store.ListMentors(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err, "failed to list mentors")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", mentors)
}

func (h *MentorHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, http.StatusBadRequest, "invalid mentor id")
		return
	}
	mentor, err := h.store.GetMentor(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "failed to load mentor")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", mentor)
}

func (h *MentorHandler) handleReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, http.StatusBadRequest, "invalid mentor id")
		return
	}
	reviews, err := h.store.ListReviews(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "failed to list reviews")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", reviews)
}

func (h *MentorHandler) handleGroupSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.ListGroupSessions(r.Context(), h.now())
	if err != nil {
		writeError(w, h.logger, err, "failed to list group sessions")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", sessions)
}

func (h *MentorHandler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateMentorRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	mentor, err := h.store.GetMentor(r.Context(), identity(r).UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = errNotMentor
		}
		writeError(w, h.logger, err, "failed to load mentor")
		return
	}
	if err := applyMentorUpdate(&mentor, req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.store.UpdateMentor(r.Context(), mentor)
	if err != nil {
		writeError(w, h.logger, err, "failed to update mentor")
		return
	}
	respond.JSON(w, http.StatusOK, "mentor updated", updated)
}

// handleEnsure creates the caller's mentor row if it is missing. Every
// failure other than authentication is a 400.
func (h *MentorHandler) handleEnsure(w http.ResponseWriter, r *http.Request) {
	caller := identity(r)
	var req dto.EnsureMentorRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		respond.Error(w, http.StatusBadRequest, "userId is required")
		return
	}
	userID, ok := parseID(strings.TrimSpace(req.UserID))
	if !ok {
		respond.Error(w, http.StatusBadRequest, "userId is not a valid id")
		return
	}
	if userID != caller.UserID {
		respond.Error(w, http.StatusBadRequest, "userId does not match the authenticated user")
		return
	}

	mentor, created, err := h.store.EnsureMentor(r.Context(), userID)
	if err != nil {
		h.logger.Warn("ensure mentor profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		respond.Error(w, http.StatusBadRequest, errEnsureMentorFailed)
		return
	}
	if !created {
		respond.JSON(w, http.StatusOK, "Mentor profile already exists", nil)
		return
	}
	h.logger.Info("mentor profile created", zap.String("user_id", userID.String()))
	respond.JSON(w, http.StatusOK, "Mentor profile created", mentor)
}

func applyMentorUpdate(m *models.Mentor, req dto.UpdateMentorRequest) error {
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return errors.New("hourly_rate must not be negative")
		}
		m.HourlyRate = *req.HourlyRate
	}
	if req.YearsExperience != nil {
		if *req.YearsExperience < 0 {
			return errors.New("years_experience must not be negative")
		}
		m.YearsExperience = *req.YearsExperience
	}
	if req.Industry != nil {
		m.Industry = strings.TrimSpace(*req.Industry)
	}
	if req.Expertise != nil {
		expertise := make([]string, 0, len(req.Expertise))
		for _, e := range req.Expertise {
			if e = strings.TrimSpace(e); e != "" {
				expertise = append(expertise, e)
			}
		}
		m.Expertise = expertise
	}
	if req.Company != nil {
		m.Company = strings.TrimSpace(*req.Company)
	}
	if req.JobTitle != nil {
		m.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	return nil
}
