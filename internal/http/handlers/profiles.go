package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/http/respond"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models/dto"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	store  storage.ProfileStore
	logger *zap.Logger
}

func NewProfileHandler(store storage.ProfileStore, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, logger: logger}
}

// Register attaches profile routes behind authn.
func (h *ProfileHandler) Register(r chi.Router, authn func(http.Handler) http.Handler) {
	r.With(authn).Get("/profile", h.handleGet)
	r.With(authn).Put("/profile", h.handleUpdate)
}

func (h *ProfileHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.GetProfile(r.Context(), identity(r).UserID)
	if err != nil {
		writeError(w, h.logger, err, "failed to load profile")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", profile)
}

func (h *ProfileHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	profile, err := h.store.GetProfile(r.Context(), identity(r).UserID)
	if err != nil {
		writeError(w, h.logger, err, "failed to load profile")
		return
	}
	if err := applyProfileUpdate(&profile, req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.store.UpdateProfile(r.Context(), profile)
	if err != nil {
		writeError(w, h.logger, err, "failed to update profile")
		return
	}
	respond.JSON(w, http.StatusOK, "profile updated", updated)
}

func applyProfileUpdate(p *models.Profile, req dto.UpdateProfileRequest) error {
	if req.FirstName != nil {
		p.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		p.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}
	if req.Bio != nil {
		p.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.UserType != nil {
		t := strings.TrimSpace(*req.UserType)
		if !models.ValidUserType(t) {
			return errors.New("user_type must be mentor or mentee")
		}
		p.UserType = t
	}
	return nil
}
