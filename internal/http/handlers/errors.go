package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/auth"
	"github.com/anuragmoyde/mentor4all-sub000/internal/availability"
	"github.com/anuragmoyde/mentor4all-sub000/internal/booking"
	"github.com/anuragmoyde/mentor4all-sub000/internal/http/respond"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

var errNotMentor = errors.New("a mentor profile is required")

// writeError maps domain errors to status codes. Anything unrecognised is
// logged and reported as fallback with a 500.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, booking.ErrAuthRequired):
		respond.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errNotMentor),
		errors.Is(err, booking.ErrNotParticipant):
		respond.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, availability.ErrNoSuchSlot):
		respond.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, availability.ErrInvalidRange),
		errors.Is(err, availability.ErrInvalidFormat),
		errors.Is(err, booking.ErrNoSlotSelected),
		errors.Is(err, booking.ErrTitleRequired),
		errors.Is(err, booking.ErrSelfBooking):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, availability.ErrOverlap),
		errors.Is(err, storage.ErrSlotOverlap),
		errors.Is(err, storage.ErrBookedSlot),
		errors.Is(err, storage.ErrSlotUnavailable),
		errors.Is(err, storage.ErrAlreadyExists),
		errors.Is(err, booking.ErrInvalidTransition):
		respond.Error(w, http.StatusConflict, err.Error())
	default:
		logger.Error(fallback, zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, fallback)
	}
}

// identity returns the caller attached by middleware.RequireAuth. Routes
// outside that middleware see the zero Identity.
func identity(r *http.Request) auth.Identity {
	id, _ := auth.IdentityFrom(r.Context())
	return id
}

func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	return id, err == nil && id != uuid.Nil
}
