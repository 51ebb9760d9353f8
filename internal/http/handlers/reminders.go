package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/http/respond"
	"github.com/anuragmoyde/mentor4all-sub000/internal/reminders"
)

// ReminderHandler exposes the reminder scan for an external scheduler.
type ReminderHandler struct {
	scanner *reminders.Scanner
	token   string
	logger  *zap.Logger
}

// NewReminderHandler constructs the handler. An empty token leaves the
// endpoint open.
func NewReminderHandler(scanner *reminders.Scanner, token string, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{scanner: scanner, token: token, logger: logger}
}

func (h *ReminderHandler) Register(r chi.Router) {
	r.Post("/functions/session-reminders", h.handleScan)
}

func (h *ReminderHandler) handleScan(w http.ResponseWriter, r *http.Request) {
	if h.token != "" {
		got := r.Header.Get("X-Cron-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
			respond.Error(w, http.StatusUnauthorized, "invalid cron token")
			return
		}
	}
	count, err := h.scanner.Scan(r.Context())
	if err != nil {
		h.logger.Error("reminder scan failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "reminder scan failed")
		return
	}
	respond.JSON(w, http.StatusOK, "reminder scan complete", map[string]int{"count": count})
}
