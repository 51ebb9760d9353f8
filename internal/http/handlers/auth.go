package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/anuragmoyde/mentor4all-sub000/internal/auth"
	"github.com/anuragmoyde/mentor4all-sub000/internal/http/respond"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models/dto"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// AuthHandler owns signup, login and the current-session lookup.
type AuthHandler struct {
	store  storage.ProfileStore
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.ProfileStore, tokens *auth.TokenManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, logger: logger}
}

// Register attaches auth routes. authn guards the session lookup.
func (h *AuthHandler) Register(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Post("/auth/signup", h.handleSignup)
	r.Post("/auth/login", h.handleLogin)
	r.With(authn).Get("/auth/session", h.handleSession)
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	userType := strings.TrimSpace(req.UserType)
	if userType == "" {
		userType = models.UserTypeMentee
	}
	if err := validateSignup(email, req.Password, userType); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	profile := models.Profile{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		UserType:  userType,
	}
	created, err := h.store.CreateAccount(r.Context(), models.Account{Email: email, PasswordHash: passwordHash}, profile)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		h.logger.Error("create account failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	token, err := h.tokens.Generate(created, email)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	h.logger.Info("account created", zap.String("user_id", created.ID.String()), zap.String("user_type", created.UserType))
	respond.JSON(w, http.StatusCreated, "account created", dto.LoginResponse{Token: token, Profile: created})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	account, err := h.store.FindAccountByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login lookup failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch account")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	profile, err := h.store.GetProfile(r.Context(), account.ProfileID)
	if err != nil {
		h.logger.Error("login profile lookup failed", zap.Error(err), zap.String("user_id", account.ProfileID.String()))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	token, err := h.tokens.Generate(profile, account.Email)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: token, Profile: profile})
}

// handleSession reports the caller. A token from the hosted provider may
// arrive before the profile row exists, so a missing profile is not an error.
func (h *AuthHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	id := identity(r)
	resp := dto.SessionResponse{UserID: id.UserID.String(), Email: id.Email}
	profile, err := h.store.GetProfile(r.Context(), id.UserID)
	switch {
	case err == nil:
		resp.Profile = &profile
	case !errors.Is(err, storage.ErrNotFound):
		writeError(w, h.logger, err, "failed to load session")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", resp)
}

func validateSignup(email, password, userType string) error {
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	if len(strings.TrimSpace(password)) < 8 || !utf8.ValidString(password) {
		return errors.New("password must be at least 8 characters")
	}
	if !models.ValidUserType(userType) {
		return errors.New("user_type must be mentor or mentee")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
