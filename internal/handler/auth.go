package handler

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/vinayaksoni1729/TaskX/internal/middleware"
	"github.com/vinayaksoni1729/TaskX/internal/model"
	"github.com/vinayaksoni1729/TaskX/internal/oauth"
	"github.com/vinayaksoni1729/TaskX/internal/service"
	"github.com/vinayaksoni1729/TaskX/pkg/auth"
	"github.com/vinayaksoni1729/TaskX/pkg/respond"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	service *service.AuthService
	google  *oauth.Google
	logger  *zap.Logger
}

func NewAuthHandler(srv *service.AuthService, google *oauth.Google, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: srv,
		google:  google,
		logger:  logger,
	}
}

func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/signup", h.SignUp)
	r.Post("/signin", h.SignIn)
	r.Post("/refresh", h.Refresh)
	r.Get("/google/login", h.GoogleLogin)
	r.Get("/google/callback", h.GoogleCallback)
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type authResponse struct {
	User   model.User        `json:"user"`
	Tokens service.TokenPair `json:"tokens"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	user, pair, err := h.service.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, authResponse{User: user, Tokens: pair})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	user, pair, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, authResponse{User: user, Tokens: pair})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, pair)
}

// Me отдает профиль аутентифицированного пользователя
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, user)
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.google.Enabled() {
		respond.Error(w, r, http.StatusNotImplemented, "google sign-in is not configured")
		return
	}

	state := randomState()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   300,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusFound)
}

func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		respond.Error(w, r, http.StatusBadRequest, "state mismatch")
		return
	}

	profile, err := h.google.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.logger.Error("google exchange failed", zap.Error(err))
		respond.Error(w, r, http.StatusBadGateway, "google sign-in failed")
		return
	}

	user, pair, err := h.service.OAuthSignIn(r.Context(), profile.Email, profile.Name, model.ProviderGoogle)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, authResponse{User: user, Tokens: pair})
}

// Ошибки аутентификации уходят пользователю дружелюбным текстом
func (h *AuthHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		respond.Error(w, r, http.StatusNotFound, "Account not found. Need to sign up?")
	case errors.Is(err, service.ErrWrongPassword):
		respond.Error(w, r, http.StatusUnauthorized, "Incorrect password. Try again or reset your password.")
	case errors.Is(err, service.ErrEmailTaken):
		respond.Error(w, r, http.StatusConflict, "Email already in use. Try logging in instead.")
	case errors.Is(err, auth.ErrWeakPassword):
		respond.Error(w, r, http.StatusBadRequest, "Please create a stronger password")
	case errors.Is(err, auth.ErrInvalidEmail):
		respond.Error(w, r, http.StatusBadRequest, "Please enter a valid email address")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		respond.Error(w, r, http.StatusUnauthorized, "Session expired. Please sign in again.")
	default:
		h.logger.Error("auth error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}

func randomState() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
