package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"opsdash/internal/domain/auth"
	"opsdash/internal/transport/http/api"
	"opsdash/internal/transport/http/middleware"
	"opsdash/internal/transport/http/shared"
)

type Handler struct {
	Store     *auth.Store
	JWTSecret string
	TokenTTL  time.Duration
}

func NewHandler(store *auth.Store, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireAuth).Get("/auth/me", h.handleMe)
	r.With(middleware.RequireAuth).Get("/auth/menus", h.handleMenus)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  auth.User       `json:"user"`
	Menus []auth.MenuNode `json:"menus"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "is required")
	v.Required("password", payload.Password, "is required")
	if v.Reject(w, requestID) {
		return
	}

	user, err := h.Store.FindActiveUserByEmail(r.Context(), payload.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to sign in", requestID)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:   user.ID,
		RoleID:   user.RoleID,
		RoleName: user.RoleName,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to sign in", requestID)
		return
	}

	menus, err := h.Store.MenuTree(r.Context(), user.RoleID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to load menu permissions", requestID)
		return
	}

	if err := h.Store.UpdateLastLogin(r.Context(), user.ID); err != nil {
		slog.Warn("update last login failed", "err", err, "user", user.ID)
	}

	api.Success(w, loginResponse{Token: token, User: user, Menus: menus}, requestID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	menus, err := h.Store.MenuTree(r.Context(), user.RoleID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "me_failed", "failed to load menu permissions", requestID)
		return
	}
	api.Success(w, map[string]any{
		"userId": user.UserID,
		"role":   user.RoleName,
		"menus":  menus,
	}, requestID)
}

func (h *Handler) handleMenus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	menus, err := h.Store.MenuTree(r.Context(), user.RoleID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "menus_failed", "failed to load menu permissions", requestID)
		return
	}
	api.Success(w, menus, requestID)
}
