package handlers

import (
	"ChatVault/internal/config"
	"ChatVault/internal/middleware"
	"ChatVault/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию и вход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Register создаёт пользователя и сразу ставит auth cookie.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
		http.Error(w, "login and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrLoginTaken) {
			http.Error(w, "login already taken", http.StatusConflict)
			return
		}
		h.Logger.Errorw("Register: service error", "login", req.Login, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Register: failed to issue auth token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": user.ID, "login": user.Login})
}

// Login проверяет креденшлы и ставит auth cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
		http.Error(w, "login and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "invalid login or password", http.StatusUnauthorized)
			return
		}
		h.Logger.Errorw("Login: service error", "login", req.Login, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: failed to issue auth token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": user.ID, "login": user.Login})
}

// Status — whoami для CLI: подтверждает, что креденшл валиден и пользователь есть.
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := resolveUser(w, r, h.UserService, h.Logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": userID})
}

// resolveUser реализует 403/404-прецеденс для owner-scoped эндпоинтов:
// сначала валидность первичного токена (403), затем существование
// пользователя в БД (404), и только потом операция.
func resolveUser(w http.ResponseWriter, r *http.Request, users *service.UserService, logger *zap.SugaredLogger) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Not a valid token", http.StatusForbidden)
		return 0, false
	}
	exists, err := users.Exists(r.Context(), userID)
	if err != nil {
		logger.Errorw("resolveUser: user lookup failed", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return 0, false
	}
	if !exists {
		http.Error(w, "User not found", http.StatusNotFound)
		return 0, false
	}
	return userID, true
}
