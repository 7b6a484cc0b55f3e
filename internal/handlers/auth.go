package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/config"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/middleware"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/services"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/helpers"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/validation"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// Signup godoc
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body signupRequest true "Данные регистрации"
// @Success 201 {object} loginResponse
// @Failure 400 {object} helpers.FieldErrorResponse "Ошибка валидации"
// @Failure 409 {string} string "Email уже зарегистрирован"
// @Router /api/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Signup", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		log.Warn("Ошибка валидации в Signup")
		helpers.FieldErrors(w, http.StatusBadRequest, "Ошибка валидации", validation.FormatErrors(err))
		return
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := h.authService.RegisterUser(r.Context(), user, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			helpers.Error(w, http.StatusConflict, err.Error())
			return
		}
		log.Error("Ошибка регистрации пользователя", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Внутренняя ошибка при регистрации")
		return
	}

	// Сразу логиним свежезарегистрированного — как делает фронт
	accessTTL, _ := time.ParseDuration(h.cfg.AccessTokenTTL)
	access, u, err := h.authService.LoginUser(r.Context(), user.Email, req.Password, h.cfg.JWTSecret, accessTTL)
	if err != nil {
		log.Error("Не удалось выдать токен после регистрации", zap.Error(err))
		helpers.JSON(w, http.StatusCreated, map[string]string{"message": "Пользователь зарегистрирован"})
		return
	}

	log.Info("Пользователь зарегистрирован", zap.Int("user_id", u.ID))
	helpers.JSON(w, http.StatusCreated, loginResponse{
		AccessToken: access,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
	})
}

// Login godoc
// @Summary Авторизация пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Данные для входа"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Неверный email или пароль"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		helpers.FieldErrors(w, http.StatusBadRequest, "Ошибка валидации", validation.FormatErrors(err))
		return
	}

	accessTTL, _ := time.ParseDuration(h.cfg.AccessTokenTTL)
	access, user, err := h.authService.LoginUser(r.Context(), req.Email, req.Password, h.cfg.JWTSecret, accessTTL)
	if err != nil {
		log.Warn("Ошибка входа пользователя", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
		return
	}

	log.Info("Вход выполнен", zap.Int("user_id", user.ID), zap.String("role", user.Role))
	helpers.JSON(w, http.StatusOK, loginResponse{
		AccessToken: access,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
	})
}

// Profile godoc
// @Summary Получить данные профиля
// @Tags profile
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.UserProfileResponse
// @Failure 401 {string} string "Нет доступа"
// @Router /api/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		log.Warn("Профиль не найден", zap.Int("user_id", userID), zap.Error(err))
		helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	helpers.JSON(w, http.StatusOK, models.UserProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}
