package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/services"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/helpers"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/validation"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// UserHandler обслуживает администраторские операции над пользователями.
type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func userProfile(u *models.User) models.UserProfileResponse {
	return models.UserProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// List godoc
// @Summary Список пользователей (только admin)
// @Tags admin-users
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} models.PaginatedResponse
// @Router /api/admin/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := utils.ParsePagination(r.URL.Query())

	users, total, err := h.authService.GetUsersPaginated(r.Context(), limit, offset)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения списка пользователей", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения пользователей")
		return
	}

	profiles := make([]models.UserProfileResponse, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, userProfile(u))
	}

	helpers.JSON(w, http.StatusOK, utils.BuildPaginated(profiles, page, limit, total))
}

// GetByID godoc
// @Summary Пользователь по ID (только admin)
// @Tags admin-users
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} models.UserProfileResponse
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/admin/users/{id} [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		logger.WithCtx(r.Context()).Error("Ошибка получения пользователя", zap.Int("user_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения пользователя")
		return
	}

	helpers.JSON(w, http.StatusOK, userProfile(user))
}

// Update godoc
// @Summary Обновить пользователя (только admin)
// @Tags admin-users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param input body models.UpdateUserRequest true "Изменяемые поля"
// @Success 200 {string} string "Пользователь обновлён"
// @Failure 400 {object} helpers.FieldErrorResponse "Ошибка валидации"
// @Failure 409 {string} string "Email уже занят"
// @Router /api/admin/users/{id} [patch]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		helpers.FieldErrors(w, http.StatusBadRequest, "Ошибка валидации", validation.FormatErrors(err))
		return
	}

	if err := h.authService.UpdateUser(r.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			helpers.Error(w, http.StatusConflict, "Email уже занят")
		case errors.Is(err, services.ErrUserNotFound):
			helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
		default:
			log.Error("Ошибка обновления пользователя", zap.Int("user_id", id), zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка обновления пользователя")
		}
		return
	}

	log.Info("Пользователь обновлён администратором", zap.Int("user_id", id))
	helpers.JSON(w, http.StatusOK, "Пользователь обновлён")
}

// Delete godoc
// @Summary Удалить пользователя (только admin)
// @Tags admin-users
// @Security ApiKeyAuth
// @Param id path int true "ID пользователя"
// @Success 200 {string} string "Пользователь удалён"
// @Router /api/admin/users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	if err := h.authService.DeleteUserByID(r.Context(), id); err != nil {
		log.Error("Ошибка удаления пользователя", zap.Int("user_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка удаления пользователя")
		return
	}

	log.Info("Пользователь удалён администратором", zap.Int("user_id", id))
	helpers.JSON(w, http.StatusOK, "Пользователь удалён")
}
