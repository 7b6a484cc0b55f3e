package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/middleware"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/services"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/helpers"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/validation"

	"go.uber.org/zap"
)

type PasswordHandler struct {
	svc *services.PasswordResetService
}

func NewPasswordHandler(svc *services.PasswordResetService) *PasswordHandler {
	return &PasswordHandler{svc: svc}
}

type forgotReq struct {
	Email string `json:"email" validate:"required,email"`
}

// Forgot godoc
// @Summary Запрос восстановления пароля
// @Description Отправляет письмо со ссылкой для сброса пароля. Ответ всегда одинаковый, даже если e-mail не найден.
// @Tags password
// @Accept json
// @Produce json
// @Param input body forgotReq true "Email пользователя"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/password/forgot [post]
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req forgotReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Forgot")
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		log.Warn("Невалидный payload в Forgot")
		helpers.FieldErrors(w, http.StatusBadRequest, "Ошибка валидации", validation.FormatErrors(err))
		return
	}

	// Не раскрываем, существует ли email — всегда возвращаем 200
	if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
		// Ошибку логируем, но клиенту отвечаем одинаково
		log.Error("Сбой при запросе восстановления пароля", zap.String("email_masked", maskEmail(req.Email)), zap.Error(err))
	} else {
		log.Info("Запрошено восстановление пароля", zap.String("email_masked", maskEmail(req.Email)))
	}

	helpers.JSON(w, http.StatusOK, map[string]string{"message": "If the email exists, a reset link has been sent."})
}

type resetReq struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Reset godoc
// @Summary Сброс пароля по токену
// @Description Устанавливает новый пароль. Токен уже проверен middleware ValidateResetToken.
// @Tags password
// @Accept json
// @Produce json
// @Param input body resetReq true "Токен и новый пароль"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/password/reset [post]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	rec, ok := middleware.ResetTokenFromContext(r.Context())
	if !ok {
		// Недостижимо, если маршрут собран с ValidateResetToken.
		log.Error("Reset вызван без проверенного токена в контексте")
		helpers.Error(w, http.StatusBadRequest, "Требуется токен сброса")
		return
	}

	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Reset")
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		log.Warn("Невалидный payload в Reset")
		helpers.FieldErrors(w, http.StatusBadRequest, "Ошибка валидации", validation.FormatErrors(err))
		return
	}

	if err := h.svc.Reset(r.Context(), rec, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrWeakPassword):
			helpers.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrTokenUsed):
			// Конкурентный запрос успел первым — токен одноразовый.
			helpers.Error(w, http.StatusConflict, "Токен сброса уже использован")
		default:
			log.Error("Не удалось сбросить пароль по токену", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Внутренняя ошибка при сбросе пароля")
		}
		return
	}

	log.Info("Пароль успешно сброшен")
	helpers.JSON(w, http.StatusOK, map[string]string{"message": "Password has been reset."})
}

func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
