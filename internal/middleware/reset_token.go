package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/services"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/helpers"

	"go.uber.org/zap"
)

// resetValidator — то, что гейт спрашивает у сервиса сброса пароля.
type resetValidator interface {
	Validate(ctx context.Context, token string) (*models.PasswordResetToken, error)
}

// ValidateResetToken проверяет токен сброса из тела запроса и кладёт
// проверенную запись в контекст — хендлер смены пароля знает, чей пароль
// меняется, без повторной аутентификации. Тело запроса восстанавливается,
// чтобы хендлер мог прочитать его ещё раз.
func ValidateResetToken(svc resetValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				helpers.Error(w, http.StatusBadRequest, "Не удалось прочитать тело запроса")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var req struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(body, &req); err != nil || req.Token == "" {
				logger.WithCtx(r.Context()).Warn("ValidateResetToken: токен не передан")
				helpers.Error(w, http.StatusBadRequest, "Требуется токен сброса")
				return
			}

			rec, err := svc.Validate(r.Context(), req.Token)
			if err != nil {
				log := logger.WithCtx(r.Context())
				switch {
				case errors.Is(err, services.ErrTokenNotFound):
					log.Warn("ValidateResetToken: токен не найден")
					helpers.Error(w, http.StatusNotFound, "Токен не найден")
				case errors.Is(err, services.ErrTokenExpired):
					log.Warn("ValidateResetToken: токен просрочен")
					helpers.Error(w, http.StatusUnauthorized, "Токен сброса просрочен")
				case errors.Is(err, services.ErrTokenUsed):
					log.Warn("ValidateResetToken: токен уже использован")
					helpers.Error(w, http.StatusConflict, "Токен сброса уже использован")
				default:
					log.Error("ValidateResetToken: ошибка проверки токена", zap.Error(err))
					helpers.Error(w, http.StatusInternalServerError, "Внутренняя ошибка при проверке токена")
				}
				return
			}

			ctx := context.WithValue(r.Context(), ContextResetToken, rec)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
