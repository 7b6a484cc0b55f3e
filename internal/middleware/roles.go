package middleware

import (
	"context"
	"net/http"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/helpers"

	"go.uber.org/zap"
)

// accountReader — то, что ролевой гейт спрашивает у репозитория пользователей.
type accountReader interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// RequireRole пускает дальше только аккаунты с нужной ролью. Роль берётся
// не из клеймов, а из свежей записи в БД: снятая админка действует сразу,
// не дожидаясь истечения токена. Должен стоять ПОСЛЕ JWTAuth.
func RequireRole(users accountReader, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				// Недостижимо при правильной композиции, но не доверяем этому.
				logger.WithCtx(r.Context()).Warn("RequireRole: в контексте нет user_id")
				helpers.Error(w, http.StatusUnauthorized, "Доступ запрещён: пользователь не аутентифицирован")
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil || user == nil {
				logger.WithCtx(r.Context()).Warn("RequireRole: пользователь не найден",
					zap.Int("user_id", userID), zap.Error(err))
				helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
				return
			}

			if user.Role != role {
				logger.WithCtx(r.Context()).Warn("RequireRole: недостаточно прав",
					zap.Int("user_id", userID),
					zap.String("role", user.Role),
					zap.String("required", role))
				helpers.Error(w, http.StatusForbidden, "Доступ запрещён: недостаточно прав")
				return
			}

			ctx := context.WithValue(r.Context(), ContextAccount, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
