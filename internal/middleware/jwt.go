package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/reqctx"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/helpers"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JWTAuth проверяет Bearer-токен на каждом защищённом запросе.
// Все отказы — 401, но причины различимы по сообщению:
// нет токена / неверный формат / просрочен / ещё не действует / неверная подпись.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				helpers.Error(w, http.StatusUnauthorized, "Доступ запрещён: токен не предоставлен")
				return
			}
			if !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный формат заголовка Authorization")
				helpers.Error(w, http.StatusUnauthorized, "Доступ запрещён: неверный формат токена")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))

			if err != nil || !token.Valid {
				logger.WithCtx(r.Context()).Warn("JWTAuth: токен не прошёл проверку", zap.Error(err))
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					helpers.Error(w, http.StatusUnauthorized, "Доступ запрещён: токен просрочен")
				case errors.Is(err, jwt.ErrTokenNotValidYet):
					helpers.Error(w, http.StatusUnauthorized, "Доступ запрещён: токен ещё не действует")
				default:
					helpers.Error(w, http.StatusUnauthorized, "Доступ запрещён: неверный токен")
				}
				return
			}

			userID, ok1 := claims["user_id"].(float64)
			email, ok2 := claims["email"].(string)
			role, ok3 := claims["role"].(string)
			if !ok1 || !ok2 || !ok3 {
				logger.WithCtx(r.Context()).Warn("JWTAuth: недопустимый payload", zap.Any("claims", claims))
				helpers.Error(w, http.StatusUnauthorized, "Доступ запрещён: недопустимый payload")
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, int(userID))
			ctx = context.WithValue(ctx, ContextUserEmail, email)
			ctx = context.WithValue(ctx, ContextRole, role)
			ctx = reqctx.WithUserID(ctx, int(userID))

			logger.WithCtx(ctx).Debug("JWTAuth: токен валиден",
				zap.Int("user_id", int(userID)), zap.String("role", role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
