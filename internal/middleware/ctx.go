package middleware

import (
	"context"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
)

type ctxKey string

const (
	ContextUserID     ctxKey = "user_id"
	ContextUserEmail  ctxKey = "user_email"
	ContextRole       ctxKey = "role"
	ContextRequestID  ctxKey = "request_id"
	ContextResetToken ctxKey = "reset_token"
	ContextAccount    ctxKey = "account"
)

func UserIDFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(ContextUserID).(int)
	return v, ok
}

func UserEmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextUserEmail).(string)
	return v, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextRole).(string)
	return v, ok
}

// ResetTokenFromContext — проверенная запись токена сброса, положенная ValidateResetToken.
func ResetTokenFromContext(ctx context.Context) (*models.PasswordResetToken, bool) {
	v, ok := ctx.Value(ContextResetToken).(*models.PasswordResetToken)
	return v, ok
}

// AccountFromContext — запись пользователя, положенная RequireRole.
func AccountFromContext(ctx context.Context) (*models.User, bool) {
	v, ok := ctx.Value(ContextAccount).(*models.User)
	return v, ok
}
