package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/repository"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const minPasswordLen = 8

type PasswordResetService struct {
	repo        repository.PasswordResetRepo
	users       userDirectory
	emailSender EmailSender
	frontendURL string
	tokenTTL    time.Duration
	now         func() time.Time // подменяется в тестах
}

// userDirectory — то, что сервису нужно от пользовательского репозитория.
type userDirectory interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type EmailSender interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

func NewPasswordResetService(repo repository.PasswordResetRepo, users userDirectory, emailSender EmailSender, frontendURL string, tokenTTL time.Duration) *PasswordResetService {
	return &PasswordResetService{
		repo:        repo,
		users:       users,
		emailSender: emailSender,
		frontendURL: frontendURL,
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

// RequestReset выдаёт одноразовый токен и отправляет письмо со ссылкой.
// Возвращает nil всегда (не раскрываем, существует ли такой e-mail).
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("Запрос на сброс пароля")

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		// Не раскрываем наличие почты пользователю, но логируем для нас:
		logger.Log.Warn("Не удалось найти пользователя по email при запросе сброса", zap.Error(err))
		return nil
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		logger.Log.Error("Ошибка генерации токена для сброса", zap.Error(err), zap.Int("user_id", user.ID))
		return nil
	}

	// В базе храним только хеш
	tokenHash, err := utils.HashToken(token)
	if err != nil {
		logger.Log.Error("Ошибка хеширования токена сброса", zap.Error(err), zap.Int("user_id", user.ID))
		return nil
	}

	// Новый токен гасит все непогашенные старые
	if n, err := s.repo.InvalidateActiveByUser(ctx, int64(user.ID)); err == nil && n > 0 {
		logger.Log.Info("Старые токены сброса погашены", zap.Int("user_id", user.ID), zap.Int64("count", n))
	}

	expires := s.now().Add(s.tokenTTL)
	if _, err := s.repo.Create(ctx, int64(user.ID), tokenHash, expires); err != nil {
		logger.Log.Error("Ошибка сохранения токена сброса пароля",
			zap.Int("user_id", user.ID),
			zap.Error(err),
		)
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset?token=%s", s.frontendURL, token)
	if err := s.emailSender.SendPasswordReset(ctx, user.Email, resetLink); err != nil {
		logger.Log.Error("Ошибка отправки письма для сброса пароля",
			zap.Int("user_id", user.ID),
			zap.Error(err),
		)
		// Не фейлим намеренно — чтобы нельзя было брутить наличие e-mail
	}

	logger.Log.Info("Письмо со ссылкой на сброс пароля поставлено на отправку",
		zap.Int("user_id", user.ID),
		zap.Time("expires_at", expires),
	)
	return nil
}

// Validate проверяет состояние токена и возвращает запись вместе с user_id владельца —
// именно по ней последующий шаг понимает, чей пароль меняется.
func (s *PasswordResetService) Validate(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	tokenHash, err := utils.HashToken(token)
	if err != nil {
		return nil, ErrTokenNotFound
	}

	rec, err := s.repo.GetByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Log.Warn("Токен сброса не найден")
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	// Просрочка проверяется раньше used: просроченный токен всегда просрочен,
	// каким бы ни было его used-состояние.
	if s.now().After(rec.ExpiresAt) {
		logger.Log.Warn("Токен сброса просрочен", zap.Int64("token_id", rec.ID))
		return nil, ErrTokenExpired
	}
	if rec.Used() {
		logger.Log.Warn("Токен сброса уже использован", zap.Int64("token_id", rec.ID))
		return nil, ErrTokenUsed
	}

	return rec, nil
}

// Reset устанавливает новый пароль по проверенной записи токена (см. Validate
// и middleware.ValidateResetToken). Пометка "использован" и смена пароля идут
// одной транзакцией; при конкурентном дубле запроса выигрывает ровно один —
// второй получает ErrTokenUsed.
func (s *PasswordResetService) Reset(ctx context.Context, rec *models.PasswordResetToken, newPassword string) error {
	logger.Log.Info("Попытка сброса пароля по токену", zap.Int64("token_id", rec.ID))

	if len(newPassword) < minPasswordLen {
		logger.Log.Warn("Слишком короткий новый пароль")
		return ErrWeakPassword
	}

	pwHash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка генерации хеша пароля", zap.Error(err), zap.Int64("user_id", rec.UserID))
		return err
	}

	ok, err := s.repo.ConsumeAndSetPassword(ctx, rec.ID, rec.UserID, pwHash)
	if err != nil {
		logger.Log.Error("Ошибка потребления токена сброса",
			zap.Int64("token_id", rec.ID),
			zap.Int64("user_id", rec.UserID),
			zap.Error(err),
		)
		return err
	}
	if !ok {
		logger.Log.Warn("Токен сброса потреблён конкурентным запросом", zap.Int64("token_id", rec.ID))
		return ErrTokenUsed
	}

	logger.Log.Info("Пароль успешно сброшен", zap.Int64("user_id", rec.UserID))
	return nil
}

// Purge удаляет просроченные токены. Ничто в обработке запросов её не вызывает —
// запуск только по расписанию (см. app.StartResetTokenCleaner).
func (s *PasswordResetService) Purge(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Log.Info("Просроченные токены сброса удалены", zap.Int64("count", n))
	}
	return n, nil
}
