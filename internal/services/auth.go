package services

import (
	"context"
	"strings"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetAllUsersPaginated(ctx context.Context, limit, offset int) ([]*models.User, int, error)
	UpdateUserFields(ctx context.Context, id int, input *models.UpdateUserRequest) error
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error
	DeleteUserByID(ctx context.Context, userID int) error
}

func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	logger.Log.Info("Регистрация пользователя (service)", zap.String("email", input.Email))

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if len(plainPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки email", zap.Error(err))
			return err
		}
		return ErrEmailTaken
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return err
	}

	input.PasswordHash = hashed
	input.Role = "user"

	if err := s.repo.CreateUser(ctx, input); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return err
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.Int("user_id", input.ID))
	return nil
}

// LoginUser проверяет пару email/пароль и возвращает access-токен вместе с пользователем.
// Неверный email и неверный пароль неразличимы для клиента.
func (s *AuthService) LoginUser(
	ctx context.Context,
	email, password, jwtSecret string,
	accessTTL time.Duration,
) (string, *models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("Попытка входа (service)")

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.Error(err))
		return "", nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.Int("user_id", user.ID))
		return "", nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Email, user.Role, accessTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации access-токена", zap.Error(err))
		return "", nil, err
	}

	logger.Log.Info("Вход выполнен (service)", zap.Int("user_id", user.ID))
	return accessToken, user, nil
}

func (s *AuthService) GetUsersPaginated(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	return s.repo.GetAllUsersPaginated(ctx, limit, offset)
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по ID (service)", zap.Int("user_id", id))
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.Log.Warn("Пользователь не найден по ID (service)", zap.Int("user_id", id), zap.Error(err))
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) UpdateUser(ctx context.Context, id int, input *models.UpdateUserRequest) error {
	logger.Log.Info("Обновление пользователя (service)", zap.Int("user_id", id))
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if exists, err := s.repo.IsEmailTaken(ctx, email); exists || err != nil {
			if err != nil {
				return err
			}
			return ErrEmailTaken
		}
	}
	if err := s.repo.UpdateUserFields(ctx, id, input); err != nil {
		logger.Log.Error("Ошибка при обновлении пользователя (service)", zap.Error(err), zap.Int("user_id", id))
		return err
	}
	return nil
}

func (s *AuthService) DeleteUserByID(ctx context.Context, id int) error {
	logger.Log.Info("Удаление пользователя (service)", zap.Int("user_id", id))
	err := s.repo.DeleteUserByID(ctx, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления пользователя (service)", zap.Int("user_id", id), zap.Error(err))
	}
	return err
}
