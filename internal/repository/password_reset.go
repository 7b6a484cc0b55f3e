package repository

import (
	"context"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PasswordResetRepository struct {
	db *pgxpool.Pool
}

func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

type PasswordResetRepo interface {
	Create(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) (int64, error)
	GetByHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64) (int64, error)
	ConsumeAndSetPassword(ctx context.Context, tokenID, userID int64, passwordHash string) (bool, error)
	InvalidateActiveByUser(ctx context.Context, userID int64) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

func (r *PasswordResetRepository) Create(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO password_reset_tokens (user_id, token_hash, expires_at) VALUES ($1,$2,$3) RETURNING id`,
		userID, tokenHash, expiresAt,
	).Scan(&id)
	if err != nil {
		logger.Log.Error("Создание токена сброса не удалось (repo)", zap.Error(err), zap.Int64("user_id", userID))
	}
	return id, err
}

// GetByHash ищет запись по дайджесту без фильтра по сроку и used_at:
// различие "не найден / просрочен / использован" решает сервис.
func (r *PasswordResetRepository) GetByHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, token_hash, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE token_hash = $1
	`, tokenHash)

	var t models.PasswordResetToken
	if err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkUsed помечает токен использованным, только если он ещё не использован.
// Возвращает число затронутых строк: 0 — токен уже потреблён конкурентным запросом.
func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE password_reset_tokens SET used_at = NOW() WHERE id = $1 AND used_at IS NULL`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ConsumeAndSetPassword выполняет пометку токена и смену пароля одной транзакцией.
// false — токен уже был использован, пароль не меняется.
func (r *PasswordResetRepository) ConsumeAndSetPassword(ctx context.Context, tokenID, userID int64, passwordHash string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE password_reset_tokens SET used_at = NOW() WHERE id = $1 AND used_at IS NULL`, tokenID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		// Проигравший из двух конкурентных запросов: токен уже потреблён.
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// InvalidateActiveByUser гасит непогашенные токены пользователя —
// при выдаче нового токена старые перестают действовать.
func (r *PasswordResetRepository) InvalidateActiveByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE password_reset_tokens
		SET used_at = NOW()
		WHERE user_id = $1 AND used_at IS NULL AND expires_at > NOW()
	`, userID)
	if err != nil {
		logger.Log.Error("Инвалидация старых токенов не удалась (repo)", zap.Error(err), zap.Int64("user_id", userID))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PasswordResetRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < NOW()`)
	if err != nil {
		logger.Log.Error("Очистка просроченных токенов не удалась (repo)", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
