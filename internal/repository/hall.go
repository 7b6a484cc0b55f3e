package repository

import (
	"context"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type HallRepo interface {
	Create(ctx context.Context, h *models.Hall) (*models.Hall, error)
	GetAll(ctx context.Context) ([]*models.Hall, error)
	GetByID(ctx context.Context, id int64) (*models.Hall, error)
	GetByStatus(ctx context.Context, status string) ([]*models.Hall, error)
	GetByType(ctx context.Context, hallType string) ([]*models.Hall, error)
	GetDeleted(ctx context.Context) ([]*models.Hall, error)
	Update(ctx context.Context, h *models.Hall) (int64, error)
	SoftDelete(ctx context.Context, id int64) (int64, error)
	Restore(ctx context.Context, id int64) (int64, error)
}

type hallRepo struct{ db *pgxpool.Pool }

func NewHallRepo(db *pgxpool.Pool) HallRepo { return &hallRepo{db: db} }

const hallColumns = `id, name, total_seats, hall_type, hall_status, is_deleted, created_at, updated_at`

func scanHall(row interface{ Scan(dest ...any) error }) (*models.Hall, error) {
	var h models.Hall
	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.TotalSeats,
		&h.HallType,
		&h.HallStatus,
		&h.IsDeleted,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hallRepo) queryHalls(ctx context.Context, q string, args ...interface{}) ([]*models.Hall, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Hall
	for rows.Next() {
		h, err := scanHall(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *hallRepo) Create(ctx context.Context, h *models.Hall) (*models.Hall, error) {
	const q = `
		INSERT INTO halls (name, total_seats, hall_type, hall_status)
		VALUES ($1,$2,$3,$4)
		RETURNING ` + hallColumns

	out, err := scanHall(r.db.QueryRow(ctx, q, h.Name, h.TotalSeats, h.HallType, h.HallStatus))
	if err != nil {
		logger.Log.Error("Ошибка создания зала (repo)", zap.Error(err), zap.String("name", h.Name))
		return nil, err
	}
	return out, nil
}

func (r *hallRepo) GetAll(ctx context.Context) ([]*models.Hall, error) {
	return r.queryHalls(ctx,
		`SELECT `+hallColumns+` FROM halls WHERE is_deleted = FALSE ORDER BY name`)
}

func (r *hallRepo) GetByID(ctx context.Context, id int64) (*models.Hall, error) {
	return scanHall(r.db.QueryRow(ctx, `SELECT `+hallColumns+` FROM halls WHERE id = $1`, id))
}

func (r *hallRepo) GetByStatus(ctx context.Context, status string) ([]*models.Hall, error) {
	return r.queryHalls(ctx,
		`SELECT `+hallColumns+` FROM halls WHERE hall_status = $1 AND is_deleted = FALSE ORDER BY name`, status)
}

func (r *hallRepo) GetByType(ctx context.Context, hallType string) ([]*models.Hall, error) {
	return r.queryHalls(ctx,
		`SELECT `+hallColumns+` FROM halls WHERE hall_type = $1 AND is_deleted = FALSE ORDER BY name`, hallType)
}

func (r *hallRepo) GetDeleted(ctx context.Context) ([]*models.Hall, error) {
	return r.queryHalls(ctx,
		`SELECT `+hallColumns+` FROM halls WHERE is_deleted = TRUE ORDER BY name`)
}

func (r *hallRepo) Update(ctx context.Context, h *models.Hall) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE halls
		SET name = $1, total_seats = $2, hall_type = $3, hall_status = $4, updated_at = NOW()
		WHERE id = $5 AND is_deleted = FALSE`,
		h.Name, h.TotalSeats, h.HallType, h.HallStatus, h.ID)
	if err != nil {
		logger.Log.Error("Ошибка обновления зала (repo)", zap.Error(err), zap.Int64("hall_id", h.ID))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SoftDelete — мягкое удаление: зал остаётся в БД, статус закрывается.
func (r *hallRepo) SoftDelete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE halls
		SET is_deleted = TRUE, hall_status = $1, updated_at = NOW()
		WHERE id = $2 AND is_deleted = FALSE`,
		models.HallStatusClosed, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления зала (repo)", zap.Error(err), zap.Int64("hall_id", id))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *hallRepo) Restore(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE halls
		SET is_deleted = FALSE, hall_status = $1, updated_at = NOW()
		WHERE id = $2 AND is_deleted = TRUE`,
		models.HallStatusActive, id)
	if err != nil {
		logger.Log.Error("Ошибка восстановления зала (repo)", zap.Error(err), zap.Int64("hall_id", id))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
