package services

import (
	"context"
	"errors"
	"strings"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HallService interface {
	Create(ctx context.Context, req models.CreateHallRequest) (*models.Hall, error)
	GetAll(ctx context.Context) ([]*models.Hall, error)
	GetByID(ctx context.Context, id int64) (*models.Hall, error)
	GetByStatus(ctx context.Context, status string) ([]*models.Hall, error)
	GetByType(ctx context.Context, hallType string) ([]*models.Hall, error)
	GetDeleted(ctx context.Context) ([]*models.Hall, error)
	Update(ctx context.Context, id int64, req models.CreateHallRequest) (*models.Hall, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

type hallService struct {
	repo repository.HallRepo
}

func NewHallService(repo repository.HallRepo) HallService {
	return &hallService{repo: repo}
}

func (s *hallService) Create(ctx context.Context, req models.CreateHallRequest) (*models.Hall, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание зала", zap.String("name", req.Name))

	status := req.HallStatus
	if status == "" {
		status = models.HallStatusActive
	}

	return s.repo.Create(ctx, &models.Hall{
		Name:       strings.TrimSpace(req.Name),
		TotalSeats: req.TotalSeats,
		HallType:   req.HallType,
		HallStatus: status,
	})
}

func (s *hallService) GetAll(ctx context.Context) ([]*models.Hall, error) {
	return s.repo.GetAll(ctx)
}

func (s *hallService) GetByID(ctx context.Context, id int64) (*models.Hall, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *hallService) GetByStatus(ctx context.Context, status string) ([]*models.Hall, error) {
	return s.repo.GetByStatus(ctx, status)
}

func (s *hallService) GetByType(ctx context.Context, hallType string) ([]*models.Hall, error) {
	return s.repo.GetByType(ctx, hallType)
}

func (s *hallService) GetDeleted(ctx context.Context) ([]*models.Hall, error) {
	return s.repo.GetDeleted(ctx)
}

func (s *hallService) Update(ctx context.Context, id int64, req models.CreateHallRequest) (*models.Hall, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление зала", zap.Int64("hall_id", id))

	status := req.HallStatus
	if status == "" {
		status = models.HallStatusActive
	}

	n, err := s.repo.Update(ctx, &models.Hall{
		ID:         id,
		Name:       strings.TrimSpace(req.Name),
		TotalSeats: req.TotalSeats,
		HallType:   req.HallType,
		HallStatus: status,
	})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrHallNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *hallService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Мягкое удаление зала", zap.Int64("hall_id", id))

	n, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHallNotFound
	}
	return nil
}

func (s *hallService) Restore(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Восстановление зала", zap.Int64("hall_id", id))

	n, err := s.repo.Restore(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHallNotFound
	}
	return nil
}
