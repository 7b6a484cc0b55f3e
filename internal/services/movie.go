package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieService interface {
	Create(ctx context.Context, req models.CreateMovieRequest) (*models.Movie, error)
	GetAll(ctx context.Context, limit, offset int) ([]*models.Movie, int, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	SearchByTitle(ctx context.Context, term string) ([]*models.Movie, error)
	GetByGenre(ctx context.Context, genre string) ([]*models.Movie, error)
	Update(ctx context.Context, id int64, req models.CreateMovieRequest) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type movieService struct {
	repo repository.MovieRepo
}

func NewMovieService(repo repository.MovieRepo) MovieService {
	return &movieService{repo: repo}
}

func movieFromRequest(req models.CreateMovieRequest) (*models.Movie, error) {
	m := &models.Movie{
		Title:     strings.TrimSpace(req.Title),
		MainCast:  strings.TrimSpace(req.MainCast),
		Duration:  req.Duration,
		Genre:     strings.TrimSpace(req.Genre),
		Rating:    req.Rating,
		PosterURL: strings.TrimSpace(req.PosterURL),
	}
	if req.ReleaseDate != "" {
		d, err := time.Parse("2006-01-02", req.ReleaseDate)
		if err != nil {
			return nil, err
		}
		m.ReleaseDate = &d
	}
	return m, nil
}

func (s *movieService) Create(ctx context.Context, req models.CreateMovieRequest) (*models.Movie, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание фильма", zap.String("title", req.Title))

	m, err := movieFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, m)
}

func (s *movieService) GetAll(ctx context.Context, limit, offset int) ([]*models.Movie, int, error) {
	return s.repo.GetAll(ctx, limit, offset)
}

func (s *movieService) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *movieService) SearchByTitle(ctx context.Context, term string) ([]*models.Movie, error) {
	return s.repo.SearchByTitle(ctx, strings.TrimSpace(term))
}

func (s *movieService) GetByGenre(ctx context.Context, genre string) ([]*models.Movie, error) {
	return s.repo.GetByGenre(ctx, strings.TrimSpace(genre))
}

func (s *movieService) Update(ctx context.Context, id int64, req models.CreateMovieRequest) (*models.Movie, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление фильма", zap.Int64("movie_id", id))

	m, err := movieFromRequest(req)
	if err != nil {
		return nil, err
	}
	m.ID = id

	n, err := s.repo.Update(ctx, m)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrMovieNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление фильма", zap.Int64("movie_id", id))

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
