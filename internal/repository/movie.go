package repository

import (
	"context"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MovieRepo interface {
	Create(ctx context.Context, m *models.Movie) (*models.Movie, error)
	GetAll(ctx context.Context, limit, offset int) ([]*models.Movie, int, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	SearchByTitle(ctx context.Context, term string) ([]*models.Movie, error)
	GetByGenre(ctx context.Context, genre string) ([]*models.Movie, error)
	Update(ctx context.Context, m *models.Movie) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type movieRepo struct{ db *pgxpool.Pool }

func NewMovieRepo(db *pgxpool.Pool) MovieRepo { return &movieRepo{db: db} }

const movieColumns = `id, title, main_cast, duration, genre, rating, poster_url, release_date, created_at, updated_at`

func scanMovie(row interface{ Scan(dest ...any) error }) (*models.Movie, error) {
	var m models.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.MainCast,
		&m.Duration,
		&m.Genre,
		&m.Rating,
		&m.PosterURL,
		&m.ReleaseDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepo) Create(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	const q = `
		INSERT INTO movies (title, main_cast, duration, genre, rating, poster_url, release_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING ` + movieColumns

	out, err := scanMovie(r.db.QueryRow(ctx, q,
		m.Title, m.MainCast, m.Duration, m.Genre, m.Rating, m.PosterURL, m.ReleaseDate,
	))
	if err != nil {
		logger.Log.Error("Ошибка создания фильма (repo)", zap.Error(err), zap.String("title", m.Title))
		return nil, err
	}
	return out, nil
}

func (r *movieRepo) GetAll(ctx context.Context, limit, offset int) ([]*models.Movie, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

func (r *movieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	return scanMovie(r.db.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
}

func (r *movieRepo) SearchByTitle(ctx context.Context, term string) ([]*models.Movie, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE title ILIKE '%' || $1 || '%' ORDER BY title`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *movieRepo) GetByGenre(ctx context.Context, genre string) ([]*models.Movie, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE genre = $1 ORDER BY release_date DESC NULLS LAST`, genre)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *movieRepo) Update(ctx context.Context, m *models.Movie) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE movies
		SET title = $1, main_cast = $2, duration = $3, genre = $4, rating = $5,
		    poster_url = $6, release_date = $7, updated_at = NOW()
		WHERE id = $8`,
		m.Title, m.MainCast, m.Duration, m.Genre, m.Rating, m.PosterURL, m.ReleaseDate, m.ID)
	if err != nil {
		logger.Log.Error("Ошибка обновления фильма (repo)", zap.Error(err), zap.Int64("movie_id", m.ID))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *movieRepo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления фильма (repo)", zap.Error(err), zap.Int64("movie_id", id))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
