package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/services"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/helpers"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/validation"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type MovieHandler struct {
	svc services.MovieService
}

func NewMovieHandler(svc services.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// List godoc
// @Summary Каталог фильмов (постранично)
// @Tags movies
// @Produce json
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы (макс. 100)"
// @Success 200 {object} models.PaginatedResponse
// @Router /api/movies [get]
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := utils.ParsePagination(r.URL.Query())

	movies, total, err := h.svc.GetAll(r.Context(), limit, offset)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения списка фильмов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения фильмов")
		return
	}

	helpers.JSON(w, http.StatusOK, utils.BuildPaginated(movies, page, limit, total))
}

// GetByID godoc
// @Summary Фильм по ID
// @Tags movies
// @Produce json
// @Param id path int true "ID фильма"
// @Success 200 {object} models.Movie
// @Failure 404 {string} string "Фильм не найден"
// @Router /api/movies/{id} [get]
func (h *MovieHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	movie, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			helpers.Error(w, http.StatusNotFound, "Фильм не найден")
			return
		}
		logger.WithCtx(r.Context()).Error("Ошибка получения фильма", zap.Int64("movie_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения фильма")
		return
	}

	helpers.JSON(w, http.StatusOK, movie)
}

// Search godoc
// @Summary Поиск фильмов по названию
// @Tags movies
// @Produce json
// @Param q query string true "Подстрока названия"
// @Success 200 {array} models.Movie
// @Router /api/movies/search [get]
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		helpers.Error(w, http.StatusBadRequest, "Параметр q обязателен")
		return
	}

	movies, err := h.svc.SearchByTitle(r.Context(), term)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка поиска фильмов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка поиска")
		return
	}

	helpers.JSON(w, http.StatusOK, movies)
}

// ByGenre godoc
// @Summary Фильмы по жанру
// @Tags movies
// @Produce json
// @Param genre path string true "Жанр"
// @Success 200 {array} models.Movie
// @Router /api/movies/genre/{genre} [get]
func (h *MovieHandler) ByGenre(w http.ResponseWriter, r *http.Request) {
	genre := mux.Vars(r)["genre"]

	movies, err := h.svc.GetByGenre(r.Context(), genre)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка выборки фильмов по жанру", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения фильмов")
		return
	}

	helpers.JSON(w, http.StatusOK, movies)
}

// Create godoc
// @Summary Создать фильм (только admin)
// @Tags admin-movies
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateMovieRequest true "Данные фильма"
// @Success 201 {object} models.Movie
// @Failure 400 {object} helpers.FieldErrorResponse "Ошибка валидации"
// @Router /api/admin/movies [post]
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при создании фильма", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		helpers.FieldErrors(w, http.StatusBadRequest, "Ошибка валидации", validation.FormatErrors(err))
		return
	}

	movie, err := h.svc.Create(r.Context(), req)
	if err != nil {
		log.Error("Ошибка создания фильма", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка создания фильма")
		return
	}

	log.Info("Фильм создан", zap.Int64("movie_id", movie.ID), zap.String("title", movie.Title))
	helpers.JSON(w, http.StatusCreated, movie)
}

// Update godoc
// @Summary Обновить фильм (только admin)
// @Tags admin-movies
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID фильма"
// @Param input body models.CreateMovieRequest true "Данные фильма"
// @Success 200 {object} models.Movie
// @Failure 404 {string} string "Фильм не найден"
// @Router /api/admin/movies/{id} [put]
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var req models.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		helpers.FieldErrors(w, http.StatusBadRequest, "Ошибка валидации", validation.FormatErrors(err))
		return
	}

	movie, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			helpers.Error(w, http.StatusNotFound, "Фильм не найден")
			return
		}
		log.Error("Ошибка обновления фильма", zap.Int64("movie_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка обновления фильма")
		return
	}

	log.Info("Фильм обновлён", zap.Int64("movie_id", id))
	helpers.JSON(w, http.StatusOK, movie)
}

// Delete godoc
// @Summary Удалить фильм (только admin)
// @Tags admin-movies
// @Security ApiKeyAuth
// @Param id path int true "ID фильма"
// @Success 200 {string} string "Фильм удалён"
// @Failure 404 {string} string "Фильм не найден"
// @Router /api/admin/movies/{id} [delete]
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			helpers.Error(w, http.StatusNotFound, "Фильм не найден")
			return
		}
		log.Error("Ошибка удаления фильма", zap.Int64("movie_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка удаления фильма")
		return
	}

	log.Info("Фильм удалён", zap.Int64("movie_id", id))
	helpers.JSON(w, http.StatusOK, "Фильм удалён")
}
