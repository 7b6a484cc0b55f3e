package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/services"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/helpers"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils/validation"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HallHandler struct {
	svc services.HallService
}

func NewHallHandler(svc services.HallService) *HallHandler {
	return &HallHandler{svc: svc}
}

func hallID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// List godoc
// @Summary Список залов (без удалённых)
// @Tags halls
// @Produce json
// @Success 200 {array} models.Hall
// @Router /api/halls [get]
func (h *HallHandler) List(w http.ResponseWriter, r *http.Request) {
	halls, err := h.svc.GetAll(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения залов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения залов")
		return
	}
	helpers.JSON(w, http.StatusOK, halls)
}

// GetByID godoc
// @Summary Зал по ID
// @Tags halls
// @Produce json
// @Param id path int true "ID зала"
// @Success 200 {object} models.Hall
// @Failure 404 {string} string "Зал не найден"
// @Router /api/halls/{id} [get]
func (h *HallHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := hallID(r)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	hall, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrHallNotFound) {
			helpers.Error(w, http.StatusNotFound, "Зал не найден")
			return
		}
		logger.WithCtx(r.Context()).Error("Ошибка получения зала", zap.Int64("hall_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения зала")
		return
	}
	helpers.JSON(w, http.StatusOK, hall)
}

// Active godoc
// @Summary Действующие залы
// @Tags halls
// @Produce json
// @Success 200 {array} models.Hall
// @Router /api/halls/active [get]
func (h *HallHandler) Active(w http.ResponseWriter, r *http.Request) {
	halls, err := h.svc.GetByStatus(r.Context(), models.HallStatusActive)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения действующих залов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения залов")
		return
	}
	helpers.JSON(w, http.StatusOK, halls)
}

// ByStatus godoc
// @Summary Залы по статусу
// @Tags halls
// @Produce json
// @Param status path string true "Статус (active|maintenance|closed)"
// @Success 200 {array} models.Hall
// @Router /api/halls/status/{status} [get]
func (h *HallHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	status := mux.Vars(r)["status"]
	halls, err := h.svc.GetByStatus(r.Context(), status)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка выборки залов по статусу", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения залов")
		return
	}
	helpers.JSON(w, http.StatusOK, halls)
}

// ByType godoc
// @Summary Залы по типу
// @Tags halls
// @Produce json
// @Param type path string true "Тип зала (standard|imax|vip|3d)"
// @Success 200 {array} models.Hall
// @Router /api/halls/type/{type} [get]
func (h *HallHandler) ByType(w http.ResponseWriter, r *http.Request) {
	hallType := mux.Vars(r)["type"]
	halls, err := h.svc.GetByType(r.Context(), hallType)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка выборки залов по типу", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения залов")
		return
	}
	helpers.JSON(w, http.StatusOK, halls)
}

// ListDeleted godoc
// @Summary Удалённые залы (только admin)
// @Tags admin-halls
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Hall
// @Router /api/admin/halls/deleted [get]
func (h *HallHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	halls, err := h.svc.GetDeleted(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения удалённых залов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения залов")
		return
	}
	helpers.JSON(w, http.StatusOK, halls)
}

// Create godoc
// @Summary Создать зал (только admin)
// @Tags admin-halls
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateHallRequest true "Данные зала"
// @Success 201 {object} models.Hall
// @Failure 400 {object} helpers.FieldErrorResponse "Ошибка валидации"
// @Router /api/admin/halls [post]
func (h *HallHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.CreateHallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при создании зала", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		helpers.FieldErrors(w, http.StatusBadRequest, "Ошибка валидации", validation.FormatErrors(err))
		return
	}

	hall, err := h.svc.Create(r.Context(), req)
	if err != nil {
		log.Error("Ошибка создания зала", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка создания зала")
		return
	}

	log.Info("Зал создан", zap.Int64("hall_id", hall.ID), zap.String("name", hall.Name))
	helpers.JSON(w, http.StatusCreated, hall)
}

// Update godoc
// @Summary Обновить зал (только admin)
// @Tags admin-halls
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID зала"
// @Param input body models.CreateHallRequest true "Данные зала"
// @Success 200 {object} models.Hall
// @Failure 404 {string} string "Зал не найден"
// @Router /api/admin/halls/{id} [put]
func (h *HallHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, err := hallID(r)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var req models.CreateHallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		helpers.FieldErrors(w, http.StatusBadRequest, "Ошибка валидации", validation.FormatErrors(err))
		return
	}

	hall, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrHallNotFound) {
			helpers.Error(w, http.StatusNotFound, "Зал не найден")
			return
		}
		log.Error("Ошибка обновления зала", zap.Int64("hall_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка обновления зала")
		return
	}

	log.Info("Зал обновлён", zap.Int64("hall_id", id))
	helpers.JSON(w, http.StatusOK, hall)
}

// Delete godoc
// @Summary Мягкое удаление зала (только admin)
// @Tags admin-halls
// @Security ApiKeyAuth
// @Param id path int true "ID зала"
// @Success 200 {string} string "Зал удалён"
// @Failure 404 {string} string "Зал не найден"
// @Router /api/admin/halls/{id} [delete]
func (h *HallHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, err := hallID(r)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrHallNotFound) {
			helpers.Error(w, http.StatusNotFound, "Зал не найден")
			return
		}
		log.Error("Ошибка удаления зала", zap.Int64("hall_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка удаления зала")
		return
	}

	log.Info("Зал удалён (мягко)", zap.Int64("hall_id", id))
	helpers.JSON(w, http.StatusOK, "Зал удалён")
}

// Restore godoc
// @Summary Восстановить удалённый зал (только admin)
// @Tags admin-halls
// @Security ApiKeyAuth
// @Param id path int true "ID зала"
// @Success 200 {string} string "Зал восстановлен"
// @Failure 404 {string} string "Зал не найден"
// @Router /api/admin/halls/{id}/restore [patch]
func (h *HallHandler) Restore(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, err := hallID(r)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	if err := h.svc.Restore(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrHallNotFound) {
			helpers.Error(w, http.StatusNotFound, "Зал не найден")
			return
		}
		log.Error("Ошибка восстановления зала", zap.Int64("hall_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка восстановления зала")
		return
	}

	log.Info("Зал восстановлен", zap.Int64("hall_id", id))
	helpers.JSON(w, http.StatusOK, "Зал восстановлен")
}
