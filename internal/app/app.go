package app

import (
	"context"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/config"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/db"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/handlers"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/logger"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/repository"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/routes"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	resetRepo := repository.NewPasswordResetRepository(conn)
	movieRepo := repository.NewMovieRepo(conn)
	hallRepo := repository.NewHallRepo(conn)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	emailService := services.NewEmailService(cfg)
	passwordSvc := services.NewPasswordResetService(
		resetRepo,
		userRepo,
		emailService,
		cfg.FrontendURL,
		cfg.PasswordResetTTL(),
	)
	movieService := services.NewMovieService(movieRepo)
	hallService := services.NewHallService(hallRepo)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, cfg)
	passwordHandler := handlers.NewPasswordHandler(passwordSvc)
	movieHandler := handlers.NewMovieHandler(movieService)
	hallHandler := handlers.NewHallHandler(hallService)
	userHandler := handlers.NewUserHandler(authService)

	// Периодическая чистка просроченных токенов сброса
	StartResetTokenCleaner(passwordSvc)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg, userRepo, passwordSvc, authHandler, passwordHandler, movieHandler, hallHandler, userHandler)

	return router, nil
}

func StartResetTokenCleaner(svc *services.PasswordResetService) {
	t := time.NewTicker(1 * time.Hour)
	go func() {
		for range t.C {
			deleted, err := svc.Purge(context.Background())
			if err != nil {
				logger.Log.Error("Ошибка чистки токенов сброса", zap.Error(err))
				continue
			}
			if deleted > 0 {
				logger.Log.Info("Просроченные токены сброса удалены", zap.Int64("count", deleted))
			}
		}
	}()
}
