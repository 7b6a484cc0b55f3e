package routes

import (
	"net/http"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/config"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/handlers"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/middleware"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/repository"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/services"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	cfg *config.Config,
	userRepo *repository.UserRepository,
	passwordSvc *services.PasswordResetService,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	movieHandler *handlers.MovieHandler,
	hallHandler *handlers.HallHandler,
	userHandler *handlers.UserHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/password/forgot", passwordHandler.Forgot).Methods("POST")
	api.Handle("/password/reset",
		middleware.ValidateResetToken(passwordSvc)(http.HandlerFunc(passwordHandler.Reset)),
	).Methods("POST")

	api.HandleFunc("/movies", movieHandler.List).Methods("GET")
	api.HandleFunc("/movies/search", movieHandler.Search).Methods("GET")
	api.HandleFunc("/movies/genre/{genre}", movieHandler.ByGenre).Methods("GET")
	api.HandleFunc("/movies/{id:[0-9]+}", movieHandler.GetByID).Methods("GET")

	api.HandleFunc("/halls", hallHandler.List).Methods("GET")
	api.HandleFunc("/halls/active", hallHandler.Active).Methods("GET")
	api.HandleFunc("/halls/status/{status}", hallHandler.ByStatus).Methods("GET")
	api.HandleFunc("/halls/type/{type}", hallHandler.ByType).Methods("GET")
	api.HandleFunc("/halls/{id:[0-9]+}", hallHandler.GetByID).Methods("GET")

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))

	protected.HandleFunc("/profile", authHandler.Profile).Methods("GET")

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(userRepo, "admin"))

	admin.HandleFunc("/movies", movieHandler.Create).Methods("POST")
	admin.HandleFunc("/movies/{id:[0-9]+}", movieHandler.Update).Methods("PUT")
	admin.HandleFunc("/movies/{id:[0-9]+}", movieHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/halls", hallHandler.Create).Methods("POST")
	admin.HandleFunc("/halls/deleted", hallHandler.ListDeleted).Methods("GET")
	admin.HandleFunc("/halls/{id:[0-9]+}", hallHandler.Update).Methods("PUT")
	admin.HandleFunc("/halls/{id:[0-9]+}", hallHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/halls/{id:[0-9]+}/restore", hallHandler.Restore).Methods("PATCH")

	admin.HandleFunc("/users", userHandler.List).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", userHandler.GetByID).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", userHandler.Update).Methods("PATCH")
	admin.HandleFunc("/users/{id:[0-9]+}", userHandler.Delete).Methods("DELETE")
}
