package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	database "github.com/adomanski/TrackKit/db"
	"github.com/adomanski/TrackKit/internal/auth"
	"github.com/adomanski/TrackKit/internal/habit/application"
	"github.com/adomanski/TrackKit/internal/habit/infrastructure"
	"github.com/adomanski/TrackKit/internal/habit/interfaces"
	"github.com/adomanski/TrackKit/internal/user"
	"github.com/joho/godotenv"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router          *http.ServeMux
	dbService       *database.DBService
	authHandler     *auth.Handler
	authService     auth.Service
	userHandler     *user.Handler
	habitHandler    *interfaces.HabitHandler
	categoryHandler *interfaces.CategoryHandler
}

func NewServer(
	dbService *database.DBService,
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	habitHandler *interfaces.HabitHandler,
	categoryHandler *interfaces.CategoryHandler,
) *Server {
	return &Server{
		router:          http.NewServeMux(),
		dbService:       dbService,
		authHandler:     authHandler,
		authService:     authService,
		userHandler:     userHandler,
		habitHandler:    habitHandler,
		categoryHandler: categoryHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	withAuth := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/demo", http.HandlerFunc(s.authHandler.HandleDemoLogin))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", withAuth(http.HandlerFunc(s.userHandler.HandleGetProfile)))
	protectedRoutes.Handle("PUT /api/protected/profile", withAuth(http.HandlerFunc(s.userHandler.HandleUpdateProfile)))

	protectedRoutes.Handle("GET /api/protected/dashboard", withAuth(http.HandlerFunc(s.habitHandler.HandleGetDashboard)))

	protectedRoutes.Handle("GET /api/protected/habits", withAuth(http.HandlerFunc(s.habitHandler.HandleListHabits)))
	protectedRoutes.Handle("POST /api/protected/habits", withAuth(http.HandlerFunc(s.habitHandler.HandleCreateHabit)))
	protectedRoutes.Handle("PUT /api/protected/habits/{habitID}", withAuth(http.HandlerFunc(s.habitHandler.HandleUpdateHabit)))
	protectedRoutes.Handle("DELETE /api/protected/habits/{habitID}", withAuth(http.HandlerFunc(s.habitHandler.HandleArchiveHabit)))
	protectedRoutes.Handle("POST /api/protected/habits/{habitID}/restore", withAuth(http.HandlerFunc(s.habitHandler.HandleRestoreHabit)))

	protectedRoutes.Handle("GET /api/protected/habits/{habitID}/logs", withAuth(http.HandlerFunc(s.habitHandler.HandleGetLogs)))
	protectedRoutes.Handle("POST /api/protected/habits/{habitID}/logs", withAuth(http.HandlerFunc(s.habitHandler.HandleLogCompletion)))
	protectedRoutes.Handle("DELETE /api/protected/habits/{habitID}/logs", withAuth(http.HandlerFunc(s.habitHandler.HandleDeleteLog)))

	protectedRoutes.Handle("GET /api/protected/habit-categories", withAuth(http.HandlerFunc(s.categoryHandler.HandleGetCategories)))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", s.authService.JWTRefreshTokenMiddleware()(http.HandlerFunc(s.authHandler.RefreshAccessToken)))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)

	jwtManager := auth.NewJWTManager()
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)

	habitRepo := infrastructure.NewHabitRepository(dbService.DB)
	logRepo := infrastructure.NewHabitLogRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)

	categoryService := application.NewCategoryService(categoryRepo)
	habitService := application.NewHabitService(habitRepo, logRepo, categoryService)
	logService := application.NewHabitLogService(logRepo, habitRepo)

	habitHandler := interfaces.NewHabitHandler(habitService, logService, respondJSON, respondError)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	server := NewServer(dbService, authHandler, authService, userHandler, habitHandler, categoryHandler)
	server.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Habit tracker starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, loggingMiddleware(server.router)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
