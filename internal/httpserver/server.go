package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/fdg312/fittrack/internal/auth"
	"github.com/fdg312/fittrack/internal/blob"
	"github.com/fdg312/fittrack/internal/calories"
	"github.com/fdg312/fittrack/internal/config"
	"github.com/fdg312/fittrack/internal/nutrition"
	"github.com/fdg312/fittrack/internal/profiles"
	"github.com/fdg312/fittrack/internal/reports"
	"github.com/fdg312/fittrack/internal/steps"
	"github.com/fdg312/fittrack/internal/storage"
	"github.com/fdg312/fittrack/internal/storage/memory"
	"github.com/fdg312/fittrack/internal/storage/mongo"
	"github.com/fdg312/fittrack/internal/storage/postgres"
	"github.com/fdg312/fittrack/internal/uploads"
	"github.com/fdg312/fittrack/internal/workouts"
)

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.UserStorage
	authMiddleware *auth.Middleware
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	// Инициализируем storage
	s.initStorage()

	// Регистрируем маршруты
	s.routes()
	return s
}

// initStorage инициализирует storage (MongoDB, Postgres или Memory)
func (s *Server) initStorage() {
	ctx := context.Background()

	if s.config.MongoURI != "" {
		log.Println("Подключение к MongoDB...")
		mongoStorage, err := mongo.New(ctx, s.config.MongoURI, s.config.MongoDatabase)
		if err != nil {
			log.Printf("Ошибка подключения к MongoDB: %v", err)
			log.Println("Fallback на in-memory storage")
			s.storage = memory.New()
			return
		}
		log.Println("MongoDB подключен успешно")
		s.storage = mongoStorage
		return
	}

	if s.config.DatabaseURL != "" {
		log.Println("Подключение к PostgreSQL...")
		pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
		if err != nil {
			log.Printf("Ошибка подключения к PostgreSQL: %v", err)
			log.Println("Fallback на in-memory storage")
			s.storage = memory.New()
			return
		}
		log.Println("PostgreSQL подключен успешно")
		s.storage = pgStorage
		return
	}

	log.Println("Используется in-memory storage")
	s.storage = memory.New()
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config, s.storage)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Calorie intake API
	oracle := nutrition.NewProvider(s.config)
	calorieHandler := calories.NewHandlers(calories.NewService(s.storage, oracle))

	s.mux.HandleFunc("POST /v1/calorieintake", calorieHandler.HandleAdd)
	s.mux.HandleFunc("POST /v1/calorieintake/bydate", calorieHandler.HandleByDate)
	s.mux.HandleFunc("POST /v1/calorieintake/bylimit", calorieHandler.HandleByLimit)
	s.mux.HandleFunc("DELETE /v1/calorieintake", calorieHandler.HandleDelete)
	s.mux.HandleFunc("GET /v1/calorieintake/goal", calorieHandler.HandleGoal)

	// Workouts API
	workoutHandler := workouts.NewHandlers(workouts.NewService(s.storage))

	s.mux.HandleFunc("POST /v1/workouts", workoutHandler.HandleAdd)
	s.mux.HandleFunc("POST /v1/workouts/bydate", workoutHandler.HandleByDate)
	s.mux.HandleFunc("POST /v1/workouts/bylimit", workoutHandler.HandleByLimit)
	s.mux.HandleFunc("DELETE /v1/workouts", workoutHandler.HandleDelete)

	// Steps API
	stepHandler := steps.NewHandlers(steps.NewService(s.storage))

	s.mux.HandleFunc("POST /v1/steps", stepHandler.HandleAdd)
	s.mux.HandleFunc("POST /v1/steps/bydate", stepHandler.HandleByDate)
	s.mux.HandleFunc("POST /v1/steps/bylimit", stepHandler.HandleByLimit)
	s.mux.HandleFunc("DELETE /v1/steps", stepHandler.HandleDelete)

	// Profile API
	profileHandler := profiles.NewHandlers(profiles.NewService(s.storage))

	s.mux.HandleFunc("GET /v1/profile", profileHandler.HandleGetProfile)
	s.mux.HandleFunc("PUT /v1/profile", profileHandler.HandleUpdateProfile)

	// Reports API
	reportHandler := reports.NewHandlers(reports.NewService(s.config, s.storage))

	s.mux.HandleFunc("GET /v1/reports/calories", reportHandler.HandleCalorieReport)

	// Image uploads API
	blobStore, blobMode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("blob store initialization failed: %v", err)
	}
	log.Printf("Blob store: mode=%s", blobMode)
	uploadHandler := uploads.NewHandlers(s.config, blobStore)

	s.mux.HandleFunc("POST /v1/uploadimage", uploadHandler.HandleUploadImage)
}

// Handler возвращает полный стек middleware поверх mux
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = s.authMiddleware.RequireAuth(handler)
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Сервер запущен на %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Close освобождает ресурсы сервера
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}

// handleHealthz — health check
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Storage отдаёт активное хранилище (нужно для тестов)
func (s *Server) Storage() storage.UserStorage {
	return s.storage
}
