// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/policylens/policylens/internal/config"
	"github.com/policylens/policylens/internal/domain"
	"github.com/policylens/policylens/internal/handlers"
	"github.com/policylens/policylens/internal/middleware"
	"github.com/policylens/policylens/internal/ratelimit"
	chatrepo "github.com/policylens/policylens/internal/repository/chat"
	insurancerepo "github.com/policylens/policylens/internal/repository/insurance"
	messagerepo "github.com/policylens/policylens/internal/repository/message"
	summaryrepo "github.com/policylens/policylens/internal/repository/summary"
	translationrepo "github.com/policylens/policylens/internal/repository/translation"
	userrepo "github.com/policylens/policylens/internal/repository/user"
	"github.com/policylens/policylens/internal/services"
	"github.com/policylens/policylens/internal/services/ai"
	"github.com/policylens/policylens/internal/services/storage"
	"github.com/policylens/policylens/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("policylens")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.Message{},
		&domain.Summary{},
		&domain.Translation{},
		&domain.InsurancePolicy{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := userrepo.NewUserRepository(db)
	chatRepo := chatrepo.NewChatRepository(db)
	messageRepo := messagerepo.NewMessageRepository(db)
	summaryRepo := summaryrepo.NewSummaryRepository(db)
	translationRepo := translationrepo.NewTranslationRepository(db)
	insuranceRepo := insurancerepo.NewInsuranceRepository(db)

	// --- External collaborators ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.GenAPIKey
	aiConfig.BaseURL = cfg.GenBaseURL
	aiConfig.Model = cfg.GenModel
	if err := aiConfig.Validate(); err != nil {
		log.Fatalf("FATAL: Invalid generation provider config: %v", err)
	}
	provider := ai.NewOpenAIProvider(aiConfig)

	store, err := storage.NewMinioStore(
		cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize object store: %v", err)
	}

	// --- Services ---
	generationService, err := services.NewGenerationService(provider, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Generation Service: %v", err)
	}
	chatService, err := services.NewChatService(chatRepo, messageRepo, generationService, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}
	summaryService, err := services.NewSummaryService(summaryRepo, store, generationService, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Summary Service: %v", err)
	}
	translationService, err := services.NewTranslationService(translationRepo, generationService, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Translation Service: %v", err)
	}
	insuranceService, err := services.NewInsuranceService(insuranceRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Insurance Service: %v", err)
	}
	authService, err := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Auth Service: %v", err)
	}
	userService, err := user_services.NewUserService(userRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize User Service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	chatHandler := handlers.NewChatHandler(chatService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	translationHandler := handlers.NewTranslationHandler(translationService)
	insuranceHandler := handlers.NewInsuranceHandler(insuranceService)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(cfg.JWTSecretKey)
	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	// --- Public Routes ---
	public := r.PathPrefix("/api/v1").Subrouter()
	public.Use(middleware.RateLimitMiddleware(authLimiter, "auth"))
	public.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	public.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware)

	api.HandleFunc("/user/profile", userHandler.GetProfile).Methods("GET")
	api.HandleFunc("/user/profile", userHandler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/user/change-password", userHandler.ChangePassword).Methods("PUT")

	api.HandleFunc("/chat/message/create", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chat/message/create/{chatId:[0-9]+}", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chat/message/{id:[0-9]+}", chatHandler.GetChatMessages).Methods("GET")
	api.HandleFunc("/chat", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chat/{id:[0-9]+}", chatHandler.GetChat).Methods("GET")
	api.HandleFunc("/chat/{id:[0-9]+}", chatHandler.DeleteChat).Methods("DELETE")

	api.HandleFunc("/summary", summaryHandler.Ingest).Methods("POST")
	api.HandleFunc("/summary", summaryHandler.List).Methods("GET")
	api.HandleFunc("/summary/translate/{id:[0-9]+}", summaryHandler.Translate).Methods("POST")
	api.HandleFunc("/summary/{id:[0-9]+}", summaryHandler.Get).Methods("GET")
	api.HandleFunc("/summary/{id:[0-9]+}/document", summaryHandler.DocumentURL).Methods("GET")
	api.HandleFunc("/summary/{id:[0-9]+}/html", summaryHandler.GetHTML).Methods("GET")
	api.HandleFunc("/summary/{id:[0-9]+}", summaryHandler.Delete).Methods("DELETE")

	api.HandleFunc("/translation", translationHandler.Convert).Methods("POST")
	api.HandleFunc("/translation", translationHandler.List).Methods("GET")
	api.HandleFunc("/translation/{id:[0-9]+}", translationHandler.Get).Methods("GET")
	api.HandleFunc("/translation/{id:[0-9]+}", translationHandler.Delete).Methods("DELETE")

	api.HandleFunc("/insurance", insuranceHandler.Add).Methods("POST")
	api.HandleFunc("/insurance", insuranceHandler.List).Methods("GET")
	api.HandleFunc("/insurance/{id:[0-9]+}", insuranceHandler.Get).Methods("GET")
	api.HandleFunc("/insurance/{id:[0-9]+}", insuranceHandler.Update).Methods("PUT")
	api.HandleFunc("/insurance/{id:[0-9]+}", insuranceHandler.Delete).Methods("DELETE")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Info("server stopped")
}
