package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boundle/internal/config"
	"boundle/internal/database"
	"boundle/internal/handlers"
	"boundle/internal/puzzle"
	"boundle/internal/repository"
	"boundle/internal/security"
	"boundle/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load the word schedule. An empty or invalid word list is fatal: the
	// server must never run without a word of the day.
	epoch, err := time.ParseInLocation("2006-01-02", cfg.PuzzleEpoch, time.UTC)
	if err != nil {
		log.Fatalf("Invalid puzzle epoch %q: %v", cfg.PuzzleEpoch, err)
	}
	schedule, err := puzzle.LoadSchedule(cfg.WordListPath, epoch)
	if err != nil {
		log.Fatalf("Failed to load word list from %s: %v", cfg.WordListPath, err)
	}

	log.Printf("Word schedule loaded (%d words, epoch %s)", schedule.Len(), cfg.PuzzleEpoch)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration, cfg.JWTSecret, cfg.JWTDuration)
	gameService := service.NewGameService(db, userRepo, gameRepo, schedule,
		cfg.BaseScore, cfg.AttemptPenalty, cfg.MinScore, cfg.MaxAttempts, cfg.StrictDictionary)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": handlers.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret),
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	middleware := handlers.NewMiddleware(authService, limiter)
	authHandler := handlers.NewAuthHandler(authService, emailService, oauthProviders, cfg.OAuthRedirectBaseURL)
	gameHandler := handlers.NewGameHandler(gameService)
	adminHandler := handlers.NewAdminHandler(schedule)

	// Setup routes
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/auth/password-reset/request", middleware.RateLimit(authHandler.RequestPasswordReset))
	mux.HandleFunc("POST /api/auth/password-reset/confirm", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	// Game routes
	mux.HandleFunc("POST /api/game/guess", middleware.RequireAuth(middleware.RateLimit(gameHandler.SubmitGuess)))
	mux.HandleFunc("GET /api/game/state", middleware.RequireAuth(gameHandler.State))
	mux.HandleFunc("GET /api/game/stats", middleware.RequireAuth(gameHandler.Stats))
	mux.HandleFunc("GET /api/game/leaderboard", middleware.RequireAuth(gameHandler.Leaderboard))

	// Admin routes
	mux.HandleFunc("GET /api/admin/schedule", middleware.RequireAdmin(adminHandler.SchedulePreview))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background cleanup of expired sessions and reset tokens
	go cleanupExpired(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// cleanupExpired periodically removes expired sessions and reset tokens
func cleanupExpired(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}

		if err := authService.CleanupExpiredPasswordResetTokens(); err != nil {
			log.Printf("Error cleaning up expired password reset tokens: %v", err)
		}
	}
}
